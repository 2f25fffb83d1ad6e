package connect

import (
	"errors"
	"fmt"
	"os"

	"github.com/stackvista/kluster-cli/internal/config"
	"github.com/stackvista/kluster-cli/internal/k8s"
	"github.com/stackvista/kluster-cli/internal/kube"
	"github.com/stackvista/kluster-cli/internal/logger"
)

// Conn is a client for the selected cluster together with the profile it was built from
type Conn struct {
	Client  *kube.Client
	Profile *config.Profile
}

// Namespace returns the namespace requested on the command line, falling
// back to the profile's default and then to "default"
func (c *Conn) Namespace(cliConfig *config.CLIConfig) string {
	if cliConfig.Namespace != "" {
		return cliConfig.Namespace
	}
	if c.Profile.Namespace != "" {
		return c.Profile.Namespace
	}
	return "default"
}

// LoadProfiles returns the cluster profiles selected by the CLI flags.
// An explicit --kubeconfig wins. Without one the profile file is used, and
// when that is missing the default kubeconfig is imported instead.
func LoadProfiles(cliConfig *config.CLIConfig, log *logger.Logger) (*config.Config, error) {
	if cliConfig.Kubeconfig != "" {
		return k8s.ProfilesFromKubeconfig(cliConfig.Kubeconfig, k8s.DefaultMaterialDir(), log)
	}

	configPath := cliConfig.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		log.Debugf("Profile file '%s' not found, importing %s", configPath, k8s.DefaultKubeconfigPath())
		return k8s.ProfilesFromKubeconfig(k8s.DefaultKubeconfigPath(), k8s.DefaultMaterialDir(), log)
	}

	return config.LoadConfig(configPath, cliConfig.CredentialsPath, log)
}

// Cluster loads the selected profile and creates a client for it.
func Cluster(cliCtx *config.Context, log *logger.Logger) (*Conn, error) {
	profiles, err := LoadProfiles(cliCtx.Config, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	profile, err := profiles.Profile(cliCtx.Config.Cluster)
	if err != nil {
		return nil, err
	}

	credential, err := profile.Credential()
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials for cluster '%s': %w", profile.Name, err)
	}

	log.Debugf("Connecting to cluster '%s' at %s using %s authentication", profile.Name, profile.Server, profile.AuthMode())

	client, err := kube.NewClient(profile.Name, profile.CertificateAuthority, profile.Server, credential, log.WithPrefix(profile.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to create client for cluster '%s': %w", profile.Name, err)
	}

	return &Conn{
		Client:  client,
		Profile: profile,
	}, nil
}
