// Package k8s imports cluster profiles from kubeconfig files, so clusters
// already configured for kubectl can be used without a separate profile file.
package k8s

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/stackvista/kluster-cli/internal/config"
)

// Logger receives notes about contexts that could not be imported
type Logger interface {
	Warningf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// DefaultKubeconfigPath returns ~/.kube/config
func DefaultKubeconfigPath() string {
	return clientcmd.RecommendedHomeFile
}

// DefaultMaterialDir returns the directory inline kubeconfig material is written to
func DefaultMaterialDir() string {
	return filepath.Join(filepath.Dir(config.DefaultConfigPath()), "kubeconfig")
}

// ProfilesFromKubeconfig converts every kubeconfig context into a cluster profile.
// The profile is named after the context. Inline certificate data is written
// to materialDir since profiles refer to certificates by path. Contexts that
// use an authentication method other than a token or client certificate,
// that have no CA, or whose profile fails validation are skipped with a warning.
func ProfilesFromKubeconfig(kubeconfigPath, materialDir string, log Logger) (*config.Config, error) {
	if kubeconfigPath == "" {
		kubeconfigPath = DefaultKubeconfigPath()
	}

	raw, err := clientcmd.LoadFromFile(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig '%s': %w", kubeconfigPath, err)
	}
	if err := clientcmd.ResolveLocalPaths(raw); err != nil {
		return nil, fmt.Errorf("failed to resolve kubeconfig paths: %w", err)
	}

	names := make([]string, 0, len(raw.Contexts))
	for name := range raw.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	imported := &config.Config{}
	var skipped *multierror.Error
	for _, name := range names {
		profile, err := profileFromContext(raw, name, materialDir)
		if err == nil {
			err = config.ValidateProfile(profile)
		}
		if err != nil {
			log.Warningf("Skipping context '%s': %v", name, err)
			skipped = multierror.Append(skipped, fmt.Errorf("context '%s': %w", name, err))
			continue
		}
		log.Debugf("Imported context '%s' (%s)", name, profile.AuthMode())
		imported.Clusters = append(imported.Clusters, *profile)
		if name == raw.CurrentContext {
			imported.Current = name
		}
	}

	if len(imported.Clusters) == 0 {
		if err := skipped.ErrorOrNil(); err != nil {
			return nil, fmt.Errorf("no usable contexts in kubeconfig '%s': %w", kubeconfigPath, err)
		}
		return nil, fmt.Errorf("no usable contexts in kubeconfig '%s'", kubeconfigPath)
	}
	if err := config.Validate(imported); err != nil {
		return nil, err
	}
	return imported, nil
}

func profileFromContext(raw *clientcmdapi.Config, name, materialDir string) (*config.Profile, error) {
	kctx := raw.Contexts[name]
	cluster, ok := raw.Clusters[kctx.Cluster]
	if !ok {
		return nil, fmt.Errorf("cluster '%s' not defined", kctx.Cluster)
	}
	authInfo, ok := raw.AuthInfos[kctx.AuthInfo]
	if !ok {
		return nil, fmt.Errorf("user '%s' not defined", kctx.AuthInfo)
	}

	profile := &config.Profile{
		Name:      name,
		Server:    cluster.Server,
		Namespace: kctx.Namespace,
	}

	switch {
	case cluster.CertificateAuthority != "":
		profile.CertificateAuthority = cluster.CertificateAuthority
	case len(cluster.CertificateAuthorityData) > 0:
		path, err := writeMaterial(materialDir, kctx.Cluster+"-ca.pem", cluster.CertificateAuthorityData)
		if err != nil {
			return nil, err
		}
		profile.CertificateAuthority = path
	default:
		return nil, fmt.Errorf("cluster '%s' has no certificate authority", kctx.Cluster)
	}

	switch {
	case authInfo.Token != "":
		profile.Token = authInfo.Token
	case authInfo.TokenFile != "":
		// #nosec G304
		token, err := os.ReadFile(authInfo.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read token file: %w", err)
		}
		profile.Token = strings.TrimSpace(string(token))
	case authInfo.ClientCertificate != "" || len(authInfo.ClientCertificateData) > 0:
		certPath, err := materialPath(materialDir, kctx.AuthInfo+".crt", authInfo.ClientCertificate, authInfo.ClientCertificateData)
		if err != nil {
			return nil, err
		}
		keyPath, err := materialPath(materialDir, kctx.AuthInfo+".key", authInfo.ClientKey, authInfo.ClientKeyData)
		if err != nil {
			return nil, err
		}
		profile.ClientCertificate = certPath
		profile.ClientKey = keyPath
	default:
		return nil, fmt.Errorf("user '%s' has no token or client certificate", kctx.AuthInfo)
	}

	return profile, nil
}

// materialPath returns path when set, otherwise writes data to materialDir
func materialPath(materialDir, file, path string, data []byte) (string, error) {
	if path != "" {
		return path, nil
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%s not set", file)
	}
	return writeMaterial(materialDir, file, data)
}

func writeMaterial(materialDir, file string, data []byte) (string, error) {
	if err := os.MkdirAll(materialDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create directory '%s': %w", materialDir, err)
	}
	path := filepath.Join(materialDir, sanitizeFileName(file))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return path, nil
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// sanitizeFileName replaces path separators that appear in some cluster and
// user names. A short hash of the original name keeps names that sanitize
// alike, such as "a/b" and "a_b", in separate files.
func sanitizeFileName(name string) string {
	ext := filepath.Ext(name)
	sum := sha256.Sum256([]byte(name))
	return fileNameReplacer.Replace(strings.TrimSuffix(name, ext)) + "-" + hex.EncodeToString(sum[:4]) + ext
}
