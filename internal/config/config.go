// Package config provides configuration management for the kluster CLI.
// Cluster profiles are loaded from a YAML file and merged with an optional
// credentials file, so tokens can live apart from the rest of the profile.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stackvista/kluster-cli/internal/kube"
)

const (
	defaultDir             = ".kluster"
	defaultConfigFile      = "config.yaml"
	defaultCredentialsFile = "credentials.yaml"
)

// Config represents the merged profile and credentials files
type Config struct {
	Current  string    `yaml:"current"`
	Clusters []Profile `yaml:"clusters" validate:"required,min=1,unique=Name,dive"`
}

// Profile describes how to reach and authenticate with one cluster.
// Exactly one of Token or ClientCertificate/ClientKey must be set.
type Profile struct {
	Name                 string `yaml:"name" validate:"required"`
	Server               string `yaml:"server" validate:"required,url"`
	CertificateAuthority string `yaml:"certificateAuthority" validate:"required"`
	Namespace            string `yaml:"namespace,omitempty"`
	Token                string `yaml:"token,omitempty" validate:"required_without=ClientCertificate,excluded_with=ClientCertificate"`
	ClientCertificate    string `yaml:"clientCertificate,omitempty" validate:"required_with=ClientKey"`
	ClientKey            string `yaml:"clientKey,omitempty" validate:"required_with=ClientCertificate"`
}

// Credential loads the credential the profile authenticates with
func (p *Profile) Credential() (kube.Credential, error) {
	if p.Token != "" {
		return kube.WithToken(p.Token), nil
	}
	return kube.LoadCertAndKey(p.ClientCertificate, p.ClientKey)
}

// AuthMode returns a short description of the profile's credential
func (p *Profile) AuthMode() string {
	if p.Token != "" {
		return "token"
	}
	return "client-certificate"
}

// Profile returns the named profile, or the current one when name is empty.
// A config with a single cluster and no current entry selects that cluster.
func (c *Config) Profile(name string) (*Profile, error) {
	if name == "" {
		name = c.Current
	}
	if name == "" {
		if len(c.Clusters) == 1 {
			return &c.Clusters[0], nil
		}
		return nil, fmt.Errorf("no cluster selected and no current cluster configured")
	}
	for i := range c.Clusters {
		if c.Clusters[i].Name == name {
			return &c.Clusters[i], nil
		}
	}
	return nil, fmt.Errorf("cluster '%s' not found in configuration", name)
}

// Warner receives non-fatal configuration problems
type Warner interface {
	Warningf(format string, args ...interface{})
}

// LoadConfig loads the profile file and merges the credentials file over it.
// Credentials entries override non-empty fields of the profile with the same name.
// A missing credentials file is not an error. Relative paths in either file
// are resolved against the directory of the file they appear in.
// All required fields must be present after merging, validated with validator.
func LoadConfig(configPath, credentialsPath string, log Warner) (*Config, error) {
	config, err := readFile(configPath)
	if err != nil {
		return nil, err
	}

	if credentialsPath != "" {
		creds, err := readFile(credentialsPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Warningf("Credentials file '%s' not found, using profiles only", credentialsPath)
		case err != nil:
			return nil, err
		default:
			if err := mergeCredentials(config, creds); err != nil {
				return nil, err
			}
		}
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks every profile in the configuration
func Validate(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if config.Current != "" {
		if _, err := config.Profile(config.Current); err != nil {
			return fmt.Errorf("configuration validation failed: current %w", err)
		}
	}
	return nil
}

// ValidateProfile checks a single profile against the same rules as Validate
func ValidateProfile(profile *Profile) error {
	if err := validator.New().Struct(profile); err != nil {
		return fmt.Errorf("profile '%s' is invalid: %w", profile.Name, err)
	}
	return nil
}

func readFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range config.Clusters {
		p := &config.Clusters[i]
		p.CertificateAuthority = resolvePath(dir, p.CertificateAuthority)
		p.ClientCertificate = resolvePath(dir, p.ClientCertificate)
		p.ClientKey = resolvePath(dir, p.ClientKey)
	}
	return config, nil
}

// mergeCredentials merges each credentials profile into the profile of the same name
func mergeCredentials(config, creds *Config) error {
	for _, cred := range creds.Clusters {
		target, err := config.Profile(cred.Name)
		if err != nil || cred.Name == "" {
			return fmt.Errorf("credentials given for unknown cluster '%s'", cred.Name)
		}
		// a token replaces a certificate pair and vice versa
		if cred.Token != "" {
			target.ClientCertificate, target.ClientKey = "", ""
		}
		if cred.ClientCertificate != "" {
			target.Token = ""
		}
		if err := mergo.Merge(target, cred, mergo.WithOverride); err != nil {
			return fmt.Errorf("failed to merge credentials for '%s': %w", cred.Name, err)
		}
	}
	if creds.Current != "" {
		config.Current = creds.Current
	}
	return nil
}

// resolvePath expands a leading ~ and makes relative paths relative to dir
func resolvePath(dir, path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// DefaultConfigPath returns ~/.kluster/config.yaml
func DefaultConfigPath() string {
	return defaultPath(defaultConfigFile)
}

// DefaultCredentialsPath returns ~/.kluster/credentials.yaml
func DefaultCredentialsPath() string {
	return defaultPath(defaultCredentialsFile)
}

func defaultPath(file string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(defaultDir, file)
	}
	return filepath.Join(home, defaultDir, file)
}

type Context struct {
	Config *CLIConfig
}

type CLIConfig struct {
	ConfigPath      string
	CredentialsPath string
	Kubeconfig      string
	Cluster         string
	Namespace       string
	Debug           bool
	Quiet           bool
	OutputFormat    string // table, json, yaml
}

func NewContext() *Context {
	return &Context{
		Config: &CLIConfig{},
	}
}
