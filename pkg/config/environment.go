// Package config persists the tool's named target environments.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the tool config directory under the user home.
const ConfigDirName = ".perfgate"

// Environment is one named dispatch target.
type Environment struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	// TokenEnv optionally names an environment variable holding the
	// credential for this environment, overriding the stored token.
	TokenEnv string `yaml:"token_env,omitempty"`
}

// Config holds the environment configurations.
type Config struct {
	Environments []Environment `yaml:"environments"`
	Selected     string        `yaml:"selected,omitempty"`
}

// Dir returns the tool config directory.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDirName), nil
}

// LoadEnvironments loads environment configurations from the default
// location.
func LoadEnvironments() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadEnvironmentsFromFile(filepath.Join(dir, "environments.yaml"))
}

// LoadEnvironmentsFromFile loads environment configurations from a
// specific file. A missing file yields the default configuration.
func LoadEnvironmentsFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

// SaveEnvironments saves the environment configuration.
func SaveEnvironments(config *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "environments.yaml"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Environments: []Environment{
			{
				Name: "Sandbox",
				URL:  "https://sandbox.example.com",
			},
			{
				Name: "Staging",
				URL:  "https://staging.example.com",
			},
		},
	}
}
