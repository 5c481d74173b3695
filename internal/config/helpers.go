package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Pass-The-Butter/willow/internal/types"
)

// DefaultHomeDir returns ~/.willow, or a directory under the temp dir when the
// user home cannot be determined.
func DefaultHomeDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".willow")
	}
	return filepath.Join(userHome, ".willow")
}

// DefaultConfigPath returns the default config file path for a given home directory
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}

// WriteFile writes cfg as YAML, creating parent directories. The file holds
// credentials, so it is created with owner-only permissions.
func WriteFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return types.WrapError(types.CONFIG_LOAD_FAILED, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return types.WrapError(types.CONFIG_PARSE_FAILED, "failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return types.WrapError(types.CONFIG_LOAD_FAILED, "failed to write config file", err)
	}
	return nil
}
