// Package config provides project-level configuration for prtrack.
// It supports loading configuration from .prtrack/config.yaml files with
// proper precedence: CLI flags > project config > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name for prtrack configuration
	ConfigDir = ".prtrack"
	// ConfigFile is the name of the configuration file
	ConfigFile = "config.yaml"
	// ConfigPath is the full path to the config file relative to project root
	ConfigPath = ConfigDir + "/" + ConfigFile
)

// ProjectConfig represents the project-level configuration for prtrack.
// It provides defaults that can be overridden by CLI flags.
type ProjectConfig struct {
	// Repo is the default repository in "owner/name" form
	Repo string `yaml:"repo,omitempty"`

	// Org is the default organization used to filter pull request authors
	Org string `yaml:"org,omitempty"`

	// StatusFile is the default path to the local ledger file
	StatusFile string `yaml:"status_file,omitempty"`
}

// Load loads the project configuration from the given directory.
// It searches for .prtrack/config.yaml in the directory and its parents.
//
// If no config file is found, it returns a zero config and nil error.
// If a config file is found but cannot be parsed, it returns an error.
func Load(dir string) (*ProjectConfig, error) {
	configPath, err := findConfigPath(dir)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		// No config file found, return zero config
		return &ProjectConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads the project configuration from the current working directory.
func LoadFromCurrentDir() (*ProjectConfig, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return Load(dir)
}

// findConfigPath searches for .prtrack/config.yaml in dir and its parent directories.
// It returns the full path to the config file, or empty string if not found.
func findConfigPath(dir string) (string, error) {
	// First, check if dir exists
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	// Search upward through directory tree
	for {
		configPath := filepath.Join(absDir, ConfigPath)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Move to parent directory
		parentDir := filepath.Dir(absDir)
		if parentDir == absDir {
			// Reached root without finding config
			return "", nil
		}
		absDir = parentDir
	}
}

// ResolveString returns the effective value for a string configuration field.
// Precedence: cliValue > configValue > defaultValue.
// Returns the effective value and its source ("cli", "config", or "default").
func (c *ProjectConfig) ResolveString(cliValue, configValue, defaultValue string) (string, string) {
	if cliValue != "" {
		return cliValue, "cli"
	}
	if configValue != "" {
		return configValue, "config"
	}
	return defaultValue, "default"
}

// ResolveRepo returns the effective repository and its source.
func (c *ProjectConfig) ResolveRepo(cliValue string) (string, string) {
	return c.ResolveString(cliValue, c.Repo, "")
}

// ResolveOrg returns the effective organization filter and its source.
func (c *ProjectConfig) ResolveOrg(cliValue string) (string, string) {
	return c.ResolveString(cliValue, c.Org, "")
}

// ResolveStatusFile returns the effective ledger path and its source.
func (c *ProjectConfig) ResolveStatusFile(cliValue, defaultValue string) (string, string) {
	return c.ResolveString(cliValue, c.StatusFile, defaultValue)
}
