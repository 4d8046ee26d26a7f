package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/getlawrence/langreg/internal/languages"
	"gopkg.in/yaml.v3"
)

// Config represents the langreg configuration
type Config struct {
	// Scan settings
	Scan ScanConfig `json:"scan" yaml:"scan"`

	// Output settings
	Output OutputConfig `json:"output" yaml:"output"`

	// Manifests are extra language files, registered in order after the
	// built-ins. Relative paths resolve against the config file.
	Manifests []string `json:"manifests,omitempty" yaml:"manifests,omitempty"`

	// Languages are inline user registrations, applied after the manifests.
	Languages []languages.ManifestEntry `json:"languages,omitempty" yaml:"languages,omitempty"`

	// path is the file this config was loaded from, if any.
	path string
}

// ScanConfig contains directory scan settings
type ScanConfig struct {
	// Directory names to exclude from scans
	ExcludePaths []string `json:"exclude_paths" yaml:"exclude_paths"`

	// Maximum depth for directory traversal (0 = unlimited)
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// Number of files resolved concurrently
	Workers int `json:"workers" yaml:"workers"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	// Default output format (text, json, yaml)
	Format string `json:"format" yaml:"format"`

	// Whether to colorize output
	Color bool `json:"color" yaml:"color"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			ExcludePaths: []string{
				".git",
				"node_modules",
				"vendor",
				"__pycache__",
				".venv",
				"venv",
				"build",
				"dist",
				"target",
			},
			MaxDepth: 10,
			Workers:  4,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string { return c.path }

// Dir is the directory relative manifest and script paths resolve against.
func (c *Config) Dir() string {
	if c.path == "" {
		return ""
	}
	return filepath.Dir(c.path)
}

// ManifestPaths returns manifest paths resolved against the config file.
func (c *Config) ManifestPaths() []string {
	out := make([]string, 0, len(c.Manifests))
	for _, p := range c.Manifests {
		if !filepath.IsAbs(p) && c.Dir() != "" {
			p = filepath.Join(c.Dir(), p)
		}
		out = append(out, p)
	}
	return out
}

// LoadConfig loads configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If no config file specified, try to find one
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config file, return default
	if configPath == "" {
		return config, nil
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.path = configPath

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var configNames = []string{".langreg.yaml", ".langreg.yml"}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	// Current directory
	for _, candidate := range configNames {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Home directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, name := range configNames {
			candidate := filepath.Join(homeDir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	found := findConfigFile()
	if found != "" {
		return found
	}

	// Default location
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(homeDir, configNames[0])
	}

	return configNames[0]
}
