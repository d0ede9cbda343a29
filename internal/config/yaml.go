package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile loads configuration from a YAML file on top of defaults
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for config file in standard locations
// Returns empty string if not found (non-fatal)
func FindConfigFile() string {
	locations := []string{
		"./cuetrack.yaml",
		"./cuetrack.yml",
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		locations = append(locations,
			filepath.Join(dir, "cuetrack", "config.yaml"),
			filepath.Join(dir, "cuetrack", "config.yml"),
		)
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves configuration to a YAML file
func SaveConfigFile(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load resolves configuration: explicit path, else a discovered file, else
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FindConfigFile()
	}

	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg = fileCfg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
