package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.Navigation.PreviousGuard < 0 {
		errors = append(errors, "previous guard cannot be negative")
	}
	if c.Navigation.NextGuard < 0 {
		errors = append(errors, "next guard cannot be negative")
	}

	if c.Playback.Tick <= 0 {
		errors = append(errors, "playback tick must be positive")
	}
	if c.Playback.ListHeight <= 0 {
		errors = append(errors, "playback list height must be positive")
	}

	if err := c.Translate.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("translate config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if translation configuration is valid
func (t *TranslateConfig) Validate() error {
	if !IsValidProvider(t.Provider) {
		return fmt.Errorf("invalid provider '%s', must be one of: %s",
			t.Provider, strings.Join(ProviderValues(), ", "))
	}
	if t.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", t.BatchSize)
	}
	if t.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", t.Concurrency)
	}
	if t.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute cannot be negative (use 0 for unlimited)")
	}
	return nil
}
