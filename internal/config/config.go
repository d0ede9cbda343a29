package config

import (
	"time"

	"github.com/mgpai22/cuetrack/internal/timeline"
)

// Config holds all cuetrack configuration options
type Config struct {
	Verbose bool `yaml:"verbose"` // Show debug logs

	Navigation NavigationConfig `yaml:"navigation"`
	Playback   PlaybackConfig   `yaml:"playback"`
	Translate  TranslateConfig  `yaml:"translate"`
}

// NavigationConfig holds the previous/next guard offsets
type NavigationConfig struct {
	PreviousGuard time.Duration `yaml:"previous_guard"` // e.g., "500ms"
	NextGuard     time.Duration `yaml:"next_guard"`     // e.g., "100ms"
}

// PlaybackConfig holds settings for the interactive player
type PlaybackConfig struct {
	Tick       time.Duration `yaml:"tick"`        // clock poll interval
	ListHeight int           `yaml:"list_height"` // caption rows shown
}

// TranslateConfig holds translation defaults
type TranslateConfig struct {
	Provider          string `yaml:"provider"`            // gemini, openai, anthropic
	Model             string `yaml:"model"`               // empty = provider default
	BatchSize         int    `yaml:"batch_size"`          // captions per request
	Concurrency       int    `yaml:"concurrency"`         // parallel requests
	RequestsPerMinute int    `yaml:"requests_per_minute"` // 0 = unlimited
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	guards := timeline.DefaultGuards()
	return &Config{
		Verbose: false,

		Navigation: NavigationConfig{
			PreviousGuard: guards.Previous,
			NextGuard:     guards.Next,
		},

		Playback: PlaybackConfig{
			Tick:       50 * time.Millisecond,
			ListHeight: 10,
		},

		Translate: TranslateConfig{
			Provider:          "gemini",
			Model:             "",
			BatchSize:         50,
			Concurrency:       3,
			RequestsPerMinute: 60,
		},
	}
}

// Guards converts the navigation settings for a timeline index
func (c *Config) Guards() timeline.Guards {
	return timeline.Guards{
		Previous: c.Navigation.PreviousGuard,
		Next:     c.Navigation.NextGuard,
	}
}

// ProviderValues returns valid translation providers
func ProviderValues() []string {
	return []string{"gemini", "openai", "anthropic"}
}

// IsValidProvider checks if provider is valid
func IsValidProvider(provider string) bool {
	for _, valid := range ProviderValues() {
		if provider == valid {
			return true
		}
	}
	return false
}
