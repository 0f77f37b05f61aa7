// Package config holds all penpal configuration, loaded from
// ~/.penpal/config.yaml. Values missing from the file keep their
// defaults; invalid values are coerced, never reported as errors.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDisplayName is the companion's name when none is configured.
	DefaultDisplayName = "Mira"

	// DefaultCommentProbability is the chance that a committed paragraph
	// draws an ambient comment.
	DefaultCommentProbability = 0.1

	// MinCommentProbability and MaxCommentProbability bound the valid range.
	MinCommentProbability = 0.01
	MaxCommentProbability = 1.0
)

// Config holds all penpal configuration.
type Config struct {
	// Companion behavior
	Companion CompanionConfig `yaml:"companion"`

	// Remote model configuration
	LLM LLMConfig `yaml:"llm"`

	// Transcript archive
	Archive ArchiveConfig `yaml:"archive"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// CompanionConfig configures the companion's ambient behavior.
type CompanionConfig struct {
	DisplayName        string  `yaml:"display_name"`
	GreetingEnabled    bool    `yaml:"greeting_enabled"`
	CommentProbability float64 `yaml:"comment_probability"`
	DebounceMS         int     `yaml:"debounce_ms"`
	DisplaySeconds     int     `yaml:"display_seconds"`
}

// LLMConfig configures the remote model.
type LLMConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// ArchiveConfig configures the sqlite archive for discarded transcripts.
type ArchiveConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Companion: CompanionConfig{
			DisplayName:        DefaultDisplayName,
			GreetingEnabled:    true,
			CommentProbability: DefaultCommentProbability,
			DebounceMS:         2000,
			DisplaySeconds:     20,
		},
		LLM: LLMConfig{
			Model:           "gemini-2.5-flash",
			Temperature:     0.8,
			MaxOutputTokens: 256,
		},
		Archive: ArchiveConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".penpal", "config.yaml")
	}
	return filepath.Join(home, ".penpal", "config.yaml")
}

// DefaultArchivePath returns the default transcript archive location.
func DefaultArchivePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".penpal", "transcripts.db")
	}
	return filepath.Join(home, ".penpal", "transcripts.db")
}

// Load reads configuration from the given path, overlaying the file's
// values onto the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			cfg.Normalize()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides lets environment variables override file values.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if level := os.Getenv("PENPAL_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Normalize coerces invalid values back to their defaults. The caller
// never sees an error for an out-of-range setting.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Companion.DisplayName) == "" {
		c.Companion.DisplayName = DefaultDisplayName
	}
	p := c.Companion.CommentProbability
	if math.IsNaN(p) || p < MinCommentProbability || p > MaxCommentProbability {
		c.Companion.CommentProbability = DefaultCommentProbability
	}
	if c.Companion.DebounceMS <= 0 {
		c.Companion.DebounceMS = 2000
	}
	if c.Companion.DisplaySeconds <= 0 {
		c.Companion.DisplaySeconds = 20
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.MaxOutputTokens <= 0 {
		c.LLM.MaxOutputTokens = 256
	}
	if c.Archive.Enabled && c.Archive.DatabasePath == "" {
		c.Archive.DatabasePath = DefaultArchivePath()
	}
}

// DebounceDelay returns the ambient-call debounce as a duration.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Companion.DebounceMS) * time.Millisecond
}

// DisplayDuration returns how long an ambient comment stays visible.
func (c *Config) DisplayDuration() time.Duration {
	return time.Duration(c.Companion.DisplaySeconds) * time.Second
}

// Validate checks settings that cannot be silently coerced.
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	return nil
}
