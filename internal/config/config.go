// Package config provides configuration loading and structs for the QuoteDeck server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Transcription modes. Inline completes the simulated transcription in the
// upload call itself; deferred creates the transcript after a short delay on
// a background goroutine.
const (
	ModeInline   = "inline"
	ModeDeferred = "deferred"
)

// Config holds all configuration for the application.
type Config struct {
	Debug         bool                `yaml:"debug"`
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TranscriptionConfig holds simulated transcription settings.
type TranscriptionConfig struct {
	Mode    string `yaml:"mode"`
	DelayMS int    `yaml:"delay_ms"`
}

// Delay returns the configured deferred-completion delay.
func (t TranscriptionConfig) Delay() time.Duration {
	return time.Duration(t.DelayMS) * time.Millisecond
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no sensible fallback.
func Validate(cfg *Config) error {
	switch cfg.Transcription.Mode {
	case ModeInline, ModeDeferred:
		return nil
	default:
		return fmt.Errorf("transcription.mode must be %q or %q, got %q", ModeInline, ModeDeferred, cfg.Transcription.Mode)
	}
}
