// Package config loads the concord configuration via viper: a YAML file
// under the user config directory, overridable by CONCORD_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/concordapp/concord/internal/advice"
	"github.com/concordapp/concord/internal/negotiation"
)

// Config is the complete concord configuration.
type Config struct {
	Paths        PathsConfig        `mapstructure:"paths"`
	Participants ParticipantsConfig `mapstructure:"participants"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// PathsConfig controls where state lives on disk.
type PathsConfig struct {
	// DataDir holds the session store and logs.
	DataDir string `mapstructure:"data_dir"`
	// ExportDir is where calendar and CSV artifacts are written.
	ExportDir string `mapstructure:"export_dir"`
}

// ParticipantConfig describes one of the two fixed participants.
type ParticipantConfig struct {
	Name string `mapstructure:"name"`
	// PrimaryDisposition and SecondaryDisposition feed the tip advisory.
	PrimaryDisposition   string `mapstructure:"primary_disposition"`
	SecondaryDisposition string `mapstructure:"secondary_disposition"`
}

// ParticipantsConfig holds the fixed pair.
type ParticipantsConfig struct {
	One ParticipantConfig `mapstructure:"one"`
	Two ParticipantConfig `mapstructure:"two"`
}

// LoggingConfig controls the structured log output.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level"`
}

// ConfigDir returns the directory concord reads its config file from.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "concord")
}

// SetDefaults registers default values so the app works without a config
// file.
func SetDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("paths.data_dir", filepath.Join(home, ".local", "share", "concord"))
	viper.SetDefault("paths.export_dir", filepath.Join(home, ".local", "share", "concord", "exports"))
	viper.SetDefault("participants.one.name", "p1")
	viper.SetDefault("participants.one.primary_disposition", string(advice.DispositionSteady))
	viper.SetDefault("participants.one.secondary_disposition", string(advice.DispositionSteady))
	viper.SetDefault("participants.two.name", "p2")
	viper.SetDefault("participants.two.primary_disposition", string(advice.DispositionSteady))
	viper.SetDefault("participants.two.secondary_disposition", string(advice.DispositionSteady))
	viper.SetDefault("logging.level", "INFO")
}

// Load unmarshals and validates the configuration from viper's current
// state.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	one := strings.TrimSpace(c.Participants.One.Name)
	two := strings.TrimSpace(c.Participants.Two.Name)
	if one == "" || two == "" {
		return fmt.Errorf("both participant names are required")
	}
	if one == two {
		return fmt.Errorf("participant names must differ, both are %q", one)
	}
	for _, p := range []ParticipantConfig{c.Participants.One, c.Participants.Two} {
		for _, d := range []string{p.PrimaryDisposition, p.SecondaryDisposition} {
			if d != "" && !advice.Valid(advice.Disposition(d)) {
				return fmt.Errorf("unknown disposition %q for participant %s", d, p.Name)
			}
		}
	}
	return nil
}

// Pair returns the two configured participants.
func (c *Config) Pair() (negotiation.Participant, negotiation.Participant) {
	return negotiation.Participant(strings.TrimSpace(c.Participants.One.Name)),
		negotiation.Participant(strings.TrimSpace(c.Participants.Two.Name))
}

// Participant resolves a name to the matching participant config.
func (c *Config) Participant(name string) (ParticipantConfig, bool) {
	name = strings.TrimSpace(name)
	switch name {
	case strings.TrimSpace(c.Participants.One.Name):
		return c.Participants.One, true
	case strings.TrimSpace(c.Participants.Two.Name):
		return c.Participants.Two, true
	}
	return ParticipantConfig{}, false
}

// Other returns the participant opposite the given name.
func (c *Config) Other(name string) (negotiation.Participant, bool) {
	one, two := c.Pair()
	switch negotiation.Participant(strings.TrimSpace(name)) {
	case one:
		return two, true
	case two:
		return one, true
	}
	return "", false
}
