// Package config provides Viper-based configuration loading for the combat
// simulator tooling.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimulationConfig holds the default simulation parameters. Callers may
// override rounds and seed per run.
type SimulationConfig struct {
	// Rounds is the default number of combat rounds. Must be >= 1.
	Rounds int `mapstructure:"rounds"`
	// Seed is the default random seed.
	Seed uint64 `mapstructure:"seed"`
	// TraceMode is the default trace collection mode: "off" or "events".
	TraceMode string `mapstructure:"trace_mode"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing
// all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Rounds < 1 {
		errs = append(errs, fmt.Sprintf("simulation.rounds must be >= 1, got %d", s.Rounds))
	}
	validModes := map[string]bool{"off": true, "events": true}
	if !validModes[s.TraceMode] {
		errs = append(errs, fmt.Sprintf("simulation.trace_mode must be one of [off, events], got %q", s.TraceMode))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with KOBAYASHI_ prefix
	v.SetEnvPrefix("KOBAYASHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.rounds", 3)
	v.SetDefault("simulation.seed", 7)
	v.SetDefault("simulation.trace_mode", "off")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
