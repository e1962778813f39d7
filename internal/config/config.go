// Package config provides Viper-based configuration loading for the island
// authoring tools.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ContentConfig holds authoring content settings.
type ContentConfig struct {
	// BaseDir is the per-session base directory all script-supplied paths
	// resolve against.
	BaseDir string `mapstructure:"base_dir"`
	// EntryScript is the authoring script run at session start, relative to
	// BaseDir.
	EntryScript string `mapstructure:"entry_script"`
	// ScriptInstructionLimit caps Lua opcodes per execution. 0 = default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// MultiplayerConfig holds connection wizard settings.
type MultiplayerConfig struct {
	// Host is the bind address for the host listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the host listener.
	Port int `mapstructure:"port"`
	// EventBuffer is the capacity of the UI event channel.
	EventBuffer int `mapstructure:"event_buffer"`
}

// Addr returns the "host:port" listen address.
func (m MultiplayerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// Config is the top-level application configuration.
type Config struct {
	Content     ContentConfig     `mapstructure:"content"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Multiplayer MultiplayerConfig `mapstructure:"multiplayer"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateMultiplayer(c.Multiplayer); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.BaseDir == "" {
		errs = append(errs, "content.base_dir must not be empty")
	}
	if c.EntryScript == "" {
		errs = append(errs, "content.entry_script must not be empty")
	}
	if c.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit))
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

func validateMultiplayer(m MultiplayerConfig) error {
	var errs []string
	if m.Port < 0 || m.Port > 65535 {
		errs = append(errs, fmt.Sprintf("multiplayer.port must be 0-65535, got %d", m.Port))
	}
	if m.EventBuffer < 1 {
		errs = append(errs, fmt.Sprintf("multiplayer.event_buffer must be >= 1, got %d", m.EventBuffer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// Default returns the built-in defaults with environment variable overrides
// applied, for tools run without a config file.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	return LoadFromViper(newViper())
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

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with ISLAND_ prefix.
	v.SetEnvPrefix("ISLAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.base_dir", "content")
	v.SetDefault("content.entry_script", "island.lua")
	v.SetDefault("content.script_instruction_limit", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("multiplayer.host", "0.0.0.0")
	v.SetDefault("multiplayer.port", 8910)
	v.SetDefault("multiplayer.event_buffer", 10000)
}
