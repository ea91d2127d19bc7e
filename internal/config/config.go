// Package config manages application configuration.
package config

import (
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Default paths, relative to the working directory.
const (
	DefaultSource = "contacts/Contract of Sale.docx"
	DefaultTarget = "contacts/Contract Template.docx"
	DefaultDump   = "contacts/contract_dump.txt"
)

// Environment variables that override the configuration file.
const (
	EnvSource = "CONTRACTTPL_SOURCE"
	EnvTarget = "CONTRACTTPL_TARGET"
	EnvDebug  = "CONTRACTTPL_DEBUG"
)

// Keys lists the keys accepted by Set.
var Keys = []string{
	"build.source",
	"build.target",
	"build.catalogue",
	"dump.source",
	"dump.output",
	"log.level",
}

// Config represents the application configuration.
type Config struct {
	Build BuildConfig `yaml:"build"`
	Dump  DumpConfig  `yaml:"dump"`
	Log   LogConfig   `yaml:"log"`
}

// BuildConfig holds the template build paths.
type BuildConfig struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	// Catalogue is a registered catalogue name or a YAML rule file. Empty
	// means the built-in dog-sale catalogue.
	Catalogue string `yaml:"catalogue"`
}

// DumpConfig holds the paragraph dump paths.
type DumpConfig struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

// LogConfig contains logging options.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Source: DefaultSource,
			Target: DefaultTarget,
		},
		Dump: DumpConfig{
			Source: DefaultSource,
			Output: DefaultDump,
		},
		Log: LogConfig{
			Level: zerolog.InfoLevel.String(),
		},
	}
}

// ApplyEnv overrides paths and log level from the environment.
func (c *Config) ApplyEnv() {
	if v := GetEnvOrDefault(EnvSource, ""); v != "" {
		c.Build.Source = v
		c.Dump.Source = v
	}
	if v := GetEnvOrDefault(EnvTarget, ""); v != "" {
		c.Build.Target = v
	}
	if GetEnvBool(EnvDebug) {
		c.Log.Level = zerolog.DebugLevel.String()
	}
}

// Set changes one configuration value by dotted key.
func (c *Config) Set(key, value string) error {
	if key == "log.level" {
		if _, err := zerolog.ParseLevel(value); err != nil || value == "" {
			return errors.Errorf("invalid log level: %s", value)
		}
	}
	if !c.assign(key, value) {
		return errors.Errorf("unknown config key: %s (supported: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

func (c *Config) assign(key, value string) bool {
	switch key {
	case "build.source":
		c.Build.Source = value
	case "build.target":
		c.Build.Target = value
	case "build.catalogue":
		c.Build.Catalogue = value
	case "dump.source":
		c.Dump.Source = value
	case "dump.output":
		c.Dump.Output = value
	case "log.level":
		c.Log.Level = value
	default:
		return false
	}
	return true
}

// Get returns one configuration value by dotted key.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "build.source":
		return c.Build.Source, true
	case "build.target":
		return c.Build.Target, true
	case "build.catalogue":
		return c.Build.Catalogue, true
	case "dump.source":
		return c.Dump.Source, true
	case "dump.output":
		return c.Dump.Output, true
	case "log.level":
		return c.Log.Level, true
	default:
		return "", false
	}
}

// overlay copies the non-empty values of other onto c.
func (c *Config) overlay(other *Config) {
	for _, key := range Keys {
		if v, _ := other.Get(key); v != "" {
			c.assign(key, v)
		}
	}
}
