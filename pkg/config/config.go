/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads preflight tool settings.
//
// Settings are resolved in order: defaults, an optional YAML file, then
// environment variables prefixed with PREFLIGHT_ (nested keys joined with
// underscores, e.g. PREFLIGHT_HOSTS_BACKEND). Command-line flags are applied
// by the caller on top of the loaded Config.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PREFLIGHT"

// Config holds the tool settings.
type Config struct {
	Hosts      HostsConfig      `mapstructure:"hosts"`
	Project    ProjectConfig    `mapstructure:"project"`
	Validation ValidationConfig `mapstructure:"validation"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// HostsConfig selects the host resolution table.
type HostsConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=file sqlite memory"`
	Path      string `mapstructure:"path" validate:"required_unless=Backend memory"`
	BMCSuffix string `mapstructure:"bmc_suffix" validate:"required"`
}

// ProjectConfig holds artifact naming defaults.
type ProjectConfig struct {
	SoftwareManifest string   `mapstructure:"software_manifest" validate:"required"`
	MappingFile      string   `mapstructure:"mapping_file" validate:"required"`
	Credentials      []string `mapstructure:"credentials"`
}

// ValidationConfig controls pipeline execution.
type ValidationConfig struct {
	Concurrency int  `mapstructure:"concurrency" validate:"min=1,max=64"`
	DryRun      bool `mapstructure:"dry_run"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	RateLimit       float64       `mapstructure:"rate_limit" validate:"gt=0"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst" validate:"min=1"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures the default logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hosts.backend", "file")
	v.SetDefault("hosts.path", defaults.HostsPath)
	v.SetDefault("hosts.bmc_suffix", defaults.BMCSuffix)

	v.SetDefault("project.software_manifest", defaults.SoftwareManifest)
	v.SetDefault("project.mapping_file", defaults.MappingFile)
	v.SetDefault("project.credentials", []string{})

	v.SetDefault("validation.concurrency", defaults.Concurrency)
	v.SetDefault("validation.dry_run", false)

	v.SetDefault("server.address", "")
	v.SetDefault("server.port", defaults.ServerPort)
	v.SetDefault("server.rate_limit", defaults.ServerRateLimit)
	v.SetDefault("server.rate_limit_burst", defaults.ServerRateLimitBurst)
	v.SetDefault("server.read_timeout", defaults.ServerReadTimeout)
	v.SetDefault("server.write_timeout", defaults.ServerWriteTimeout)
	v.SetDefault("server.idle_timeout", defaults.ServerIdleTimeout)
	v.SetDefault("server.shutdown_timeout", defaults.ServerShutdownTimeout)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Default returns the defaults without reading any file or environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// defaults always decode
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load resolves settings. An empty cfgFile searches ./preflight.yaml,
// $HOME/.preflight/ and /etc/preflight/; a missing file there is not an
// error. An explicitly named file must exist.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("preflight")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.preflight")
		v.AddConfigPath("/etc/preflight")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	return validate.Struct(c)
}
