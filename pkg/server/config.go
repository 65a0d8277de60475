/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/discovery-preflight/pkg/config"
	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
)

// Config holds server configuration.
type Config struct {
	Address string
	Port    int

	// RateLimit and RateLimitBurst size the token bucket kept per client
	// address.
	RateLimit      rate.Limit
	RateLimitBurst int

	// MaxBodyBytes caps API request bodies.
	MaxBodyBytes int64

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         "",
		Port:            defaults.ServerPort,
		RateLimit:       defaults.ServerRateLimit,
		RateLimitBurst:  defaults.ServerRateLimitBurst,
		MaxBodyBytes:    defaults.ServerMaxBodyBytes,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	return cfg
}

// FromSettings builds a Config from loaded tool settings. Zero values keep
// the defaults.
func FromSettings(s config.ServerConfig) *Config {
	cfg := DefaultConfig()
	cfg.Address = s.Address
	if s.Port > 0 {
		cfg.Port = s.Port
	}
	if s.RateLimit > 0 {
		cfg.RateLimit = rate.Limit(s.RateLimit)
	}
	if s.RateLimitBurst > 0 {
		cfg.RateLimitBurst = s.RateLimitBurst
	}
	if s.ReadTimeout > 0 {
		cfg.ReadTimeout = s.ReadTimeout
	}
	if s.WriteTimeout > 0 {
		cfg.WriteTimeout = s.WriteTimeout
	}
	if s.IdleTimeout > 0 {
		cfg.IdleTimeout = s.IdleTimeout
	}
	if s.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = s.ShutdownTimeout
	}
	return cfg
}
