/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide slog logger.
//
// Servers log JSON with name and version attributes attached to every record.
// The CLI logs text to stderr unless JSON is requested. The level comes from
// the LOG_LEVEL environment variable unless set explicitly.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted for the default level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name to a slog.Level. Unknown or empty names
// map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv returns the level named by LOG_LEVEL.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLogLevel))
}

// NewStructuredLogger returns a JSON logger that tags every record with the
// component name and version.
func NewStructuredLogger(w io.Writer, name, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("name", name, "version", version)
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the slog default.
func SetDefaultStructuredLogger(name, version string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, name, version, LevelFromEnv()))
}

// SetDefaultCLILogger installs a logger suitable for interactive use.
// debug forces the debug level; asJSON switches to the JSON handler.
func SetDefaultCLILogger(level slog.Level, asJSON bool) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if asJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
