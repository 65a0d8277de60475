/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package telemetry validates the iDRAC telemetry and LDMS sub-configurations
// of a project's telemetry configuration.
//
// Validation runs only when at least one feature is enabled. Each enabled
// feature is checked independently and all violations are reported.
package telemetry

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"

	"github.com/NVIDIA/discovery-preflight/pkg/finding"
)

// ArtifactName is the artifact findings are reported against.
const ArtifactName = "telemetry_config.yml"

// Field names used in findings.
const (
	FieldIDRAC           = "idracTelemetry"
	FieldLDMS            = "ldms"
	FieldMetricsInterval = "metricsIntervalSeconds"
	FieldPort            = "port"
)

// maxKeyDistance bounds how far an unrecognized key may be from a known key
// to be reported as a likely typo.
const maxKeyDistance = 2

// knownKeys are the top-level keys read from the telemetry configuration.
var knownKeys = []string{"idrac_telemetry_support", "ldms_support", "idrac_telemetry", "ldms"}

// Config is the telemetry configuration.
type Config struct {
	IDRACTelemetrySupport bool         `json:"idracTelemetrySupport" yaml:"idrac_telemetry_support" mapstructure:"idrac_telemetry_support"`
	LDMSSupport           bool         `json:"ldmsSupport" yaml:"ldms_support" mapstructure:"ldms_support"`
	IDRAC                 *IDRACConfig `json:"idracTelemetry,omitempty" yaml:"idrac_telemetry,omitempty" mapstructure:"idrac_telemetry"`
	LDMS                  *LDMSConfig  `json:"ldms,omitempty" yaml:"ldms,omitempty" mapstructure:"ldms"`

	// Keys lists the top-level keys present in the source document, when known.
	Keys []string `json:"-" yaml:"-" mapstructure:"-"`
}

// IDRACConfig is the iDRAC telemetry sub-configuration.
//
// MetricsInterval holds the value as decoded from YAML. Only a YAML integer
// passes validation; floats, booleans and strings are reported.
type IDRACConfig struct {
	MetricsInterval any `json:"metricsIntervalSeconds" yaml:"metrics_interval" mapstructure:"metrics_interval" validate:"required,yamlint,gt=0"`
}

// LDMSConfig is the LDMS sub-configuration. Port is kept raw like
// IDRACConfig.MetricsInterval.
type LDMSConfig struct {
	Port any `json:"port" yaml:"port" mapstructure:"port" validate:"required,yamlint,min=1,max=65535"`
}

// FeatureFlags are derived once from a Config.
type FeatureFlags struct {
	IDRACTelemetryEnabled bool `json:"idracTelemetryEnabled" yaml:"idracTelemetryEnabled"`
	LDMSEnabled           bool `json:"ldmsEnabled" yaml:"ldmsEnabled"`
}

// Any reports whether any telemetry feature is enabled.
func (f FeatureFlags) Any() bool {
	return f.IDRACTelemetryEnabled || f.LDMSEnabled
}

// Flags derives the feature flags of cfg. A nil Config enables nothing.
func Flags(cfg *Config) FeatureFlags {
	if cfg == nil {
		return FeatureFlags{}
	}
	return FeatureFlags{
		IDRACTelemetryEnabled: cfg.IDRACTelemetrySupport,
		LDMSEnabled:           cfg.LDMSSupport,
	}
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("yamlint", isInteger)
	return v
}

// isInteger accepts only integer kinds, so a weakly typed decode can never
// turn 1.5, true or "30" into a valid number.
func isInteger(fl validator.FieldLevel) bool {
	return isIntegerKind(fl.Field().Kind())
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// Validate checks the sub-configurations enabled by flags. It returns no
// findings when no feature is enabled.
func Validate(cfg *Config, flags FeatureFlags) finding.List {
	if !flags.Any() {
		return nil
	}
	if cfg == nil {
		cfg = &Config{}
	}

	var out finding.List
	if flags.IDRACTelemetryEnabled {
		out = append(out, validateSection(FieldIDRAC, "idrac_telemetry", cfg.IDRAC)...)
	}
	if flags.LDMSEnabled {
		out = append(out, validateSection(FieldLDMS, "ldms", cfg.LDMS)...)
	}

	slog.Debug("telemetry configuration validated",
		"idrac", flags.IDRACTelemetryEnabled,
		"ldms", flags.LDMSEnabled,
		"findings", len(out))

	return out
}

func validateSection(field, key string, section any) finding.List {
	if reflect.ValueOf(section).IsNil() {
		return finding.List{finding.ForField(finding.KindInvalidConfiguration, ArtifactName, field,
			fmt.Sprintf("%s is enabled but the %s section is missing", field, key))}
	}

	err := validate.Struct(section)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return finding.List{finding.ForField(finding.KindInvalidConfiguration, ArtifactName, field, err.Error())}
	}

	out := make(finding.List, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, finding.ForField(finding.KindInvalidConfiguration, ArtifactName, fe.Field(), describe(fe)))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		// A present zero value (0, false, "") also trips required.
		if fe.Value() == nil {
			return fmt.Sprintf("%s is required", fe.Field())
		}
		if !isIntegerKind(fe.Kind()) {
			return notInteger(fe)
		}
		return outOfRange(fe)
	case "yamlint":
		return notInteger(fe)
	case "gt", "min", "max":
		return outOfRange(fe)
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func notInteger(fe validator.FieldError) string {
	return fmt.Sprintf("%s must be an integer, got %v (%T)", fe.Field(), fe.Value(), fe.Value())
}

func outOfRange(fe validator.FieldError) string {
	if fe.Field() == FieldPort {
		return fmt.Sprintf("%s must be between 1 and 65535, got %v", fe.Field(), fe.Value())
	}
	return fmt.Sprintf("%s must be a positive integer, got %v", fe.Field(), fe.Value())
}

// CheckKeys returns warnings for top-level keys that look like misspellings
// of a known key.
func CheckKeys(keys []string) finding.List {
	var out finding.List
	for _, k := range keys {
		k = strings.ToLower(k)
		if isKnown(k) {
			continue
		}
		best, bestDist := "", maxKeyDistance+1
		for _, known := range knownKeys {
			if d := levenshtein.ComputeDistance(k, known); d < bestDist {
				best, bestDist = known, d
			}
		}
		if best != "" {
			out = append(out, finding.Warning(finding.KindInvalidConfiguration, ArtifactName,
				fmt.Sprintf("unrecognized key %q (did you mean %q?)", k, best)))
		}
	}
	return out
}

func isKnown(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}
