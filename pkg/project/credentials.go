/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"os"
	"strings"
)

// DefaultCredentialPrefix prefixes credential environment variables.
const DefaultCredentialPrefix = "PREFLIGHT_CREDENTIAL_"

// CredentialProvider supplies credentials by name. Only presence is ever
// checked; values are never inspected or logged.
type CredentialProvider interface {
	Has(name string) bool
}

// EnvCredentials reads credentials from environment variables named
// Prefix + upper-cased name, with '-' and '.' mapped to '_'.
type EnvCredentials struct {
	Prefix string
}

// NewEnvCredentials returns an EnvCredentials with the default prefix.
func NewEnvCredentials() *EnvCredentials {
	return &EnvCredentials{Prefix: DefaultCredentialPrefix}
}

// EnvName returns the environment variable that holds name.
func (c *EnvCredentials) EnvName(name string) string {
	key := strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToUpper(strings.TrimSpace(name)))
	return c.Prefix + key
}

// Has implements CredentialProvider.
func (c *EnvCredentials) Has(name string) bool {
	v, ok := os.LookupEnv(c.EnvName(name))
	return ok && v != ""
}

// StaticCredentials is an in-memory CredentialProvider.
type StaticCredentials map[string]string

// Has implements CredentialProvider.
func (c StaticCredentials) Has(name string) bool {
	return c[name] != ""
}
