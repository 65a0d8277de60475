/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package header provides the Kubernetes-style envelope (kind, apiVersion,
// metadata) carried by every document the preflight tool emits.
package header

import (
	"time"
)

const (
	// APIVersion is the schema version of emitted documents.
	APIVersion = "preflight.nvidia.com/v1alpha1"

	// MetadataTimestamp records when the document was produced.
	MetadataTimestamp = "timestamp"

	// MetadataVersion records the tool version that produced the document.
	MetadataVersion = "version"
)

// Kind identifies the type of an emitted document.
type Kind string

const (
	KindValidationResult Kind = "ValidationResult"
	KindMappingReport    Kind = "MappingReport"
	KindHostsPlan        Kind = "HostsPlan"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// New creates a Header with the default APIVersion and the given options.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: APIVersion,
		Metadata:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header contains type and provenance information for a document.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind, APIVersion, tool version and a UTC timestamp, replacing any
// existing metadata.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}
