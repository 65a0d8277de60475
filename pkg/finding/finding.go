/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package finding defines the validation findings reported by every phase of
// the preflight pipeline.
//
// A Finding is immutable once created. Findings are accumulated in input order
// and returned to the caller in full; none are dropped.
package finding

import (
	"fmt"
)

// Kind classifies a finding.
type Kind string

const (
	KindMissingArtifact      Kind = "MissingArtifact"
	KindMalformedArtifact    Kind = "MalformedArtifact"
	KindInvalidConfiguration Kind = "InvalidConfiguration"
	KindMissingField         Kind = "MissingField"
	KindInvalidAddressFormat Kind = "InvalidAddressFormat"
	KindDuplicateKey         Kind = "DuplicateKey"
	KindStorageWriteFailure  Kind = "StorageWriteFailure"
	KindStorageReadFailure   Kind = "StorageReadFailure"
)

// Severity indicates whether a finding halts the pipeline.
type Severity string

const (
	// SeverityError findings are fatal.
	SeverityError Severity = "error"
	// SeverityWarning findings are surfaced but never halt the pipeline.
	SeverityWarning Severity = "warning"
)

// Finding is a single validation issue.
type Finding struct {
	Kind     Kind     `json:"kind" yaml:"kind"`
	Severity Severity `json:"severity" yaml:"severity"`
	// Subject is the affected artifact name or record identifier.
	Subject string `json:"subject" yaml:"subject"`
	// Field names the offending field, when the finding is field-scoped.
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
	Detail string `json:"detail" yaml:"detail"`
}

// New returns an error-severity finding.
func New(kind Kind, subject, detail string) Finding {
	return Finding{Kind: kind, Severity: SeverityError, Subject: subject, Detail: detail}
}

// Newf is New with a formatted detail.
func Newf(kind Kind, subject, format string, args ...any) Finding {
	return New(kind, subject, fmt.Sprintf(format, args...))
}

// ForField returns an error-severity finding scoped to a field.
func ForField(kind Kind, subject, field, detail string) Finding {
	return Finding{Kind: kind, Severity: SeverityError, Subject: subject, Field: field, Detail: detail}
}

// Warning returns a warning-severity finding.
func Warning(kind Kind, subject, detail string) Finding {
	return Finding{Kind: kind, Severity: SeverityWarning, Subject: subject, Detail: detail}
}

// Fatal reports whether the finding halts the pipeline.
func (f Finding) Fatal() bool {
	return f.Severity != SeverityWarning
}

// String renders the finding for logs and table output.
func (f Finding) String() string {
	if f.Field != "" {
		return fmt.Sprintf("%s %s[%s].%s: %s", f.Severity, f.Kind, f.Subject, f.Field, f.Detail)
	}
	return fmt.Sprintf("%s %s[%s]: %s", f.Severity, f.Kind, f.Subject, f.Detail)
}

// List is an ordered collection of findings.
type List []Finding

// HasFatal reports whether any finding in the list is fatal.
func (l List) HasFatal() bool {
	for _, f := range l {
		if f.Fatal() {
			return true
		}
	}
	return false
}

// Count returns the number of findings with the given severity.
func (l List) Count(s Severity) int {
	n := 0
	for _, f := range l {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// OfKind returns the findings of the given kind, in order.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, f := range l {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
