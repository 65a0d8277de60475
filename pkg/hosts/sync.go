/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package hosts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/NVIDIA/discovery-preflight/pkg/finding"
	"github.com/NVIDIA/discovery-preflight/pkg/mapping"
)

// Op names the store operation a SyncError came from.
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// SyncError reports a failed store read or write.
type SyncError struct {
	Op  Op
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("host table %s failed: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithBMCSuffix sets the suffix that forms BMC host names.
func WithBMCSuffix(suffix string) Option {
	return func(s *Synchronizer) {
		if suffix != "" {
			s.bmcSuffix = suffix
		}
	}
}

// Synchronizer merges mapping records into a Store. It is safe for
// concurrent use; the read-modify-write cycle runs under a mutex.
type Synchronizer struct {
	store     Store
	bmcSuffix string

	mu sync.Mutex
}

// NewSynchronizer returns a Synchronizer writing to store.
func NewSynchronizer(store Store, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:     store,
		bmcSuffix: DefaultBMCSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BMCSuffix returns the configured BMC host name suffix.
func (s *Synchronizer) BMCSuffix() string {
	return s.bmcSuffix
}

// SyncResult describes one synchronization.
type SyncResult struct {
	Entries   []Entry  `json:"entries" yaml:"entries"`
	Changes   []Change `json:"changes" yaml:"changes"`
	Replaced  int      `json:"replaced" yaml:"replaced"`
	Appended  int      `json:"appended" yaml:"appended"`
	Unchanged int      `json:"unchanged" yaml:"unchanged"`
	DryRun    bool     `json:"dryRun" yaml:"dryRun"`
	// Warnings flags addresses that other names in the table are also bound to.
	Warnings finding.List `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Changed reports whether the table content differs after the sync.
func (r *SyncResult) Changed() bool {
	return r.Replaced > 0 || r.Appended > 0
}

// Sync upserts the entries derived from records. With dryRun set the table is
// read and the changes computed but nothing is written. The table is not
// written when every entry is unchanged.
func (s *Synchronizer) Sync(ctx context.Context, records []mapping.Record, dryRun bool) (*SyncResult, error) {
	start := time.Now()
	defer func() {
		hostsSyncDuration.Observe(time.Since(start).Seconds())
	}()

	res := &SyncResult{
		Entries: EntriesFor(records, s.bmcSuffix),
		DryRun:  dryRun,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.store.Read(ctx)
	if err != nil {
		slog.Error("failed to read host table", slog.String("error", err.Error()))
		return nil, &SyncError{Op: OpRead, Err: err}
	}

	for _, e := range res.Entries {
		var ch Change
		lines, ch = Upsert(lines, e)
		res.Changes = append(res.Changes, ch)
		switch ch.Outcome {
		case OutcomeReplaced:
			res.Replaced++
		case OutcomeAppended:
			res.Appended++
		case OutcomeUnchanged:
			res.Unchanged++
		}
	}

	for _, e := range res.Entries {
		if others := conflicts(lines, e.Hostname, e.IPAddress); len(others) > 0 {
			res.Warnings = append(res.Warnings, finding.Finding{
				Kind:     finding.KindDuplicateKey,
				Severity: finding.SeverityWarning,
				Subject:  e.Hostname,
				Field:    "ipAddress",
				Detail: fmt.Sprintf("address %s is also bound to %s in the host table",
					e.IPAddress, strings.Join(others, ", ")),
			})
		}
	}

	if !dryRun && res.Changed() {
		if err := s.store.Write(ctx, lines); err != nil {
			slog.Error("failed to write host table", slog.String("error", err.Error()))
			return nil, &SyncError{Op: OpWrite, Err: err}
		}
	}

	if !dryRun {
		hostsEntriesUpserted.WithLabelValues(string(OutcomeReplaced)).Add(float64(res.Replaced))
		hostsEntriesUpserted.WithLabelValues(string(OutcomeAppended)).Add(float64(res.Appended))
		hostsEntriesUpserted.WithLabelValues(string(OutcomeUnchanged)).Add(float64(res.Unchanged))
	}

	slog.Debug("host table synchronized",
		"entries", len(res.Entries),
		"replaced", res.Replaced,
		"appended", res.Appended,
		"unchanged", res.Unchanged,
		"dryRun", dryRun)

	return res, nil
}
