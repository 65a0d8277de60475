/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator runs the discovery preflight pipeline for a project
// directory.
//
// # Overview
//
// A run executes six phases in a fixed order, each reading and writing a
// per-run Context:
//
//  1. presence: the required configuration artifacts exist (and any
//     required credentials were supplied)
//  2. software-manifest: the software manifest exists and decodes to a mapping
//  3. mechanism: the discovery mechanism is one of mapping, bmc-scan or
//     switch-based, which decides whether a mapping file is required
//  4. mapping: the node mapping dataset is complete, well-formed and unique
//  5. hosts: accepted records are merged into the host resolution table
//  6. telemetry: enabled iDRAC telemetry and LDMS sections are valid
//
// Phases 4 and 5 are skipped unless the mechanism is mapping; phase 6 is
// skipped unless a telemetry feature is enabled.
//
// # States
//
// A run moves Pending -> Running -> Succeeded or Failed. After each phase,
// any error-severity finding moves the run to Failed and the remaining
// phases are reported as not-run. Warnings never halt a run.
//
// Within the mapping phase every row is checked and every finding kept;
// the run fails afterwards if any was recorded. The host table is written
// only when everything before it passed. Telemetry runs last, so a telemetry
// misconfiguration fails the run without undoing a committed host table.
//
// # Usage
//
//	v := validator.New(
//	    validator.WithVersion(version),
//	    validator.WithSynchronizer(hosts.NewSynchronizer(hosts.NewFileStore("/etc/hosts"))),
//	)
//	result, err := v.Run(ctx, "/opt/omnia/project")
//	if err != nil {
//	    return err
//	}
//	if !result.Succeeded() {
//	    for _, f := range result.Findings {
//	        fmt.Println(f)
//	    }
//	}
//
// RunAll validates several projects concurrently. Runs sharing a
// Synchronizer have their host table updates serialized.
package validator
