/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package manifest checks that the configuration artifacts a discovery run
// depends on are present, and that the software manifest parses.
//
// # Presence
//
// PresenceChecker looks for a fixed, ordered list of artifact file names
// under a project directory. It does not read file contents.
//
//	pc := manifest.NewPresenceChecker(manifest.OSFileSystem{})
//	report, findings := pc.Check("/opt/omnia/input/project_default")
//	if !report.AllPresent {
//	    // findings holds one MissingArtifact per absent file
//	}
//
// # Software manifest
//
// SoftwareValidator confirms that exactly one software manifest exists at the
// derived path and that it decodes to a mapping. A missing manifest yields
// MissingArtifact; a scalar, empty or undecodable one yields MalformedArtifact.
//
// Both checks reach the disk only through the FileSystem interface.
package manifest
