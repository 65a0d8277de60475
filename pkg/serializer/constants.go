/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

const (
	// StdoutURI is the special path indicating output should be written to stdout.
	StdoutURI = "-"

	// tableEmpty is printed by the table writer when there is nothing to show.
	tableEmpty = "<empty>"
)
