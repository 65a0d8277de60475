/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package hosts merges validated node mappings into a host-name resolution
// table.
//
// # Overview
//
// Each mapping record yields two entries: the node host name bound to its
// admin IP, and a BMC host name (host name plus a configurable suffix,
// "-bmc" by default) bound to its BMC IP.
//
// The table is an ordered list of Lines in /etc/hosts syntax. A line binds
// its first host name; further names on the line are aliases. Comment and
// blank lines are kept verbatim.
//
// # Upsert
//
// For each entry, the first line binding the same host name is replaced when
// its address differs and left untouched when it matches. Later lines
// binding the same name are dropped. Entries with no existing line are
// appended. Running Sync twice with the same records leaves the table
// byte-identical after the second run.
//
// # Stores
//
// Store abstracts the persistent table. FileStore edits an /etc/hosts style
// file with an atomic rename, SQLiteStore keeps the lines in a SQLite
// database, and MemoryStore is used for dry runs and tests.
//
// A Synchronizer serializes the read-modify-write cycle with a mutex so one
// Synchronizer can be shared by concurrent pipeline runs.
package hosts
