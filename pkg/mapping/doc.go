/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package mapping parses and validates the node mapping dataset: one row per
// physical node binding its functional group, service tag and host name to an
// administrative and a baseboard-management (BMC) MAC/IP pair.
//
// # Validation
//
// Validator.Validate runs four checks and collects every finding rather than
// stopping at the first:
//
//  1. Required fields: a row missing any field gets one MissingField finding
//     per absent field and takes no further part in validation.
//  2. Formats: MACs must be MAC-48, IPs dotted-quad IPv4, the host name an
//     RFC 1123 name. Each failure is an InvalidAddressFormat finding.
//  3. Uniqueness: among rows passing 1 and 2, service tag, host name, admin
//     MAC, BMC MAC, admin IP and BMC IP are each unique within their own
//     column. The first occurrence in input order is canonical; every later
//     colliding row gets a DuplicateKey finding.
//  4. Same-record collisions: adminIp == bmcIp or adminMac == bmcMac is a
//     DuplicateKey finding on that row.
//
// Rows with no findings become Records. The caller always receives both the
// accepted records and the complete finding list.
//
// MACs are compared in canonical form (lower case, colon separated); host
// names and service tags case-insensitively.
//
// # Input
//
// ParseCSV reads the PXE mapping CSV. Headers are matched case-insensitively
// with spaces and hyphens treated as underscores, so FUNCTIONAL_GROUP_NAME,
// "Service Tag" and admin-mac are all recognized. UTF-8 (with or without BOM),
// UTF-16 with BOM and Latin-1 input are accepted.
package mapping
