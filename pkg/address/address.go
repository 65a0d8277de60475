/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package address provides syntax predicates for the network identifiers
// found in node mapping data: MAC-48 addresses, IPv4 addresses and host names.
//
// All functions are pure and safe for concurrent use.
package address

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	macLength      = 17 // six octets, five separators
	maxHostnameLen = 253
	maxLabelLen    = 63
)

var validate = validator.New()

// IsValidMAC reports whether s is six two-digit hexadecimal octets separated
// by colons or hyphens. Case is ignored; separators must not be mixed.
func IsValidMAC(s string) bool {
	if len(s) != macLength {
		return false
	}
	sep := s[2]
	if sep != ':' && sep != '-' {
		return false
	}
	for i := 0; i < macLength; i++ {
		if i%3 == 2 {
			if s[i] != sep {
				return false
			}
			continue
		}
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

// NormalizeMAC returns the canonical lower-case, colon-separated form of a
// valid MAC address. Invalid input is returned unchanged.
func NormalizeMAC(s string) string {
	if !IsValidMAC(s) {
		return s
	}
	return strings.ToLower(strings.ReplaceAll(s, "-", ":"))
}

// IsValidIPv4 reports whether s is four dot-separated decimal octets in
// [0,255]. Leading zeros are rejected except for the literal "0".
func IsValidIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if len(p) == 0 || len(p) > 3 {
			return false
		}
		if len(p) > 1 && p[0] == '0' {
			return false
		}
		n := 0
		for i := 0; i < len(p); i++ {
			c := p[i]
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

// IsValidHostname reports whether s is a valid RFC 1123 host name: dot
// separated labels of letters, digits and hyphens, each label 1-63
// characters, neither starting nor ending with a hyphen.
func IsValidHostname(s string) bool {
	if s == "" || len(s) > maxHostnameLen {
		return false
	}
	if err := validate.Var(s, "hostname_rfc1123"); err != nil {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if len(label) == 0 || len(label) > maxLabelLen {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
