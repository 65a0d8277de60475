/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"regexp"
	"strings"
)

// DefaultAPIVersion is served when the client does not ask for a
// supported version.
const DefaultAPIVersion = "v1"

const apiVersionHeader = "X-API-Version"

var (
	supportedAPIVersions = map[string]struct{}{
		"v1": {},
	}

	vendorMediaType = regexp.MustCompile(`application/vnd\.nvidia\.preflight\.(v[0-9]+)\+json`)
)

// negotiateAPIVersion reads the vendor media type from any Accept header,
// e.g. application/vnd.nvidia.preflight.v1+json.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaType.FindStringSubmatch(strings.Join(r.Header.Values("Accept"), ","))
	if len(m) != 2 || !isValidAPIVersion(m[1]) {
		return DefaultAPIVersion
	}
	return m[1]
}

func isValidAPIVersion(v string) bool {
	_, ok := supportedAPIVersions[v]
	return ok
}
