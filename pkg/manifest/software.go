/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/discovery-preflight/pkg/defaults"
	apperrors "github.com/NVIDIA/discovery-preflight/pkg/errors"
	"github.com/NVIDIA/discovery-preflight/pkg/finding"
)

// DefaultSoftwareManifest is the software manifest file name.
const DefaultSoftwareManifest = defaults.SoftwareManifest

var manifestExtensions = []string{".json", ".yml", ".yaml"}

// SoftwareValidator checks the project's software manifest.
type SoftwareValidator struct {
	FS FileSystem
	// Name is the manifest file name. Without an extension, each of .json,
	// .yml and .yaml is tried and exactly one must exist.
	Name string
}

// NewSoftwareValidator returns a validator for DefaultSoftwareManifest.
func NewSoftwareValidator(fsys FileSystem) *SoftwareValidator {
	return &SoftwareValidator{FS: fsys, Name: DefaultSoftwareManifest}
}

func (v *SoftwareValidator) name() string {
	if v.Name == "" {
		return DefaultSoftwareManifest
	}
	return v.Name
}

// Validate locates and decodes the manifest under dir. On success it returns
// the decoded top-level mapping and no findings.
func (v *SoftwareValidator) Validate(dir string) (map[string]any, finding.List) {
	name := v.name()

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range manifestExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	var found []string
	for _, c := range candidates {
		if v.FS.Exists(filepath.Join(dir, c)) {
			found = append(found, c)
		}
	}

	switch len(found) {
	case 0:
		return nil, finding.List{finding.Newf(finding.KindMissingArtifact, name,
			"software manifest %q not found in %s", name, dir)}
	case 1:
	default:
		return nil, finding.List{finding.Newf(finding.KindMalformedArtifact, name,
			"expected exactly one software manifest, found %s", strings.Join(found, ", "))}
	}

	path := filepath.Join(dir, found[0])
	doc, err := v.FS.ReadStructured(path)
	if err != nil {
		kind := finding.KindMalformedArtifact
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			kind = finding.KindMissingArtifact
		}
		return nil, finding.List{finding.New(kind, found[0], err.Error())}
	}

	m, ok := asMapping(doc)
	if !ok {
		return nil, finding.List{finding.New(finding.KindMalformedArtifact, found[0],
			fmt.Sprintf("software manifest must be a mapping, got %T", doc))}
	}
	return m, nil
}

// asMapping accepts both decoder map shapes.
func asMapping(doc any) (map[string]any, bool) {
	switch t := doc.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}
		return m, true
	default:
		return nil, false
	}
}
