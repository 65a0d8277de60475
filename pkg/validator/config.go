/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"io"

	"github.com/NVIDIA/discovery-preflight/pkg/config"
	"github.com/NVIDIA/discovery-preflight/pkg/hosts"
	"github.com/NVIDIA/discovery-preflight/pkg/project"
)

// OpenSynchronizer opens the host table selected by cfg. The returned
// close func releases the backing store and is never nil.
func OpenSynchronizer(cfg config.HostsConfig) (*hosts.Synchronizer, func() error, error) {
	store, err := hosts.NewStore(hosts.Backend(cfg.Backend), cfg.Path)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() error { return nil }
	if c, ok := store.(io.Closer); ok {
		closeFn = c.Close
	}

	return hosts.NewSynchronizer(store, hosts.WithBMCSuffix(cfg.BMCSuffix)), closeFn, nil
}

// OptionsFromConfig translates tool settings into validator options. The
// host table is not opened here; pass WithSynchronizer separately.
func OptionsFromConfig(cfg *config.Config) []Option {
	loader := project.NewFileLoader()
	if cfg.Project.MappingFile != "" {
		loader.MappingFile = cfg.Project.MappingFile
	}

	return []Option{
		WithSoftwareManifest(cfg.Project.SoftwareManifest),
		WithLoader(loader),
		WithCredentials(project.NewEnvCredentials(), cfg.Project.Credentials...),
		WithDryRun(cfg.Validation.DryRun),
		WithConcurrency(cfg.Validation.Concurrency),
	}
}
