/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package project loads the configuration objects a preflight run consumes
// from a project directory: the provisioning settings (discovery mechanism
// and mapping file location), the node mapping dataset, and the telemetry
// configuration. It also supplies named credentials.
//
// FileLoader reads each YAML artifact with its own viper instance and decodes
// it with mapstructure tags. The mapping file is read with mapping.ParseFile.
package project
