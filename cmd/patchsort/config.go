// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexlovelltroy/patchsort/pkg/audit"
)

// ConfigFileName is the optional project config patchsort looks for in the
// current directory, mirroring the teacher's .fabrica.yaml convention.
const ConfigFileName = ".patchsort.yaml"

// DriverConfig is the on-disk configuration for the demonstration CLI: it
// never configures the sorter itself (which has no persisted state per
// spec.md §5), only this driver's defaults for algorithm choice, sort
// mode, and audit event publishing.
type DriverConfig struct {
	Algorithm string       `yaml:"algorithm"` // dfs, bfs, memoization
	Mode      string       `yaml:"mode"`      // strict, non-strict
	Audit     audit.Config `yaml:"audit"`
}

// DefaultDriverConfig mirrors the library's own defaults: DFS search,
// strict mode, audit events disabled.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		Algorithm: "dfs",
		Mode:      "strict",
		Audit:     audit.DefaultConfig(),
	}
}

// LoadDriverConfig reads ConfigFileName from the working directory,
// falling back to DefaultDriverConfig when the file does not exist.
func LoadDriverConfig() (DriverConfig, error) {
	cfg := DefaultDriverConfig()

	data, err := os.ReadFile(ConfigFileName)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}
