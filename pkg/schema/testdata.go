// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

package schema

// NewSonicStyleCatalog returns a small catalog modeling PORT, ACL_TABLE,
// and LOOPBACK_INTERFACE tables, seeded with the same create-only paths
// the original test suite hard-codes
// (_examples/original_source/tests/generic_config_updater/patch_sorter_test.py,
// TestCreateOnlyMoveValidator.test_hard_coded_create_only_paths). It is
// exported for use by tests in other packages.
func NewSonicStyleCatalog() *Catalog {
	cat := NewCatalog()

	cat.AddTable(TableSchema{
		Name:               "PORT",
		RequiredFields:     []string{"lanes"},
		CreateOnlyPatterns: []string{"*/lanes"},
	})

	cat.AddTable(TableSchema{
		Name:           "ACL_TABLE",
		RequiredFields: []string{"type", "stage"},
		References: []ReferenceRule{
			{SourceField: "ports", TargetTable: "PORT"},
		},
	})

	cat.AddTable(TableSchema{
		Name:               "LOOPBACK_INTERFACE",
		CreateOnlyPatterns: []string{"*/vrf_name"},
	})

	return cat
}
