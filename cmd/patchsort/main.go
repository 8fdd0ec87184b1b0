// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Command patchsort is a demonstration/debug driver for the patch sorter
// library. It reads a current-config file, a JSON Patch file, and an
// optional schema catalog file from disk, runs a sort, and prints the
// resulting ordered sub-patches.
//
// spec.md §1 places "the top-level CLI" out of scope as an external
// collaborator — a production device-management tool that owns the
// running config is not part of this module. This command exists only
// for manual testing, mirroring the teacher's convention of shipping a
// cobra CLI (cmd/fabrica) alongside its library packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "patchsort",
		Short: "patchsort - order a JSON Patch into validated sub-patches",
		Long: `patchsort replays a JSON Patch against a current device configuration as
an ordered sequence of small, individually schema-valid sub-patches.

The CLI provides commands for:
  - Sorting a patch against a current config and schema catalog
  - Printing version information`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newSortCommand())
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("patchsort version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
		},
	}
}
