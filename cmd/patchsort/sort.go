// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/spf13/cobra"

	"github.com/alexlovelltroy/patchsort/pkg/audit"
	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
	"github.com/alexlovelltroy/patchsort/pkg/patchsorter"
	"github.com/alexlovelltroy/patchsort/pkg/policy"
	"github.com/alexlovelltroy/patchsort/pkg/schema"
	"github.com/alexlovelltroy/patchsort/pkg/sortalgo"
)

func newSortCommand() *cobra.Command {
	var (
		currentPath string
		patchPath   string
		catalogPath string
		algorithm   string
		mode        string
		subjectID   string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Order a JSON Patch into validated, individually-applicable sub-patches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadDriverConfig()
			if err != nil {
				return err
			}
			if algorithm != "" {
				cfg.Algorithm = algorithm
			}
			if mode != "" {
				cfg.Mode = mode
			}

			current, err := readConfig(currentPath)
			if err != nil {
				return fmt.Errorf("reading current config: %w", err)
			}

			patch, err := readPatch(patchPath)
			if err != nil {
				return fmt.Errorf("reading patch: %w", err)
			}

			oracle, err := readOracle(catalogPath)
			if err != nil {
				return fmt.Errorf("reading schema catalog: %w", err)
			}

			alg := sortalgo.Algorithm(cfg.Algorithm)
			logger := sortalgo.NewDefaultLogger()

			var trail audit.Trail
			if cfg.Audit.Enabled {
				bus := audit.NewSyncBus()
				bus.Subscribe("**", func(ctx context.Context, event cloudevents.Event) error {
					fmt.Fprintf(os.Stderr, "[audit] %s\n", event.Type())
					return nil
				})
				trail = audit.NewTrail(cfg.Audit, bus, stderrLogger{})
			}

			var sorter patchsorter.Sorter
			switch cfg.Mode {
			case "strict":
				s := patchsorter.NewStrictPatchSorter(oracle, alg)
				s.Inner.Logger = logger
				s.Audit = trail
				sorter = s
			case "non-strict":
				s := patchsorter.NewNonStrictPatchSorter(oracle, alg)
				s.Inner.Logger = logger
				s.Audit = trail
				sorter = s
			default:
				return fmt.Errorf("unknown mode %q (want strict or non-strict)", cfg.Mode)
			}

			changes, err := sorter.Sort(cmd.Context(), policy.Subject{UserID: subjectID}, current, patch)
			if err != nil {
				return fmt.Errorf("sort: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			for i, c := range changes {
				if verbose {
					fmt.Fprintf(os.Stderr, "# change %d\n", i)
				}
				if err := enc.Encode(c.Patch); err != nil {
					return fmt.Errorf("encoding change %d: %w", i, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&currentPath, "current", "", "path to the current config JSON file")
	cmd.Flags().StringVar(&patchPath, "patch", "", "path to the JSON Patch document")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a YAML schema catalog (omit for an empty, schema-less catalog)")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "dfs, bfs, or memoization (overrides .patchsort.yaml)")
	cmd.Flags().StringVar(&mode, "mode", "", "strict or non-strict (overrides .patchsort.yaml)")
	cmd.Flags().StringVar(&subjectID, "subject", "", "subject ID to present to the policy gate for non-strict sorts")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print a header line before each change")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("patch")

	return cmd
}

func readConfig(path string) (configtree.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg configtree.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readPatch(path string) (jsonpatch.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jsonpatch.Decode(data)
}

func readOracle(path string) (schema.Oracle, error) {
	if path == "" {
		return schema.NewCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.LoadCatalogYAML(data)
}

type stderrLogger struct{}

func (stderrLogger) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[WARN] "+format+"\n", args...)
}
