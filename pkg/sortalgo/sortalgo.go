// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package sortalgo searches the state graph a MoveWrapper exposes over a
// Diff: state is a Diff, the goal is HasNoDiff, neighbors are
// wrapper.Simulate(m, s) for every m that wrapper.Generate(s) proposes and
// wrapper.Validate(m, s) accepts, and the edge label is the move itself.
// DfsSorter, BfsSorter, and MemoizationSorter differ only in traversal
// policy over that shared contract.
package sortalgo

import (
	"errors"
	"fmt"

	"github.com/alexlovelltroy/patchsort/pkg/move"
)

// ErrNoValidOrdering is returned when a sorter exhausts the reachable state
// space without finding a sequence of moves that reduces a Diff to no-diff.
var ErrNoValidOrdering = errors.New("sortalgo: search exhausted the state space without reaching the goal")

// SortAlgorithm searches from diff to a no-diff state, returning the
// ordered sequence of moves that gets there.
type SortAlgorithm interface {
	Sort(diff move.Diff) ([]move.JsonMove, error)
}

// Algorithm selects which SortAlgorithm implementation New builds.
type Algorithm string

const (
	DFS         Algorithm = "dfs"
	BFS         Algorithm = "bfs"
	Memoization Algorithm = "memoization"
)

// New builds the SortAlgorithm named by alg against wrapper. An empty alg
// defaults to DFS. logger may be nil; every sorter tolerates a nil Logger.
func New(alg Algorithm, wrapper move.MoveWrapper, logger Logger) (SortAlgorithm, error) {
	switch alg {
	case "", DFS:
		return DfsSorter{Wrapper: wrapper, Logger: logger}, nil
	case BFS:
		return BfsSorter{Wrapper: wrapper, Logger: logger}, nil
	case Memoization:
		return MemoizationSorter{Wrapper: wrapper, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("sortalgo: unknown algorithm %q", alg)
	}
}

// neighbor is one validated (move, resulting-state) edge out of a state.
type neighbor struct {
	move move.JsonMove
	next move.Diff
}

// neighbors generates, validates, and simulates every outgoing edge from
// diff, skipping moves the validators reject or whose simulation errors.
func neighbors(diff move.Diff, wrapper move.MoveWrapper, logger Logger) []neighbor {
	var out []neighbor
	for _, m := range wrapper.Generate(diff) {
		if !wrapper.Validate(m, diff) {
			continue
		}
		next, err := wrapper.Simulate(m, diff)
		if err != nil {
			if logger != nil {
				logger.Debugf("sortalgo: move %s failed to simulate: %v", m.Key(), err)
			}
			continue
		}
		out = append(out, neighbor{move: m, next: next})
	}
	return out
}
