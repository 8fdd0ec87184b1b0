package move

import (
	"strconv"
	"strings"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/schema"
)

// Validator is a predicate over a candidate move and the Diff it would
// apply to. A move passes MoveWrapper.Validate iff every registered
// Validator accepts it.
type Validator interface {
	Validate(m JsonMove, diff Diff) bool
}

// simulateCurrent applies m to diff.Current and returns the resulting
// config. A move that fails to apply never passes any validator.
func simulateCurrent(m JsonMove, diff Diff) (configtree.Config, bool) {
	next, err := diff.ApplyMove(m)
	if err != nil {
		return nil, false
	}
	return next.Current, true
}

// DeleteWholeConfigMoveValidator rejects a remove whose path is the empty
// root path. Removing any other path, including one that empties the last
// remaining table, is left to NoEmptyTableMoveValidator to police.
type DeleteWholeConfigMoveValidator struct{}

// Validate implements Validator.
func (DeleteWholeConfigMoveValidator) Validate(m JsonMove, diff Diff) bool {
	return !(m.OpType == OpRemove && len(m.CurrentConfigToken) == 0)
}

// UniqueLanesMoveValidator checks, after simulation, that no integer lane
// number appears twice across every row's comma-separated lanes field. A
// missing PORT table, an empty PORT table, and rows without a lanes field
// all pass.
type UniqueLanesMoveValidator struct{}

// Validate implements Validator.
func (UniqueLanesMoveValidator) Validate(m JsonMove, diff Diff) bool {
	post, ok := simulateCurrent(m, diff)
	if !ok {
		return false
	}
	portBody, exists := post["PORT"]
	if !exists {
		return true
	}
	rows, ok := portBody.(map[string]any)
	if !ok {
		return true
	}

	seen := make(map[int]bool)
	for _, rowVal := range rows {
		row, ok := rowVal.(map[string]any)
		if !ok {
			continue
		}
		lanesVal, ok := row["lanes"]
		if !ok {
			continue
		}
		lanesStr, ok := lanesVal.(string)
		if !ok {
			continue
		}
		for _, field := range strings.Split(lanesStr, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				continue
			}
			if seen[n] {
				return false
			}
			seen[n] = true
		}
	}
	return true
}

// CreateOnlyMoveValidator enforces schema-declared create-only paths: a
// value at such a path must be equal pre- and post-simulation unless its
// enclosing row is itself being created or deleted in the same move.
type CreateOnlyMoveValidator struct {
	Oracle schema.Oracle
}

// Validate implements Validator.
func (v CreateOnlyMoveValidator) Validate(m JsonMove, diff Diff) bool {
	post, ok := simulateCurrent(m, diff)
	if !ok {
		return false
	}

	seen := make(map[string]bool)
	var paths [][]configtree.Token
	for _, p := range leafPaths(diff.Current) {
		key := configtree.Encode(p)
		if !seen[key] {
			seen[key] = true
			paths = append(paths, p)
		}
	}
	for _, p := range leafPaths(post) {
		key := configtree.Encode(p)
		if !seen[key] {
			seen[key] = true
			paths = append(paths, p)
		}
	}

	for _, path := range paths {
		if !v.Oracle.IsCreateOnly(path) {
			continue
		}
		preVal, preOk := configtree.Get(diff.Current, path)
		postVal, postOk := configtree.Get(post, path)

		if preOk && postOk {
			if !configtree.DeepEqual(preVal, postVal) {
				return false
			}
			continue
		}

		parent := configtree.Parent(path)
		parentPreOk := configtree.Exists(diff.Current, parent)
		parentPostOk := configtree.Exists(post, parent)
		if parentPreOk == parentPostOk {
			// the create-only value appeared or vanished without its
			// enclosing row being created or deleted
			return false
		}
	}
	return true
}

// leafPaths returns the token path of every scalar leaf reachable from v.
func leafPaths(v any) [][]configtree.Token {
	var out [][]configtree.Token
	collectLeafPaths(nil, v, &out)
	return out
}

func collectLeafPaths(tokens []configtree.Token, v any, out *[][]configtree.Token) {
	switch vv := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(vv) {
			collectLeafPaths(appendToken(tokens, configtree.Str(k)), vv[k], out)
		}
	case []any:
		for i, e := range vv {
			collectLeafPaths(appendToken(tokens, configtree.Idx(i)), e, out)
		}
	default:
		*out = append(*out, cloneTokens(tokens))
	}
}

// NoDependencyMoveValidator enforces referential integrity across a single
// step: a remove must not strand a reference held outside the removed
// subtree, and an add (or the add half of a replace) must not introduce a
// reference whose target does not already exist in diff.Current, even when
// the move brings in both the reference and its target together.
type NoDependencyMoveValidator struct {
	Oracle schema.Oracle
}

// Validate implements Validator.
func (v NoDependencyMoveValidator) Validate(m JsonMove, diff Diff) bool {
	post, ok := simulateCurrent(m, diff)
	if !ok {
		return false
	}

	if m.OpType == OpRemove || m.OpType == OpReplace {
		for _, ref := range v.Oracle.FindReferences(diff.Current, m.CurrentConfigToken) {
			if !isUnder(ref, m.CurrentConfigToken) {
				return false
			}
		}
	}
	if m.OpType == OpAdd || m.OpType == OpReplace {
		if !v.Oracle.ValidateConfig(post) {
			return false
		}
		// References sourced from within the touched subtree resolve
		// against diff.Current, not post.
		for _, target := range v.Oracle.FindOutgoingReferences(post, m.CurrentConfigToken) {
			if !configtree.Exists(diff.Current, target) {
				return false
			}
		}
	}
	return true
}

// isUnder reports whether path is prefix or equal to itself under prefix.
func isUnder(path, prefix []configtree.Token) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i, p := range prefix {
		if p != path[i] {
			return false
		}
	}
	return true
}

// NoEmptyTableMoveValidator rejects any move whose post-state leaves a
// top-level table as an empty mapping; empty tables must be absent
// entirely.
type NoEmptyTableMoveValidator struct{}

// Validate implements Validator.
func (NoEmptyTableMoveValidator) Validate(m JsonMove, diff Diff) bool {
	post, ok := simulateCurrent(m, diff)
	if !ok {
		return false
	}
	for _, v := range post {
		if configtree.IsEmptyTable(v) {
			return false
		}
	}
	return true
}

// FullConfigMoveValidator runs the schema oracle's whole-config validation
// against the simulated post-state.
type FullConfigMoveValidator struct {
	Oracle schema.Oracle
}

// Validate implements Validator.
func (v FullConfigMoveValidator) Validate(m JsonMove, diff Diff) bool {
	post, ok := simulateCurrent(m, diff)
	if !ok {
		return false
	}
	return v.Oracle.ValidateConfig(post)
}
