package patchsorter

import (
	"errors"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
	"github.com/alexlovelltroy/patchsort/pkg/move"
	"github.com/alexlovelltroy/patchsort/pkg/schema"
	"github.com/alexlovelltroy/patchsort/pkg/sortalgo"
)

// PatchSorter drives a single sort from (current, patch) to an ordered
// sequence of validated sub-patches. It is the inner engine both outer
// sorters call after splitting current/target into their schema-covered
// and schema-less halves.
type PatchSorter struct {
	Oracle    schema.Oracle
	Wrapper   move.MoveWrapper
	Algorithm sortalgo.Algorithm
	Logger    sortalgo.Logger
}

// NewPatchSorter wires a PatchSorter against oracle with alg as its search
// strategy (empty alg defaults to DFS, per sortalgo.New).
func NewPatchSorter(oracle schema.Oracle, alg sortalgo.Algorithm) PatchSorter {
	return PatchSorter{
		Oracle:    oracle,
		Wrapper:   move.NewDefaultMoveWrapper(oracle),
		Algorithm: alg,
	}
}

// Sort computes target = apply(patch, current), validates it, searches for
// an ordered sequence of moves from current to target, and returns that
// sequence as JSON Patch changes. A single whole-config replace is
// substituted with one whose value is target verbatim whenever current
// holds a table the schema does not model, so that table's rows are never
// silently dropped by a structural rewrite.
func (s PatchSorter) Sort(current configtree.Config, patch jsonpatch.Patch) ([]Change, error) {
	targetAny, err := jsonpatch.Apply(current, patch)
	if err != nil {
		return nil, newError(KindInvalidInputPatch, "applying patch to current config: %w", err)
	}
	target, ok := targetAny.(map[string]any)
	if !ok {
		return nil, newError(KindInvalidInputPatch, "patch result is not a config object")
	}

	if !s.Oracle.ValidateConfig(target) {
		return nil, newError(KindInvalidTarget, "target config failed schema validation")
	}

	diff := move.NewDiff(configtree.DeepCopy(current).(map[string]any), target)

	algo, err := sortalgo.New(s.Algorithm, s.Wrapper, s.Logger)
	if err != nil {
		return nil, newError(KindInternalInvariant, "building sort algorithm: %w", err)
	}

	moves, err := algo.Sort(diff)
	if err != nil {
		if errors.Is(err, sortalgo.ErrNoValidOrdering) {
			return nil, newError(KindNoValidOrdering, "no sequence of moves reaches the target: %w", err)
		}
		return nil, newError(KindInternalInvariant, "sort algorithm failed: %w", err)
	}

	changes := make([]Change, len(moves))
	for i, m := range moves {
		changes[i] = changeFromOp(m.Patch())
	}

	if len(changes) == 1 && isRootReplace(changes[0]) && hasSchemalessTable(current, s.Oracle) {
		changes[0] = changeFromOp(jsonpatch.PatchOp{Op: jsonpatch.OpReplace, Path: "", Value: target})
	}

	return changes, nil
}

func hasSchemalessTable(cfg configtree.Config, oracle schema.Oracle) bool {
	for table := range cfg {
		if !oracle.TableHasSchema(table) {
			return true
		}
	}
	return false
}
