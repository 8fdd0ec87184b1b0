package patchsorter

import (
	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
	"github.com/alexlovelltroy/patchsort/pkg/move"
)

// ChangeWrapper rebases a sequence of changes computed against a smaller
// "assumed" base so that, replayed against assumedBase merged with a
// remainingBase the changes never touched, they produce the same net
// effect on the full config.
type ChangeWrapper struct{}

// AdjustChanges rebases changes, which were computed incrementally against
// assumedBase, onto assumedBase ∪ remainingBase. A change whose effect is
// already present once merged with remainingBase is rebased to an empty
// Change rather than dropped, preserving len(changes).
func (ChangeWrapper) AdjustChanges(changes []Change, assumedBase, remainingBase configtree.Config) ([]Change, error) {
	runningAssumed := configtree.DeepCopy(assumedBase).(map[string]any)
	out := make([]Change, len(changes))

	for i, c := range changes {
		preAssumed := runningAssumed
		postAssumed := preAssumed

		if !c.Empty() {
			appliedAny, err := jsonpatch.Apply(preAssumed, c.Patch)
			if err != nil {
				return nil, newError(KindInternalInvariant, "rebasing change %d: applying original patch to assumed base: %w", i, err)
			}
			ok := false
			postAssumed, ok = appliedAny.(map[string]any)
			if !ok {
				return nil, newError(KindInternalInvariant, "rebasing change %d: patch result is not a config object", i)
			}
		}
		runningAssumed = postAssumed

		preFull, err := MergeConfigsWithDistinctFieldPath(preAssumed, remainingBase)
		if err != nil {
			return nil, err
		}
		postFull, err := MergeConfigsWithDistinctFieldPath(postAssumed, remainingBase)
		if err != nil {
			return nil, err
		}

		if configtree.DeepEqual(preFull, postFull) {
			out[i] = Change{}
			continue
		}

		rebased, err := rebaseChange(c, preFull, postFull)
		if err != nil {
			return nil, newError(KindInternalInvariant, "rebasing change %d: %w", i, err)
		}
		out[i] = rebased
	}
	return out, nil
}

// rebaseChange recompiles c's single operation against the full-config
// diff (preFull, postFull) instead of the smaller base it was originally
// computed against. Reusing move.FromPatch/JsonMove.Patch means the
// lifting rule re-runs against the merged config's actual ancestors,
// rather than reusing a path/value pair computed against a narrower tree.
func rebaseChange(c Change, preFull, postFull configtree.Config) (Change, error) {
	if c.Empty() {
		return c, nil
	}
	m, err := move.FromPatch(move.NewDiff(preFull, postFull), c.Patch)
	if err != nil {
		return Change{}, err
	}
	return changeFromOp(m.Patch()), nil
}
