package move

import (
	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/schema"
)

// Extender derives zero or more coarser/safer moves from a candidate move.
// MoveWrapper feeds every generated move through every extender, and every
// extender's output through every extender again, to fixpoint.
type Extender interface {
	Extend(m JsonMove, diff Diff) []JsonMove
}

// UpperLevelMoveExtender derives one coarser move at the parent of m's
// path: a replace of the parent with its target value when the parent
// already exists, otherwise an add of the parent (or, for a remove, a
// remove at the parent). This is what lets the search break a cyclic
// row-reference dependency by replacing or removing the shared enclosing
// table in one step. A move already at the root has no upper level.
type UpperLevelMoveExtender struct{}

// Extend implements Extender.
func (UpperLevelMoveExtender) Extend(m JsonMove, diff Diff) []JsonMove {
	if len(m.CurrentConfigToken) == 0 {
		return nil
	}
	parent := configtree.Parent(m.CurrentConfigToken)

	if m.OpType == OpRemove && !configtree.Exists(diff.Current, parent) {
		return []JsonMove{NewRemove(diff, parent)}
	}
	if configtree.Exists(diff.Current, parent) {
		return []JsonMove{NewMove(diff, OpReplace, parent, parent)}
	}
	return []JsonMove{NewMove(diff, OpAdd, parent, parent)}
}

// DeleteInsteadOfReplaceMoveExtender turns any replace move into the
// corresponding remove, giving the search a path around create-only
// fields that forbid in-place modification (remove the row, let a later
// add recreate it).
type DeleteInsteadOfReplaceMoveExtender struct{}

// Extend implements Extender.
func (DeleteInsteadOfReplaceMoveExtender) Extend(m JsonMove, diff Diff) []JsonMove {
	if m.OpType != OpReplace {
		return nil
	}
	return []JsonMove{NewRemove(diff, m.CurrentConfigToken)}
}

// DeleteRefsMoveExtender emits one remove for every location the schema
// declares as a reference into a removed subtree, so a row can be removed
// in the same step as (or before) the rows that refer to it.
type DeleteRefsMoveExtender struct {
	Oracle schema.Oracle
}

// Extend implements Extender.
func (e DeleteRefsMoveExtender) Extend(m JsonMove, diff Diff) []JsonMove {
	if m.OpType != OpRemove || e.Oracle == nil {
		return nil
	}
	refs := e.Oracle.FindReferences(diff.Current, m.CurrentConfigToken)
	moves := make([]JsonMove, 0, len(refs))
	for _, r := range refs {
		moves = append(moves, NewRemove(diff, r))
	}
	return moves
}
