package patchsorter

import "github.com/alexlovelltroy/patchsort/pkg/jsonpatch"

// Change is one step of a sort's output: ordinarily exactly one JSON Patch
// operation, but ChangeWrapper.AdjustChanges may rebase a change down to
// zero operations (a no-op) while preserving the sequence's length.
type Change struct {
	Patch jsonpatch.Patch
}

// Empty reports whether c carries no operations.
func (c Change) Empty() bool {
	return len(c.Patch) == 0
}

func changeFromOp(op jsonpatch.PatchOp) Change {
	return Change{Patch: jsonpatch.Patch{op}}
}

func isRootReplace(c Change) bool {
	return len(c.Patch) == 1 && c.Patch[0].Op == jsonpatch.OpReplace && c.Patch[0].Path == ""
}

// changesToPatches extracts the raw JSON Patch from each Change, in order,
// for handing to the audit trail.
func changesToPatches(changes []Change) []jsonpatch.Patch {
	patches := make([]jsonpatch.Patch, len(changes))
	for i, c := range changes {
		patches[i] = c.Patch
	}
	return patches
}
