package sortalgo

import "github.com/alexlovelltroy/patchsort/pkg/move"

// DfsSorter recurses into any validated neighbor, prepending the move used
// on success and backtracking to the next neighbor on exhaustion. It keeps
// no memo across branches — only a path-local set of states currently on
// the recursion stack, so a move sequence that cycles back to a state it
// is still in the middle of exploring backtracks instead of looping
// forever. That set is discarded on backtrack, unlike MemoizationSorter's
// memo, which persists across the whole search.
type DfsSorter struct {
	Wrapper move.MoveWrapper
	Logger  Logger
}

// Sort implements SortAlgorithm.
func (s DfsSorter) Sort(diff move.Diff) ([]move.JsonMove, error) {
	moves, ok := s.search(diff, make(map[string]bool))
	if !ok {
		return nil, ErrNoValidOrdering
	}
	return moves, nil
}

func (s DfsSorter) search(diff move.Diff, onPath map[string]bool) ([]move.JsonMove, bool) {
	if diff.HasNoDiff() {
		return nil, true
	}

	key := diff.Hash()
	if onPath[key] {
		return nil, false
	}
	onPath[key] = true
	defer delete(onPath, key)

	for _, n := range neighbors(diff, s.Wrapper, s.Logger) {
		rest, ok := s.search(n.next, onPath)
		if !ok {
			continue
		}
		return append([]move.JsonMove{n.move}, rest...), true
	}
	return nil, false
}
