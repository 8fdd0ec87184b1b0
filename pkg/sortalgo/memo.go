package sortalgo

import "github.com/alexlovelltroy/patchsort/pkg/move"

// MemoizationSorter is DfsSorter with one addition: every state it fully
// resolves, win or lose, is recorded in a memo keyed by Diff.Hash() and
// never searched again. Unlike DfsSorter's onPath set, the memo survives
// backtracking — a state reached a second time down a different branch is
// answered from the memo instead of re-searched.
type MemoizationSorter struct {
	Wrapper move.MoveWrapper
	Logger  Logger
}

type memoOutcome struct {
	moves []move.JsonMove
	ok    bool
}

// Sort implements SortAlgorithm.
func (s MemoizationSorter) Sort(diff move.Diff) ([]move.JsonMove, error) {
	memo := make(map[string]memoOutcome)
	onPath := make(map[string]bool)
	moves, ok := s.search(diff, memo, onPath)
	if !ok {
		return nil, ErrNoValidOrdering
	}
	return moves, nil
}

func (s MemoizationSorter) search(diff move.Diff, memo map[string]memoOutcome, onPath map[string]bool) ([]move.JsonMove, bool) {
	if diff.HasNoDiff() {
		return nil, true
	}

	key := diff.Hash()
	if out, ok := memo[key]; ok {
		return out.moves, out.ok
	}
	if onPath[key] {
		return nil, false
	}
	onPath[key] = true
	defer delete(onPath, key)

	for _, n := range neighbors(diff, s.Wrapper, s.Logger) {
		rest, ok := s.search(n.next, memo, onPath)
		if !ok {
			continue
		}
		result := append([]move.JsonMove{n.move}, rest...)
		memo[key] = memoOutcome{moves: result, ok: true}
		return result, true
	}

	memo[key] = memoOutcome{ok: false}
	return nil, false
}
