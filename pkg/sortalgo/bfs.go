package sortalgo

import "github.com/alexlovelltroy/patchsort/pkg/move"

// BfsSorter explores states in layers, dequeuing the oldest unvisited
// state first and recording a parent link each time a new state is first
// reached. Once a dequeued state (or one of its freshly-discovered
// neighbors) satisfies the goal, the move sequence is reconstructed by
// walking parent links back to the start and reversing.
//
// The frontier is the teacher's reconcile.WorkQueue dedup-FIFO pattern —
// a state already seen is never re-enqueued — with every concurrency
// primitive (the queue's mutex, condition variable, and processing set)
// stripped, since the search here runs single-threaded.
type BfsSorter struct {
	Wrapper move.MoveWrapper
	Logger  Logger
}

type bfsParent struct {
	fromHash string
	move     move.JsonMove
}

// Sort implements SortAlgorithm.
func (s BfsSorter) Sort(diff move.Diff) ([]move.JsonMove, error) {
	if diff.HasNoDiff() {
		return nil, nil
	}

	startHash := diff.Hash()
	visited := map[string]bool{startHash: true}
	parents := make(map[string]bfsParent)
	queue := []move.Diff{diff}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range neighbors(cur, s.Wrapper, s.Logger) {
			nextHash := n.next.Hash()
			if visited[nextHash] {
				continue
			}
			visited[nextHash] = true
			parents[nextHash] = bfsParent{fromHash: cur.Hash(), move: n.move}

			if n.next.HasNoDiff() {
				return reconstructBfsPath(parents, nextHash), nil
			}
			queue = append(queue, n.next)
		}
	}
	return nil, ErrNoValidOrdering
}

func reconstructBfsPath(parents map[string]bfsParent, goalHash string) []move.JsonMove {
	var moves []move.JsonMove
	for h := goalHash; ; {
		p, ok := parents[h]
		if !ok {
			break
		}
		moves = append(moves, p.move)
		h = p.fromHash
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}
