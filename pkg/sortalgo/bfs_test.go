package sortalgo

import (
	"testing"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/move"
)

func TestBfsSorterFindsShortestPath(t *testing.T) {
	// Two independent leaves differ: the generator offers one replace move
	// per leaf, order-independent, so BFS must reach no-diff in exactly 2
	// moves regardless of which leaf it tries first.
	diff := move.NewDiff(
		configtree.Config{"PORT": map[string]any{
			"Ethernet0": map[string]any{"description": "old0"},
			"Ethernet4": map[string]any{"description": "old4"},
		}},
		configtree.Config{"PORT": map[string]any{
			"Ethernet0": map[string]any{"description": "new0"},
			"Ethernet4": map[string]any{"description": "new4"},
		}},
	)
	sorter := BfsSorter{Wrapper: plainWrapper()}
	moves, err := sorter.Sort(diff)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("expected the shortest path (2 moves), got %d: %+v", len(moves), moves)
	}
}

func TestBfsSorterEmptyDiffReturnsNoMoves(t *testing.T) {
	cfg := configtree.Config{"PORT": map[string]any{}}
	diff := move.NewDiff(cfg, configtree.DeepCopy(cfg))
	sorter := BfsSorter{Wrapper: plainWrapper()}
	moves, err := sorter.Sort(diff)
	if err != nil || len(moves) != 0 {
		t.Errorf("Sort(no-diff) = %v, %v; want 0 moves, nil error", moves, err)
	}
}
