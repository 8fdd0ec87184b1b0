package sortalgo

import (
	"testing"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/move"
)

func TestMemoizationSorterSolvesTheSameDiffTwice(t *testing.T) {
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
	sorter := MemoizationSorter{Wrapper: plainWrapper()}

	first, err := sorter.Sort(diff)
	if err != nil {
		t.Fatalf("first Sort failed: %v", err)
	}
	second, err := sorter.Sort(diff)
	if err != nil {
		t.Fatalf("second Sort failed: %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("Sort is not deterministic across independent memos: %d vs %d moves", len(first), len(second))
	}
}

func TestMemoizationSorterMemoizesSuccessOutcome(t *testing.T) {
	diff := move.NewDiff(
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"description": "old"}}},
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"description": "new"}}},
	)
	sorter := MemoizationSorter{Wrapper: plainWrapper()}
	memo := make(map[string]memoOutcome)
	onPath := make(map[string]bool)

	moves, ok := sorter.search(diff, memo, onPath)
	if !ok || len(moves) != 1 {
		t.Fatalf("search = %+v, %v; want 1 move, true", moves, ok)
	}
	if out, cached := memo[diff.Hash()]; !cached || !out.ok {
		t.Error("expected the start state's success outcome to be memoized")
	}
}
