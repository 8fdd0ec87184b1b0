package move

import (
	"testing"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
)

func TestApplyMoveUpdatesCurrentConfig(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "65"}}},
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "66"}}},
	)
	m := NewMove(diff, OpReplace, configtree.Decode("/PORT/Ethernet0/lanes"), configtree.Decode("/PORT/Ethernet0/lanes"))

	next, err := diff.ApplyMove(m)
	if err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	if !next.HasNoDiff() {
		t.Errorf("expected no diff after applying the only move, got current=%v target=%v", next.Current, next.Target)
	}
	// original diff's current config must be untouched
	orig, _ := configtree.Get(diff.Current, configtree.Decode("/PORT/Ethernet0/lanes"))
	if orig != "65" {
		t.Errorf("ApplyMove mutated original diff: lanes = %v", orig)
	}
}

func TestHasNoDiff(t *testing.T) {
	cfg := configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "65"}}}
	other := configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "66"}}}

	if NewDiff(cfg, other).HasNoDiff() {
		t.Error("expected HasNoDiff to be false for differing configs")
	}
	if !NewDiff(cfg, configtree.DeepCopy(cfg)).HasNoDiff() {
		t.Error("expected HasNoDiff to be true for structurally identical configs")
	}
}

func TestHashDifferentCurrentConfigDifferentHashes(t *testing.T) {
	target := configtree.Config{"PORT": map[string]any{}}
	d1 := NewDiff(configtree.Config{"a": 1.0}, target)
	d2 := NewDiff(configtree.Config{"a": 1.0}, target)
	d3 := NewDiff(configtree.Config{"a": 2.0}, target)

	if d1.Hash() != d2.Hash() {
		t.Error("expected identical diffs to hash identically")
	}
	if d1.Hash() == d3.Hash() {
		t.Error("expected different current configs to hash differently")
	}
}

func TestHashDifferentTargetConfigDifferentHashes(t *testing.T) {
	current := configtree.Config{"a": 1.0}
	d1 := NewDiff(current, configtree.Config{"b": 1.0})
	d2 := NewDiff(current, configtree.Config{"b": 2.0})
	if d1.Hash() == d2.Hash() {
		t.Error("expected different target configs to hash differently")
	}
}

func TestHashSwappedCurrentAndTargetDifferentHashes(t *testing.T) {
	a := configtree.Config{"a": 1.0}
	b := configtree.Config{"b": 1.0}
	d1 := NewDiff(a, b)
	d2 := NewDiff(b, a)
	if d1.Hash() == d2.Hash() {
		t.Error("expected swapping current and target to change the hash")
	}
}

func TestDiffEqual(t *testing.T) {
	a := configtree.Config{"x": 1.0}
	b := configtree.Config{"y": 1.0}
	if NewDiff(a, a).Equal(NewDiff(b, a)) {
		t.Error("expected different current configs to be unequal")
	}
	if NewDiff(a, a).Equal(NewDiff(a, b)) {
		t.Error("expected different target configs to be unequal")
	}
	if !NewDiff(a, b).Equal(NewDiff(configtree.DeepCopy(a), configtree.DeepCopy(b))) {
		t.Error("expected structurally identical diffs to be equal")
	}
}
