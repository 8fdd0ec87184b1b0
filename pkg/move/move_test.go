package move

import (
	"testing"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
)

func TestPatchRemove(t *testing.T) {
	diff := NewDiff(configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{}}}, configtree.Config{})
	m := NewRemove(diff, configtree.Decode("/PORT/Ethernet0"))
	op := m.Patch()
	if op.Op != jsonpatch.OpRemove || op.Path != "/PORT/Ethernet0" {
		t.Errorf("Patch() = %+v", op)
	}
}

func TestPatchReplace(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "65"}}},
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "66"}}},
	)
	tokens := configtree.Decode("/PORT/Ethernet0/lanes")
	m := NewMove(diff, OpReplace, tokens, tokens)
	op := m.Patch()
	if op.Op != jsonpatch.OpReplace || op.Path != "/PORT/Ethernet0/lanes" || op.Value != "66" {
		t.Errorf("Patch() = %+v", op)
	}
}

func TestPatchAddDirectParentExists(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"PORT": map[string]any{}},
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "65"}}},
	)
	tokens := configtree.Decode("/PORT/Ethernet0")
	m := NewMove(diff, OpAdd, tokens, tokens)
	op := m.Patch()
	if op.Op != jsonpatch.OpAdd || op.Path != "/PORT/Ethernet0" {
		t.Fatalf("Patch() = %+v", op)
	}
	val, ok := op.Value.(map[string]any)
	if !ok || val["lanes"] != "65" {
		t.Errorf("Patch() value = %v", op.Value)
	}
}

// TestPatchAddLifted exercises spec's mandatory lifting rule: JsonMove(diff,
// add, [T,K,F], [T,K,F]) on a current missing T.K produces a patch whose
// path is the deepest existing ancestor and whose value synthesizes the
// single-leaf spine.
func TestPatchAddLifted(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"T": map[string]any{}},
		configtree.Config{"T": map[string]any{"K": map[string]any{"F": "v"}}},
	)
	tokens := configtree.Decode("/T/K/F")
	m := NewMove(diff, OpAdd, tokens, tokens)
	op := m.Patch()

	if op.Op != jsonpatch.OpAdd || op.Path != "/T" {
		t.Fatalf("Patch() = %+v, want path /T", op)
	}
	val, ok := op.Value.(map[string]any)
	if !ok {
		t.Fatalf("Patch() value = %v, want a map", op.Value)
	}
	k, ok := val["K"].(map[string]any)
	if !ok || k["F"] != "v" {
		t.Errorf("Patch() lifted value = %v, want {K: {F: v}}", op.Value)
	}
}

func TestPatchAddLiftedSequencePosition(t *testing.T) {
	diff := NewDiff(
		configtree.Config{},
		configtree.Config{"ACL_TABLE": map[string]any{"T1": map[string]any{"ports": []any{"Ethernet0"}}}},
	)
	tokens := configtree.Decode("/ACL_TABLE/T1/ports/0")
	m := NewMove(diff, OpAdd, tokens, tokens)
	op := m.Patch()

	if op.Op != jsonpatch.OpAdd || op.Path != "" {
		t.Fatalf("Patch() = %+v, want root path", op)
	}
	acl, ok := op.Value.(map[string]any)
	if !ok {
		t.Fatalf("value = %v", op.Value)
	}
	t1 := acl["ACL_TABLE"].(map[string]any)["T1"].(map[string]any)
	ports, ok := t1["ports"].([]any)
	if !ok || len(ports) != 1 || ports[0] != "Ethernet0" {
		t.Errorf("lifted sequence value = %v, want single-element list", t1["ports"])
	}
}

func TestFromPatchMoreThanOneOpFails(t *testing.T) {
	diff := NewDiff(configtree.Config{}, configtree.Config{})
	_, err := FromPatch(diff, jsonpatch.Patch{
		{Op: jsonpatch.OpAdd, Path: "/a", Value: 1},
		{Op: jsonpatch.OpAdd, Path: "/b", Value: 2},
	})
	if err == nil {
		t.Error("expected error for multi-op patch")
	}
}

func TestFromPatchRemove(t *testing.T) {
	diff := NewDiff(configtree.Config{}, configtree.Config{})
	m, err := FromPatch(diff, jsonpatch.Patch{{Op: jsonpatch.OpRemove, Path: "/table1/key11"}})
	if err != nil {
		t.Fatalf("FromPatch failed: %v", err)
	}
	want := []configtree.Token{configtree.Str("table1"), configtree.Str("key11")}
	if m.OpType != OpRemove || !tokensEqual(m.CurrentConfigToken, want) || m.TargetConfigToken != nil {
		t.Errorf("FromPatch(remove) = %+v", m)
	}
}

func TestFromPatchReplace(t *testing.T) {
	diff := NewDiff(configtree.Config{}, configtree.Config{})
	m, err := FromPatch(diff, jsonpatch.Patch{{Op: jsonpatch.OpReplace, Path: "/table1/key11", Value: "v"}})
	if err != nil {
		t.Fatalf("FromPatch failed: %v", err)
	}
	want := []configtree.Token{configtree.Str("table1"), configtree.Str("key11")}
	if m.OpType != OpReplace || !tokensEqual(m.CurrentConfigToken, want) || !tokensEqual(m.TargetConfigToken, want) {
		t.Errorf("FromPatch(replace) = %+v", m)
	}
}

// TestFromPatchAddWithListIndexesKeepsStringTokens matches the original
// suite's documented behavior: a JsonPatch gives no way to tell whether a
// numeric segment is a list index or a dictionary key, so it defaults to a
// name token.
func TestFromPatchAddWithListIndexesKeepsStringTokens(t *testing.T) {
	diff := NewDiff(configtree.Config{}, configtree.Config{})
	m, err := FromPatch(diff, jsonpatch.Patch{{Op: jsonpatch.OpAdd, Path: "/table1/key11/list1111/3", Value: "value11111"}})
	if err != nil {
		t.Fatalf("FromPatch failed: %v", err)
	}
	want := []configtree.Token{configtree.Str("table1"), configtree.Str("key11"), configtree.Str("list1111"), configtree.Str("3")}
	if !tokensEqual(m.CurrentConfigToken, want) {
		t.Errorf("FromPatch current tokens = %v, want %v", m.CurrentConfigToken, want)
	}
}

func TestFromPatchReplaceWholeConfig(t *testing.T) {
	diff := NewDiff(configtree.Config{}, configtree.Config{})
	m, err := FromPatch(diff, jsonpatch.Patch{{Op: jsonpatch.OpReplace, Path: "", Value: map[string]any{"table1": map[string]any{"key1": "value1"}}}})
	if err != nil {
		t.Fatalf("FromPatch failed: %v", err)
	}
	if m.OpType != OpReplace || len(m.CurrentConfigToken) != 0 || len(m.TargetConfigToken) != 0 {
		t.Errorf("FromPatch(whole config replace) = %+v", m)
	}
}
