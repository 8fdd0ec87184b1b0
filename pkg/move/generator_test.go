package move

import (
	"testing"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
)

func patchOps(moves []JsonMove) []jsonpatch.PatchOp {
	ops := make([]jsonpatch.PatchOp, len(moves))
	for i, m := range moves {
		ops[i] = m.Patch()
	}
	return ops
}

func containsOp(ops []jsonpatch.PatchOp, op jsonpatch.Op, path string) bool {
	for _, o := range ops {
		if o.Op == op && o.Path == path {
			return true
		}
	}
	return false
}

func TestGenerateNoDiffNoMoves(t *testing.T) {
	cfg := configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"lanes": "65"}}}
	diff := NewDiff(cfg, configtree.DeepCopy(cfg))
	moves := LowLevelMoveGenerator{}.Generate(diff)
	if len(moves) != 0 {
		t.Errorf("expected no moves for identical configs, got %d", len(moves))
	}
}

func TestGenerateReplaceLeaf(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"description": "old"}}},
		configtree.Config{"PORT": map[string]any{"Ethernet0": map[string]any{"description": "new"}}},
	)
	moves := LowLevelMoveGenerator{}.Generate(diff)
	ops := patchOps(moves)
	if len(ops) != 1 || !containsOp(ops, jsonpatch.OpReplace, "/PORT/Ethernet0/description") {
		t.Errorf("moves = %+v", ops)
	}
}

func TestGenerateLeafMissingAddMove(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"ACL_TABLE": map[string]any{"EVERFLOW": map[string]any{}}},
		configtree.Config{"ACL_TABLE": map[string]any{"EVERFLOW": map[string]any{"policy_desc": "EVERFLOW"}}},
	)
	ops := patchOps(LowLevelMoveGenerator{}.Generate(diff))
	if len(ops) != 1 || !containsOp(ops, jsonpatch.OpAdd, "/ACL_TABLE/EVERFLOW/policy_desc") {
		t.Errorf("moves = %+v", ops)
	}
}

func TestGenerateLeafAdditionalRemoveMove(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"ACL_TABLE": map[string]any{"EVERFLOW": map[string]any{"policy_desc": "EVERFLOW"}}},
		configtree.Config{"ACL_TABLE": map[string]any{"EVERFLOW": map[string]any{}}},
	)
	ops := patchOps(LowLevelMoveGenerator{}.Generate(diff))
	if len(ops) != 1 || !containsOp(ops, jsonpatch.OpRemove, "/ACL_TABLE/EVERFLOW/policy_desc") {
		t.Errorf("moves = %+v", ops)
	}
}

func TestGenerateTableMissingAddsOnePerLeaf(t *testing.T) {
	diff := NewDiff(
		configtree.Config{},
		configtree.Config{"VLAN": map[string]any{"Vlan1000": map[string]any{"vlanid": "1000", "dhcp_servers": []any{"192.0.0.1"}}}},
	)
	ops := patchOps(LowLevelMoveGenerator{}.Generate(diff))
	if len(ops) != 2 {
		t.Fatalf("expected one add per leaf under the missing table, got %d: %+v", len(ops), ops)
	}
	if !containsOp(ops, jsonpatch.OpAdd, "/VLAN/Vlan1000/vlanid") {
		t.Errorf("missing add for vlanid: %+v", ops)
	}
	if !containsOp(ops, jsonpatch.OpAdd, "/VLAN/Vlan1000/dhcp_servers/0") {
		t.Errorf("missing add for dhcp_servers/0: %+v", ops)
	}
}

func TestGenerateListPositionDivergenceThreeCandidates(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"ACL_TABLE": map[string]any{"EVERFLOW": map[string]any{"ports": []any{"Ethernet4"}}}},
		configtree.Config{"ACL_TABLE": map[string]any{"EVERFLOW": map[string]any{"ports": []any{"Ethernet0"}}}},
	)
	ops := patchOps(LowLevelMoveGenerator{}.Generate(diff))
	if len(ops) != 3 {
		t.Fatalf("expected 3 candidates at a diverging list position, got %d: %+v", len(ops), ops)
	}
	path := "/ACL_TABLE/EVERFLOW/ports/0"
	if !containsOp(ops, jsonpatch.OpRemove, path) || !containsOp(ops, jsonpatch.OpAdd, path) || !containsOp(ops, jsonpatch.OpReplace, path) {
		t.Errorf("expected remove/add/replace at %s, got %+v", path, ops)
	}
}

func TestGenerateListGrowthAddsExtraPositions(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"VLAN": map[string]any{"Vlan1000": map[string]any{"dhcp_servers": []any{"192.0.0.1"}}}},
		configtree.Config{"VLAN": map[string]any{"Vlan1000": map[string]any{"dhcp_servers": []any{"192.0.0.1", "192.0.0.2"}}}},
	)
	ops := patchOps(LowLevelMoveGenerator{}.Generate(diff))
	if len(ops) != 1 || !containsOp(ops, jsonpatch.OpAdd, "/VLAN/Vlan1000/dhcp_servers/1") {
		t.Errorf("moves = %+v", ops)
	}
}

func TestGenerateListShrinkRemovesExtraPositions(t *testing.T) {
	diff := NewDiff(
		configtree.Config{"VLAN": map[string]any{"Vlan1000": map[string]any{"dhcp_servers": []any{"192.0.0.1", "192.0.0.2"}}}},
		configtree.Config{"VLAN": map[string]any{"Vlan1000": map[string]any{"dhcp_servers": []any{"192.0.0.1"}}}},
	)
	ops := patchOps(LowLevelMoveGenerator{}.Generate(diff))
	if len(ops) != 1 || !containsOp(ops, jsonpatch.OpRemove, "/VLAN/Vlan1000/dhcp_servers/1") {
		t.Errorf("moves = %+v", ops)
	}
}
