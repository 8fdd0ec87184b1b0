package patchsorter

import (
	"context"
	"errors"
	"testing"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
	"github.com/alexlovelltroy/patchsort/pkg/policy"
	"github.com/alexlovelltroy/patchsort/pkg/schema"
)

func TestStrictPatchSorterRejectsSchemalessTable(t *testing.T) {
	oracle := schema.NewSonicStyleCatalog()
	s := NewStrictPatchSorter(oracle, "")

	current := configtree.Config{}
	patch := jsonpatch.Patch{
		{Op: jsonpatch.OpAdd, Path: "/UNMODELED_TABLE/row1", Value: map[string]any{"x": "1"}},
	}

	_, err := s.Sort(context.Background(), policy.Subject{}, current, patch)
	if err == nil {
		t.Fatal("expected strict sort to reject a schema-less table")
	}
	var sortErr *Error
	if !errors.As(err, &sortErr) {
		t.Fatalf("expected a *Error, got %T", err)
	}
	if sortErr.Kind != KindPatchTouchesSchemalessTables {
		t.Errorf("Kind = %s, want %s", sortErr.Kind, KindPatchTouchesSchemalessTables)
	}
}

func TestStrictPatchSorterDelegatesToInnerForModeledTables(t *testing.T) {
	oracle := schema.NewSonicStyleCatalog()
	s := NewStrictPatchSorter(oracle, "")

	current := configtree.Config{}
	patch := jsonpatch.Patch{
		{Op: jsonpatch.OpAdd, Path: "/PORT/Ethernet0", Value: map[string]any{"lanes": "65", "speed": "10000"}},
	}

	changes, err := s.Sort(context.Background(), policy.Subject{}, current, patch)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if len(changes) == 0 {
		t.Fatal("expected at least one change")
	}
}

func TestNonStrictPatchSorterPreservesSchemalessTableWithoutOrdering(t *testing.T) {
	oracle := schema.NewSonicStyleCatalog()
	s := NewNonStrictPatchSorter(oracle, "")

	current := configtree.Config{
		"UNMODELED_TABLE": map[string]any{"row1": map[string]any{"x": "1"}},
	}
	patch := jsonpatch.Patch{
		{Op: jsonpatch.OpReplace, Path: "/UNMODELED_TABLE/row1/x", Value: "2"},
		{Op: jsonpatch.OpAdd, Path: "/PORT/Ethernet0", Value: map[string]any{"lanes": "65", "speed": "10000"}},
	}

	changes, err := s.Sort(context.Background(), policy.Subject{}, current, patch)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	target, _ := jsonpatch.Apply(current, patch)
	states := replay(t, current, changes)
	final := states[len(states)-1]
	if !configtree.DeepEqual(final, target) {
		t.Errorf("replaying changes = %v, want %v", final, target)
	}
}

func TestNonStrictPatchSorterDeniedByGate(t *testing.T) {
	oracle := schema.NewSonicStyleCatalog()
	s := NewNonStrictPatchSorter(oracle, "")
	s.Gate = denyAllGate{}

	current := configtree.Config{}
	patch := jsonpatch.Patch{
		{Op: jsonpatch.OpAdd, Path: "/UNMODELED_TABLE/row1", Value: map[string]any{"x": "1"}},
	}

	_, err := s.Sort(context.Background(), policy.Subject{UserID: "alice"}, current, patch)
	if err == nil {
		t.Fatal("expected the gate to deny this subject")
	}
	var sortErr *Error
	if !errors.As(err, &sortErr) {
		t.Fatalf("expected a *Error, got %T", err)
	}
	if sortErr.Kind != KindUnauthorized {
		t.Errorf("Kind = %s, want %s", sortErr.Kind, KindUnauthorized)
	}
}

func TestNonStrictPatchSorterNilGateDefaultsPermissive(t *testing.T) {
	oracle := schema.NewSonicStyleCatalog()
	s := NewNonStrictPatchSorter(oracle, "")
	s.Gate = nil

	current := configtree.Config{}
	patch := jsonpatch.Patch{
		{Op: jsonpatch.OpAdd, Path: "/PORT/Ethernet0", Value: map[string]any{"lanes": "65", "speed": "10000"}},
	}

	if _, err := s.Sort(context.Background(), policy.Subject{}, current, patch); err != nil {
		t.Fatalf("expected a nil Gate to fall back to permissive, got error: %v", err)
	}
}

type denyAllGate struct{}

func (denyAllGate) Authorize(_ context.Context, _ policy.Subject, _ policy.Mode) policy.Decision {
	return policy.Deny("denied for test")
}
