package patchsorter

import (
	"context"

	"github.com/alexlovelltroy/patchsort/pkg/audit"
	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
	"github.com/alexlovelltroy/patchsort/pkg/policy"
	"github.com/alexlovelltroy/patchsort/pkg/schema"
	"github.com/alexlovelltroy/patchsort/pkg/sortalgo"
)

// Sorter is the common shape of both outer entry points, letting a caller
// (e.g. cmd/patchsort) hold either behind one interface.
type Sorter interface {
	Sort(ctx context.Context, subject policy.Subject, current configtree.Config, patch jsonpatch.Patch) ([]Change, error)
}

// StrictPatchSorter rejects any patch that names a table the schema does
// not model, then delegates to the inner PatchSorter. It never touches a
// schema-less table, so it carries no policy.Enforcer gate — subject is
// accepted only so StrictPatchSorter and NonStrictPatchSorter share the
// Sorter interface.
type StrictPatchSorter struct {
	Inner PatchSorter
	Audit audit.Trail
}

// NewStrictPatchSorter wires a StrictPatchSorter against oracle.
func NewStrictPatchSorter(oracle schema.Oracle, alg sortalgo.Algorithm) StrictPatchSorter {
	return StrictPatchSorter{Inner: NewPatchSorter(oracle, alg)}
}

// Sort implements Sorter.
func (s StrictPatchSorter) Sort(ctx context.Context, _ policy.Subject, current configtree.Config, patch jsonpatch.Patch) ([]Change, error) {
	if !s.Inner.Oracle.ValidatePatchOnlyTablesWithSchema(patch) {
		return nil, newError(KindPatchTouchesSchemalessTables, "patch touches a table the schema does not model")
	}
	changes, err := s.Inner.Sort(current, patch)
	if err != nil {
		return nil, err
	}
	s.Audit.Publish(ctx, newSortID(), changesToPatches(changes))
	return changes, nil
}

// NonStrictPatchSorter tolerates schema-less tables: it splits current and
// target into YANG/non-YANG halves, runs the ordered search only over the
// YANG half, passes the non-YANG half through as one unchecked coarse
// change, and rebases both halves' changes against each other so the
// concatenated sequence, applied in order, produces exactly the patched
// target.
//
// Because tolerating schema-less tables is a privilege a real
// device-management deployment would want to restrict, Sort consults Gate
// (a policy.Enforcer) before doing any work; a nil Gate falls back to
// policy.PermissivePolicy, matching SPEC_FULL.md §4's "when no enforcer is
// configured, both sorters run unauthenticated".
type NonStrictPatchSorter struct {
	Splitter ConfigSplitter
	Inner    PatchSorter
	Oracle   schema.Oracle
	Gate     policy.Enforcer
	Audit    audit.Trail
}

// NewNonStrictPatchSorter wires a NonStrictPatchSorter against oracle,
// treating every table the oracle does not model as non-YANG. Gate
// defaults to policy.PermissivePolicy; set it to require authorization.
func NewNonStrictPatchSorter(oracle schema.Oracle, alg sortalgo.Algorithm) NonStrictPatchSorter {
	return NonStrictPatchSorter{
		Splitter: ConfigSplitter{Splitters: []InnerSplitter{SchemalessTableSplitter{Oracle: oracle}}},
		Inner:    NewPatchSorter(oracle, alg),
		Oracle:   oracle,
		Gate:     policy.NewPermissivePolicy(),
	}
}

// Sort implements Sorter.
func (s NonStrictPatchSorter) Sort(ctx context.Context, subject policy.Subject, current configtree.Config, patch jsonpatch.Patch) ([]Change, error) {
	gate := s.Gate
	if gate == nil {
		gate = policy.NewPermissivePolicy()
	}
	if d := gate.Authorize(ctx, subject, policy.ModeNonStrict); !d.Allowed {
		return nil, newError(KindUnauthorized, "non-strict sort denied: %s", d.Reason)
	}

	targetAny, err := jsonpatch.Apply(current, patch)
	if err != nil {
		return nil, newError(KindInvalidInputPatch, "applying patch to current config: %w", err)
	}
	target, ok := targetAny.(map[string]any)
	if !ok {
		return nil, newError(KindInvalidInputPatch, "patch result is not a config object")
	}

	currentYang, currentNonYang := s.Splitter.SplitYangNonYangDistinctFieldPath(current)
	targetYang, targetNonYang := s.Splitter.SplitYangNonYangDistinctFieldPath(target)

	if !s.Oracle.ValidateConfig(targetYang) {
		return nil, newError(KindInvalidTarget, "yang half of target failed schema validation")
	}

	nonYangChanges := coarseNonYangChanges(currentNonYang, targetNonYang)

	yangPatch := jsonpatch.Patch{{Op: jsonpatch.OpReplace, Path: "", Value: targetYang}}
	yangChanges, err := s.Inner.Sort(currentYang, yangPatch)
	if err != nil {
		return nil, err
	}

	wrapper := ChangeWrapper{}
	rebasedNonYang, err := wrapper.AdjustChanges(nonYangChanges, currentNonYang, currentYang)
	if err != nil {
		return nil, err
	}
	rebasedYang, err := wrapper.AdjustChanges(yangChanges, currentYang, targetNonYang)
	if err != nil {
		return nil, err
	}

	changes := append(rebasedNonYang, rebasedYang...)
	s.Audit.Publish(ctx, newSortID(), changesToPatches(changes))
	return changes, nil
}

// coarseNonYangChanges returns the non-YANG half's unchecked change: a
// single replace of the whole non-YANG partition when it differs, nothing
// when it doesn't. The non-YANG half has no schema to order moves against,
// so there is nothing to validate or sequence.
func coarseNonYangChanges(cur, tgt configtree.Config) []Change {
	if configtree.DeepEqual(cur, tgt) {
		return nil
	}
	return []Change{changeFromOp(jsonpatch.PatchOp{Op: jsonpatch.OpReplace, Path: "", Value: tgt})}
}
