package move

import (
	"fmt"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
)

// OperationType is the atomic edit kind a JsonMove carries.
type OperationType string

const (
	OpAdd     OperationType = "add"
	OpRemove  OperationType = "remove"
	OpReplace OperationType = "replace"
)

// JsonMove is an atomic edit: an operation type plus token paths into the
// current and (for add/replace) target side of a Diff. It compiles to
// exactly one JSON Patch operation via Patch.
type JsonMove struct {
	OpType             OperationType
	CurrentConfigToken []configtree.Token
	TargetConfigToken  []configtree.Token // nil for remove
	diff               Diff
}

// NewRemove builds a remove move at currentTokens.
func NewRemove(diff Diff, currentTokens []configtree.Token) JsonMove {
	return JsonMove{OpType: OpRemove, CurrentConfigToken: currentTokens, diff: diff}
}

// NewMove builds an add or replace move. op must be OpAdd or OpReplace.
func NewMove(diff Diff, op OperationType, currentTokens, targetTokens []configtree.Token) JsonMove {
	return JsonMove{OpType: op, CurrentConfigToken: currentTokens, TargetConfigToken: targetTokens, diff: diff}
}

// FromPatch rebuilds a JsonMove from a single-operation external patch.
// It fails if the patch does not contain exactly one operation. Numeric
// path segments are preserved as name tokens: an external patch gives no
// way to tell a sequence index from a dictionary key that happens to look
// like one.
func FromPatch(diff Diff, patch jsonpatch.Patch) (JsonMove, error) {
	if len(patch) != 1 {
		return JsonMove{}, fmt.Errorf("move: from_patch requires exactly 1 operation, got %d", len(patch))
	}
	op := patch[0]
	tokens := configtree.DecodeLiteral(op.Path)

	switch op.Op {
	case jsonpatch.OpRemove:
		return NewRemove(diff, tokens), nil
	case jsonpatch.OpReplace:
		return NewMove(diff, OpReplace, tokens, tokens), nil
	case jsonpatch.OpAdd:
		return NewMove(diff, OpAdd, tokens, tokens), nil
	default:
		return JsonMove{}, fmt.Errorf("move: from_patch does not support operation %q", op.Op)
	}
}

// Patch compiles the move into its equivalent 1-op JSON Patch operation,
// applying the mandatory lifting rule for add moves whose parent does not
// yet exist in the current side.
func (m JsonMove) Patch() jsonpatch.PatchOp {
	switch m.OpType {
	case OpRemove:
		return jsonpatch.PatchOp{Op: jsonpatch.OpRemove, Path: configtree.Encode(m.CurrentConfigToken)}

	case OpReplace:
		val, _ := configtree.Get(m.diff.Target, m.TargetConfigToken)
		return jsonpatch.PatchOp{Op: jsonpatch.OpReplace, Path: configtree.Encode(m.CurrentConfigToken), Value: val}

	case OpAdd:
		parent := configtree.Parent(m.CurrentConfigToken)
		if configtree.Exists(m.diff.Current, parent) {
			val, _ := configtree.Get(m.diff.Target, m.TargetConfigToken)
			return jsonpatch.PatchOp{Op: jsonpatch.OpAdd, Path: configtree.Encode(m.CurrentConfigToken), Value: val}
		}

		ancestor, missing := longestExistingAncestor(m.diff.Current, m.CurrentConfigToken)
		leaf, _ := configtree.Get(m.diff.Target, m.TargetConfigToken)
		return jsonpatch.PatchOp{Op: jsonpatch.OpAdd, Path: configtree.Encode(ancestor), Value: liftedSpineValue(missing, leaf)}

	default:
		// OpType is only ever constructed by this package's own
		// constructors, so reaching here indicates a bug upstream.
		panic(fmt.Sprintf("move: JsonMove has unknown op type %q", m.OpType))
	}
}

// longestExistingAncestor returns the longest prefix of tokens that exists
// in cfg, and the remaining suffix that does not.
func longestExistingAncestor(cfg any, tokens []configtree.Token) (ancestor, missing []configtree.Token) {
	for i := len(tokens); i >= 0; i-- {
		if configtree.Exists(cfg, tokens[:i]) {
			return tokens[:i], tokens[i:]
		}
	}
	return nil, tokens
}

// liftedSpineValue builds the synthesized subtree for a lifted add: a
// nested structure along missing that contains only leaf at its end. A
// missing index token wraps a one-element list rather than padding out to
// that index, since the spine is being created fresh.
func liftedSpineValue(missing []configtree.Token, leaf any) any {
	if len(missing) == 0 {
		return leaf
	}
	t := missing[0]
	inner := liftedSpineValue(missing[1:], leaf)
	if t.IsIndex {
		return []any{inner}
	}
	return map[string]any{t.Name: inner}
}

// Equal reports whether two moves describe the same edit (used by
// MoveWrapper to dedup generator/extender output).
func (m JsonMove) Equal(o JsonMove) bool {
	if m.OpType != o.OpType {
		return false
	}
	if !tokensEqual(m.CurrentConfigToken, o.CurrentConfigToken) {
		return false
	}
	return tokensEqual(m.TargetConfigToken, o.TargetConfigToken)
}

// Key returns a string uniquely identifying the move's (op, current path,
// target path) triple, for use as a map key during dedup.
func (m JsonMove) Key() string {
	return string(m.OpType) + "\x00" + configtree.Encode(m.CurrentConfigToken) + "\x00" + configtree.Encode(m.TargetConfigToken)
}

func tokensEqual(a, b []configtree.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
