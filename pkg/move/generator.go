package move

import (
	"sort"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
)

// Generator produces candidate moves from a Diff.
type Generator interface {
	Generate(diff Diff) []JsonMove
}

// LowLevelMoveGenerator enumerates every atomic move that makes progress
// toward target: a replace for every changed leaf present on both sides, a
// remove for every leaf only in current, an add for every leaf only in
// target, and three simultaneous candidates (remove/add/replace) at each
// diverging sequence index.
type LowLevelMoveGenerator struct{}

// Generate implements Generator.
func (LowLevelMoveGenerator) Generate(diff Diff) []JsonMove {
	var moves []JsonMove
	walk(diff, nil, true, diff.Current, true, diff.Target, &moves)
	return moves
}

func walk(diff Diff, tokens []configtree.Token, curExists bool, cur any, tgtExists bool, tgt any, moves *[]JsonMove) {
	switch {
	case curExists && tgtExists:
		walkBothExist(diff, tokens, cur, tgt, moves)
	case curExists && !tgtExists:
		emitLeafRemoves(diff, tokens, cur, moves)
	case !curExists && tgtExists:
		emitLeafAdds(diff, tokens, tgt, moves)
	}
}

func walkBothExist(diff Diff, tokens []configtree.Token, cur, tgt any, moves *[]JsonMove) {
	if configtree.DeepEqual(cur, tgt) {
		return
	}

	curMap, curIsMap := cur.(map[string]any)
	tgtMap, tgtIsMap := tgt.(map[string]any)
	if curIsMap && tgtIsMap {
		for _, k := range unionKeys(curMap, tgtMap) {
			cv, cok := curMap[k]
			tv, tok := tgtMap[k]
			walk(diff, appendToken(tokens, configtree.Str(k)), cok, cv, tok, tv, moves)
		}
		return
	}

	curList, curIsList := cur.([]any)
	tgtList, tgtIsList := tgt.([]any)
	if curIsList && tgtIsList {
		walkList(diff, tokens, curList, tgtList, moves)
		return
	}

	if !curIsMap && !curIsList && !tgtIsMap && !tgtIsList {
		// two leaves that differ
		leafTok := cloneTokens(tokens)
		*moves = append(*moves, NewMove(diff, OpReplace, leafTok, leafTok))
		return
	}

	// structural type mismatch (e.g. a table that changed shape): tear
	// down the old shape's leaves and build up the new shape's leaves
	// independently, leaving it to extenders/validators to coarsen.
	emitLeafRemoves(diff, tokens, cur, moves)
	emitLeafAdds(diff, tokens, tgt, moves)
}

func walkList(diff Diff, tokens []configtree.Token, cur, tgt []any, moves *[]JsonMove) {
	minLen := len(cur)
	if len(tgt) < minLen {
		minLen = len(tgt)
	}

	for i := 0; i < minLen; i++ {
		if configtree.DeepEqual(cur[i], tgt[i]) {
			continue
		}
		idxTok := appendToken(tokens, configtree.Idx(i))
		*moves = append(*moves,
			NewRemove(diff, idxTok),
			NewMove(diff, OpAdd, idxTok, idxTok),
			NewMove(diff, OpReplace, idxTok, idxTok),
		)
	}
	for i := minLen; i < len(tgt); i++ {
		idxTok := appendToken(tokens, configtree.Idx(i))
		*moves = append(*moves, NewMove(diff, OpAdd, idxTok, idxTok))
	}
	for i := minLen; i < len(cur); i++ {
		idxTok := appendToken(tokens, configtree.Idx(i))
		*moves = append(*moves, NewRemove(diff, idxTok))
	}
}

// emitLeafRemoves recurses into v (a subtree of current) emitting one
// remove move per leaf.
func emitLeafRemoves(diff Diff, tokens []configtree.Token, v any, moves *[]JsonMove) {
	switch vv := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(vv) {
			emitLeafRemoves(diff, appendToken(tokens, configtree.Str(k)), vv[k], moves)
		}
	case []any:
		for i, e := range vv {
			emitLeafRemoves(diff, appendToken(tokens, configtree.Idx(i)), e, moves)
		}
	default:
		*moves = append(*moves, NewRemove(diff, cloneTokens(tokens)))
	}
}

// emitLeafAdds recurses into v (a subtree of target) emitting one add move
// per leaf.
func emitLeafAdds(diff Diff, tokens []configtree.Token, v any, moves *[]JsonMove) {
	switch vv := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(vv) {
			emitLeafAdds(diff, appendToken(tokens, configtree.Str(k)), vv[k], moves)
		}
	case []any:
		for i, e := range vv {
			emitLeafAdds(diff, appendToken(tokens, configtree.Idx(i)), e, moves)
		}
	default:
		tok := cloneTokens(tokens)
		*moves = append(*moves, NewMove(diff, OpAdd, tok, tok))
	}
}

func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]bool, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func appendToken(tokens []configtree.Token, t configtree.Token) []configtree.Token {
	out := make([]configtree.Token, len(tokens)+1)
	copy(out, tokens)
	out[len(tokens)] = t
	return out
}

func cloneTokens(tokens []configtree.Token) []configtree.Token {
	out := make([]configtree.Token, len(tokens))
	copy(out, tokens)
	return out
}
