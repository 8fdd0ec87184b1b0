package patchsorter

import (
	"sort"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/schema"
)

// InnerSplitter classifies one field path as belonging to the non-YANG
// partition. A path not claimed by any InnerSplitter stays in the YANG
// partition.
type InnerSplitter interface {
	IsNonYang(path []configtree.Token) bool
}

// ExactPathSplitter claims a fixed set of field paths for the non-YANG
// partition, regardless of schema coverage.
type ExactPathSplitter struct {
	Paths [][]configtree.Token
}

// IsNonYang implements InnerSplitter.
func (s ExactPathSplitter) IsNonYang(path []configtree.Token) bool {
	for _, p := range s.Paths {
		if tokensEqual(p, path) {
			return true
		}
	}
	return false
}

// SchemalessTableSplitter claims every field path under a table the
// schema oracle does not model.
type SchemalessTableSplitter struct {
	Oracle schema.Oracle
}

// IsNonYang implements InnerSplitter.
func (s SchemalessTableSplitter) IsNonYang(path []configtree.Token) bool {
	if len(path) == 0 {
		return false
	}
	return !s.Oracle.TableHasSchema(path[0].Name)
}

// ConfigSplitter partitions a config into a YANG (schema-covered) half and
// a non-YANG half at field-path granularity, according to an ordered list
// of InnerSplitters.
type ConfigSplitter struct {
	Splitters []InnerSplitter
}

// SplitYangNonYangDistinctFieldPath partitions cfg into (yang, nonYang).
// Every leaf field path lands in exactly one half: nonYang if any
// registered InnerSplitter claims it, yang otherwise. The two halves have
// disjoint field paths by construction.
func (cs ConfigSplitter) SplitYangNonYangDistinctFieldPath(cfg configtree.Config) (yang, nonYang configtree.Config) {
	yang = configtree.Config{}
	nonYang = configtree.Config{}

	for _, leaf := range collectLeaves(cfg) {
		claimed := false
		for _, s := range cs.Splitters {
			if s.IsNonYang(leaf.path) {
				claimed = true
				break
			}
		}
		if claimed {
			nonYang = configtree.Set(nonYang, leaf.path, leaf.value).(map[string]any)
		} else {
			yang = configtree.Set(yang, leaf.path, leaf.value).(map[string]any)
		}
	}
	return yang, nonYang
}

// MergeConfigsWithDistinctFieldPath recombines two configs that are
// expected to hold disjoint field paths. It fails with KindSplitterOverlap
// if the same field path appears in both.
func MergeConfigsWithDistinctFieldPath(a, b configtree.Config) (configtree.Config, error) {
	merged := configtree.Config{}
	seen := make(map[string]bool)

	for _, leaf := range collectLeaves(a) {
		seen[configtree.Encode(leaf.path)] = true
		merged = configtree.Set(merged, leaf.path, leaf.value).(map[string]any)
	}
	for _, leaf := range collectLeaves(b) {
		key := configtree.Encode(leaf.path)
		if seen[key] {
			return nil, newError(KindSplitterOverlap, "field path %q claimed by both partitions", key)
		}
		merged = configtree.Set(merged, leaf.path, leaf.value).(map[string]any)
	}
	return merged, nil
}

// leaf is one terminal value in a config tree: a JSON scalar, or an empty
// mapping/sequence (a table or row with no fields yet, which still needs
// to survive a split/merge round trip).
type leaf struct {
	path  []configtree.Token
	value any
}

func collectLeaves(cfg configtree.Config) []leaf {
	var out []leaf
	walkLeaves(nil, cfg, &out)
	return out
}

func walkLeaves(path []configtree.Token, v any, out *[]leaf) {
	switch vv := v.(type) {
	case map[string]any:
		if len(vv) == 0 {
			*out = append(*out, leaf{path: cloneTokens(path), value: vv})
			return
		}
		for _, k := range sortedKeys(vv) {
			walkLeaves(appendToken(path, configtree.Str(k)), vv[k], out)
		}
	case []any:
		if len(vv) == 0 {
			*out = append(*out, leaf{path: cloneTokens(path), value: vv})
			return
		}
		for i, e := range vv {
			walkLeaves(appendToken(path, configtree.Idx(i)), e, out)
		}
	default:
		*out = append(*out, leaf{path: cloneTokens(path), value: v})
	}
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
