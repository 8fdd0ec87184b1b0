// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package configtree provides the Config tree type and RFC 6901-flavored
// path addressing used throughout the patch sorter.
//
// A Config is a tree of nested maps and ordered sequences of JSON scalars,
// exactly the shape encoding/json produces when unmarshaling into any. The
// root is conventionally a mapping from table name to table body.
//
// Usage:
//
//	tokens := configtree.Decode("/PORT/Ethernet0/lanes")
//	value, ok := configtree.Get(cfg, tokens)
//	path := configtree.Encode(tokens)
package configtree

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Config is the root value of a device configuration tree.
type Config = map[string]any

// Token addresses one level of a Config: either a mapping key (string) or
// a sequence index (int). Decode never produces negative ints.
type Token struct {
	Name    string
	Index   int
	IsIndex bool
}

// Str returns a string token.
func Str(name string) Token { return Token{Name: name} }

// Idx returns an index token.
func Idx(i int) Token { return Token{Index: i, IsIndex: true} }

// String renders the token the way Encode would render it alone.
func (t Token) String() string {
	if t.IsIndex {
		return strconv.Itoa(t.Index)
	}
	return t.Name
}

// Encode converts a token list into its slash-delimited wire form,
// escaping "~" as "~0" and "/" as "~1" per RFC 6901. The empty token list
// encodes to the empty string (the root path).
func Encode(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(escape(t.String()))
	}
	return b.String()
}

func escape(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

func unescape(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}

// Decode converts a slash-delimited wire path back into tokens. A segment
// is decoded as an index token only when every character is an ASCII
// digit (so "007" and "0" are both indices); any other segment, including
// an empty one, is a name token. The empty string decodes to the empty
// token list.
func Decode(path string) []Token {
	if path == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		raw := unescape(p)
		if isAllDigits(raw) {
			n, err := strconv.Atoi(raw)
			if err == nil {
				tokens = append(tokens, Idx(n))
				continue
			}
		}
		tokens = append(tokens, Str(raw))
	}
	return tokens
}

// DecodeLiteral converts a slash-delimited wire path into tokens the same
// way Decode does, except every segment is kept as a name token even when
// it looks like an index. Used when reconstructing a JsonMove from a raw
// external patch, where there is no way to tell whether a numeric segment
// addressed a sequence position or a mapping key.
func DecodeLiteral(path string) []Token {
	if path == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, Str(unescape(p)))
	}
	return tokens
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Get walks tokens through cfg, returning the addressed value and whether
// the full path exists.
func Get(cfg any, tokens []Token) (any, bool) {
	cur := cfg
	for _, t := range tokens {
		switch v := cur.(type) {
		case map[string]any:
			if t.IsIndex {
				return nil, false
			}
			next, ok := v[t.Name]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			if !t.IsIndex || t.Index < 0 || t.Index >= len(v) {
				return nil, false
			}
			cur = v[t.Index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Exists reports whether tokens address a value in cfg.
func Exists(cfg any, tokens []Token) bool {
	_, ok := Get(cfg, tokens)
	return ok
}

// Parent returns tokens without its last element, or nil for the root.
func Parent(tokens []Token) []Token {
	if len(tokens) == 0 {
		return nil
	}
	return tokens[:len(tokens)-1]
}

// Set writes value at tokens within cfg, returning a new root. cfg is not
// mutated; only the spine from the root to tokens is copied (structural
// sharing of untouched subtrees).
func Set(cfg any, tokens []Token, value any) any {
	if len(tokens) == 0 {
		return value
	}
	return setAt(cfg, tokens, value)
}

func setAt(node any, tokens []Token, value any) any {
	if len(tokens) == 0 {
		return value
	}
	t := tokens[0]
	rest := tokens[1:]

	switch v := node.(type) {
	case map[string]any:
		cp := cloneMap(v)
		var child any
		if existing, ok := v[t.Name]; ok {
			child = existing
		}
		cp[t.Name] = setAt(child, rest, value)
		return cp
	case []any:
		cp := cloneSlice(v)
		if t.IsIndex && t.Index >= 0 && t.Index < len(cp) {
			cp[t.Index] = setAt(cp[t.Index], rest, value)
			return cp
		}
		if t.IsIndex && t.Index == len(cp) {
			return append(cp, setAt(nil, rest, value))
		}
		return cp
	default:
		// node does not exist or is a scalar; materialize the missing
		// spine as a map or slice depending on the next token's kind.
		if t.IsIndex {
			slice := make([]any, t.Index+1)
			slice[t.Index] = setAt(nil, rest, value)
			return slice
		}
		m := map[string]any{t.Name: setAt(nil, rest, value)}
		return m
	}
}

// Delete removes the value addressed by tokens from cfg, returning a new
// root. Deleting a non-existent path is a no-op copy.
func Delete(cfg any, tokens []Token) any {
	if len(tokens) == 0 {
		return map[string]any{}
	}
	return deleteAt(cfg, tokens)
}

func deleteAt(node any, tokens []Token) any {
	t := tokens[0]
	rest := tokens[1:]

	switch v := node.(type) {
	case map[string]any:
		cp := cloneMap(v)
		child, ok := cp[t.Name]
		if !ok {
			return cp
		}
		if len(rest) == 0 {
			delete(cp, t.Name)
			return cp
		}
		cp[t.Name] = deleteAt(child, rest)
		return cp
	case []any:
		if !t.IsIndex || t.Index < 0 || t.Index >= len(v) {
			return cloneSlice(v)
		}
		if len(rest) == 0 {
			out := make([]any, 0, len(v)-1)
			out = append(out, v[:t.Index]...)
			out = append(out, v[t.Index+1:]...)
			return out
		}
		cp := cloneSlice(v)
		cp[t.Index] = deleteAt(cp[t.Index], rest)
		return cp
	default:
		return node
	}
}

func cloneMap(m map[string]any) map[string]any {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func cloneSlice(s []any) []any {
	cp := make([]any, len(s))
	copy(cp, s)
	return cp
}

// DeepEqual reports structural equality between two Config values (or
// arbitrary JSON-shaped values), comparing map keys irrespective of
// iteration order.
func DeepEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, aval := range av {
			bval, ok := bv[k]
			if !ok || !DeepEqual(aval, bval) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !DeepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	default:
		return a == b
	}
}

// DeepCopy returns a value-level copy of a JSON-shaped value.
func DeepCopy(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(vv))
		for k, val := range vv {
			cp[k] = DeepCopy(val)
		}
		return cp
	case []any:
		cp := make([]any, len(vv))
		for i, val := range vv {
			cp[i] = DeepCopy(val)
		}
		return cp
	default:
		return v
	}
}

// IsEmptyTable reports whether v is a mapping with zero keys.
func IsEmptyTable(v any) bool {
	m, ok := v.(map[string]any)
	return ok && len(m) == 0
}

// CanonicalJSON marshals v with map keys sorted, so structurally equal
// values always produce byte-identical output regardless of Go map
// iteration order.
func CanonicalJSON(v any) []byte {
	data, err := json.Marshal(canonicalize(v))
	if err != nil {
		// v is always built from decoded JSON plus our own scalar types,
		// so this can only fail on a programmer error (e.g. a channel
		// smuggled into a Config), which indicates a bug in the caller.
		panic("configtree: value is not JSON-representable: " + err.Error())
	}
	return data
}

// canonicalize converts maps into a form whose marshaled key order is
// deterministic: encoding/json already sorts map[string]any keys, so this
// mostly just walks the tree rebuilding nested maps/slices for clarity and
// to guard against non-string-keyed maps slipping in.
func canonicalize(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(vv))
		for _, k := range keys {
			out[k] = canonicalize(vv[k])
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = canonicalize(e)
		}
		return out
	default:
		return vv
	}
}
