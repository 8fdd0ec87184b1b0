// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package schema provides the Oracle contract spec.md §6 calls the schema
// registry ("the YANG models"), plus a concrete, declarative, in-memory
// Catalog implementing it.
//
// The real schema/dependency oracle is an external collaborator per
// spec.md §1 — a production deployment of this module would point at a
// compiled YANG model tree. Catalog exists so the sorter is independently
// buildable and testable: it is a small declarative stand-in, not a YANG
// compiler.
//
// Usage:
//
//	cat := schema.NewCatalog()
//	cat.AddTable(schema.TableSchema{
//	    Name:               "PORT",
//	    CreateOnlyPatterns: []string{"*/lanes"},
//	})
//	ok := cat.ValidateConfig(cfg)
package schema

import (
	"fmt"

	"github.com/alexlovelltroy/patchsort/pkg/configtree"
	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
)

// Oracle is the schema/dependency contract the patch sorter consults.
// spec.md §6 fixes this as an external collaborator; Catalog below is the
// default, locally-runnable implementation.
type Oracle interface {
	// ValidateConfig reports whether cfg is schema-valid.
	ValidateConfig(cfg configtree.Config) bool

	// FindReferences returns every location in cfg whose schema-declared
	// leafref points at path or any descendant of path.
	FindReferences(cfg configtree.Config, path []configtree.Token) [][]configtree.Token

	// FindOutgoingReferences returns the target row path of every
	// schema-declared leafref sourced from a row at or under path (or from
	// a row that path itself descends into). It is the inverse of
	// FindReferences: FindReferences answers "what points at this
	// subtree", FindOutgoingReferences answers "what does this subtree
	// point at".
	FindOutgoingReferences(cfg configtree.Config, path []configtree.Token) [][]configtree.Token

	// TableHasSchema reports whether table is modeled by the schema.
	TableHasSchema(table string) bool

	// IsCreateOnly reports whether path is declared create-only.
	IsCreateOnly(path []configtree.Token) bool

	// ValidatePatchOnlyTablesWithSchema reports whether every table a
	// patch touches has schema coverage.
	ValidatePatchOnlyTablesWithSchema(patch jsonpatch.Patch) bool
}

// ReferenceRule declares that, for every row of SourceTable, the value(s)
// held at SourceField are keys into TargetTable (a leafref).
type ReferenceRule struct {
	SourceField string
	TargetTable string
}

// TableSchema declaratively describes one table's shape.
type TableSchema struct {
	Name string `yaml:"name" validate:"required"`

	// RequiredFields lists field names every row must contain.
	RequiredFields []string `yaml:"requiredFields"`

	// CreateOnlyPatterns are table-relative path patterns (e.g.
	// "*/lanes" meaning /<Name>/*/lanes) where "*" matches exactly one
	// token. Values at these paths may be set at row creation and never
	// modified thereafter.
	CreateOnlyPatterns []string `yaml:"createOnlyPatterns"`

	// References declares leafref relationships sourced from this table.
	References []ReferenceRule `yaml:"references"`
}

// Catalog is an in-memory, declarative implementation of Oracle.
type Catalog struct {
	tables map[string]TableSchema
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]TableSchema)}
}

// AddTable registers (or replaces) a table's schema.
func (c *Catalog) AddTable(t TableSchema) {
	c.tables[t.Name] = t
}

// TableHasSchema implements Oracle.
func (c *Catalog) TableHasSchema(table string) bool {
	_, ok := c.tables[table]
	return ok
}

// IsCreateOnly implements Oracle.
func (c *Catalog) IsCreateOnly(path []configtree.Token) bool {
	if len(path) == 0 {
		return false
	}
	table := path[0].Name
	ts, ok := c.tables[table]
	if !ok {
		return false
	}
	rel := path[1:]
	for _, pattern := range ts.CreateOnlyPatterns {
		if matchesPattern(rel, configtree.Decode(pattern)) {
			return true
		}
	}
	return false
}

func matchesPattern(path, pattern []configtree.Token) bool {
	if len(path) != len(pattern) {
		return false
	}
	for i, p := range pattern {
		if p.Name == "*" && !p.IsIndex {
			continue
		}
		if p != path[i] {
			return false
		}
	}
	return true
}

// ValidateConfig implements Oracle. It checks, for every table with
// schema coverage, that every row has the table's required fields and
// that every declared reference resolves to an existing row. Tables
// without schema coverage are treated opaquely and never inspected.
func (c *Catalog) ValidateConfig(cfg configtree.Config) bool {
	for name, ts := range c.tables {
		body, ok := cfg[name]
		if !ok {
			continue
		}
		rows, ok := body.(map[string]any)
		if !ok {
			// legacy non-mapping table shapes are not modeled by this
			// catalog; treat as opaque rather than failing validation.
			continue
		}
		for rowKey, rowVal := range rows {
			row, ok := rowVal.(map[string]any)
			if !ok {
				return false
			}
			for _, req := range ts.RequiredFields {
				if _, ok := row[req]; !ok {
					return false
				}
			}
			for _, ref := range ts.References {
				if !c.referenceResolves(cfg, row, ref) {
					return false
				}
			}
			_ = rowKey
		}
	}
	return true
}

func (c *Catalog) referenceResolves(cfg configtree.Config, row map[string]any, ref ReferenceRule) bool {
	val, ok := row[ref.SourceField]
	if !ok {
		return true // absent optional reference field: nothing to resolve
	}
	targetTable, _ := cfg[ref.TargetTable].(map[string]any)
	for _, key := range referenceKeys(val) {
		if targetTable == nil {
			return false
		}
		if _, ok := targetTable[key]; !ok {
			return false
		}
	}
	return true
}

// referenceKeys normalizes a reference field's value into row keys: a
// string is one key (it is not split on commas), a list yields its string
// elements, and any other value yields no keys.
func referenceKeys(val any) []string {
	switch v := val.(type) {
	case string:
		return []string{v}
	case []any:
		keys := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				keys = append(keys, s)
			}
		}
		return keys
	default:
		return nil
	}
}

// FindReferences implements Oracle.
func (c *Catalog) FindReferences(cfg configtree.Config, path []configtree.Token) [][]configtree.Token {
	var found [][]configtree.Token

	for sourceTable, ts := range c.tables {
		body, ok := cfg[sourceTable].(map[string]any)
		if !ok {
			continue
		}
		for _, ref := range ts.References {
			for rowKey, rowVal := range body {
				row, ok := rowVal.(map[string]any)
				if !ok {
					continue
				}
				val, ok := row[ref.SourceField]
				if !ok {
					continue
				}
				switch v := val.(type) {
				case string:
					target := []configtree.Token{configtree.Str(ref.TargetTable), configtree.Str(v)}
					if hasPrefix(target, path) {
						found = append(found, []configtree.Token{
							configtree.Str(sourceTable), configtree.Str(rowKey), configtree.Str(ref.SourceField),
						})
					}
				case []any:
					for i, e := range v {
						s, ok := e.(string)
						if !ok {
							continue
						}
						target := []configtree.Token{configtree.Str(ref.TargetTable), configtree.Str(s)}
						if hasPrefix(target, path) {
							found = append(found, []configtree.Token{
								configtree.Str(sourceTable), configtree.Str(rowKey), configtree.Str(ref.SourceField), configtree.Idx(i),
							})
						}
					}
				}
			}
		}
	}
	return found
}

// FindOutgoingReferences implements Oracle.
func (c *Catalog) FindOutgoingReferences(cfg configtree.Config, path []configtree.Token) [][]configtree.Token {
	var found [][]configtree.Token

	for sourceTable, ts := range c.tables {
		if len(ts.References) == 0 {
			continue
		}
		body, ok := cfg[sourceTable].(map[string]any)
		if !ok {
			continue
		}
		for rowKey, rowVal := range body {
			rowPath := []configtree.Token{configtree.Str(sourceTable), configtree.Str(rowKey)}
			if !pathsComparable(rowPath, path) {
				continue
			}
			row, ok := rowVal.(map[string]any)
			if !ok {
				continue
			}
			for _, ref := range ts.References {
				val, ok := row[ref.SourceField]
				if !ok {
					continue
				}
				for _, key := range referenceKeys(val) {
					found = append(found, []configtree.Token{configtree.Str(ref.TargetTable), configtree.Str(key)})
				}
			}
		}
	}
	return found
}

// pathsComparable reports whether one of a, b is a prefix of the other
// (including equal), i.e. whether one path is rooted inside the other.
func pathsComparable(a, b []configtree.Token) bool {
	return hasPrefix(a, b) || hasPrefix(b, a)
}

// hasPrefix reports whether prefix is a prefix of path (including equal).
func hasPrefix(path, prefix []configtree.Token) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i, p := range prefix {
		if p != path[i] {
			return false
		}
	}
	return true
}

// ValidatePatchOnlyTablesWithSchema implements Oracle.
func (c *Catalog) ValidatePatchOnlyTablesWithSchema(patch jsonpatch.Patch) bool {
	for _, op := range patch {
		tokens := configtree.Decode(op.Path)
		if len(tokens) == 0 {
			// a whole-config operation cannot be attributed to a single
			// table; strict mode's caller is responsible for rejecting
			// whole-config patches outright if that is undesired.
			continue
		}
		if !c.TableHasSchema(tokens[0].Name) {
			return false
		}
	}
	return true
}

// Tables returns the set of table names this catalog models.
func (c *Catalog) Tables() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	return names
}

// TablesWithoutSchema returns every top-level table in cfg that this
// catalog does not model.
func (c *Catalog) TablesWithoutSchema(cfg configtree.Config) []string {
	var out []string
	for name := range cfg {
		if !c.TableHasSchema(name) {
			out = append(out, name)
		}
	}
	return out
}

// Table returns the schema registered for name, if any.
func (c *Catalog) Table(name string) (TableSchema, bool) {
	ts, ok := c.tables[name]
	return ts, ok
}

// String implements fmt.Stringer for debug output.
func (c *Catalog) String() string {
	return fmt.Sprintf("schema.Catalog{tables=%v}", c.Tables())
}
