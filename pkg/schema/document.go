// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

package schema

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CatalogDocument is the on-disk (YAML) representation of a Catalog,
// validated with struct tags before being compiled — the same
// struct-tag validation idiom the teacher applies to REST resources,
// applied here to schema-catalog documents.
type CatalogDocument struct {
	Tables []TableSchema `yaml:"tables" validate:"required,dive"`
}

var docValidate = validator.New()

// LoadCatalogYAML parses and validates a catalog document, returning a
// ready-to-use Catalog.
func LoadCatalogYAML(data []byte) (*Catalog, error) {
	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: failed to parse catalog document: %w", err)
	}

	if err := docValidate.Struct(doc); err != nil {
		return nil, fmt.Errorf("schema: invalid catalog document: %w", err)
	}

	cat := NewCatalog()
	for _, t := range doc.Tables {
		cat.AddTable(t)
	}
	return cat, nil
}

// MarshalYAML serializes a Catalog back into a CatalogDocument.
func (c *Catalog) MarshalYAML() ([]byte, error) {
	doc := CatalogDocument{}
	for _, name := range c.Tables() {
		ts, _ := c.Table(name)
		doc.Tables = append(doc.Tables, ts)
	}
	return yaml.Marshal(doc)
}
