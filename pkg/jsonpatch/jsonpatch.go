// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package jsonpatch wraps github.com/evanphx/json-patch/v5 so the rest of
// this module never reimplements RFC 6902 apply semantics.
//
// This is the "JSON Patch library" collaborator spec.md marks out of
// scope: the sorter only ever calls Apply/Decode/Encode here, never walks
// a raw patch document itself.
package jsonpatch

import (
	"encoding/json"
	"fmt"

	evanphx "github.com/evanphx/json-patch/v5"
)

// Op is an RFC 6902 operation type.
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
	OpMove    Op = "move"
	OpCopy    Op = "copy"
	OpTest    Op = "test"
)

// PatchOp is a single JSON Patch operation (RFC 6902).
type PatchOp struct {
	Op    Op     `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
	From  string `json:"from,omitempty"`
}

// Patch is an ordered list of operations.
type Patch []PatchOp

// Decode parses a raw JSON Patch document.
func Decode(raw []byte) (Patch, error) {
	var ops Patch
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, fmt.Errorf("jsonpatch: invalid patch document: %w", err)
	}
	return ops, nil
}

// Encode marshals a Patch back to its RFC 6902 wire form.
func Encode(p Patch) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("jsonpatch: failed to marshal patch: %w", err)
	}
	return data, nil
}

// Apply applies patch to config and returns the resulting config. Neither
// the input config value nor patch is mutated.
func Apply(config any, patch Patch) (any, error) {
	docBytes, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("jsonpatch: failed to marshal config: %w", err)
	}

	patchBytes, err := Encode(patch)
	if err != nil {
		return nil, err
	}

	decoded, err := evanphx.DecodePatch(patchBytes)
	if err != nil {
		return nil, fmt.Errorf("jsonpatch: failed to decode patch: %w", err)
	}

	applied, err := decoded.Apply(docBytes)
	if err != nil {
		return nil, fmt.Errorf("jsonpatch: failed to apply patch: %w", err)
	}

	var result any
	if err := json.Unmarshal(applied, &result); err != nil {
		return nil, fmt.Errorf("jsonpatch: failed to unmarshal applied result: %w", err)
	}
	return result, nil
}

// ApplyOne applies a single operation to config.
func ApplyOne(config any, op PatchOp) (any, error) {
	return Apply(config, Patch{op})
}

// Validate checks a patch document is structurally sound per RFC 6902.
func Validate(patch Patch) error {
	for i, op := range patch {
		switch op.Op {
		case OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest:
		default:
			return fmt.Errorf("jsonpatch: invalid operation at index %d: %s", i, op.Op)
		}
		if op.Path == "" && op.Op != OpRemove {
			// empty path ("" -> root) is legal for every op; only flag
			// truly missing path values (nil is impossible from JSON
			// unmarshaling a required field, so this guards hand-built ops)
			continue
		}
		switch op.Op {
		case OpAdd, OpReplace, OpTest:
			if op.Value == nil {
				return fmt.Errorf("jsonpatch: missing value for %s operation at index %d", op.Op, i)
			}
		case OpMove, OpCopy:
			if op.From == "" {
				return fmt.Errorf("jsonpatch: missing from field for %s operation at index %d", op.Op, i)
			}
		}
	}
	return nil
}
