// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package patchsorter drives a single end-to-end sort (PatchSorter), the
// YANG/non-YANG config split and change rebasing (ConfigSplitter,
// ChangeWrapper), and the two outer entry points, StrictPatchSorter and
// NonStrictPatchSorter.
package patchsorter

import "fmt"

// Kind discriminates the ways a sort can fail.
type Kind string

const (
	// KindInvalidInputPatch covers a from_patch call given more than one
	// operation, or a patch with a malformed path.
	KindInvalidInputPatch Kind = "invalid-input-patch"

	// KindInvalidTarget means apply(patch, current) failed schema
	// validation.
	KindInvalidTarget Kind = "invalid-target"

	// KindPatchTouchesSchemalessTables is StrictPatchSorter-only: the
	// patch names a table the schema does not model.
	KindPatchTouchesSchemalessTables Kind = "patch-touches-schemaless-tables"

	// KindNoValidOrdering means the search exhausted the state space
	// without reaching the goal.
	KindNoValidOrdering Kind = "no-valid-ordering"

	// KindSplitterOverlap means two splitter partitions claimed the same
	// field path.
	KindSplitterOverlap Kind = "splitter-overlap"

	// KindInternalInvariant means a generator produced a move the Diff
	// rejected, or some other bookkeeping assumption broke.
	KindInternalInvariant Kind = "internal-invariant"

	// KindUnauthorized means a policy.Enforcer denied the requesting
	// subject the sort mode it asked for. Not one of spec.md §7's six
	// kinds — this module's own ambient authorization layer (SPEC_FULL.md
	// §4) adds it alongside them.
	KindUnauthorized Kind = "unauthorized"
)

// Error is the single failure type every entry point in this package
// returns, carrying a Kind discriminant alongside the wrapped cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("patchsorter: %s: %v", e.Kind, e.Err)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}
