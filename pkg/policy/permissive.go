// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

package policy

import "context"

// PermissivePolicy authorizes every subject for every mode.
//
// This is the teacher's PermissivePolicy pattern ("allow all operations,
// development and testing only") and is what NonStrictPatchSorter falls
// back to when no Enforcer is configured, matching SPEC_FULL.md §4's "when
// no enforcer is configured, both sorters run unauthenticated".
//
// WARNING: do not wire this into a deployment where non-strict sorting
// must be restricted.
type PermissivePolicy struct{}

// NewPermissivePolicy returns an Enforcer that allows everything.
func NewPermissivePolicy() Enforcer {
	return PermissivePolicy{}
}

// Authorize implements Enforcer.
func (PermissivePolicy) Authorize(_ context.Context, _ Subject, _ Mode) Decision {
	return Allow()
}
