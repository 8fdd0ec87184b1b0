// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package policy gates who may invoke NonStrictPatchSorter.
//
// Tolerating schema-less tables is a meaningful privilege boundary in a
// real device-management system (spec.md §1, §4.11): StrictPatchSorter
// never touches them, but NonStrictPatchSorter willingly passes them
// through unchecked. This package is adapted from the teacher's
// pkg/policy — the same subject/Casbin-enforcer shape, narrowed from five
// REST CRUD actions (CanList/CanGet/CanCreate/CanUpdate/CanDelete against
// an *http.Request) down to the one decision this module's library
// surface actually needs: may subject request a given sort mode.
package policy

import "context"

// Mode names the sort entry point a caller is requesting authorization
// for.
type Mode string

const (
	// ModeStrict is StrictPatchSorter — never requires authorization
	// since it can't touch schema-less tables in the first place, but is
	// accepted here so one Enforcer can front both entry points.
	ModeStrict Mode = "strict"

	// ModeNonStrict is NonStrictPatchSorter — the privileged path, since
	// it tolerates schema-less tables.
	ModeNonStrict Mode = "non-strict"
)

// Subject identifies who is requesting a sort. UserID is the Casbin
// enforcement subject; Roles/Claims are carried for enforcers that want
// them (e.g. a custom Enforcer backed by role hierarchies) but are not
// interpreted by this package itself.
type Subject struct {
	UserID string
	Roles  []string
	Claims map[string]interface{}
}

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns an allowed Decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denied Decision carrying reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Enforcer decides whether subject may invoke the sorter in mode.
type Enforcer interface {
	Authorize(ctx context.Context, subject Subject, mode Mode) Decision
}

// HasRole reports whether subject carries role.
func HasRole(subject Subject, role string) bool {
	for _, r := range subject.Roles {
		if r == role {
			return true
		}
	}
	return false
}
