// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

package policy

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/persist"
)

// CasbinEnforcer wraps a Casbin enforcer to implement Enforcer, declaring
// policy as Casbin (subject, "sort", mode) rules instead of custom Go
// conditionals.
//
// Example usage:
//
//	enforcer, _ := casbin.NewEnforcer("model.conf", "policy.csv")
//	gate := policy.NewCasbinEnforcer(enforcer)
//	sorter := patchsorter.NewNonStrictPatchSorter(oracle, sortalgo.DFS)
//	sorter.Gate = gate
type CasbinEnforcer struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcer wraps an already-built Casbin enforcer.
func NewCasbinEnforcer(enforcer *casbin.Enforcer) Enforcer {
	return CasbinEnforcer{enforcer: enforcer}
}

// NewCasbinEnforcerFromFiles builds a Casbin enforcer from a model and
// policy file.
func NewCasbinEnforcerFromFiles(modelPath, policyPath string) (Enforcer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	return NewCasbinEnforcer(enforcer), nil
}

// NewCasbinEnforcerFromAdapter builds a Casbin enforcer against a custom
// persist.Adapter (e.g. a database-backed one).
func NewCasbinEnforcerFromAdapter(modelPath string, adapter persist.Adapter) (Enforcer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	return NewCasbinEnforcer(enforcer), nil
}

// GetEnforcer returns the underlying Casbin enforcer for advanced usage
// (policy management, role assignment, etc).
func (c CasbinEnforcer) GetEnforcer() *casbin.Enforcer {
	return c.enforcer
}

// Authorize implements Enforcer as a single Casbin Enforce call: subject,
// object "sort", action mode.
func (c CasbinEnforcer) Authorize(_ context.Context, subject Subject, mode Mode) Decision {
	if subject.UserID == "" {
		return Deny("no authenticated subject provided")
	}

	allowed, err := c.enforcer.Enforce(subject.UserID, "sort", string(mode))
	if err != nil {
		return Deny(fmt.Sprintf("policy evaluation error: %v", err))
	}
	if !allowed {
		return Deny(fmt.Sprintf("subject %s may not request a %s sort", subject.UserID, mode))
	}
	return Allow()
}
