// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package entschema declares the Ent schema for Casbin policy persistence
// used by policy.NewCasbinEnforcerWithEntAdapter. Like the teacher's own
// pkg/storage/ent/schema, this is `entc generate` input only: nothing in
// this module imports the generated client directly, the adapter speaks
// to the table casbin-ent-adapter itself manages.
package entschema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CasbinRule holds the schema definition for Casbin policy rules:
// (subject, "sort", mode) for this module, in the column layout the
// standard Casbin adapter format expects.
type CasbinRule struct {
	ent.Schema
}

// Fields of the CasbinRule.
func (CasbinRule) Fields() []ent.Field {
	return []ent.Field{
		field.String("ptype").
			NotEmpty().
			Comment("Policy type (p for policy, g for role)"),

		field.String("v0").
			Optional().
			Comment("Subject (the userID passed to Enforcer.Authorize)"),

		field.String("v1").
			Optional().
			Comment(`Object; always "sort" for this module`),

		field.String("v2").
			Optional().
			Comment("Action: the requested policy.Mode (strict or non-strict)"),

		field.String("v3").
			Optional().
			Comment("Additional parameter"),

		field.String("v4").
			Optional().
			Comment("Additional parameter"),

		field.String("v5").
			Optional().
			Comment("Additional parameter"),
	}
}

// Indexes of the CasbinRule.
func (CasbinRule) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("ptype", "v0", "v1", "v2"),
	}
}
