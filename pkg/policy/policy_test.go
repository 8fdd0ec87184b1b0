package policy

import (
	"context"
	"testing"
)

func TestPermissivePolicyAllowsEveryModeAndSubject(t *testing.T) {
	gate := NewPermissivePolicy()

	cases := []Subject{
		{},
		{UserID: "alice"},
		{UserID: "bob", Roles: []string{"operator"}},
	}
	for _, s := range cases {
		for _, mode := range []Mode{ModeStrict, ModeNonStrict} {
			if d := gate.Authorize(context.Background(), s, mode); !d.Allowed {
				t.Fatalf("permissive policy denied subject %+v mode %s: %s", s, mode, d.Reason)
			}
		}
	}
}

func TestHasRole(t *testing.T) {
	s := Subject{UserID: "alice", Roles: []string{"operator", "viewer"}}

	if !HasRole(s, "operator") {
		t.Fatal("expected HasRole to find operator")
	}
	if HasRole(s, "admin") {
		t.Fatal("expected HasRole to reject a role the subject doesn't carry")
	}
}

func TestDenyCarriesReason(t *testing.T) {
	d := Deny("subject alice may not request a non-strict sort")
	if d.Allowed {
		t.Fatal("expected Deny to produce a disallowed decision")
	}
	if d.Reason == "" {
		t.Fatal("expected Deny to carry a reason")
	}
}
