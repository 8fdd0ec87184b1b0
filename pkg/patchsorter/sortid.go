package patchsorter

import (
	"crypto/rand"
	"encoding/hex"
)

// newSortID returns an identifier that groups one Sort invocation's
// audit events together. It has no bearing on the sort itself — purely a
// correlation key for pkg/audit.
func newSortID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "sort-" + hex.EncodeToString(b)
}
