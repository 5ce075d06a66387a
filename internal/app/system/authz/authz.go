// internal/app/system/authz/authz.go

// Package authz decides resource access from the verified request identity.
// Decisions are pure: no I/O, no side effects.
package authz

import (
	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/authn"
)

// Condition is the policy a caller must satisfy.
type Condition int

const (
	// AuthenticatedOnly requires any verified identity.
	AuthenticatedOnly Condition = iota
	// OwnerOrElevated requires the caller to own the target resource or to
	// hold the elevated role.
	OwnerOrElevated
)

// Guard evaluates access conditions. The elevated role is configuration, not
// a literal: deployments choose which role crosses user boundaries.
type Guard struct {
	ElevatedRole string
}

// NewGuard returns a guard whose elevated role is role.
func NewGuard(role string) *Guard {
	return &Guard{ElevatedRole: role}
}

// Authorize returns nil when id may act on the resource owned by ownerID
// under cond, and a kinded error otherwise. Rules evaluate in order: missing
// identity is always Unauthenticated, regardless of the condition.
func (g *Guard) Authorize(id *authn.Identity, ownerID string, cond Condition) error {
	if id == nil {
		return apperr.Unauthenticated("authentication required")
	}
	if cond == AuthenticatedOnly {
		return nil
	}
	if id.ID == ownerID || id.Role == g.ElevatedRole {
		return nil
	}
	return apperr.Forbidden("access denied")
}
