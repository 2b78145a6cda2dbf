package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Every role comparison in the
// application goes through this type rather than raw strings.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleTenant  Role = "tenant"
	RoleOwner   Role = "owner"
	RoleAgent   Role = "agent"
	RoleBuilder Role = "builder"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleTenant, RoleOwner, RoleAgent, RoleBuilder, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether an ordinary caller may pick this role for
// themselves. Admin is never self-assignable; promotion is the only path to it.
func (r Role) SelfAssignable() bool {
	return r.Valid() && r != RoleAdmin
}

// CanList reports whether the role is allowed to post property listings.
func (r Role) CanList() bool {
	return r == RoleOwner || r == RoleAgent || r == RoleBuilder
}

// RequiresKyc reports whether the role must complete document verification
// before full platform access.
func (r Role) RequiresKyc() bool {
	return r == RoleAgent || r == RoleBuilder
}

// PosterLabel is the display form stored on listings posted under this role.
func (r Role) PosterLabel() string {
	switch r {
	case RoleOwner:
		return "Owner"
	case RoleAgent:
		return "Agent"
	case RoleBuilder:
		return "Builder"
	}
	return string(r)
}
