package domain

import (
	"errors"
	"strings"
)

// Role is a member's grant within a tenant. Only the four declared values
// are ever persisted.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// Roles lists every role ordered by decreasing privilege.
var Roles = []Role{RoleOwner, RoleAdmin, RoleEditor, RoleViewer}

// ParseRole accepts the canonical upper-case form only.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// RoleSet is an allow-list of roles for an access check.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from roles. Unknown roles are kept so that
// Validate can reject them instead of silently dropping them.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Common allow-lists used by protected actions.
var (
	ManageMembers = NewRoleSet(RoleOwner, RoleAdmin)
	EditContent   = NewRoleSet(RoleOwner, RoleAdmin, RoleEditor)
	AnyMember     = NewRoleSet(RoleOwner, RoleAdmin, RoleEditor, RoleViewer)
)

func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Validate requires a non-empty set drawn from the enumerated roles.
func (s RoleSet) Validate() error {
	if len(s) == 0 {
		return ErrUnknownRole
	}
	for r := range s {
		if !r.Valid() {
			return ErrUnknownRole
		}
	}
	return nil
}

// Slice returns the members in privilege order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range Roles {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}
