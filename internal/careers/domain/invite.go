package domain

import "time"

type Invite struct {
	ID         string
	Email      string
	TenantID   string
	Role       Role
	TokenHash  string // SHA-256 fingerprint of the bearer token
	Accepted   bool
	AcceptedBy string // empty until accepted
	AcceptedAt *time.Time
	ExpiresAt  time.Time
	InvitedBy  string
	CreatedAt  time.Time
	LapsedAt   *time.Time // set once an unaccepted invite is known to be expired
}

// Expired uses a strict comparison: an invite expiring exactly at now is
// already expired.
func (i Invite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Pending reports whether the invite still blocks a new one for the same
// (email, tenant) pair.
func (i Invite) Pending(now time.Time) bool {
	return !i.Accepted && i.LapsedAt == nil && !i.Expired(now)
}

// IssuedInvite is returned exactly once, at issuance. Token is never stored.
type IssuedInvite struct {
	Invite
	Token string
}
