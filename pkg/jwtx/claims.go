package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLeeway absorbs clock skew between this service and the identity
// provider when checking exp/nbf.
const DefaultLeeway = 30 * time.Second

// Claims are the identity-provider access token claims this service reads.
// Only verified email addresses are trusted for invite matching.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`

	// EmailVerified is a pointer so an absent claim is distinguishable from
	// an explicit false.
	EmailVerified *bool `json:"email_verified,omitempty"`

	Name string `json:"name,omitempty"`
}

// NewIdentityClaims builds claims the way the identity provider issues them.
// Used by development tooling and tests.
func NewIdentityClaims(
	subject, email, name string,
	issuer string,
	audience []string,
	ttl time.Duration,
	now time.Time,
) Claims {
	verified := true
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:         email,
		EmailVerified: &verified,
		Name:          name,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateTimes checks exp and nbf against now with a grace period.
func (c *Claims) ValidateTimes(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateIdentity requires a subject and an email the issuer asserts as
// verified. A missing email_verified claim counts as unverified.
func (c *Claims) ValidateIdentity() error {
	if c.Subject == "" || c.Email == "" {
		return ErrInvalidClaim
	}
	if c.EmailVerified == nil || !*c.EmailVerified {
		return ErrUnverifiedEmail
	}
	return nil
}
