package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// InviteTokenSize is the entropy of an invite token in bytes. Encoded it is
// 43 base64url characters.
const InviteTokenSize = 32

var ErrMalformedToken = errors.New("cryptox: malformed token")

// GenerateToken returns size random bytes encoded as base64url without
// padding.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewInviteToken returns a fresh bearer token and the fingerprint to persist
// in its place.
func NewInviteToken() (token, fingerprint string, err error) {
	token, err = GenerateToken(InviteTokenSize)
	if err != nil {
		return "", "", err
	}
	return token, FingerprintToken(token), nil
}

// FingerprintToken returns the base64url SHA-256 of token. Lookups go through
// the fingerprint so a leaked table does not leak usable tokens.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// NormalizeToken trims whitespace and rejects anything that is not a
// plausible base64url token. It never says whether the token exists.
func NormalizeToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" || len(token) > 256 {
		return "", ErrMalformedToken
	}
	if _, err := base64.RawURLEncoding.DecodeString(token); err != nil {
		return "", ErrMalformedToken
	}
	return token, nil
}

// EqualFingerprints compares two fingerprints in constant time.
func EqualFingerprints(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
