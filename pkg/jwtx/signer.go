package jwtx

import (
	"crypto/ed25519"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSASigner mints tokens shaped like the identity provider's. The service
// never signs in production; this backs local tooling and tests.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
}

// NewSignerEdDSA wraps an Ed25519 private key.
func NewSignerEdDSA(kid string, key ed25519.PrivateKey) (*EdDSASigner, error) {
	if kid == "" {
		return nil, errors.New("jwtx: signer requires a kid")
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 private key size")
	}
	return &EdDSASigner{kid: kid, key: key}, nil
}

func (s *EdDSASigner) Alg() string { return AlgorithmEdDSA }
func (s *EdDSASigner) KID() string { return s.kid }

// Sign takes your claims and turns them into a signed JWT string.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK returns the key to publish in a JWKS.
func (s *EdDSASigner) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, s.key.Public().(ed25519.PublicKey))
}
