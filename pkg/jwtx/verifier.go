package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Supported JWT signing algorithms
const (
	AlgorithmRS256 = "RS256"
	AlgorithmES256 = "ES256"
	AlgorithmEdDSA = "EdDSA"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")

	ErrIssuer          = errors.New("jwtx: issuer mismatch")
	ErrAudience        = errors.New("jwtx: audience mismatch")
	ErrExpired         = errors.New("jwtx: token expired")
	ErrNotYetValid     = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim    = errors.New("jwtx: invalid claims")
	ErrUnverifiedEmail = errors.New("jwtx: email not verified")
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration

	// Algorithms restricts accepted "alg" headers. Empty allows all three
	// supported algorithms.
	Algorithms []string

	// Now defaults to time.Now.
	Now func() time.Time
}

// KeySetVerifier checks signatures against a KeySet, selecting the key by
// the "kid" header and refusing keys whose type does not match "alg".
type KeySetVerifier struct {
	keys *KeySet
	opts VerifyOptions
}

// NewVerifier returns a Verifier backed by keys.
func NewVerifier(keys *KeySet, opts VerifyOptions) *KeySetVerifier {
	if len(opts.Algorithms) == 0 {
		opts.Algorithms = []string{AlgorithmEdDSA, AlgorithmES256, AlgorithmRS256}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &KeySetVerifier{keys: keys, opts: opts}
}

// Verify validates the JWT string and returns its parsed claims.
func (v *KeySetVerifier) Verify(tokenStr string) (Claims, error) {
	// Time checks run below with our own clock and leeway.
	parser := jwt.NewParser(
		jwt.WithValidMethods(v.opts.Algorithms),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, v.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownKID), errors.Is(err, ErrAlgMismatch):
			return Claims{}, err
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateTimes(v.opts.Now(), v.opts.Leeway); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

func (v *KeySetVerifier) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: missing kid", ErrUnknownKID)
	}

	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
	}

	switch t.Method.Alg() {
	case AlgorithmEdDSA:
		if k, ok := pub.(ed25519.PublicKey); ok {
			return k, nil
		}
	case AlgorithmES256:
		if k, ok := pub.(*ecdsa.PublicKey); ok {
			return k, nil
		}
	case AlgorithmRS256:
		if k, ok := pub.(*rsa.PublicKey); ok {
			return k, nil
		}
	}
	return nil, fmt.Errorf("%w: kid %q cannot verify %s", ErrAlgMismatch, kid, t.Method.Alg())
}
