package jwtx_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/aussiebroadwan/careers/pkg/cryptox"
	"github.com/aussiebroadwan/careers/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://id.example.test"
	testAudience = "careers"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()
	key, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(kid, key)
	require.NoError(t, err)
	return signer
}

func newTestVerifier(t *testing.T, signers ...*jwtx.EdDSASigner) (*jwtx.KeySet, jwtx.Verifier) {
	t.Helper()
	ks := jwtx.NewKeySet()
	for _, s := range signers {
		require.NoError(t, ks.AddJWK(s.PublicJWK()))
	}
	return ks, jwtx.NewVerifier(ks, jwtx.VerifyOptions{
		Issuer:   testIssuer,
		Audience: []string{testAudience},
		Leeway:   jwtx.DefaultLeeway,
		Now:      func() time.Time { return testNow },
	})
}

func TestVerifyEdDSA(t *testing.T) {
	signer := newTestSigner(t, "idp-1")
	_, v := newTestVerifier(t, signer)

	claims := jwtx.NewIdentityClaims("user-1", "jane@acme.test", "Jane", testIssuer, []string{testAudience}, 5*time.Minute, testNow)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "jane@acme.test", got.Email)
	require.NotNil(t, got.EmailVerified)
	require.True(t, *got.EmailVerified)
	require.NoError(t, got.ValidateIdentity())
}

func TestVerifyRejects(t *testing.T) {
	signer := newTestSigner(t, "idp-1")
	stranger := newTestSigner(t, "idp-1")
	_, v := newTestVerifier(t, signer)

	sign := func(s *jwtx.EdDSASigner, mutate func(*jwtx.Claims)) string {
		c := jwtx.NewIdentityClaims("user-1", "jane@acme.test", "Jane", testIssuer, []string{testAudience}, 5*time.Minute, testNow)
		if mutate != nil {
			mutate(&c)
		}
		tok, err := s.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("wrong key same kid", func(t *testing.T) {
		_, err := v.Verify(sign(stranger, nil))
		require.Error(t, err)
	})

	t.Run("unknown kid", func(t *testing.T) {
		_, err := v.Verify(sign(newTestSigner(t, "idp-9"), nil))
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := v.Verify(sign(signer, func(c *jwtx.Claims) { c.Issuer = "https://evil.test" }))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := v.Verify(sign(signer, func(c *jwtx.Claims) { c.Audience = jwt.ClaimStrings{"billing"} }))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := v.Verify(sign(signer, func(c *jwtx.Claims) {
			c.ExpiresAt = jwt.NewNumericDate(testNow.Add(-time.Hour))
		}))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestVerifyRefusesKeyTypeConfusion(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddJWK(jwtx.NewES256JWK("shared", &ecKey.PublicKey)))
	v := jwtx.NewVerifier(ks, jwtx.VerifyOptions{Now: func() time.Time { return testNow }})

	// EdDSA header pointing at an EC key.
	signer := newTestSigner(t, "shared")
	tok, err := signer.Sign(jwtx.NewIdentityClaims("u", "e@x.test", "", "", nil, time.Minute, testNow))
	require.NoError(t, err)

	_, err = v.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrAlgMismatch)

	// A genuine ES256 token verifies.
	es := jwt.NewWithClaims(jwt.SigningMethodES256, jwtx.NewIdentityClaims("u", "e@x.test", "", "", nil, time.Minute, testNow))
	es.Header["kid"] = "shared"
	tok, err = es.SignedString(ecKey)
	require.NoError(t, err)

	got, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "u", got.Subject)
}
