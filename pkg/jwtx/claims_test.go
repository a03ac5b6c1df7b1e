package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/careers/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "https://id.example.test"}}

	require.NoError(t, c.ValidateIssuer("https://id.example.test"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("https://other.test"), jwtx.ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"careers", "media"}}}

	require.NoError(t, c.ValidateAudience([]string{"careers"}))
	require.NoError(t, c.ValidateAudience([]string{"foo", "media"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"admin"}), jwtx.ErrAudience)
}

func TestValidateTimes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		exp    *jwt.NumericDate
		nbf    *jwt.NumericDate
		leeway time.Duration
		want   error
	}{
		{"valid", jwt.NewNumericDate(now.Add(time.Minute)), nil, 0, nil},
		{"expired", jwt.NewNumericDate(now.Add(-time.Minute)), nil, 0, jwtx.ErrExpired},
		{"expired within leeway", jwt.NewNumericDate(now.Add(-10 * time.Second)), nil, 30 * time.Second, nil},
		{"not yet valid", jwt.NewNumericDate(now.Add(time.Hour)), jwt.NewNumericDate(now.Add(time.Minute)), 0, jwtx.ErrNotYetValid},
		{"missing exp", nil, nil, 0, jwtx.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: tt.exp, NotBefore: tt.nbf}}
			err := c.ValidateTimes(now, tt.leeway)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateIdentity(t *testing.T) {
	verified, unverified := true, false

	tests := []struct {
		name   string
		claims jwtx.Claims
		want   error
	}{
		{"verified", jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}, Email: "a@b.test", EmailVerified: &verified}, nil},
		{"claim absent", jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}, Email: "a@b.test"}, jwtx.ErrUnverifiedEmail},
		{"explicitly unverified", jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}, Email: "a@b.test", EmailVerified: &unverified}, jwtx.ErrUnverifiedEmail},
		{"no email", jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}, jwtx.ErrInvalidClaim},
		{"no subject", jwtx.Claims{Email: "a@b.test"}, jwtx.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claims.ValidateIdentity()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}
