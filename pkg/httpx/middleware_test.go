package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/careers/pkg/cryptox"
	"github.com/aussiebroadwan/careers/pkg/httpx"
	"github.com/aussiebroadwan/careers/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestRecover(t *testing.T) {
	h := httpx.Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "server_error")
}

func TestRequireJSON(t *testing.T) {
	h := httpx.RequireJSON(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v map[string]any
		if err := httpx.DecodeJSON(r.Body, &v); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ct, body string) int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, send("application/json; charset=utf-8", `{"a":1}`))
	require.Equal(t, http.StatusUnsupportedMediaType, send("text/plain", `{"a":1}`))
	require.Equal(t, http.StatusBadRequest, send("application/json", `{"a":"way too long for the cap"}`))
	require.Equal(t, http.StatusBadRequest, send("application/json", `{"a":1}{}`))
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}
	err := httpx.DecodeJSON(strings.NewReader(`{"email":"a@b.test","admin":true}`), &dst)
	require.ErrorIs(t, err, httpx.ErrBadJSON)
}

func TestAuthnMiddleware(t *testing.T) {
	now := time.Now()
	key, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("idp-1", key)
	require.NoError(t, err)

	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddJWK(signer.PublicJWK()))
	verifier := jwtx.NewVerifier(ks, jwtx.VerifyOptions{Issuer: "idp", Leeway: jwtx.DefaultLeeway})

	var got httpx.Principal
	h := httpx.AuthnMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpx.PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	call := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token", func(t *testing.T) {
		tok, err := signer.Sign(jwtx.NewIdentityClaims("user-1", "jane@acme.test", "Jane", "idp", nil, time.Minute, now))
		require.NoError(t, err)

		rec := call("Bearer " + tok)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, httpx.Principal{Subject: "user-1", Email: "jane@acme.test", Name: "Jane"}, got)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := call("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, call("Basic dXNlcjpwYXNz").Code)
	})

	t.Run("unverified email", func(t *testing.T) {
		claims := jwtx.NewIdentityClaims("user-1", "jane@acme.test", "Jane", "idp", nil, time.Minute, now)
		unverified := false
		claims.EmailVerified = &unverified
		tok, err := signer.Sign(claims)
		require.NoError(t, err)

		require.Equal(t, http.StatusUnauthorized, call("Bearer "+tok).Code)
	})

	t.Run("verification claim absent", func(t *testing.T) {
		claims := jwtx.NewIdentityClaims("user-1", "jane@acme.test", "Jane", "idp", nil, time.Minute, now)
		claims.EmailVerified = nil
		tok, err := signer.Sign(claims)
		require.NoError(t, err)

		require.Equal(t, http.StatusUnauthorized, call("Bearer "+tok).Code)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := signer.Sign(jwtx.NewIdentityClaims("user-1", "jane@acme.test", "Jane", "idp", nil, time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)

		rec := call("Bearer " + tok)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "token expired")
	})
}
