package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/careers/pkg/jwtx"
)

// identityKeys bundles the identity provider key set with the verifier and
// the source that keeps it fresh.
type identityKeys struct {
	KeySet   *jwtx.KeySet
	Verifier jwtx.Verifier
	Source   *jwtx.JWKSSource
}

// initIdentityKeys loads the identity provider's public keys.
//
// Sources, in order of preference:
//   - IDP_JWKS_URL: fetched on startup and refreshed every IDP_JWKS_REFRESH.
//   - IDP_JWKS_FILE: a local JWKS document, as written by cmd/gentoken.
//
// A failed initial load is not fatal: /readyz reports the missing keys and
// the refresher keeps trying.
func initIdentityKeys(ctx context.Context, cfg Config, logger *slog.Logger) (*identityKeys, error) {
	if cfg.JWKSURL == "" && cfg.JWKSFile == "" {
		return nil, errors.New("one of IDP_JWKS_URL or IDP_JWKS_FILE is required")
	}

	keys := jwtx.NewKeySet()
	src := &jwtx.JWKSSource{
		Keys:     keys,
		URL:      cfg.JWKSURL,
		File:     cfg.JWKSFile,
		Interval: cfg.JWKSRefresh,
		Logger:   logger,
	}

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := src.Refresh(loadCtx); err != nil {
		logger.Warn("initial jwks load failed", "error", err, "url", cfg.JWKSURL, "file", cfg.JWKSFile)
	} else {
		logger.Info("identity provider keys loaded",
			"keys", len(keys.Snapshot().Keys),
			"source", sourceName(cfg),
		)
	}

	if cfg.Issuer == "" {
		logger.Warn("IDP_ISSUER not set, issuer claim will not be checked")
	}

	verifier := jwtx.NewVerifier(keys, jwtx.VerifyOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		Leeway:   jwtx.DefaultLeeway,
	})

	return &identityKeys{KeySet: keys, Verifier: verifier, Source: src}, nil
}

func sourceName(cfg Config) string {
	if cfg.JWKSURL != "" {
		return fmt.Sprintf("url:%s", cfg.JWKSURL)
	}
	return fmt.Sprintf("file:%s", cfg.JWKSFile)
}
