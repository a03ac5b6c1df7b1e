package jwtx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// maxJWKSBytes bounds a JWKS document.
const maxJWKSBytes = 1 << 20

// JWKSSource keeps a KeySet in sync with the identity provider, reading the
// JWKS from URL or, when URL is empty, from File.
type JWKSSource struct {
	Keys     *KeySet
	URL      string
	File     string
	Interval time.Duration
	Client   *http.Client
	Logger   *slog.Logger
}

// Refresh fetches the JWKS once and swaps it into Keys.
func (s *JWKSSource) Refresh(ctx context.Context) error {
	var (
		data []byte
		err  error
	)
	switch {
	case s.URL != "":
		data, err = s.fetch(ctx)
	case s.File != "":
		data, err = os.ReadFile(s.File)
	default:
		return errors.New("jwtx: JWKS source needs a URL or a file")
	}
	if err != nil {
		return err
	}

	var jwks JWKS
	if err := json.Unmarshal(data, &jwks); err != nil {
		return fmt.Errorf("jwtx: decode JWKS: %w", err)
	}
	if len(jwks.Keys) == 0 {
		return errors.New("jwtx: JWKS has no keys")
	}
	return s.Keys.ResetFromJWKS(jwks)
}

func (s *JWKSSource) fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jwtx: fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwtx: fetch JWKS: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxJWKSBytes))
}

// Run refreshes on every tick until ctx is done. Failures keep the previous
// keys and are logged.
func (s *JWKSSource) Run(ctx context.Context) {
	if s.Interval <= 0 {
		return
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				logger.Warn("jwks refresh failed", slog.Any("error", err))
			}
		}
	}
}
