// Package main generates a development identity provider: an Ed25519 signing
// key, the matching JWKS for IDP_JWKS_FILE, and identity tokens signed by it.
package main

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/careers/pkg/cryptox"
	"github.com/aussiebroadwan/careers/pkg/jwtx"
)

func main() {
	keyPath := flag.String("key", "idp-dev.pem", "Ed25519 private key (PEM); created if missing")
	jwksPath := flag.String("jwks", "idp-dev.jwks.json", "Where to write the public JWKS")
	kid := flag.String("kid", "dev-1", "Key ID placed in the token header")
	userID := flag.String("user", "dev-user", "Subject (user ID) for the token")
	email := flag.String("email", "dev@localhost", "Verified email for the token")
	name := flag.String("name", "", "Display name for the token")
	issuer := flag.String("issuer", "careers-dev-idp", "Issuer claim (match IDP_ISSUER)")
	audience := flag.String("audience", "", "Comma separated audience (match IDP_AUDIENCE)")
	expiry := flag.Duration("expiry", 24*time.Hour, "Token expiry duration")
	flag.Parse()

	key, err := loadOrCreateKey(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading key: %v\n", err)
		os.Exit(1)
	}

	signer, err := jwtx.NewSignerEdDSA(*kid, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating signer: %v\n", err)
		os.Exit(1)
	}

	jwks, err := json.MarshalIndent(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JWKS: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*jwksPath, jwks, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JWKS: %v\n", err)
		os.Exit(1)
	}

	var aud []string
	for _, a := range strings.Split(*audience, ",") {
		if a = strings.TrimSpace(a); a != "" {
			aud = append(aud, a)
		}
	}

	claims := jwtx.NewIdentityClaims(*userID, *email, *name, *issuer, aud, *expiry, time.Now())
	token, err := signer.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

func loadOrCreateKey(path string) (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return cryptox.ParseEd25519PEM(data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	key, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	pem, err := cryptox.MarshalEd25519PEM(key)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, pem, 0o600); err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Generated new signing key at %s\n", path)
	return key, nil
}
