package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier verifies signed session tokens.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// Signer signs session claims.
type Signer interface {
	Sign(Claims) (string, error)
}

// Keypair is an Ed25519 signing key used for both signing and verifying
// session tokens. The service holds a single keypair; tokens are short-lived
// enough that rotation happens by restart.
type Keypair struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// GenerateKeypair creates a fresh ephemeral Ed25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}
	return &Keypair{priv: priv, pub: pub}, nil
}

// KeypairFromPEM loads an Ed25519 private key from PKCS8 PEM bytes, so a
// deployment can pin the session key across restarts.
func KeypairFromPEM(pemKey []byte) (*Keypair, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (Ed25519 requires PKCS8)", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not an Ed25519 private key")
	}

	return &Keypair{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

// Sign turns claims into a signed JWT string.
func (k *Keypair) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return t.SignedString(k.priv)
}

// Verify parses and validates a session token, enforcing the EdDSA method
// and standard time claims.
func (k *Keypair) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return k.pub, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, err
	}
	return claims, nil
}
