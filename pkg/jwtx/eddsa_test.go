package jwtx

import (
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeypair()
	require.NoError(t, err)

	now := time.Now()
	claims := NewSessionClaims(
		"user-1", "a@example.com", "Alice", "manager",
		"projecthub", DefaultSessionTTL, now,
	)

	raw, err := kp.Sign(claims)
	require.NoError(t, err)

	got, err := kp.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "a@example.com", got.Email)
	require.Equal(t, "manager", got.Role)
	require.NotEmpty(t, got.ID, "jti should be set")
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeypair()
	require.NoError(t, err)

	claims := NewSessionClaims(
		"user-1", "a@example.com", "Alice", "member",
		"projecthub", time.Minute, time.Now().Add(-time.Hour),
	)

	raw, err := kp.Sign(claims)
	require.NoError(t, err)

	_, err = kp.Verify(raw)
	require.Error(t, err)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	kp1, err := GenerateKeypair()
	require.NoError(t, err)
	kp2, err := GenerateKeypair()
	require.NoError(t, err)

	raw, err := kp1.Sign(NewSessionClaims(
		"user-1", "a@example.com", "Alice", "member",
		"projecthub", time.Minute, time.Now(),
	))
	require.NoError(t, err)

	_, err = kp2.Verify(raw)
	require.Error(t, err)
}

func TestKeypairFromPEM(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeypair()
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(kp.priv)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	loaded, err := KeypairFromPEM(pemBytes)
	require.NoError(t, err)

	raw, err := kp.Sign(NewSessionClaims(
		"user-1", "a@example.com", "Alice", "admin",
		"projecthub", time.Minute, time.Now(),
	))
	require.NoError(t, err)

	got, err := loaded.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "admin", got.Role)

	_, err = KeypairFromPEM([]byte("not pem"))
	require.Error(t, err)
}
