package service

import (
	"context"
	"testing"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/store/drivers/sqlite"
	"github.com/projecthub/projecthub/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newAccountFixture(t *testing.T) (*AccountService, *jwtx.Keypair) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	keypair, err := jwtx.GenerateKeypair()
	require.NoError(t, err)

	return &AccountService{
		Store:          st,
		Sessions:       keypair,
		Issuer:         "projecthub-test",
		BootstrapToken: "test-bootstrap-token",
		Now:            newFakeClock().Now,
	}, keypair
}

func TestBootstrapCreatesFirstAdmin(t *testing.T) {
	t.Parallel()
	svc, keypair := newAccountFixture(t)
	ctx := context.Background()

	user, session, err := svc.Bootstrap(ctx, "test-bootstrap-token", "Ada Admin", "Ada@Example.com", "a-strong-password")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, user.Role)
	require.Equal(t, "ada@example.com", user.Email)

	claims, err := keypair.Verify(session)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestBootstrapClosesAfterFirstUser(t *testing.T) {
	t.Parallel()
	svc, _ := newAccountFixture(t)
	ctx := context.Background()

	_, _, err := svc.Bootstrap(ctx, "test-bootstrap-token", "Ada", "ada@example.com", "a-strong-password")
	require.NoError(t, err)

	_, _, err = svc.Bootstrap(ctx, "test-bootstrap-token", "Eve", "eve@example.com", "a-strong-password")
	require.ErrorIs(t, err, ErrBootstrapClosed)
}

func TestBootstrapRequiresToken(t *testing.T) {
	t.Parallel()
	svc, _ := newAccountFixture(t)
	ctx := context.Background()

	_, _, err := svc.Bootstrap(ctx, "wrong-token", "Ada", "ada@example.com", "a-strong-password")
	require.ErrorIs(t, err, ErrBootstrapClosed)

	svc.BootstrapToken = ""
	_, _, err = svc.Bootstrap(ctx, "", "Ada", "ada@example.com", "a-strong-password")
	require.ErrorIs(t, err, ErrBootstrapClosed, "empty configuration disables bootstrap entirely")
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, keypair := newAccountFixture(t)
	ctx := context.Background()

	created, _, err := svc.Bootstrap(ctx, "test-bootstrap-token", "Ada", "ada@example.com", "a-strong-password")
	require.NoError(t, err)

	t.Run("valid credentials issue a session", func(t *testing.T) {
		user, session, err := svc.Login(ctx, "Ada@Example.com", "a-strong-password")
		require.NoError(t, err)
		require.Equal(t, created.ID, user.ID)

		claims, err := keypair.Verify(session)
		require.NoError(t, err)
		require.Equal(t, created.ID, claims.Subject)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, wrongPass := svc.Login(ctx, "ada@example.com", "bad-password")
		_, _, unknown := svc.Login(ctx, "nobody@example.com", "whatever")
		require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
		require.ErrorIs(t, unknown, ErrInvalidCredentials)
	})
}
