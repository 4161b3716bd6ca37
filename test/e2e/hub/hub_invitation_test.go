package hub_test

import (
	"strings"
	"testing"

	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/stretchr/testify/require"
)

// TestInvitationLifecycle walks the happy path end to end: mint an
// invitation, resolve the token on the acceptance page, redeem it, and sign
// in as the new account.
func TestInvitationLifecycle(t *testing.T) {
	baseURL, cleanup := setupHubContainer(t)
	defer cleanup()

	client := hubsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)

	created, err := admin.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
		Email:      "Taylor.Dev@Example.com",
		Role:       "member",
		Department: "Engineering",
		Message:    "Come build things with us.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)
	require.Contains(t, created.AcceptURL, created.Token)
	require.Equal(t, "pending", created.Invitation.Status)
	require.Equal(t, "taylor.dev@example.com", created.Invitation.Email, "email should be normalised")

	t.Run("duplicate active invitation is refused", func(t *testing.T) {
		_, err := admin.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
			Email: "taylor.dev@example.com",
			Role:  "member",
		})
		assertAPIError(t, err, hubsdk.ErrorCodeDuplicateInvite, "second active invitation for same email")
	})

	t.Run("lookup resolves the token to a composed view", func(t *testing.T) {
		lookup, err := client.LookupInvitation(t.Context(), created.Token)
		require.NoError(t, err)
		require.Equal(t, created.Invitation.ID, lookup.Invitation.ID)
		require.Equal(t, "Come build things with us.", lookup.Invitation.Message)
		require.Equal(t, adminName, lookup.Inviter.Name)
		require.Nil(t, lookup.Project)
	})

	t.Run("accept with a weak password does not burn the token", func(t *testing.T) {
		_, err := client.AcceptInvitation(t.Context(), created.Token, hubsdk.AcceptInvitationRequest{
			Name:     "Taylor Dev",
			Password: "short",
		})
		assertAPIError(t, err, hubsdk.ErrorCodeInvalidRequest, "weak password must be rejected")

		_, err = client.LookupInvitation(t.Context(), created.Token)
		require.NoError(t, err, "token must stay redeemable after a failed validation")
	})

	session, err := client.AcceptInvitation(t.Context(), created.Token, hubsdk.AcceptInvitationRequest{
		Name:     "Taylor Dev",
		Password: "Taylor123!pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "taylor.dev@example.com", session.User.Email)
	require.Equal(t, "member", session.User.Role)
	require.Equal(t, "Engineering", session.User.Department)

	t.Run("token is single use", func(t *testing.T) {
		_, err := client.LookupInvitation(t.Context(), created.Token)
		assertAPIError(t, err, hubsdk.ErrorCodeInvalidOrExpired, "used token must stop resolving")

		_, err = client.AcceptInvitation(t.Context(), created.Token, hubsdk.AcceptInvitationRequest{
			Name:     "Somebody Else",
			Password: "Other123!pass",
		})
		assertAPIError(t, err, hubsdk.ErrorCodeInvalidOrExpired, "second redemption must fail")
	})

	t.Run("new account can log in", func(t *testing.T) {
		resp, err := client.Login(t.Context(), "taylor.dev@example.com", "Taylor123!pass")
		require.NoError(t, err)
		require.Equal(t, session.User.ID, resp.User.ID)
	})

	t.Run("inviting an existing user is refused", func(t *testing.T) {
		_, err := admin.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
			Email: "taylor.dev@example.com",
			Role:  "member",
		})
		assertAPIError(t, err, hubsdk.ErrorCodeUserExists, "invitation for an existing account")
	})

	t.Run("list shows the accepted invitation", func(t *testing.T) {
		list, err := admin.ListInvitations(t.Context(), "accepted", 0, 0)
		require.NoError(t, err)
		require.Equal(t, 1, list.Total)
		require.Len(t, list.Invitations, 1)
		require.Equal(t, created.Invitation.ID, list.Invitations[0].ID)
		require.NotNil(t, list.Invitations[0].AcceptedAt)
		require.Equal(t, session.User.ID, list.Invitations[0].AcceptedBy)
	})

	t.Run("members cannot mint invitations", func(t *testing.T) {
		member := client.WithToken(session.Token)
		_, err := member.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
			Email: "another@example.com",
			Role:  "member",
		})
		require.Error(t, err)

		var apiErr *hubsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 403, apiErr.StatusCode, "member role must be refused")
	})
}

// TestInvitationDecline verifies declining is terminal and burns the token.
func TestInvitationDecline(t *testing.T) {
	baseURL, cleanup := setupHubContainer(t)
	defer cleanup()

	client := hubsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)

	created, err := admin.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
		Email: "declined@example.com",
		Role:  "member",
	})
	require.NoError(t, err)

	require.NoError(t, client.DeclineInvitation(t.Context(), created.Token))

	_, err = client.LookupInvitation(t.Context(), created.Token)
	assertAPIError(t, err, hubsdk.ErrorCodeInvalidOrExpired, "declined token must stop resolving")

	err = client.DeclineInvitation(t.Context(), created.Token)
	assertAPIError(t, err, hubsdk.ErrorCodeInvalidOrExpired, "second decline must fail")

	// The address is free for a fresh invitation once the first is declined.
	_, err = admin.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
		Email: "declined@example.com",
		Role:  "member",
	})
	require.NoError(t, err)
}

// TestInvitationCancelAndResend covers the management mutations: withdrawing
// an invitation and rotating its token.
func TestInvitationCancelAndResend(t *testing.T) {
	baseURL, cleanup := setupHubContainer(t)
	defer cleanup()

	client := hubsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)

	t.Run("cancel kills the token", func(t *testing.T) {
		created, err := admin.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
			Email: "cancelled@example.com",
			Role:  "member",
		})
		require.NoError(t, err)

		require.NoError(t, admin.CancelInvitation(t.Context(), created.Invitation.ID))

		_, err = client.LookupInvitation(t.Context(), created.Token)
		assertAPIError(t, err, hubsdk.ErrorCodeInvalidOrExpired, "cancelled token must stop resolving")

		err = admin.CancelInvitation(t.Context(), created.Invitation.ID)
		assertAPIError(t, err, hubsdk.ErrorCodeInvalidTransition, "double cancel must be refused")

		// Cancelled invitations are stored as expired, so resend can revive
		// them with a fresh token.
		revived, err := admin.ResendInvitation(t.Context(), created.Invitation.ID)
		require.NoError(t, err)
		require.Equal(t, "pending", revived.Invitation.Status)

		_, err = client.LookupInvitation(t.Context(), revived.Token)
		require.NoError(t, err)
	})

	t.Run("resend rotates the token", func(t *testing.T) {
		created, err := admin.CreateInvitation(t.Context(), hubsdk.CreateInvitationRequest{
			Email: "rotated@example.com",
			Role:  "manager",
		})
		require.NoError(t, err)

		resent, err := admin.ResendInvitation(t.Context(), created.Invitation.ID)
		require.NoError(t, err)
		require.NotEmpty(t, resent.Token)
		require.NotEqual(t, created.Token, resent.Token)
		require.Equal(t, created.Invitation.ID, resent.Invitation.ID)
		require.Equal(t, "pending", resent.Invitation.Status)

		_, err = client.LookupInvitation(t.Context(), created.Token)
		assertAPIError(t, err, hubsdk.ErrorCodeInvalidOrExpired, "old token must stop resolving")

		lookup, err := client.LookupInvitation(t.Context(), resent.Token)
		require.NoError(t, err)
		require.Equal(t, created.Invitation.ID, lookup.Invitation.ID)
	})

	t.Run("garbage tokens collapse to the same error", func(t *testing.T) {
		_, err := client.LookupInvitation(t.Context(), strings.Repeat("x", 43))
		assertAPIError(t, err, hubsdk.ErrorCodeInvalidOrExpired, "unknown token")
	})
}
