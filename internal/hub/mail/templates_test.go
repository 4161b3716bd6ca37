package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderInvitationEmail(t *testing.T) {
	t.Parallel()

	data := invitationEmailData{
		InviterName: "Alice",
		Role:        "manager",
		Department:  "Engineering",
		Message:     "Come build with us",
		AcceptURL:   "https://app.example.com/accept-invitation/tok123",
		ExpiresAt:   "Jan 2, 2026 15:04 UTC",
	}

	body, err := renderInvitationEmail(data)
	require.NoError(t, err)

	require.Contains(t, body.HTML, "Alice")
	require.Contains(t, body.HTML, "accept-invitation/tok123")
	require.Contains(t, body.HTML, "Come build with us")
	require.Contains(t, body.Text, "accept-invitation/tok123")
	require.Contains(t, body.Text, "manager")
}

func TestRenderInvitationEmailEscapesHTML(t *testing.T) {
	t.Parallel()

	data := invitationEmailData{
		InviterName: "Alice",
		Role:        "member",
		Message:     `<script>alert("x")</script>`,
		AcceptURL:   "https://app.example.com/accept-invitation/tok123",
	}

	body, err := renderInvitationEmail(data)
	require.NoError(t, err)
	require.False(t, strings.Contains(body.HTML, "<script>"), "personal note must be escaped")
}

func TestRenderInvitationEmailOmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	body, err := renderInvitationEmail(invitationEmailData{
		InviterName: "Alice",
		Role:        "member",
		AcceptURL:   "https://app.example.com/accept-invitation/tok123",
	})
	require.NoError(t, err)
	require.NotContains(t, body.HTML, "blockquote")
	require.NotContains(t, body.HTML, " in ")
}
