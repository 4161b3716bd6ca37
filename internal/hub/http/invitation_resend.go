package http

import (
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type InvitationResendHandler struct {
	InviteService *service.InviteService

	// AcceptURL builds the shareable acceptance link for a raw token.
	AcceptURL func(token string) string
}

// ServeHTTP godoc
//
//	@Summary		Resend Invitation Endpoint
//	@Description	Rotate the invitation's token and expiry window and email the invitee again. Allowed while the invitation is pending or expired; accepted and declined invitations stay terminal. The previous token stops resolving immediately.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string							true	"Invitation ID"
//	@Success		200	{object}	hubsdk.InvitationTokenResponse	"invitation, token, accept_url"
//	@Failure		403	{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		404	{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		409	{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		500	{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationResendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	res, err := h.InviteService.Resend(ctx, actorFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeInvitationError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.InvitationTokenResponse{
		Invitation: toInvitationRecord(res.Invitation),
		Token:      res.Token,
		AcceptURL:  h.AcceptURL(res.Token),
	})
}
