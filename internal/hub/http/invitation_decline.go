package http

import (
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type InvitationDeclineHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Decline Invitation Endpoint
//	@Description	Decline an invitation. Terminal: the token stops resolving and only a resend by the inviter can re-invite the address.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path	string	true	"Raw invitation token"
//	@Success		204		"declined"
//	@Failure		404		{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/decline/{token} [post].
func (h *InvitationDeclineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.InviteService.Decline(ctx, r.PathValue("token")); err != nil {
		writeInvitationError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
