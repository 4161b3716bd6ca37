package http

import (
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type InvitationCancelHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Cancel Invitation Endpoint
//	@Description	Withdraw a pending invitation. Only an admin or the original inviter may cancel. The invitation is stored as expired and its token stops resolving.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path	string	true	"Invitation ID"
//	@Success		204	"cancelled"
//	@Failure		403	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationCancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.InviteService.Cancel(ctx, actorFromCtx(ctx), r.PathValue("id")); err != nil {
		writeInvitationError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
