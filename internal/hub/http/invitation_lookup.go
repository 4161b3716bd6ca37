package http

import (
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type InvitationLookupHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invitation Lookup Endpoint
//	@Description	Resolve a raw invitation token to its public view for the acceptance page. Unknown, used and expired tokens are indistinguishable: all return 404 invalid_or_expired.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string							true	"Raw invitation token"
//	@Success		200		{object}	hubsdk.InvitationLookupResponse	"invitation, inviter, project"
//	@Failure		404		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invitations/token/{token} [get].
func (h *InvitationLookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	view, err := h.InviteService.Lookup(ctx, r.PathValue("token"))
	if err != nil {
		writeInvitationError(w, log, err)
		return
	}

	resp := hubsdk.InvitationLookupResponse{
		Invitation: toInvitationRecord(view.Invitation),
		Inviter: hubsdk.UserSummary{
			ID:    view.Inviter.ID,
			Name:  view.Inviter.Name,
			Email: view.Inviter.Email,
		},
	}
	if view.Project != nil {
		resp.Project = &hubsdk.ProjectSummary{
			ID:   view.Project.ID,
			Name: view.Project.Name,
		}
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}
