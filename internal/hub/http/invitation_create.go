package http

import (
	"encoding/json"
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type InvitationCreateHandler struct {
	InviteService *service.InviteService

	// AcceptURL builds the shareable acceptance link for a raw token.
	AcceptURL func(token string) string
}

// ServeHTTP godoc
//
//	@Summary		Create Invitation Endpoint
//	@Description	Invite someone to the workspace by email. At most one active invitation may exist per address. The response carries the raw capability token and acceptance link; neither is retrievable afterwards.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		hubsdk.CreateInvitationRequest	true	"Invitation details"
//	@Success		201		{object}	hubsdk.InvitationTokenResponse	"invitation, token, accept_url"
//	@Failure		400		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req hubsdk.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		hubsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.InviteService.Invite(ctx, actorFromCtx(ctx), service.InviteParams{
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Message:    req.Message,
		ProjectID:  req.ProjectID,
	})
	if err != nil {
		writeInvitationError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, hubsdk.InvitationTokenResponse{
		Invitation: toInvitationRecord(res.Invitation),
		Token:      res.Token,
		AcceptURL:  h.AcceptURL(res.Token),
	})
}
