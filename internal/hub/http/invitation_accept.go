package http

import (
	"encoding/json"
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type InvitationAcceptHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation Endpoint
//	@Description	Redeem an invitation token: creates the account with the invitation's role, joins the named project if any, and signs the new user in. Tokens are single-use.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string							true	"Raw invitation token"
//	@Param			request	body		hubsdk.AcceptInvitationRequest	true	"Registration details"
//	@Success		201		{object}	hubsdk.SessionResponse			"token, user"
//	@Failure		400		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invitations/accept/{token} [post].
func (h *InvitationAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req hubsdk.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		hubsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.InviteService.Accept(ctx, r.PathValue("token"), service.AcceptParams{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeInvitationError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, hubsdk.SessionResponse{
		Token: res.SessionToken,
		User:  toUserProfile(res.User),
	})
}
