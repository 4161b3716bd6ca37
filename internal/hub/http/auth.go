package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password. Returns a signed session token and the account profile.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		hubsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	hubsdk.SessionResponse	"token, user"
//	@Failure		400		{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req hubsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		hubsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, token, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			hubsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		hubsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.SessionResponse{
		Token: token,
		User:  toUserProfile(user),
	})
}

type BootstrapHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Bootstrap Endpoint
//	@Description	Create the first admin account. Only available while the service has no users and the caller presents the configured setup token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		hubsdk.BootstrapRequest	true	"Setup token and admin details"
//	@Success		201		{object}	hubsdk.SessionResponse	"token, user"
//	@Failure		400		{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req hubsdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		hubsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, token, err := h.AccountService.Bootstrap(ctx, req.SetupToken, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapClosed):
			hubsdk.NewAPIError(http.StatusForbidden, hubsdk.ErrorCodeBootstrapClosed,
				"bootstrap is not available").WriteError(w)
		case errors.Is(err, service.ErrInvalidInvitationRequest):
			hubsdk.NewAPIError(http.StatusBadRequest, hubsdk.ErrorCodeInvalidRequest,
				"name, a valid email and a password of 8+ characters are required").WriteError(w)
		default:
			log.Error("bootstrap failed", "err", err)
			hubsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, hubsdk.SessionResponse{
		Token: token,
		User:  toUserProfile(user),
	})
}
