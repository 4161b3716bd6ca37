package http

import (
	"net/http"
	"strconv"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

type InvitationListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		List Invitations Endpoint
//	@Description	List invitations newest first. Pending invitations past their expiry are reported as expired. Supports status, limit and offset query parameters.
//	@Tags			Invitations
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status (pending, accepted, declined, expired)"
//	@Param			limit	query		int		false	"Page size (max 100, default 50)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	hubsdk.InvitationListResponse	"invitations, total"
//	@Failure		400		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var filter store.InvitationFilter

	if status := r.URL.Query().Get("status"); status != "" {
		switch domain.InvitationStatus(status) {
		case domain.InvitationPending, domain.InvitationAccepted,
			domain.InvitationDeclined, domain.InvitationExpired:
			filter.Status = domain.InvitationStatus(status)
		default:
			hubsdk.NewAPIError(http.StatusBadRequest, hubsdk.ErrorCodeInvalidRequest,
				"unknown status filter").WriteError(w)
			return
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		filter.Offset, _ = strconv.Atoi(offset)
	}

	page, err := h.InviteService.List(ctx, filter)
	if err != nil {
		writeInvitationError(w, log, err)
		return
	}

	records := make([]hubsdk.InvitationRecord, 0, len(page.Items))
	for _, inv := range page.Items {
		records = append(records, toInvitationRecord(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.InvitationListResponse{
		Invitations: records,
		Total:       page.Total,
	})
}
