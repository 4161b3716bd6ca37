package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

// NotificationsHandler serves the read/mark/delete surface of the caller's
// notification feed. All operations are scoped to the authenticated user;
// another user's notifications behave as if they don't exist.
type NotificationsHandler struct {
	NotifyService *service.NotifyService
}

// HandleList godoc
//
//	@Summary		List Notifications Endpoint
//	@Description	List the caller's notifications newest first, with total and unread counters. Supports unread, limit and offset query parameters.
//	@Tags			Notifications
//	@Produce		json
//	@Param			unread	query		bool	false	"Only unread notifications"
//	@Param			limit	query		int		false	"Page size (max 100, default 50)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	hubsdk.NotificationListResponse	"notifications, total, unread"
//	@Failure		500		{object}	hubsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var filter store.NotificationFilter
	filter.UnreadOnly = r.URL.Query().Get("unread") == "true"
	if limit := r.URL.Query().Get("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		filter.Offset, _ = strconv.Atoi(offset)
	}

	page, err := h.NotifyService.List(ctx, actorFromCtx(ctx), filter)
	if err != nil {
		log.Error("failed to list notifications", "err", err)
		hubsdk.ErrServerError.WriteError(w)
		return
	}

	records := make([]hubsdk.NotificationRecord, 0, len(page.Items))
	for _, n := range page.Items {
		records = append(records, toNotificationRecord(n))
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.NotificationListResponse{
		Notifications: records,
		Total:         page.Total,
		Unread:        page.Unread,
	})
}

// HandleMarkRead godoc
//
//	@Summary		Mark Notification Read Endpoint
//	@Description	Mark one of the caller's notifications as read. Marking an already-read notification succeeds without change.
//	@Tags			Notifications
//	@Produce		json
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204	"marked read"
//	@Failure		404	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notifications/{id}/read [put].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	h.writeMutationResult(w, r, h.NotifyService.MarkRead(r.Context(), actorFromCtx(r.Context()), r.PathValue("id")))
}

// HandleMarkAllRead godoc
//
//	@Summary		Mark All Notifications Read Endpoint
//	@Description	Mark every unread notification of the caller as read.
//	@Tags			Notifications
//	@Produce		json
//	@Success		204	"marked read"
//	@Failure		500	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notifications/read-all [put].
func (h *NotificationsHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.writeMutationResult(w, r, h.NotifyService.MarkAllRead(r.Context(), actorFromCtx(r.Context())))
}

// HandleDelete godoc
//
//	@Summary		Delete Notification Endpoint
//	@Description	Remove one of the caller's notifications.
//	@Tags			Notifications
//	@Produce		json
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204	"deleted"
//	@Failure		404	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notifications/{id} [delete].
func (h *NotificationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.writeMutationResult(w, r, h.NotifyService.Delete(r.Context(), actorFromCtx(r.Context()), r.PathValue("id")))
}

func (h *NotificationsHandler) writeMutationResult(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		log := slogx.FromContext(r.Context())
		if errors.Is(err, service.ErrNotificationNotFound) {
			hubsdk.NewAPIError(http.StatusNotFound, hubsdk.ErrorCodeNotFound,
				"notification not found").WriteError(w)
			return
		}
		log.Error("notification mutation failed", "err", err)
		hubsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
