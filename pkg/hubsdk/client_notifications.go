package hubsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListNotifications returns a page of the caller's notifications, newest
// first, plus total and unread counters.
func (s *Session) ListNotifications(ctx context.Context, unreadOnly bool, limit, offset int) (*NotificationListResponse, error) {
	query := url.Values{}
	if unreadOnly {
		query.Set("unread", "true")
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	path := "/v1/notifications"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := s.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list NotificationListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (s *Session) MarkNotificationRead(ctx context.Context, id string) error {
	resp, err := s.doJSON(ctx, http.MethodPut, "/v1/notifications/"+url.PathEscape(id)+"/read", nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// MarkAllNotificationsRead marks all of the caller's notifications as read.
func (s *Session) MarkAllNotificationsRead(ctx context.Context) error {
	resp, err := s.doJSON(ctx, http.MethodPut, "/v1/notifications/read-all", nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// DeleteNotification removes one of the caller's notifications.
func (s *Session) DeleteNotification(ctx context.Context, id string) error {
	resp, err := s.doJSON(ctx, http.MethodDelete, "/v1/notifications/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
