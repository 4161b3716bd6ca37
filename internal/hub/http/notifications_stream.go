package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/projecthub/projecthub/internal/hub/live"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/projecthub/projecthub/pkg/slogx"
)

// heartbeatInterval keeps intermediaries from closing idle streams.
const heartbeatInterval = 25 * time.Second

type NotificationStreamHandler struct {
	Live *live.Hub
}

// ServeHTTP godoc
//
//	@Summary		Notification Stream Endpoint
//	@Description	Server-sent event stream of the caller's notifications. On connect a short backlog of recent events is replayed, then new notifications arrive as "notification" events. The stream is best-effort; the list endpoint is the source of truth.
//	@Tags			Notifications
//	@Produce		text/event-stream
//	@Success		200	{string}	string					"event stream"
//	@Failure		500	{object}	hubsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notifications/stream [get].
func (h *NotificationStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("response writer does not support streaming")
		hubsdk.ErrServerError.WriteError(w)
		return
	}

	sub, backlog, err := h.Live.Subscribe(httpx.UserIDFromCtx(ctx))
	if err != nil {
		log.Error("failed to subscribe to notification stream", "err", err)
		hubsdk.ErrServerError.WriteError(w)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for _, event := range backlog {
		if err := writeSSE(w, event); err != nil {
			return
		}
	}
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, open := <-sub.Events():
			if !open {
				return
			}
			if err := writeSSE(w, event); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			// SSE comment line; ignored by clients, keeps the pipe warm.
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event live.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: notification\nid: %s\ndata: %s\n\n", event.ID, data)
	return err
}
