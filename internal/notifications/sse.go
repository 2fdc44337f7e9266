package notifications

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "bokning/pkg/errors"
	httputil "bokning/pkg/http"
	"bokning/pkg/logger"
	"bokning/pkg/middleware"
)

// SSEHandler streams change events to authenticated clients over
// server-sent events. The connection stays open until the client goes away
// or the hub shuts down.
type SSEHandler struct {
	hub *Hub
	log *logger.Logger
}

func NewSSEHandler(hub *Hub, log *logger.Logger) *SSEHandler {
	return &SSEHandler{
		hub: hub,
		log: log,
	}
}

func (h *SSEHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/events", h.Stream)
}

func (h *SSEHandler) Stream(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, apperrors.Internal("Streaming not supported", nil))
		return
	}

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.log.Info("Event stream opened", "subscriber_id", sub.ID, "user_id", caller.ID)

	for {
		select {
		case <-r.Context().Done():
			h.log.Info("Event stream closed by client", "subscriber_id", sub.ID)
			return
		case event, open := <-sub.C:
			if !open {
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				h.log.Error("Failed to encode change event", "event_id", event.ID, "error", err)
				continue
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, data); err != nil {
				h.log.Info("Event stream write failed", "subscriber_id", sub.ID, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func (h *SSEHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("Failed to write error response", "error", writeErr)
	}
}
