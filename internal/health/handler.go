package health

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"bokning/pkg/config"
	httputil "bokning/pkg/http"
	"bokning/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type Handler struct {
	cfg *config.Config
	log *logger.Logger
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		cfg: cfg,
		log: cfg.Log,
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Liveness)
	router.GET("/ready", h.Readiness)
}

// Liveness reports that the process is up. No dependencies are checked.
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		h.log.Error("Failed to write health response", "error", err)
	}
}

// Readiness pings the booking store. A failed ping returns 503 so the load
// balancer stops routing traffic here.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.cfg.Client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Warn("Readiness check failed", "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "booking store unreachable",
		}); writeErr != nil {
			h.log.Error("Failed to write readiness response", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		h.log.Error("Failed to write readiness response", "error", err)
	}
}
