package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bokning/internal/bookings/service"
	apperrors "bokning/pkg/errors"
	httputil "bokning/pkg/http"
	"bokning/pkg/logger"
	"bokning/pkg/middleware"
	"bokning/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.ListOwn)
	router.GET("/api/v1/bookings/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/:id", h.Update)
	router.DELETE("/api/v1/bookings/:id", h.Delete)

	// httprouter cannot mix static and wildcard segments, so the admin
	// listing lives under its own prefix.
	router.GET("/api/v1/admin/bookings", h.ListAll)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	created, err := h.service.Create(r.Context(), caller, &booking)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	booking, err := h.service.GetByID(r.Context(), caller, ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) ListOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	bookings, err := h.service.ListOwn(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, total, err := h.service.ListAll(r.Context(), caller, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	var update model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	booking, err := h.service.Update(r.Context(), caller, ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := h.service.Delete(r.Context(), caller, ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("Failed to write error response", "error", writeErr)
	}
}
