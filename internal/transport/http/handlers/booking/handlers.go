package bookinghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salon/internal/domain/auth"
	"salon/internal/domain/booking"
	"salon/internal/domain/schedule"
	"salon/internal/transport/http/api"
	corehandler "salon/internal/transport/http/handlers/core"
	"salon/internal/transport/http/middleware"
	"salon/internal/transport/http/shared"
)

type Handler struct {
	Service *booking.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *booking.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appointments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBookingRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermBookingWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermBookingWrite, h.Perms)).Post("/{appointmentID}/complete", h.handleComplete)
		r.With(middleware.RequirePermission(auth.PermBookingWrite, h.Perms)).Post("/{appointmentID}/cancel", h.handleCancel)
		r.With(middleware.RequirePermission(auth.PermBookingWrite, h.Perms)).Post("/{appointmentID}/no-show", h.handleNoShow)
	})
	r.Route("/services", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBookingRead, h.Perms)).Get("/", h.handleListServices)
		r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Post("/", h.handleCreateService)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	date, okDate := v.Date("date", r.URL.Query().Get("date"))
	if !okDate {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	var (
		appts []booking.Appointment
		err   error
	)
	if stylistID := r.URL.Query().Get("stylistId"); stylistID != "" {
		appts, err = h.Service.StylistDay(r.Context(), stylistID, date)
	} else {
		appts, err = h.Service.DayList(r.Context(), corehandler.BranchScope(user, r), date)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appointment_list_failed", "failed to list appointments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, appts, middleware.GetRequestID(r.Context()))
}

type appointmentPayload struct {
	ClientID  string `json:"clientId"`
	StylistID string `json:"stylistId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Notes     string `json:"notes"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload appointmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("clientId", payload.ClientID, "client id is required")
	v.Required("stylistId", payload.StylistID, "stylist id is required")
	v.Required("serviceId", payload.ServiceID, "service id is required")
	v.Required("startTime", payload.StartTime, "start time is required")
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), booking.Appointment{
		BranchID:  corehandler.BranchScope(user, r),
		ClientID:  payload.ClientID,
		StylistID: payload.StylistID,
		ServiceID: payload.ServiceID,
		Date:      date,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Notes:     payload.Notes,
	})
	if err != nil {
		var gerr *schedule.GuardError
		if errors.As(err, &gerr) {
			api.FailWithDetails(w, http.StatusConflict, "stylist_unavailable", "stylist is not available",
				map[string]string{"reason": gerr.Reason, "detail": gerr.Detail}, middleware.GetRequestID(r.Context()))
			return
		}
		if errors.Is(err, booking.ErrOverlap) {
			api.Fail(w, http.StatusConflict, "appointment_conflict", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		if errors.Is(err, booking.ErrBadTimeOrder) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "appointment_create_failed", "failed to book appointment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, booking.StatusCompleted)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, booking.StatusCancelled)
}

func (h *Handler) handleNoShow(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, booking.StatusNoShow)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, next string) {
	appointmentID := chi.URLParam(r, "appointmentID")
	var (
		a   booking.Appointment
		err error
	)
	switch next {
	case booking.StatusCompleted:
		a, err = h.Service.Complete(r.Context(), appointmentID)
	case booking.StatusCancelled:
		a, err = h.Service.Cancel(r.Context(), appointmentID)
	default:
		a, err = h.Service.MarkNoShow(r.Context(), appointmentID)
	}
	if err != nil {
		if errors.Is(err, booking.ErrInvalidTransition) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "appointment not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, a, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	services, err := h.Service.Store.ListServices(r.Context(), corehandler.BranchScope(user, r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "service_list_failed", "failed to list services", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, services, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateService(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload booking.SalonService
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.BranchID == "" {
		payload.BranchID = user.BranchID
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "service name is required")
	if payload.DurationMin <= 0 {
		v.Add("durationMinutes", "must be positive")
	}
	if payload.Price < 0 {
		v.Add("price", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Store.CreateService(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "service_create_failed", "failed to create service", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}
