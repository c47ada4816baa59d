package schedulehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"salon/internal/domain/auth"
	"salon/internal/domain/schedule"
	"salon/internal/transport/http/api"
	corehandler "salon/internal/transport/http/handlers/core"
	"salon/internal/transport/http/middleware"
	"salon/internal/transport/http/shared"
)

type Handler struct {
	Service *schedule.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *schedule.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/schedule", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermScheduleRead, h.Perms)).Get("/week", h.handleWeek)
		r.With(middleware.RequirePermission(auth.PermScheduleRead, h.Perms)).Get("/configurations", h.handleListConfigurations)
		r.With(middleware.RequirePermission(auth.PermScheduleWrite, h.Perms)).Post("/commit", h.handleCommit)
		r.With(middleware.RequirePermission(auth.PermScheduleWrite, h.Perms)).Post("/overrides", h.handleAddOverride)
		r.With(middleware.RequirePermission(auth.PermScheduleWrite, h.Perms)).Delete("/overrides", h.handleDeleteOverride)
		r.With(middleware.RequirePermission(auth.PermScheduleWrite, h.Perms)).Delete("/entries", h.handleDeactivateEntry)
	})
}

func (h *Handler) handleWeek(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	weekStart, okDate := v.Date("weekStart", r.URL.Query().Get("weekStart"))
	if !okDate {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.WeekSchedule(r.Context(), corehandler.BranchScope(user, r), weekStart)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_failed", "failed to resolve week schedule", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListConfigurations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	configs, err := h.Service.Store.ListConfigurations(r.Context(), corehandler.BranchScope(user, r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "configurations_failed", "failed to list schedule configurations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, configs, middleware.GetRequestID(r.Context()))
}

type commitPayload struct {
	StartDate string                        `json:"startDate"`
	Notes     string                        `json:"notes"`
	Shifts    map[string]schedule.ShiftWeek `json:"shifts"`
}

func (h *Handler) handleCommit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload commitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	start, okDate := v.Date("startDate", payload.StartDate)
	if !okDate {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.Shifts) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "shifts are required", middleware.GetRequestID(r.Context()))
		return
	}

	config, err := h.Service.CommitWorkingSet(r.Context(), corehandler.BranchScope(user, r), start, payload.Shifts, payload.Notes)
	if err != nil {
		var commitErr *schedule.CommitError
		if errors.As(err, &commitErr) {
			api.FailWithDetails(w, http.StatusConflict, "schedule_conflict", "one or more shifts cannot be placed",
				map[string]any{"violations": commitErr.Violations}, middleware.GetRequestID(r.Context()))
			return
		}
		if errors.Is(err, schedule.ErrEmptyShiftSet) || errors.Is(err, schedule.ErrNoEffectiveDate) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "commit_failed", "failed to commit schedule", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, config, middleware.GetRequestID(r.Context()))
}

type overridePayload struct {
	StaffID string `json:"staffId"`
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func (h *Handler) handleAddOverride(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload overridePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("staffId", payload.StaffID, "staff id is required")
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	branchID := corehandler.BranchScope(user, r)
	data, err := h.Service.BranchData(r.Context(), branchID, schedule.DayStart(date), schedule.DayStart(date))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "override_failed", "failed to place override", middleware.GetRequestID(r.Context()))
		return
	}
	_, borrowed := data.Inbound[payload.StaffID]

	err = h.Service.AddOverride(r.Context(), branchID, payload.StaffID, date,
		schedule.ShiftTime{Start: payload.Start, End: payload.End}, borrowed)
	if err != nil {
		var gerr *schedule.GuardError
		if errors.As(err, &gerr) {
			api.FailWithDetails(w, http.StatusConflict, "schedule_conflict", "shift cannot be placed",
				map[string]string{"reason": gerr.Reason, "detail": gerr.Detail}, middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"status": "placed"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("staffId", r.URL.Query().Get("staffId"), "staff id is required")
	date, _ := v.Date("date", r.URL.Query().Get("date"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Service.Store.DeleteOverride(r.Context(), corehandler.BranchScope(user, r), r.URL.Query().Get("staffId"), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "override_failed", "failed to remove override", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "removed"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	staffID := r.URL.Query().Get("staffId")
	day := r.URL.Query().Get("day")
	v := shared.NewValidator()
	v.Required("staffId", staffID, "staff id is required")
	v.Required("day", day, "weekday is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Service.Store.DeactivateEntry(r.Context(), corehandler.BranchScope(user, r), staffID, day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "no active configuration entry for that staff and day", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "entry_failed", "failed to deactivate entry", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deactivated"}, middleware.GetRequestID(r.Context()))
}
