package lendinghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salon/internal/domain/auth"
	"salon/internal/domain/lending"
	"salon/internal/transport/http/api"
	corehandler "salon/internal/transport/http/handlers/core"
	"salon/internal/transport/http/middleware"
	"salon/internal/transport/http/shared"
)

type Handler struct {
	Service *lending.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *lending.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/lendings", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLendingRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLendingWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermLendingApprove, h.Perms)).Post("/{lendingID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermLendingApprove, h.Perms)).Post("/{lendingID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermLendingWrite, h.Perms)).Post("/{lendingID}/cancel", h.handleCancel)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	lendings, err := h.Service.List(r.Context(), corehandler.BranchScope(user, r), r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "lending_list_failed", "failed to list lendings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lendings, middleware.GetRequestID(r.Context()))
}

type lendingPayload struct {
	StylistID    string `json:"stylistId"`
	FromBranchID string `json:"fromBranchId"`
	ToBranchID   string `json:"toBranchId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Notes        string `json:"notes"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload lendingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.FromBranchID == "" {
		payload.FromBranchID = user.BranchID
	}

	v := shared.NewValidator()
	v.Required("stylistId", payload.StylistID, "stylist id is required")
	v.Required("toBranchId", payload.ToBranchID, "destination branch is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), lending.Lending{
		StylistID:    payload.StylistID,
		FromBranchID: payload.FromBranchID,
		ToBranchID:   payload.ToBranchID,
		StartDate:    start,
		EndDate:      end,
		Notes:        payload.Notes,
	})
	if err != nil {
		if errors.Is(err, lending.ErrInvalidWindow) || errors.Is(err, lending.ErrSameBranch) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusConflict, "lending_conflict", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, lending.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, lending.StatusRejected)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, lending.StatusCancelled)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, next string) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	lendingID := chi.URLParam(r, "lendingID")
	var (
		l   lending.Lending
		err error
	)
	switch next {
	case lending.StatusApproved:
		l, err = h.Service.Approve(r.Context(), lendingID, user.UserID)
	case lending.StatusRejected:
		l, err = h.Service.Reject(r.Context(), lendingID, user.UserID)
	default:
		l, err = h.Service.Cancel(r.Context(), lendingID, user.UserID)
	}
	if err != nil {
		if errors.Is(err, lending.ErrInvalidTransition) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "lending not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, l, middleware.GetRequestID(r.Context()))
}
