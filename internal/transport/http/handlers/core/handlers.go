package corehandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"salon/internal/domain/auth"
	"salon/internal/domain/core"
	"salon/internal/transport/http/api"
	"salon/internal/transport/http/middleware"
	"salon/internal/transport/http/shared"
)

type Handler struct {
	Store *core.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *core.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/branches", h.handleListBranches)
	r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Post("/branches", h.handleCreateBranch)
	r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/branches/{branchID}/hours", h.handleBranchHours)
	r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Put("/branches/{branchID}/hours", h.handleSetBranchHours)
	r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/staff", h.handleListStaff)
	r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Post("/staff", h.handleCreateStaff)
	r.With(middleware.RequirePermission(auth.PermCoreRead, h.Perms)).Get("/clients", h.handleListClients)
	r.With(middleware.RequirePermission(auth.PermCoreWrite, h.Perms)).Post("/clients", h.handleCreateClient)
}

// BranchScope resolves the branch a request operates on. Managers above
// branch level may address any branch with ?branchId=; everyone else is
// pinned to their own.
func BranchScope(user auth.UserContext, r *http.Request) string {
	requested := strings.TrimSpace(r.URL.Query().Get("branchId"))
	if requested == "" {
		return user.BranchID
	}
	if user.RoleName == auth.RoleSystemAdmin || user.RoleName == auth.RoleOperationalManager {
		return requested
	}
	return user.BranchID
}

func (h *Handler) handleListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Store.ListBranches(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "branch_list_failed", "failed to list branches", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, branches, middleware.GetRequestID(r.Context()))
}

type branchPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *Handler) handleCreateBranch(w http.ResponseWriter, r *http.Request) {
	var payload branchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "branch name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateBranch(r.Context(), payload.Name, payload.Address, payload.Phone)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "branch_create_failed", "failed to create branch", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBranchHours(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")
	hours, err := h.Store.BranchHours(r.Context(), branchID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "branch_hours_failed", "failed to load branch hours", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, hours, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetBranchHours(w http.ResponseWriter, r *http.Request) {
	branchID := chi.URLParam(r, "branchID")

	var payload []core.BranchDayHours
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	for _, day := range payload {
		if err := h.Store.SetBranchHours(r.Context(), branchID, day); err != nil {
			api.Fail(w, http.StatusInternalServerError, "branch_hours_failed", "failed to save branch hours", middleware.GetRequestID(r.Context()))
			return
		}
	}
	api.Success(w, map[string]string{"status": "saved"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListStaff(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	staff, err := h.Store.ListStaff(r.Context(), BranchScope(user, r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "staff_list_failed", "failed to list staff", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, staff, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload core.Staff
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.BranchID == "" {
		payload.BranchID = user.BranchID
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("branchId", payload.BranchID, "branch is required")
	v.Enum("role", payload.Role, auth.Roles, "unknown role")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateStaff(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "staff_create_failed", "failed to create staff member", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	clients, err := h.Store.ListClients(r.Context(), BranchScope(user, r), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "client_list_failed", "failed to list clients", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, clients, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload core.Client
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.BranchID == "" {
		payload.BranchID = user.BranchID
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateClient(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "client_create_failed", "failed to create client", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}
