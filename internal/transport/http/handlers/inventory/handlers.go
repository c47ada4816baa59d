package inventoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"salon/internal/domain/auth"
	"salon/internal/domain/inventory"
	"salon/internal/transport/http/api"
	corehandler "salon/internal/transport/http/handlers/core"
	"salon/internal/transport/http/middleware"
	"salon/internal/transport/http/shared"
)

type Handler struct {
	Service *inventory.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *inventory.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermInventoryRead, h.Perms)).Get("/products", h.handleListProducts)
		r.With(middleware.RequirePermission(auth.PermInventoryWrite, h.Perms)).Post("/products", h.handleCreateProduct)
		r.With(middleware.RequirePermission(auth.PermInventoryWrite, h.Perms)).Post("/products/{productID}/movements", h.handleMove)
		r.With(middleware.RequirePermission(auth.PermInventoryRead, h.Perms)).Get("/products/{productID}/movements", h.handleMovements)
		r.With(middleware.RequirePermission(auth.PermInventoryRead, h.Perms)).Get("/orders", h.handleListOrders)
		r.With(middleware.RequirePermission(auth.PermInventoryWrite, h.Perms)).Post("/orders", h.handleCreateOrder)
		r.With(middleware.RequirePermission(auth.PermInventoryWrite, h.Perms)).Post("/orders/{orderID}/place", h.handlePlaceOrder)
		r.With(middleware.RequirePermission(auth.PermInventoryWrite, h.Perms)).Post("/orders/{orderID}/receive", h.handleReceiveOrder)
		r.With(middleware.RequirePermission(auth.PermInventoryWrite, h.Perms)).Post("/orders/{orderID}/cancel", h.handleCancelOrder)
	})
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	branchID := corehandler.BranchScope(user, r)
	var (
		products []inventory.Product
		err      error
	)
	if r.URL.Query().Get("lowStock") == "true" {
		products, err = h.Service.LowStock(r.Context(), branchID)
	} else {
		products, err = h.Service.Products(r.Context(), branchID)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "product_list_failed", "failed to list products", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, products, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload inventory.Product
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.BranchID == "" {
		payload.BranchID = user.BranchID
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "product name is required")
	v.Required("sku", payload.SKU, "sku is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), payload)
	if err != nil {
		if errors.Is(err, inventory.ErrBadQuantity) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "stock and price must not be negative", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "product_create_failed", "failed to create product", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

type movementPayload struct {
	Kind      string `json:"kind"`
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload movementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	movement, err := h.Service.Move(r.Context(), inventory.StockMovement{
		ProductID: chi.URLParam(r, "productID"),
		Kind:      payload.Kind,
		Quantity:  payload.Quantity,
		Reference: payload.Reference,
		CreatedBy: user.UserID,
	}, user.UserID)
	if err != nil {
		if errors.Is(err, inventory.ErrInsufficientStock) {
			api.Fail(w, http.StatusConflict, "insufficient_stock", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		if errors.Is(err, inventory.ErrBadQuantity) || errors.Is(err, inventory.ErrUnknownMovement) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "product not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, movement, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMovements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	movements, err := h.Service.Movements(r.Context(), chi.URLParam(r, "productID"), limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "movement_list_failed", "failed to list movements", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, movements, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	orders, err := h.Service.Orders(r.Context(), corehandler.BranchScope(user, r), r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "order_list_failed", "failed to list purchase orders", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, orders, middleware.GetRequestID(r.Context()))
}

type orderPayload struct {
	Supplier string                        `json:"supplier"`
	Items    []inventory.PurchaseOrderItem `json:"items"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("supplier", payload.Supplier, "supplier is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreateOrder(r.Context(), inventory.PurchaseOrder{
		BranchID:  corehandler.BranchScope(user, r),
		Supplier:  payload.Supplier,
		Items:     payload.Items,
		CreatedBy: user.UserID,
	})
	if err != nil {
		if errors.Is(err, inventory.ErrNoOrderItems) || errors.Is(err, inventory.ErrBadQuantity) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "order_create_failed", "failed to create purchase order", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, inventory.OrderOrdered)
}

func (h *Handler) handleReceiveOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, inventory.OrderReceived)
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, inventory.OrderCancelled)
}

func (h *Handler) orderTransition(w http.ResponseWriter, r *http.Request, next string) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	orderID := chi.URLParam(r, "orderID")
	var (
		po  inventory.PurchaseOrder
		err error
	)
	switch next {
	case inventory.OrderOrdered:
		po, err = h.Service.PlaceOrder(r.Context(), orderID)
	case inventory.OrderReceived:
		po, err = h.Service.ReceiveOrder(r.Context(), orderID, user.UserID)
	default:
		po, err = h.Service.CancelOrder(r.Context(), orderID)
	}
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidTransition) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "purchase order not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, po, middleware.GetRequestID(r.Context()))
}
