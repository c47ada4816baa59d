package billinghandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salon/internal/domain/auth"
	"salon/internal/domain/billing"
	"salon/internal/transport/http/api"
	corehandler "salon/internal/transport/http/handlers/core"
	"salon/internal/transport/http/middleware"
	"salon/internal/transport/http/shared"
)

type Handler struct {
	Service *billing.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *billing.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bills", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBillingRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermBillingRead, h.Perms)).Get("/{billID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermBillingWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermBillingWrite, h.Perms)).Post("/{billID}/pay", h.handlePay)
		r.With(middleware.RequirePermission(auth.PermBillingWrite, h.Perms)).Post("/{billID}/void", h.handleVoid)
		r.With(middleware.RequirePermission(auth.PermBillingWrite, h.Perms)).Post("/{billID}/refund", h.handleRefund)
		r.With(middleware.RequirePermission(auth.PermBillingRead, h.Perms)).Post("/receipt-check", h.handleReceiptCheck)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	bills, err := h.Service.List(r.Context(), corehandler.BranchScope(user, r), r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bill_list_failed", "failed to list bills", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, bills, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	bill, err := h.Service.Get(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "bill not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, bill, middleware.GetRequestID(r.Context()))
}

type billPayload struct {
	ClientID      string             `json:"clientId"`
	AppointmentID string             `json:"appointmentId"`
	Items         []billing.BillItem `json:"items"`
	Discount      float64            `json:"discount"`
	TaxRate       float64            `json:"taxRate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload billPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("clientId", payload.ClientID, "client id is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), billing.Bill{
		BranchID:      corehandler.BranchScope(user, r),
		ClientID:      payload.ClientID,
		AppointmentID: payload.AppointmentID,
		Items:         payload.Items,
		Discount:      payload.Discount,
		TaxRate:       payload.TaxRate,
	})
	if err != nil {
		if errors.Is(err, billing.ErrNoItems) || errors.Is(err, billing.ErrNegativeAmount) || errors.Is(err, billing.ErrExcessDiscount) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "bill_create_failed", "failed to create bill", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

type payPayload struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	var payload payPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	bill, pdfPath, err := h.Service.Pay(r.Context(), chi.URLParam(r, "billID"), payload.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrUnknownMethod):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
			return
		case errors.Is(err, billing.ErrNotPayable):
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), middleware.GetRequestID(r.Context()))
			return
		case bill.ID != "":
			// payment went through, only the receipt render failed
			slog.Warn("receipt pdf failed", "billId", bill.ID, "err", err)
		default:
			api.Fail(w, http.StatusNotFound, "not_found", "bill not found", middleware.GetRequestID(r.Context()))
			return
		}
	}

	api.Success(w, map[string]any{"bill": bill, "receiptPdf": pdfPath}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleVoid(w http.ResponseWriter, r *http.Request) {
	bill, err := h.Service.Void(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		if errors.Is(err, billing.ErrNotVoidable) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "bill not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, bill, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRefund(w http.ResponseWriter, r *http.Request) {
	bill, err := h.Service.Refund(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		if errors.Is(err, billing.ErrNotRefundable) {
			api.Fail(w, http.StatusBadRequest, "invalid_state", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusNotFound, "not_found", "bill not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, bill, middleware.GetRequestID(r.Context()))
}

type receiptCheckPayload struct {
	ReceiptNumbers []string `json:"receiptNumbers"`
}

func (h *Handler) handleReceiptCheck(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload receiptCheckPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.ReceiptNumbers) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "receipt numbers are required", middleware.GetRequestID(r.Context()))
		return
	}

	rows, csvBody, err := h.Service.CheckReceipts(r.Context(), corehandler.BranchScope(user, r), payload.ReceiptNumbers)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "receipt_check_failed", "failed to reconcile receipts", middleware.GetRequestID(r.Context()))
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=receipt-check.csv")
		if _, err := w.Write([]byte(csvBody)); err != nil {
			slog.Warn("receipt check export write failed", "err", err)
		}
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}
