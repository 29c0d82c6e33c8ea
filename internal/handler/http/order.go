package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	"github.com/elbatin/JustzMatbaa/internal/service"
	"github.com/elbatin/JustzMatbaa/pkg/httputil"
	"github.com/elbatin/JustzMatbaa/pkg/validator"
)

// OrderHandler serves checkout, order lookup, and the admin reporting reads.
type OrderHandler struct {
	checkout *service.CheckoutService
	orders   *service.OrderService
	logger   *slog.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(checkout *service.CheckoutService, orders *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, logger: log}
}

type checkoutRequest struct {
	Customer domain.CustomerInfo `json:"customer" validate:"required"`
}

// Checkout places an order from the session's cart.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), SessionFromContext(r.Context()), req.Customer)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// GetByID returns one order by its internal id.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// GetByNumber returns one order by its human-facing number, for the order
// tracking page.
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.ByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// Recent returns the newest orders, with ?limit= (default 10). Admin only.
func (h *OrderHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 10)
	orders, err := h.orders.Recent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// UpdateStatus moves an order to another status. Admin only.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// Stats returns the dashboard figures. Admin only.
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}
