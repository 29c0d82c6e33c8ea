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

// CartHandler serves the shopper cart endpoints.
type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: log}
}

// cartResponse is the wire shape of a cart, with the derived aggregates the
// storefront displays.
type cartResponse struct {
	SessionID   string            `json:"sessionId"`
	Items       []domain.CartItem `json:"items"`
	ItemCount   int               `json:"itemCount"`
	TotalAmount float64           `json:"totalAmount"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	return cartResponse{
		SessionID:   cart.SessionID,
		Items:       cart.Items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	}
}

type selectedOptionsRequest struct {
	SizeID      string `json:"sizeId" validate:"required"`
	PaperTypeID string `json:"paperTypeId" validate:"required"`
	PrintSideID string `json:"printSideId" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
}

func (r selectedOptionsRequest) toDomain() domain.SelectedPrintOptions {
	return domain.SelectedPrintOptions{
		SizeID:      r.SizeID,
		PaperTypeID: r.PaperTypeID,
		PrintSideID: r.PrintSideID,
		Quantity:    r.Quantity,
	}
}

type addItemRequest struct {
	ProductID       string                 `json:"productId" validate:"required"`
	SelectedOptions selectedOptionsRequest `json:"selectedOptions" validate:"required"`
}

// Get returns the session's cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}

// AddItem adds a configured product to the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, item, err := h.carts.AddItem(r.Context(), SessionFromContext(r.Context()), req.ProductID, req.SelectedOptions.toDomain())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]any{
		"cart": toCartResponse(cart),
		"item": item,
	}})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// UpdateItem changes a line item's quantity.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	cart, err := h.carts.UpdateQuantity(r.Context(), SessionFromContext(r.Context()), itemID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}

type stepQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// StepItem snaps a requested quantity to the item's nearest allowed quantity
// and applies it. Backs the stepper controls on the cart page.
func (h *CartHandler) StepItem(w http.ResponseWriter, r *http.Request) {
	var req stepQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	cart, applied, err := h.carts.StepQuantity(r.Context(), SessionFromContext(r.Context()), itemID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"cart":            toCartResponse(cart),
		"appliedQuantity": applied,
	}})
}

// RemoveItem deletes a line item.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	cart, err := h.carts.RemoveItem(r.Context(), SessionFromContext(r.Context()), itemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), SessionFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Contains reports whether the cart already holds an exact product
// configuration. Used by product pages to mark "already in cart".
func (h *CartHandler) Contains(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := domain.SelectedPrintOptions{
		SizeID:      q.Get("sizeId"),
		PaperTypeID: q.Get("paperTypeId"),
		PrintSideID: q.Get("printSideId"),
		Quantity:    parseIntDefault(q.Get("quantity"), 0),
	}

	found, err := h.carts.Contains(r.Context(), SessionFromContext(r.Context()), q.Get("productId"), sel)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"inCart": found}})
}
