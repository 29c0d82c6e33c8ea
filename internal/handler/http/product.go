package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	"github.com/elbatin/JustzMatbaa/internal/service"
	"github.com/elbatin/JustzMatbaa/pkg/httputil"
	"github.com/elbatin/JustzMatbaa/pkg/validator"
)

// ProductHandler serves the catalog endpoints, public reads plus admin CRUD.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(catalog *service.CatalogService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: log}
}

// List returns the catalog, optionally narrowed with ?category=, ?featured=true
// and a free-text ?q= search.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	featured, _ := strconv.ParseBool(q.Get("featured"))

	products, err := h.catalog.Products(r.Context(), domain.ProductFilter{
		Category:     q.Get("category"),
		FeaturedOnly: featured,
		Query:        q.Get("q"),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetBySlug returns one product by its URL slug.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.ProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Create adds a product to the catalog. Admin only.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// Update replaces a product. Admin only.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.Product
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	product, err := h.catalog.UpdateProduct(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Delete removes a product from the catalog. Admin only.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
