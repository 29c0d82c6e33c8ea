package http

import (
	"log/slog"
	"net/http"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	"github.com/elbatin/JustzMatbaa/internal/pricing"
	"github.com/elbatin/JustzMatbaa/internal/service"
	"github.com/elbatin/JustzMatbaa/pkg/httputil"
)

// PricingHandler serves price quotes for a configured product. Product pages
// use it to show live prices as the shopper changes options.
type PricingHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewPricingHandler creates a pricing handler.
func NewPricingHandler(catalog *service.CatalogService, log *slog.Logger) *PricingHandler {
	return &PricingHandler{catalog: catalog, logger: log}
}

type quoteResponse struct {
	ProductID string                      `json:"productId"`
	Options   domain.SelectedPrintOptions `json:"options"`
	Fallback  bool                        `json:"fallback"`
	pricing.Breakdown
}

// Quote computes the full price breakdown for one configuration, passed as
// query parameters. An option id that no longer resolves drops to base-price
// times quantity and flags the response as a fallback.
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := domain.SelectedPrintOptions{
		SizeID:      q.Get("sizeId"),
		PaperTypeID: q.Get("paperTypeId"),
		PrintSideID: q.Get("printSideId"),
		Quantity:    parseIntDefault(q.Get("quantity"), 0),
	}

	product, err := h.catalog.ProductByID(r.Context(), q.Get("productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := quoteResponse{ProductID: product.ID, Options: sel}
	if size, paper, side, ok := product.ResolveMultipliers(sel); ok {
		resp.Breakdown = pricing.Quote(product.BasePrice, size, paper, side, sel.Quantity)
	} else {
		resp.Fallback = true
		resp.Breakdown = pricing.Breakdown{
			TotalPrice:    domain.PriceFor(product, sel),
			QuantityScale: 1.0,
		}
		if sel.Quantity >= 1 {
			resp.UnitPrice = pricing.Round2(resp.TotalPrice / float64(sel.Quantity))
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}
