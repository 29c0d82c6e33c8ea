package domain

import "time"

// Product categories offered by the shop.
const (
	CategoryBusinessCards = "business-cards"
	CategoryBrochures     = "brochures"
	CategoryPosters       = "posters"
	CategoryCatalogs      = "catalogs"
	CategoryCustom        = "custom"
)

// PrintOption is one selectable choice within an option group, carrying the
// price multiplier it applies.
type PrintOption struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// PrintOptions groups the configurable aspects of a product: size, paper
// stock, print side, and the discrete quantities offered in the UI.
type PrintOptions struct {
	Sizes      []PrintOption `json:"sizes"`
	PaperTypes []PrintOption `json:"paperTypes"`
	PrintSides []PrintOption `json:"printSides"`
	Quantities []int         `json:"quantities"`
}

// Product is a catalog entry. Cart items hold products by value so that a
// later catalog change never rewrites the price history of an existing item.
type Product struct {
	ID           string       `json:"id"`
	Slug         string       `json:"slug"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	BasePrice    float64      `json:"basePrice"`
	Image        string       `json:"image"`
	Featured     bool         `json:"featured"`
	PrintOptions PrintOptions `json:"printOptions"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// SelectedPrintOptions is the shopper's configuration for one line item:
// exactly one choice from each option group plus a quantity. The quantity is
// any positive integer; it is not restricted to the product's discrete list.
type SelectedPrintOptions struct {
	SizeID      string `json:"sizeId"`
	PaperTypeID string `json:"paperTypeId"`
	PrintSideID string `json:"printSideId"`
	Quantity    int    `json:"quantity"`
}

// ResolveMultipliers looks up the selected option ids against the product's
// current option lists. ok is false when any id cannot be resolved; callers
// then fall back to undiscounted base pricing.
func (p Product) ResolveMultipliers(sel SelectedPrintOptions) (size, paper, side float64, ok bool) {
	size, sizeOK := findMultiplier(p.PrintOptions.Sizes, sel.SizeID)
	paper, paperOK := findMultiplier(p.PrintOptions.PaperTypes, sel.PaperTypeID)
	side, sideOK := findMultiplier(p.PrintOptions.PrintSides, sel.PrintSideID)
	return size, paper, side, sizeOK && paperOK && sideOK
}

func findMultiplier(opts []PrintOption, id string) (float64, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o.Multiplier, true
		}
	}
	return 0, false
}

// NearestQuantity picks the allowed quantity closest to current by absolute
// difference. Ties go to the earlier entry in the list. It returns current
// unchanged when the list is empty.
func NearestQuantity(current int, allowed []int) int {
	if len(allowed) == 0 {
		return current
	}
	best := allowed[0]
	bestDiff := absInt(current - best)
	for _, q := range allowed[1:] {
		if d := absInt(current - q); d < bestDiff {
			best = q
			bestDiff = d
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
