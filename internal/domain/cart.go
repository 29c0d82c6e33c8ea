package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/elbatin/JustzMatbaa/internal/pricing"
)

// CartItem is one configured line in a cart. It snapshots the product by
// value so the captured price inputs survive later catalog edits.
// CalculatedPrice always equals the price computed from the snapshot and the
// selected options; every mutation recomputes it in the same step.
type CartItem struct {
	ID              string               `json:"id"`
	Product         Product              `json:"product"`
	SelectedOptions SelectedPrintOptions `json:"selectedOptions"`
	CalculatedPrice float64              `json:"calculatedPrice"`
	AddedAt         time.Time            `json:"addedAt"`
}

// Cart is the shopper's set of line items, ordered by insertion. The Version
// field backs optimistic locking at the persistence layer and is never
// interpreted by the cart logic itself.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	Version   int64      `json:"version"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart returns an empty cart for the given shopper session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

// PriceFor computes the price for a product configured with the given
// options. When any selected option id is missing from the product's current
// option lists the price falls back to basePrice times quantity, so a catalog
// mismatch never blocks the cart.
func PriceFor(p Product, sel SelectedPrintOptions) float64 {
	size, paper, side, ok := p.ResolveMultipliers(sel)
	if !ok {
		if sel.Quantity < 1 || p.BasePrice < 0 {
			return 0
		}
		return pricing.Round2(p.BasePrice * float64(sel.Quantity))
	}
	return pricing.CalculatePrice(p.BasePrice, size, paper, side, sel.Quantity)
}

// AddItem appends a new line item for the product and options, pricing it on
// the way in, and returns the created item. Adding the same configuration
// twice creates two distinct lines.
func (c *Cart) AddItem(p Product, sel SelectedPrintOptions) CartItem {
	item := CartItem{
		ID:              uuid.NewString(),
		Product:         p,
		SelectedOptions: sel,
		CalculatedPrice: PriceFor(p, sel),
		AddedAt:         time.Now().UTC(),
	}
	c.Items = append(c.Items, item)
	c.touch()
	return item
}

// Remove deletes the item with the given id. It reports whether a removal
// happened; an unknown id is a no-op, not an error.
func (c *Cart) Remove(itemID string) bool {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// UpdateItemQuantity replaces an item's quantity and recomputes its price in
// the same step. It reports false, mutating nothing, when the item is absent
// or the quantity is below 1.
func (c *Cart) UpdateItemQuantity(itemID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].SelectedOptions.Quantity = quantity
			c.Items[i].CalculatedPrice = PriceFor(c.Items[i].Product, c.Items[i].SelectedOptions)
			c.touch()
			return true
		}
	}
	return false
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.touch()
}

// ItemCount is the number of lines in the cart, not the summed quantities.
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalAmount sums the calculated price of every line item.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.CalculatedPrice
	}
	return pricing.Round2(total)
}

// ItemByID returns the line item with the given id.
func (c *Cart) ItemByID(itemID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}

// HasItem reports whether some line holds this product configured with
// exactly these options. All four option fields must match; the same product
// under a different configuration does not count.
func (c *Cart) HasItem(productID string, sel SelectedPrintOptions) bool {
	for _, item := range c.Items {
		if item.Product.ID == productID && item.SelectedOptions == sel {
			return true
		}
	}
	return false
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
