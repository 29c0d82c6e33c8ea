package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elbatin/JustzMatbaa/internal/pricing"
)

// Order lifecycle statuses. Any status may transition to any other; the shop
// runs no workflow state machine over them.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// IsValidOrderStatus reports whether s is one of the known statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CustomerInfo is the contact and shipping data captured at checkout.
// City and address fields may carry arbitrary Unicode.
type CustomerInfo struct {
	FirstName  string `json:"firstName" validate:"required,min=2,max=50"`
	LastName   string `json:"lastName" validate:"required,min=2,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=20"`
	Address    string `json:"address" validate:"required,min=5,max=200"`
	City       string `json:"city" validate:"required,min=2,max=60"`
	PostalCode string `json:"postalCode" validate:"required,len=5,numeric"`
}

// Order is an immutable checkout record. Items and customer data are deep
// copies of the state at creation time; only Status ever changes afterward,
// and totals are never recomputed from it.
type Order struct {
	ID          string       `json:"id"`
	OrderNumber string       `json:"orderNumber"`
	Items       []CartItem   `json:"items"`
	Customer    CustomerInfo `json:"customer"`
	TotalAmount float64      `json:"totalAmount"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewOrder snapshots the given items and customer data into a pending order
// with fresh identifiers. It does not touch cart state; clearing the cart is
// the caller's job.
func NewOrder(items []CartItem, customer CustomerInfo, totalAmount float64) Order {
	now := time.Now().UTC()
	snapshot := make([]CartItem, len(items))
	copy(snapshot, items)
	return Order{
		ID:          "order_" + uuid.NewString(),
		OrderNumber: NewOrderNumber(),
		Items:       snapshot,
		Customer:    customer,
		TotalAmount: totalAmount,
		Status:      OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewOrderNumber builds a human-facing order number: the shop prefix, the
// millisecond timestamp in base 36, and a short random suffix. Uniqueness is
// probabilistic but holds across rapid successive calls because the suffix
// varies even within one millisecond.
func NewOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return "JM-" + ts + "-" + suffix
}

// BestSeller is the product with the highest cumulative ordered quantity
// across the whole order history.
type BestSeller struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// DashboardStats is the composed admin reporting read. It is always computed
// from the live order book, never cached.
type DashboardStats struct {
	TotalOrders        int         `json:"totalOrders"`
	TotalRevenue       float64     `json:"totalRevenue"`
	BestSellingProduct *BestSeller `json:"bestSellingProduct"`
}

// OrderBook holds every placed order, newest first. The Version field backs
// optimistic locking at the persistence layer.
type OrderBook struct {
	Orders  []Order `json:"orders"`
	Version int64   `json:"version"`
}

// NewOrderBook returns an empty order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{Orders: []Order{}}
}

// Prepend inserts the order at the front, keeping newest-first ordering.
func (b *OrderBook) Prepend(o Order) {
	b.Orders = append([]Order{o}, b.Orders...)
}

// ByID returns the order with the given internal id.
func (b *OrderBook) ByID(id string) (Order, bool) {
	for _, o := range b.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// ByNumber returns the order with the given human-facing order number.
func (b *OrderBook) ByNumber(number string) (Order, bool) {
	for _, o := range b.Orders {
		if o.OrderNumber == number {
			return o, true
		}
	}
	return Order{}, false
}

// UpdateStatus sets the status of the matching order in place. It reports
// false when the order is absent. No transition rules are enforced.
func (b *OrderBook) UpdateStatus(id, status string) bool {
	for i := range b.Orders {
		if b.Orders[i].ID == id {
			b.Orders[i].Status = status
			b.Orders[i].UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// TotalRevenue sums the total amount over every order.
func (b *OrderBook) TotalRevenue() float64 {
	var total float64
	for _, o := range b.Orders {
		total += o.TotalAmount
	}
	return pricing.Round2(total)
}

// Count is the number of orders placed.
func (b *OrderBook) Count() int {
	return len(b.Orders)
}

// RecentOrders returns the newest n orders. Asking for more than exist
// returns everything without error.
func (b *OrderBook) RecentOrders(n int) []Order {
	if n < 0 {
		n = 0
	}
	if n > len(b.Orders) {
		n = len(b.Orders)
	}
	out := make([]Order, n)
	copy(out, b.Orders[:n])
	return out
}

// BestSellingProduct aggregates selected-option quantities per product id
// across every item of every order. The product name comes from the first
// item seen for that id, and ties on cumulative quantity go to the product
// encountered first in traversal order. Returns nil for an empty book.
func (b *OrderBook) BestSellingProduct() *BestSeller {
	if len(b.Orders) == 0 {
		return nil
	}

	totals := make(map[string]int)
	names := make(map[string]string)
	var seen []string

	for _, o := range b.Orders {
		for _, item := range o.Items {
			id := item.Product.ID
			if _, ok := totals[id]; !ok {
				seen = append(seen, id)
				names[id] = item.Product.Name
			}
			totals[id] += item.SelectedOptions.Quantity
		}
	}

	if len(seen) == 0 {
		return nil
	}

	best := seen[0]
	for _, id := range seen[1:] {
		if totals[id] > totals[best] {
			best = id
		}
	}

	return &BestSeller{
		ProductID:   best,
		ProductName: names[best],
		Quantity:    totals[best],
	}
}

// Stats composes the reporting figures from the live collection.
func (b *OrderBook) Stats() DashboardStats {
	return DashboardStats{
		TotalOrders:        b.Count(),
		TotalRevenue:       b.TotalRevenue(),
		BestSellingProduct: b.BestSellingProduct(),
	}
}
