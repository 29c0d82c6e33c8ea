package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
	"github.com/elbatin/JustzMatbaa/pkg/logger"
)

// CheckoutService turns a session's cart into an order. Payment is a
// simulated delay standing in for a real gateway; the order is placed once
// the delay elapses.
type CheckoutService struct {
	carts        *CartService
	orders       *OrderService
	paymentDelay time.Duration
	logger       *slog.Logger
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(carts *CartService, orders *OrderService, paymentDelay time.Duration, log *slog.Logger) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders, paymentDelay: paymentDelay, logger: log}
}

// Checkout places an order from the session's current cart and then clears
// the cart. An empty cart is rejected up front.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, customer domain.CustomerInfo) (domain.Order, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	if cart.ItemCount() == 0 {
		return domain.Order{}, apperrors.InvalidInput("cart is empty")
	}

	if err := s.simulatePayment(ctx); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.Create(ctx, cart.Items, customer, cart.TotalAmount())
	if err != nil {
		return domain.Order{}, err
	}

	// The order is already placed; a failed cart clear must not undo it.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

func (s *CheckoutService) simulatePayment(ctx context.Context) error {
	if s.paymentDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.paymentDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
