package service

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	"github.com/elbatin/JustzMatbaa/internal/event"
	"github.com/elbatin/JustzMatbaa/internal/repository"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
	"github.com/elbatin/JustzMatbaa/pkg/logger"
)

var (
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders placed",
	})

	orderRevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_revenue_total",
		Help: "Cumulative order revenue in TRY",
	})
)

// OrderService manages the shop-wide order book and its reporting reads.
type OrderService struct {
	repo      repository.OrderRepository
	publisher event.Publisher
	logger    *slog.Logger
}

// NewOrderService creates an order service.
func NewOrderService(repo repository.OrderRepository, publisher event.Publisher, log *slog.Logger) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, logger: log}
}

// mutate loads the order book, applies fn, and saves it back under
// optimistic locking, retrying the read-modify-write on a lost race.
func (s *OrderService) mutate(ctx context.Context, fn func(book *domain.OrderBook) error) (*domain.OrderBook, error) {
	for attempt := 0; attempt <= casRetries; attempt++ {
		book, err := s.repo.Get(ctx)
		if err != nil {
			return nil, err
		}

		if err := fn(book); err != nil {
			return nil, err
		}

		ok, err := s.repo.SaveIfVersion(ctx, book, book.Version)
		if err != nil {
			return nil, err
		}
		if ok {
			return book, nil
		}
	}
	return nil, apperrors.Conflict("order book was modified concurrently, retry")
}

// Create snapshots the given items and customer data into a new pending
// order at the front of the book. It never touches cart state.
func (s *OrderService) Create(ctx context.Context, items []domain.CartItem, customer domain.CustomerInfo, totalAmount float64) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, apperrors.InvalidInput("order must contain at least one item")
	}

	var order domain.Order
	_, err := s.mutate(ctx, func(book *domain.OrderBook) error {
		order = domain.NewOrder(items, customer, totalAmount)
		book.Prepend(order)
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	ordersCreatedTotal.Inc()
	orderRevenueTotal.Add(order.TotalAmount)

	if err := s.publisher.OrderCreated(ctx, order); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "failed to publish order created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.Float64("total_amount", order.TotalAmount),
	)
	return order, nil
}

// ByID returns one order by its internal id.
func (s *OrderService) ByID(ctx context.Context, id string) (domain.Order, error) {
	book, err := s.repo.Get(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	order, ok := book.ByID(id)
	if !ok {
		return domain.Order{}, apperrors.NotFound("order", id)
	}
	return order, nil
}

// ByNumber returns one order by its human-facing order number.
func (s *OrderService) ByNumber(ctx context.Context, number string) (domain.Order, error) {
	book, err := s.repo.Get(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	order, ok := book.ByNumber(number)
	if !ok {
		return domain.Order{}, apperrors.NotFound("order", number)
	}
	return order, nil
}

// UpdateStatus moves an order to the given status. Every status may move to
// every other; only unknown status names are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (domain.Order, error) {
	if !domain.IsValidOrderStatus(status) {
		return domain.Order{}, apperrors.InvalidInput("unknown order status: " + status)
	}

	var previous string
	book, err := s.mutate(ctx, func(book *domain.OrderBook) error {
		current, ok := book.ByID(id)
		if !ok {
			return apperrors.NotFound("order", id)
		}
		previous = current.Status
		book.UpdateStatus(id, status)
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.publisher.OrderStatusChanged(ctx, id, previous, status); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "failed to publish order status event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	order, _ := book.ByID(id)
	return order, nil
}

// Recent returns the newest n orders.
func (s *OrderService) Recent(ctx context.Context, n int) ([]domain.Order, error) {
	book, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return book.RecentOrders(n), nil
}

// Stats returns the composed dashboard figures, computed from the live book.
func (s *OrderService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	book, err := s.repo.Get(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return book.Stats(), nil
}
