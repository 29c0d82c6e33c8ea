package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
)

const orderBookKey = "orders:book"

// OrderRepository stores the shop-wide order book as a single JSON document.
type OrderRepository struct {
	client *redis.Client
}

// NewOrderRepository creates an order repository. Orders never expire.
func NewOrderRepository(client *redis.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// Get loads the order book, or an empty one when none has been saved yet.
func (r *OrderRepository) Get(ctx context.Context) (*domain.OrderBook, error) {
	data, err := r.client.Get(ctx, orderBookKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewOrderBook(), nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load order book")
	}

	var book domain.OrderBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, apperrors.Wrap(err, "decode order book")
	}
	return &book, nil
}

// SaveIfVersion writes the book via compare-and-swap on its version counter.
// Returns (false, nil) on a conflict.
func (r *OrderRepository) SaveIfVersion(ctx context.Context, book *domain.OrderBook, expected int64) (bool, error) {
	conflict := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, orderBookKey).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if expected != 0 {
				conflict = true
				return nil
			}
		case err != nil:
			return err
		default:
			var current domain.OrderBook
			if err := json.Unmarshal(data, &current); err != nil {
				return err
			}
			if current.Version != expected {
				conflict = true
				return nil
			}
		}

		book.Version = expected + 1
		payload, err := json.Marshal(book)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, orderBookKey, payload, 0)
			return nil
		})
		return err
	}, orderBookKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, "save order book")
	}
	if conflict {
		book.Version = expected
		return false, nil
	}
	return true, nil
}
