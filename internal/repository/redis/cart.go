package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
)

const cartKeyPrefix = "cart:"

// CartRepository stores one cart JSON document per session under cart:<id>.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a cart repository. Carts expire after ttl of
// inactivity; pass 0 to keep them forever.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

func (r *CartRepository) key(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// Get loads the cart for a session, or (nil, nil) when none exists.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load cart")
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, apperrors.Wrap(err, "decode cart")
	}
	return &cart, nil
}

// SaveIfVersion writes the cart via compare-and-swap on its version counter.
// expected 0 means the document must not exist yet. Returns (false, nil) on
// a conflict, whether detected by the version check or by a concurrent write
// racing the WATCH.
func (r *CartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expected int64) (bool, error) {
	key := r.key(cart.SessionID)
	conflict := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if expected != 0 {
				conflict = true
				return nil
			}
		case err != nil:
			return err
		default:
			var current domain.Cart
			if err := json.Unmarshal(data, &current); err != nil {
				return err
			}
			if current.Version != expected {
				conflict = true
				return nil
			}
		}

		cart.Version = expected + 1
		payload, err := json.Marshal(cart)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, "save cart")
	}
	if conflict {
		cart.Version = expected
		return false, nil
	}
	return true, nil
}

// Delete removes the session's cart document.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return apperrors.Wrap(err, "delete cart")
	}
	return nil
}
