package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
)

const catalogKey = "catalog:products"

// ProductRepository stores the product catalog as a single JSON document.
type ProductRepository struct {
	client *redis.Client
}

// NewProductRepository creates a catalog repository.
func NewProductRepository(client *redis.Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// Get loads the catalog, or (nil, nil) when none has been saved yet so the
// caller can seed it.
func (r *ProductRepository) Get(ctx context.Context) (*domain.Catalog, error) {
	data, err := r.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load catalog")
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, apperrors.Wrap(err, "decode catalog")
	}
	return &catalog, nil
}

// SaveIfVersion writes the catalog via compare-and-swap on its version
// counter. Returns (false, nil) on a conflict.
func (r *ProductRepository) SaveIfVersion(ctx context.Context, catalog *domain.Catalog, expected int64) (bool, error) {
	conflict := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, catalogKey).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if expected != 0 {
				conflict = true
				return nil
			}
		case err != nil:
			return err
		default:
			var current domain.Catalog
			if err := json.Unmarshal(data, &current); err != nil {
				return err
			}
			if current.Version != expected {
				conflict = true
				return nil
			}
		}

		catalog.Version = expected + 1
		payload, err := json.Marshal(catalog)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, catalogKey, payload, 0)
			return nil
		})
		return err
	}, catalogKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, "save catalog")
	}
	if conflict {
		catalog.Version = expected
		return false, nil
	}
	return true, nil
}
