// Package repository defines the persistence contracts for the cart, order
// book, and catalog aggregates. Each aggregate is stored as a single JSON
// document; writes go through compare-and-swap on the document's version
// counter so concurrent writers cannot silently overwrite each other.
package repository

import (
	"context"

	"github.com/elbatin/JustzMatbaa/internal/domain"
)

// CartRepository persists one cart document per shopper session.
type CartRepository interface {
	// Get loads the cart for a session. It returns (nil, nil) when no cart
	// has been saved yet; callers start from an empty cart.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// SaveIfVersion writes the cart only if the stored version still equals
	// expected (0 means "no document yet"). On success the cart's version is
	// bumped to expected+1. It returns (false, nil) on a version conflict.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expected int64) (bool, error)

	// Delete removes the session's cart document. Deleting a missing cart is
	// not an error.
	Delete(ctx context.Context, sessionID string) error
}

// OrderRepository persists the shop-wide order book document.
type OrderRepository interface {
	// Get loads the order book, returning an empty book when none exists.
	Get(ctx context.Context) (*domain.OrderBook, error)

	// SaveIfVersion writes the book only if the stored version still equals
	// expected. It returns (false, nil) on a version conflict.
	SaveIfVersion(ctx context.Context, book *domain.OrderBook, expected int64) (bool, error)
}

// ProductRepository persists the catalog document.
type ProductRepository interface {
	// Get loads the catalog. It returns (nil, nil) when none has been saved,
	// letting the caller seed it.
	Get(ctx context.Context) (*domain.Catalog, error)

	// SaveIfVersion writes the catalog only if the stored version still
	// equals expected. It returns (false, nil) on a version conflict.
	SaveIfVersion(ctx context.Context, catalog *domain.Catalog, expected int64) (bool, error)
}
