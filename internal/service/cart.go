package service

import (
	"context"
	"log/slog"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	"github.com/elbatin/JustzMatbaa/internal/event"
	"github.com/elbatin/JustzMatbaa/internal/repository"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
	"github.com/elbatin/JustzMatbaa/pkg/logger"
)

// ProductSource resolves products for cart operations. The catalog service
// implements it.
type ProductSource interface {
	ProductByID(ctx context.Context, id string) (domain.Product, error)
}

// CartService manages per-session shopping carts.
type CartService struct {
	repo      repository.CartRepository
	products  ProductSource
	publisher event.Publisher
	logger    *slog.Logger
}

// NewCartService creates a cart service.
func NewCartService(repo repository.CartRepository, products ProductSource, publisher event.Publisher, log *slog.Logger) *CartService {
	return &CartService{repo: repo, products: products, publisher: publisher, logger: log}
}

// Get returns the session's cart, or a fresh empty one if none is stored.
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.NewCart(sessionID)
	}
	return cart, nil
}

// mutate loads the session's cart, applies fn, and saves it back under
// optimistic locking, retrying the whole read-modify-write on a lost race.
// fn returns an error to abort without saving.
func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	for attempt := 0; attempt <= casRetries; attempt++ {
		cart, err := s.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		if err := fn(cart); err != nil {
			return nil, err
		}

		ok, err := s.repo.SaveIfVersion(ctx, cart, cart.Version)
		if err != nil {
			return nil, err
		}
		if ok {
			return cart, nil
		}
	}
	return nil, apperrors.Conflict("cart was modified concurrently, retry")
}

// AddItem prices and appends a line item for the given product and options.
// The same configuration can be added repeatedly, producing distinct lines.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, sel domain.SelectedPrintOptions) (*domain.Cart, domain.CartItem, error) {
	if sel.Quantity < 1 {
		return nil, domain.CartItem{}, apperrors.InvalidInput("quantity must be at least 1")
	}

	product, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		return nil, domain.CartItem{}, err
	}

	var added domain.CartItem
	cart, err := s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		added = cart.AddItem(product, sel)
		return nil
	})
	if err != nil {
		return nil, domain.CartItem{}, err
	}

	s.publishUpdated(ctx, cart)
	return cart, added, nil
}

// UpdateQuantity changes a line item's quantity and reprices it.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	cart, err := s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		if !cart.UpdateItemQuantity(itemID, quantity) {
			return apperrors.NotFound("cart item", itemID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, cart)
	return cart, nil
}

// StepQuantity snaps a requested quantity to the item's nearest allowed
// quantity and applies it. Used by the quantity stepper controls.
func (s *CartService) StepQuantity(ctx context.Context, sessionID, itemID string, requested int) (*domain.Cart, int, error) {
	var applied int
	cart, err := s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		item, ok := cart.ItemByID(itemID)
		if !ok {
			return apperrors.NotFound("cart item", itemID)
		}

		applied = domain.NearestQuantity(requested, item.Product.PrintOptions.Quantities)
		if applied < 1 {
			return apperrors.InvalidInput("quantity must be at least 1")
		}
		if !cart.UpdateItemQuantity(itemID, applied) {
			return apperrors.NotFound("cart item", itemID)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.publishUpdated(ctx, cart)
	return cart, applied, nil
}

// RemoveItem deletes a line item from the cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	cart, err := s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		if !cart.Remove(itemID) {
			return apperrors.NotFound("cart item", itemID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, cart)
	return cart, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}

	if err := s.publisher.CartCleared(ctx, sessionID); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "failed to publish cart cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Contains reports whether the cart holds this exact product configuration.
// All four option fields must match.
func (s *CartService) Contains(ctx context.Context, sessionID, productID string, sel domain.SelectedPrintOptions) (bool, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return cart.HasItem(productID, sel), nil
}

func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.publisher.CartUpdated(ctx, cart); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "failed to publish cart updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}
