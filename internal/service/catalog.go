// Package service implements the application services over the cart, order,
// and catalog aggregates. Each mutation follows the same shape: load the
// aggregate document, apply the change in memory, and save it back with a
// compare-and-swap on the document version, retrying a few times before
// surfacing a conflict.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	"github.com/elbatin/JustzMatbaa/internal/event"
	"github.com/elbatin/JustzMatbaa/internal/repository"
	apperrors "github.com/elbatin/JustzMatbaa/pkg/errors"
	"github.com/elbatin/JustzMatbaa/pkg/logger"
	"github.com/elbatin/JustzMatbaa/pkg/slug"
)

// casRetries is how many times a mutation re-reads and retries after losing
// a compare-and-swap race before giving up with a conflict error.
const casRetries = 3

// CatalogService manages the product catalog.
type CatalogService struct {
	repo      repository.ProductRepository
	publisher event.Publisher
	logger    *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(repo repository.ProductRepository, publisher event.Publisher, log *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, publisher: publisher, logger: log}
}

// EnsureSeeded writes the given products as the initial catalog when no
// catalog document exists yet. Called once at startup.
func (s *CatalogService) EnsureSeeded(ctx context.Context, products []domain.Product) error {
	existing, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	catalog := domain.NewCatalog(products)
	ok, err := s.repo.SaveIfVersion(ctx, catalog, 0)
	if err != nil {
		return err
	}
	if !ok {
		// Another instance seeded first; that is fine.
		return nil
	}

	s.logger.InfoContext(ctx, "catalog seeded", slog.Int("products", len(products)))
	return nil
}

func (s *CatalogService) load(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = domain.NewCatalog(nil)
	}
	return catalog, nil
}

// Products returns the catalog narrowed by the given filter. A zero filter
// returns every product.
func (s *CatalogService) Products(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	catalog, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(f), nil
}

// ProductByID returns one product by its id.
func (s *CatalogService) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	catalog, err := s.load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	p, ok := catalog.ByID(id)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p, nil
}

// ProductBySlug returns one product by its URL slug.
func (s *CatalogService) ProductBySlug(ctx context.Context, productSlug string) (domain.Product, error) {
	catalog, err := s.load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	p, ok := catalog.BySlug(productSlug)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", productSlug)
	}
	return p, nil
}

// CreateProductInput is the admin payload for adding a product.
type CreateProductInput struct {
	Name         string              `json:"name" validate:"required,min=2,max=100"`
	Description  string              `json:"description" validate:"max=1000"`
	Category     string              `json:"category" validate:"required"`
	BasePrice    float64             `json:"basePrice" validate:"gte=0"`
	Image        string              `json:"image"`
	PrintOptions domain.PrintOptions `json:"printOptions"`
}

// CreateProduct adds a product with a generated id and a slug derived from
// its name, de-duplicated with a numeric suffix when taken.
func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	var created domain.Product

	for attempt := 0; attempt <= casRetries; attempt++ {
		catalog, err := s.load(ctx)
		if err != nil {
			return domain.Product{}, err
		}

		now := time.Now().UTC()
		created = domain.Product{
			ID:           uuid.NewString(),
			Slug:         uniqueSlug(catalog, in.Name),
			Name:         in.Name,
			Description:  in.Description,
			Category:     in.Category,
			BasePrice:    in.BasePrice,
			Image:        in.Image,
			PrintOptions: in.PrintOptions,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if !catalog.Add(created) {
			return domain.Product{}, apperrors.AlreadyExists("product", "slug", created.Slug)
		}

		ok, err := s.repo.SaveIfVersion(ctx, catalog, catalog.Version)
		if err != nil {
			return domain.Product{}, err
		}
		if ok {
			s.publishChange(ctx, created.ID, "created")
			return created, nil
		}
	}
	return domain.Product{}, apperrors.Conflict("catalog was modified concurrently, retry")
}

// UpdateProduct replaces the stored product with the same id.
func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	for attempt := 0; attempt <= casRetries; attempt++ {
		catalog, err := s.load(ctx)
		if err != nil {
			return domain.Product{}, err
		}

		if !catalog.Update(p) {
			return domain.Product{}, apperrors.NotFound("product", p.ID)
		}

		ok, err := s.repo.SaveIfVersion(ctx, catalog, catalog.Version)
		if err != nil {
			return domain.Product{}, err
		}
		if ok {
			updated, _ := catalog.ByID(p.ID)
			s.publishChange(ctx, p.ID, "updated")
			return updated, nil
		}
	}
	return domain.Product{}, apperrors.Conflict("catalog was modified concurrently, retry")
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	for attempt := 0; attempt <= casRetries; attempt++ {
		catalog, err := s.load(ctx)
		if err != nil {
			return err
		}

		if !catalog.Remove(id) {
			return apperrors.NotFound("product", id)
		}

		ok, err := s.repo.SaveIfVersion(ctx, catalog, catalog.Version)
		if err != nil {
			return err
		}
		if ok {
			s.publishChange(ctx, id, "deleted")
			return nil
		}
	}
	return apperrors.Conflict("catalog was modified concurrently, retry")
}

func (s *CatalogService) publishChange(ctx context.Context, productID, action string) {
	if err := s.publisher.CatalogChanged(ctx, productID, action); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "failed to publish catalog event",
			slog.String("product_id", productID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

func uniqueSlug(catalog *domain.Catalog, name string) string {
	base := slug.Generate(name)
	if !catalog.HasSlug(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !catalog.HasSlug(candidate) {
			return candidate
		}
	}
}
