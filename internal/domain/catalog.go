package domain

import (
	"strings"
	"time"
)

// Catalog is the product list managed through the admin surface. Shoppers
// read it; the cart and order aggregates never write to it. The Version
// field backs optimistic locking at the persistence layer.
type Catalog struct {
	Products []Product `json:"products"`
	Version  int64     `json:"version"`
}

// NewCatalog returns a catalog seeded with the given products.
func NewCatalog(products []Product) *Catalog {
	if products == nil {
		products = []Product{}
	}
	return &Catalog{Products: products}
}

// ByID returns the product with the given id.
func (c *Catalog) ByID(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// BySlug returns the product with the given slug.
func (c *Catalog) BySlug(slug string) (Product, bool) {
	for _, p := range c.Products {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}

// ByCategory returns every product in the given category, in catalog order.
func (c *Catalog) ByCategory(category string) []Product {
	out := []Product{}
	for _, p := range c.Products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ProductFilter narrows a catalog listing. Zero-value fields do not filter.
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
	Query        string
}

// Filter returns the products matching every set criterion, in catalog order.
// The query matches name and description case-insensitively.
func (c *Catalog) Filter(f ProductFilter) []Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := []Product{}
	for _, p := range c.Products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// HasSlug reports whether any product already uses the slug.
func (c *Catalog) HasSlug(slug string) bool {
	_, ok := c.BySlug(slug)
	return ok
}

// Add appends a product. It reports false when the id or slug is taken.
func (c *Catalog) Add(p Product) bool {
	if _, exists := c.ByID(p.ID); exists {
		return false
	}
	if c.HasSlug(p.Slug) {
		return false
	}
	c.Products = append(c.Products, p)
	return true
}

// Update replaces the product with the same id in place. It reports false
// when the product is absent.
func (c *Catalog) Update(p Product) bool {
	for i := range c.Products {
		if c.Products[i].ID == p.ID {
			p.CreatedAt = c.Products[i].CreatedAt
			p.UpdatedAt = time.Now().UTC()
			c.Products[i] = p
			return true
		}
	}
	return false
}

// Remove deletes the product with the given id. It reports whether a removal
// happened.
func (c *Catalog) Remove(id string) bool {
	for i, p := range c.Products {
		if p.ID == id {
			c.Products = append(c.Products[:i], c.Products[i+1:]...)
			return true
		}
	}
	return false
}
