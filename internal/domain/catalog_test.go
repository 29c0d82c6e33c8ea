package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog([]Product{
		{ID: "p1", Slug: "kartvizit", Name: "Kartvizit", Category: CategoryBusinessCards, Featured: true},
		{ID: "p2", Slug: "brosur", Name: "Broşür", Description: "Tanıtım broşürü", Category: CategoryBrochures},
		{ID: "p3", Slug: "poster", Name: "Poster", Category: CategoryPosters, Featured: true},
	})
}

func TestCatalog_Lookups(t *testing.T) {
	c := testCatalog()

	p, ok := c.ByID("p2")
	require.True(t, ok)
	assert.Equal(t, "Broşür", p.Name)

	p, ok = c.BySlug("poster")
	require.True(t, ok)
	assert.Equal(t, "p3", p.ID)

	_, ok = c.ByID("missing")
	assert.False(t, ok)
	_, ok = c.BySlug("missing")
	assert.False(t, ok)
}

func TestCatalog_ByCategory(t *testing.T) {
	c := testCatalog()
	c.Add(Product{ID: "p4", Slug: "katlanir-brosur", Name: "Katlanır Broşür", Category: CategoryBrochures})

	got := c.ByCategory(CategoryBrochures)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "p4", got[1].ID)

	assert.Empty(t, c.ByCategory("no-such-category"))
}

func TestCatalog_Filter(t *testing.T) {
	c := testCatalog()

	t.Run("zero filter returns everything", func(t *testing.T) {
		assert.Len(t, c.Filter(ProductFilter{}), 3)
	})

	t.Run("featured only", func(t *testing.T) {
		got := c.Filter(ProductFilter{FeaturedOnly: true})
		require.Len(t, got, 2)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p3", got[1].ID)
	})

	t.Run("query matches name case-insensitively", func(t *testing.T) {
		got := c.Filter(ProductFilter{Query: "kartvizit"})
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)
	})

	t.Run("query matches description", func(t *testing.T) {
		got := c.Filter(ProductFilter{Query: "tanıtım"})
		require.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)
	})

	t.Run("criteria combine", func(t *testing.T) {
		got := c.Filter(ProductFilter{Category: CategoryBrochures, FeaturedOnly: true})
		assert.Empty(t, got)
	})
}

func TestCatalog_Add(t *testing.T) {
	c := testCatalog()

	assert.True(t, c.Add(Product{ID: "p4", Slug: "katalog"}))
	assert.False(t, c.Add(Product{ID: "p4", Slug: "other"}), "duplicate id rejected")
	assert.False(t, c.Add(Product{ID: "p5", Slug: "katalog"}), "duplicate slug rejected")
	assert.Len(t, c.Products, 4)
}

func TestCatalog_Update(t *testing.T) {
	c := testCatalog()

	updated := Product{ID: "p1", Slug: "kartvizit", Name: "Premium Kartvizit", BasePrice: 250}
	require.True(t, c.Update(updated))

	p, _ := c.ByID("p1")
	assert.Equal(t, "Premium Kartvizit", p.Name)
	assert.Equal(t, 250.0, p.BasePrice)
	assert.False(t, p.UpdatedAt.IsZero())

	assert.False(t, c.Update(Product{ID: "missing"}))
}

func TestCatalog_Remove(t *testing.T) {
	c := testCatalog()

	assert.True(t, c.Remove("p2"))
	assert.Len(t, c.Products, 2)
	assert.False(t, c.Remove("p2"))
}
