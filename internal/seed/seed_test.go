package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts(t *testing.T) {
	products, err := Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	seenIDs := make(map[string]struct{})
	seenSlugs := make(map[string]struct{})

	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Slug)
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.BasePrice, 0.0)

		_, dupID := seenIDs[p.ID]
		assert.False(t, dupID, "duplicate product id %s", p.ID)
		seenIDs[p.ID] = struct{}{}

		_, dupSlug := seenSlugs[p.Slug]
		assert.False(t, dupSlug, "duplicate slug %s", p.Slug)
		seenSlugs[p.Slug] = struct{}{}

		require.NotEmpty(t, p.PrintOptions.Sizes, "product %s has no sizes", p.ID)
		require.NotEmpty(t, p.PrintOptions.PaperTypes, "product %s has no paper types", p.ID)
		require.NotEmpty(t, p.PrintOptions.PrintSides, "product %s has no print sides", p.ID)
		require.NotEmpty(t, p.PrintOptions.Quantities, "product %s has no quantities", p.ID)

		for _, o := range p.PrintOptions.Sizes {
			assert.Greater(t, o.Multiplier, 0.0)
		}
		for _, o := range p.PrintOptions.PaperTypes {
			assert.Greater(t, o.Multiplier, 0.0)
		}
		for _, o := range p.PrintOptions.PrintSides {
			assert.Greater(t, o.Multiplier, 0.0)
		}
		for _, q := range p.PrintOptions.Quantities {
			assert.GreaterOrEqual(t, q, 1)
		}
	}
}
