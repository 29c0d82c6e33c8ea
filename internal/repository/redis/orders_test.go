package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbatin/JustzMatbaa/internal/domain"
)

func sampleOrder(amount float64) domain.Order {
	return domain.NewOrder(
		[]domain.CartItem{{
			ID:      "item-1",
			Product: domain.Product{ID: "p1", Name: "Kartvizit", BasePrice: 150},
			SelectedOptions: domain.SelectedPrintOptions{
				SizeID: "standard", PaperTypeID: "matte", PrintSideID: "single", Quantity: 100,
			},
			CalculatedPrice: amount,
		}},
		domain.CustomerInfo{
			FirstName: "Ayşe", LastName: "Yılmaz",
			Email: "ayse@example.com", Phone: "+905551234567",
			Address: "Çiçek Sokak No:5", City: "İstanbul", PostalCode: "34000",
		},
		amount,
	)
}

func TestOrderRepository_GetMissingReturnsEmptyBook(t *testing.T) {
	repo := NewOrderRepository(newTestClient(t))

	book, err := repo.Get(context.Background())

	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, 0, book.Count())
	assert.Equal(t, int64(0), book.Version)
}

func TestOrderRepository_SaveAndGet(t *testing.T) {
	repo := NewOrderRepository(newTestClient(t))
	ctx := context.Background()

	book := domain.NewOrderBook()
	book.Prepend(sampleOrder(1000))
	book.Prepend(sampleOrder(2500))

	ok, err := repo.SaveIfVersion(ctx, book, 0)
	require.NoError(t, err)
	require.True(t, ok)

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Count())
	assert.InDelta(t, 3500, loaded.TotalRevenue(), 0.001)
	assert.Equal(t, book.Orders[0].OrderNumber, loaded.Orders[0].OrderNumber)
	assert.Equal(t, "İstanbul", loaded.Orders[0].Customer.City)
}

func TestOrderRepository_VersionConflict(t *testing.T) {
	repo := NewOrderRepository(newTestClient(t))
	ctx := context.Background()

	book := domain.NewOrderBook()
	book.Prepend(sampleOrder(1000))
	ok, err := repo.SaveIfVersion(ctx, book, 0)
	require.NoError(t, err)
	require.True(t, ok)

	stale := domain.NewOrderBook()
	stale.Prepend(sampleOrder(999))
	ok, err = repo.SaveIfVersion(ctx, stale, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1000, loaded.TotalRevenue(), 0.001, "conflicting write must not land")
}

func TestOrderRepository_SequentialSaves(t *testing.T) {
	repo := NewOrderRepository(newTestClient(t))
	ctx := context.Background()

	book := domain.NewOrderBook()
	for i := 1; i <= 3; i++ {
		book.Prepend(sampleOrder(float64(i * 100)))
		ok, err := repo.SaveIfVersion(ctx, book, int64(i-1))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(i), book.Version)
	}

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Count())
	assert.InDelta(t, 600, loaded.TotalRevenue(), 0.001)
}
