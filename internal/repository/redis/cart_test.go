package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbatin/JustzMatbaa/internal/domain"
)

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func sampleCart(sessionID string) *domain.Cart {
	cart := domain.NewCart(sessionID)
	cart.AddItem(domain.Product{
		ID:        "p1",
		Name:      "Kartvizit",
		BasePrice: 150,
		PrintOptions: domain.PrintOptions{
			Sizes:      []domain.PrintOption{{ID: "standard", Name: "Standart", Multiplier: 1}},
			PaperTypes: []domain.PrintOption{{ID: "matte", Name: "Mat", Multiplier: 1}},
			PrintSides: []domain.PrintOption{{ID: "single", Name: "Tek Yön", Multiplier: 1}},
		},
	}, domain.SelectedPrintOptions{
		SizeID: "standard", PaperTypeID: "matte", PrintSideID: "single", Quantity: 100,
	})
	return cart
}

func TestCartRepository_GetMissing(t *testing.T) {
	repo := NewCartRepository(newTestClient(t), time.Hour)

	cart, err := repo.Get(context.Background(), "no-such-session")

	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestCartRepository_SaveAndGet(t *testing.T) {
	repo := NewCartRepository(newTestClient(t), time.Hour)
	ctx := context.Background()
	cart := sampleCart("sess-1")

	ok, err := repo.SaveIfVersion(ctx, cart, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), cart.Version)

	loaded, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cart.SessionID, loaded.SessionID)
	assert.Equal(t, int64(1), loaded.Version)
	require.Len(t, loaded.Items, 1)
	assert.InDelta(t, 14250, loaded.Items[0].CalculatedPrice, 0.001)
}

func TestCartRepository_UnicodeRoundTrip(t *testing.T) {
	repo := NewCartRepository(newTestClient(t), time.Hour)
	ctx := context.Background()

	cart := sampleCart("sess-tr")
	cart.Items[0].Product.Name = "Çift Yönlü Broşür — İstanbul Şubesi"
	cart.Items[0].Product.Description = "Ödeme sonrası kargoya verilir: Üsküdar, Göztepe"

	ok, err := repo.SaveIfVersion(ctx, cart, 0)
	require.NoError(t, err)
	require.True(t, ok)

	loaded, err := repo.Get(ctx, "sess-tr")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cart.Items[0].Product.Name, loaded.Items[0].Product.Name)
	assert.Equal(t, cart.Items[0].Product.Description, loaded.Items[0].Product.Description)
}

func TestCartRepository_VersionConflict(t *testing.T) {
	repo := NewCartRepository(newTestClient(t), time.Hour)
	ctx := context.Background()

	cart := sampleCart("sess-1")
	ok, err := repo.SaveIfVersion(ctx, cart, 0)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("stale expected version", func(t *testing.T) {
		stale := sampleCart("sess-1")
		ok, err := repo.SaveIfVersion(ctx, stale, 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expecting document that does not exist", func(t *testing.T) {
		fresh := sampleCart("sess-2")
		ok, err := repo.SaveIfVersion(ctx, fresh, 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("matching version succeeds and bumps", func(t *testing.T) {
		cart.Clear()
		ok, err := repo.SaveIfVersion(ctx, cart, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(2), cart.Version)
	})
}

func TestCartRepository_Delete(t *testing.T) {
	repo := NewCartRepository(newTestClient(t), time.Hour)
	ctx := context.Background()

	cart := sampleCart("sess-1")
	_, err := repo.SaveIfVersion(ctx, cart, 0)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "sess-1"))

	loaded, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, repo.Delete(ctx, "sess-1"), "deleting a missing cart is not an error")
}
