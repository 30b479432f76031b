package services

import (
	"testing"

	"aurora-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id, priceCents int) *models.Product {
	return &models.Product{
		ID:         id,
		Name:       "Test Product",
		PriceCents: priceCents,
		Image:      "/imgs/test.jpg",
	}
}

func TestCartService_AddItem(t *testing.T) {
	svc := NewCartService()

	t.Run("adds a new line item", func(t *testing.T) {
		cart := &models.Cart{}
		err := svc.AddItem(cart, testProduct(1, 1000), 1)
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
		assert.Equal(t, 1000, cart.Items[0].UnitPriceCents)
		assert.Equal(t, 1000, cart.TotalAmount)
	})

	t.Run("applies the bulk discount at add time", func(t *testing.T) {
		cart := &models.Cart{}
		err := svc.AddItem(cart, testProduct(1, 1000), 10)
		require.NoError(t, err)

		assert.Equal(t, 900, cart.Items[0].UnitPriceCents)
		assert.Equal(t, 9000, cart.TotalAmount)
	})

	t.Run("merges repeated adds of the same product", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 2))
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 1))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
	})

	t.Run("merge recomputes the tier price from the combined quantity", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 4))
		assert.Equal(t, 1000, cart.Items[0].UnitPriceCents)

		// 4 + 6 = 10 crosses into the 10% tier
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 6))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 10, cart.Items[0].Quantity)
		assert.Equal(t, 900, cart.Items[0].UnitPriceCents)
	})

	t.Run("different products get separate lines", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 1))
		require.NoError(t, svc.AddItem(cart, testProduct(2, 1200), 1))

		assert.Len(t, cart.Items, 2)
		assert.Equal(t, 2200, cart.TotalAmount)
	})

	t.Run("opens the cart", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 1))
		assert.True(t, cart.Open)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := &models.Cart{}
		assert.ErrorIs(t, svc.AddItem(cart, testProduct(1, 1000), 0), models.ErrInvalidQuantity)
		assert.ErrorIs(t, svc.AddItem(cart, testProduct(1, 1000), -3), models.ErrInvalidQuantity)
		assert.Empty(t, cart.Items)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		cart := &models.Cart{}
		assert.ErrorIs(t, svc.AddItem(cart, testProduct(1, -100), 1), models.ErrInvalidPrice)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		cart := &models.Cart{}
		assert.ErrorIs(t, svc.AddItem(cart, nil, 1), models.ErrProductNotFound)
	})
}

func TestCartService_ChangeQuantity(t *testing.T) {
	svc := NewCartService()

	t.Run("nudges quantity up and down", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 2))

		require.NoError(t, svc.ChangeQuantity(cart, 1, 1))
		assert.Equal(t, 3, cart.Items[0].Quantity)

		require.NoError(t, svc.ChangeQuantity(cart, 1, -1))
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("never drops below one", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 3))

		require.NoError(t, svc.ChangeQuantity(cart, 1, -10))
		assert.Equal(t, 1, cart.Items[0].Quantity)

		require.NoError(t, svc.ChangeQuantity(cart, 1, -1))
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("recomputes price when crossing a tier boundary", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 9))
		assert.Equal(t, 950, cart.Items[0].UnitPriceCents)

		require.NoError(t, svc.ChangeQuantity(cart, 1, 1)) // 9 -> 10
		assert.Equal(t, 900, cart.Items[0].UnitPriceCents)
		assert.Equal(t, 9000, cart.TotalAmount)
	})

	t.Run("leaves price alone within a tier", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 10))

		require.NoError(t, svc.ChangeQuantity(cart, 1, 5)) // 10 -> 15, still 10% tier
		assert.Equal(t, 900, cart.Items[0].UnitPriceCents)
		assert.Equal(t, 13500, cart.TotalAmount)
	})

	t.Run("restores full price when dropping out of a tier", func(t *testing.T) {
		cart := &models.Cart{}
		require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 5))
		assert.Equal(t, 950, cart.Items[0].UnitPriceCents)

		require.NoError(t, svc.ChangeQuantity(cart, 1, -1)) // 5 -> 4
		assert.Equal(t, 1000, cart.Items[0].UnitPriceCents)
	})

	t.Run("unknown line item", func(t *testing.T) {
		cart := &models.Cart{}
		assert.ErrorIs(t, svc.ChangeQuantity(cart, 42, 1), models.ErrLineItemNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	svc := NewCartService()

	cart := &models.Cart{}
	require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 1))
	require.NoError(t, svc.AddItem(cart, testProduct(2, 1200), 1))

	svc.RemoveItem(cart, 1)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ProductID)
	assert.Equal(t, 1200, cart.TotalAmount)

	// Removing an absent item is a no-op
	svc.RemoveItem(cart, 42)
	assert.Len(t, cart.Items, 1)

	svc.RemoveItem(cart, 2)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalAmount)
}

func TestCartService_Total(t *testing.T) {
	svc := NewCartService()

	cart := &models.Cart{}
	assert.Equal(t, 0, svc.Total(cart))

	require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 10))
	require.NoError(t, svc.AddItem(cart, testProduct(2, 500), 3))

	assert.Equal(t, 10*900+3*500, svc.Total(cart))
	assert.Equal(t, cart.TotalAmount, svc.Total(cart))
}

// Scenario from the storefront: €10.00 product at quantity 10, then 5 more,
// then removed
func TestCartService_EndToEndScenario(t *testing.T) {
	svc := NewCartService()
	cart := &models.Cart{}

	require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 10))
	assert.Equal(t, 9000, svc.Total(cart)) // €90.00 at the 10% tier

	require.NoError(t, svc.AddItem(cart, testProduct(1, 1000), 5))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 15, cart.Items[0].Quantity)
	assert.Equal(t, 13500, svc.Total(cart)) // €135.00, still the 10% tier

	svc.RemoveItem(cart, 1)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, svc.Total(cart))
}
