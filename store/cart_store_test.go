package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id, cartID string, qty int, price float64) CartLine {
	return CartLine{ID: id, CartID: cartID, ProdVariantID: "pv-" + id, Quantity: qty, Price: price}
}

func TestAddToCartSeedsCartIDOnce(t *testing.T) {
	s := NewCartStore()
	assert.Empty(t, s.CartID())

	s.AddToCart(line("a", "cart-1", 1, 100))
	assert.Equal(t, "cart-1", s.CartID())

	// A later line with a different cart id never overwrites the seed.
	s.AddToCart(line("b", "cart-2", 1, 200))
	assert.Equal(t, "cart-1", s.CartID())
	assert.Len(t, s.Items(), 2)
}

func TestRemoveFromCart(t *testing.T) {
	s := NewCartStore()
	s.AddToCart(line("a", "cart-1", 1, 100))
	s.AddToCart(line("b", "cart-1", 2, 200))

	s.RemoveFromCart("a")
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)

	// Absent id is a no-op.
	s.RemoveFromCart("missing")
	assert.Len(t, s.Items(), 1)
}

func TestIncreaseItemQuantity(t *testing.T) {
	s := NewCartStore()
	s.AddToCart(line("a", "cart-1", 1, 100))

	s.IncreaseItemQuantity("a")
	s.IncreaseItemQuantity("missing")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestDecreaseItemQuantityDropsAtZero(t *testing.T) {
	s := NewCartStore()
	s.AddToCart(line("a", "cart-1", 2, 100))
	s.AddToCart(line("b", "cart-1", 1, 200))

	s.DecreaseItemQuantity("a")
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)

	// Hitting zero removes the line entirely.
	s.DecreaseItemQuantity("b")
	items = s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestSetCartItemsReplaces(t *testing.T) {
	s := NewCartStore()
	s.AddToCart(line("a", "cart-1", 1, 100))

	s.SetCartItems([]CartLine{line("x", "cart-9", 3, 50)})
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].ID)
	// Cart id was already seeded; the replacement does not move it.
	assert.Equal(t, "cart-1", s.CartID())

	fresh := NewCartStore()
	fresh.SetCartItems([]CartLine{line("x", "cart-9", 3, 50)})
	assert.Equal(t, "cart-9", fresh.CartID())

	fresh.SetCartItems(nil)
	assert.Empty(t, fresh.Items())
	assert.Equal(t, "cart-9", fresh.CartID())
}

func TestTotal(t *testing.T) {
	s := NewCartStore()
	assert.Zero(t, s.Total())

	s.AddToCart(line("a", "cart-1", 2, 1000))
	s.AddToCart(line("b", "cart-1", 3, 250.5))
	assert.Equal(t, 2751.5, s.Total())
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewCartStore()
	s.AddToCart(line("a", "cart-1", 1, 100))

	items := s.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestManagerGetAndDrop(t *testing.T) {
	m := NewManager()

	first := m.Get("sess-1")
	require.NotNil(t, first)
	assert.Same(t, first, m.Get("sess-1"))
	assert.NotSame(t, first, m.Get("sess-2"))

	first.AddToCart(line("a", "cart-1", 1, 100))
	m.Drop("sess-1")
	assert.Empty(t, m.Get("sess-1").Items())
}
