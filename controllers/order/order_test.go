package orderControllers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartControllers "github.com/dzstore/storefront-api/controllers/cart"

	"github.com/dzstore/storefront-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Brand{}, &models.Product{}, &models.ProductImage{},
		&models.ProductVariant{}, &models.Stock{}, &models.Cart{}, &models.CartItem{},
		&models.Wilaya{}, &models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Category{ID: "cat-1", Name: "Drinks", Slug: "drinks"}).Error)
	require.NoError(t, db.Create(&models.Brand{ID: "brand-1", Title: "Acme", CategoryID: "cat-1"}).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: "prod-1", Name: "Cola", Slug: "cola", Image: "/cola.png",
		CategoryID: "cat-1", BrandID: "brand-1",
	}).Error)
	require.NoError(t, db.Create(&models.Wilaya{ID: "w-1", Name: "Alger", Price: 500}).Error)
}

func seedVariantWithStock(t *testing.T, db *gorm.DB, variantID string, price float64, qty int) {
	t.Helper()
	require.NoError(t, db.Create(&models.ProductVariant{
		ID: variantID, ProdID: "prod-1", Price: price,
		Stock: &models.Stock{Qty: qty},
	}).Error)
}

func stockQty(t *testing.T, db *gorm.DB, variantID string) int {
	t.Helper()
	var stock models.Stock
	require.NoError(t, db.First(&stock, "prod_variant_id = ?", variantID).Error)
	return stock.Qty
}

func validOrder() CreateOrderData {
	return CreateOrderData{
		Name:     "John Doe",
		Email:    "john@example.com",
		Phone:    "0555123456",
		WilayaID: "w-1",
		Items: []OrderLineInput{
			{ProdVariantID: "pv-1", Quantity: 2, PriceAtPurchase: 1000},
		},
		Total: 2000,
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	data := validOrder()
	data.Items = nil

	_, err := CreateOrder(db, data)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderRoundsTotal(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	cases := []struct {
		total float64
		want  int
	}{
		{1999.7, 2000},
		{1999.4, 1999},
		{2000, 2000},
	}
	for i, tc := range cases {
		seedVariantWithStock(t, db, fmt.Sprintf("pv-%d", i+1), 1000, 10)
		data := validOrder()
		data.Items = []OrderLineInput{{ProdVariantID: fmt.Sprintf("pv-%d", i+1), Quantity: 1, PriceAtPurchase: tc.total}}
		data.Total = tc.total

		order, err := CreateOrder(db, data)
		require.NoError(t, err)
		assert.Equal(t, tc.want, order.Total, "total %v", tc.total)
	}
}

func TestCreateOrderSnapshotsLines(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)

	order, err := CreateOrder(db, validOrder())

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Alger", order.Wilaya.Name)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "pv-1", order.Items[0].ProdVariantID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, float64(1000), order.Items[0].PriceAtPurchase)
	assert.Nil(t, order.CustomerID)
}

func TestCreateOrderDecrementsStockPerLine(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)
	seedVariantWithStock(t, db, "pv-2", 2000, 4)

	data := validOrder()
	data.Items = []OrderLineInput{
		{ProdVariantID: "pv-1", Quantity: 2, PriceAtPurchase: 1000},
		{ProdVariantID: "pv-2", Quantity: 1, PriceAtPurchase: 2000},
	}
	data.Total = 4000

	_, err := CreateOrder(db, data)

	require.NoError(t, err)
	assert.Equal(t, 8, stockQty(t, db, "pv-1"))
	assert.Equal(t, 3, stockQty(t, db, "pv-2"))
}

func TestCreateOrderClearsCustomerCart(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)
	require.NoError(t, db.Create(&models.Cart{ID: "cart-1", UserID: "user-1"}).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: "cart-1", ProdVariantID: "pv-1", Quantity: 2}).Error)

	data := validOrder()
	data.CustomerID = "user-1"

	order, err := CreateOrder(db, data)

	require.NoError(t, err)
	require.NotNil(t, order.CustomerID)
	assert.Equal(t, "user-1", *order.CustomerID)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", "cart-1").Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderGuestSkipsCartClear(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)
	require.NoError(t, db.Create(&models.Cart{ID: "cart-1", UserID: "user-1"}).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: "cart-1", ProdVariantID: "pv-1", Quantity: 2}).Error)

	_, err := CreateOrder(db, validOrder()) // no CustomerID

	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", "cart-1").Count(&count).Error)
	assert.EqualValues(t, 1, count, "guest checkout must not touch persisted carts")
}

func TestCreateOrderCustomerWithoutCart(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)

	data := validOrder()
	data.CustomerID = "user-without-cart"

	_, err := CreateOrder(db, data)
	assert.NoError(t, err)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)
	seedVariantWithStock(t, db, "pv-2", 2000, 1)
	require.NoError(t, db.Create(&models.Cart{ID: "cart-1", UserID: "user-1"}).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: "cart-1", ProdVariantID: "pv-1", Quantity: 2}).Error)

	data := validOrder()
	data.CustomerID = "user-1"
	data.Items = []OrderLineInput{
		{ProdVariantID: "pv-1", Quantity: 2, PriceAtPurchase: 1000},
		{ProdVariantID: "pv-2", Quantity: 5, PriceAtPurchase: 2000},
	}

	_, err := CreateOrder(db, data)
	require.ErrorIs(t, err, ErrInsufficientStock)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders, "no order row may survive the rollback")
	assert.Equal(t, 10, stockQty(t, db, "pv-1"), "the first line's decrement must be rolled back")
	assert.Equal(t, 1, stockQty(t, db, "pv-2"))

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", "cart-1").Count(&items).Error)
	assert.EqualValues(t, 1, items, "the cart clear must be rolled back")
}

func TestCreateOrderMissingStockRow(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	require.NoError(t, db.Create(&models.ProductVariant{ID: "pv-1", ProdID: "prod-1", Price: 1000}).Error)

	_, err := CreateOrder(db, validOrder())
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestGetWilayasSortedByName(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Wilaya{ID: "w-2", Name: "Oran", Price: 800}).Error)
	require.NoError(t, db.Create(&models.Wilaya{ID: "w-1", Name: "Alger", Price: 500}).Error)

	wilayas, err := GetWilayas(db)

	require.NoError(t, err)
	require.Len(t, wilayas, 2)
	assert.Equal(t, "Alger", wilayas[0].Name)
	assert.Equal(t, "Oran", wilayas[1].Name)
}

func TestGetUserOrders(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)

	byID := validOrder()
	byID.CustomerID = "user-1"
	_, err := CreateOrder(db, byID)
	require.NoError(t, err)

	guest := validOrder()
	guest.Email = "guest@example.com"
	_, err = CreateOrder(db, guest)
	require.NoError(t, err)

	orders, err := GetUserOrders(db, "user-1", "")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].CustomerID)
	assert.Equal(t, "user-1", *orders[0].CustomerID)

	orders, err = GetUserOrders(db, "", "guest@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "guest@example.com", orders[0].Email)

	orders, err = GetUserOrders(db, "", "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)

	order, err := CreateOrder(db, validOrder())
	require.NoError(t, err)

	_, err = UpdateOrderStatus(db, order.ID, models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition, "PENDING cannot jump to SHIPPED")

	updated, err := UpdateOrderStatus(db, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	updated, err = UpdateOrderStatus(db, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	_, err = UpdateOrderStatus(db, order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition, "SHIPPED is terminal")

	_, err = UpdateOrderStatus(db, "missing", models.OrderStatusProcessing)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateOrderStatusCancelDoesNotRestock(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 10)

	order, err := CreateOrder(db, validOrder())
	require.NoError(t, err)
	require.Equal(t, 8, stockQty(t, db, "pv-1"))

	_, err = UpdateOrderStatus(db, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 8, stockQty(t, db, "pv-1"))
}

// Checkout end to end: add to cart, bump the quantity, place the order.
func TestCheckoutFlow(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	seedVariantWithStock(t, db, "pv-1", 1000, 5)

	cart, err := cartControllers.GetCartWithItems(db, "user-1")
	require.NoError(t, err)

	_, err = cartControllers.AddToCart(db, cart.ID, cartControllers.CartItemInput{
		ProdVariantID: "pv-1", Quantity: 1, Title: "Cola", Price: 1000,
	})
	require.NoError(t, err)
	require.NoError(t, cartControllers.IncreaseItemQuantity(db, "pv-1", cart.ID))

	cart, err = cartControllers.GetCartWithItems(db, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	lineTotal := cart.Items[0].Price * float64(cart.Items[0].Quantity)
	require.Equal(t, float64(2000), lineTotal)

	order, err := CreateOrder(db, CreateOrderData{
		Name:       "John Doe",
		Email:      "john@example.com",
		Phone:      "0555123456",
		WilayaID:   "w-1",
		CustomerID: "user-1",
		Items: []OrderLineInput{
			{ProdVariantID: "pv-1", Quantity: 2, PriceAtPurchase: 1000},
		},
		Total: lineTotal,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 2000, order.Total)
	assert.Equal(t, 3, stockQty(t, db, "pv-1"))

	cart, err = cartControllers.GetCartWithItems(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "placing the order empties the persisted cart")
}
