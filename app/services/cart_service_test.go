package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogaprasetya/go-storefront/app/models"
)

func TestAddItemToCartCreatesGuestCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	product := seedProduct(t, db, "widget", 50000, 10)

	cart, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 2)
	require.NoError(t, err)

	require.NotNil(t, cart.SessionID)
	assert.Equal(t, "session-abc", *cart.SessionID)
	assert.Nil(t, cart.UserID)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 2, cart.CartItems[0].Qty)
}

func TestAddItemToCartSumsExistingRow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	product := seedProduct(t, db, "widget", 50000, 10)

	_, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 2)
	require.NoError(t, err)
	cart, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 1, "one row per product within a cart")
	assert.Equal(t, 5, cart.CartItems[0].Qty)
}

func TestAddItemToCartEnforcesQuantityCap(t *testing.T) {
	db := newTestDB(t)
	config := testCartConfig()
	config.MaxQuantityPerItem = 3
	svc := newTestCartService(t, db, config)

	product := seedProduct(t, db, "widget", 50000, 100)

	_, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 3)
	require.NoError(t, err)

	_, err = svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 1)
	assert.ErrorIs(t, err, ErrMaxQuantityExceeded)
}

func TestAddItemToCartRejectsOutOfStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	product := seedProduct(t, db, "widget", 50000, 2)

	_, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddItemToCartRequiresOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	product := seedProduct(t, db, "widget", 50000, 10)

	_, err := svc.AddItemToCart(context.Background(), "", "", product.ID, 1)
	assert.ErrorIs(t, err, ErrNoCartOwner)
}

func TestAddItemToCartReservesStockWhenEnabled(t *testing.T) {
	db := newTestDB(t)
	config := testCartConfig()
	config.ReserveStockOnAdd = true
	svc := newTestCartService(t, db, config)

	product := seedProduct(t, db, "widget", 50000, 10)

	cart, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 4)
	require.NoError(t, err)

	var reservations []models.StockReservation
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&reservations).Error)
	require.Len(t, reservations, 1)
	assert.Equal(t, 4, reservations[0].Qty)
	assert.Equal(t, product.ID, reservations[0].ProductID)
}

func TestReservationsReduceAvailabilityForOtherCarts(t *testing.T) {
	db := newTestDB(t)
	config := testCartConfig()
	config.ReserveStockOnAdd = true
	svc := newTestCartService(t, db, config)

	product := seedProduct(t, db, "widget", 50000, 5)

	_, err := svc.AddItemToCart(context.Background(), "", "session-one", product.ID, 4)
	require.NoError(t, err)

	_, err = svc.AddItemToCart(context.Background(), "", "session-two", product.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.AddItemToCart(context.Background(), "", "session-two", product.ID, 1)
	require.NoError(t, err)
}

func TestUpdateCartItemQtyRemovesOnZero(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	product := seedProduct(t, db, "widget", 50000, 10)

	_, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateCartItemQty(context.Background(), "", "session-abc", product.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestRemoveItemReleasesReservation(t *testing.T) {
	db := newTestDB(t)
	config := testCartConfig()
	config.ReserveStockOnAdd = true
	svc := newTestCartService(t, db, config)

	product := seedProduct(t, db, "widget", 50000, 10)

	cart, err := svc.AddItemToCart(context.Background(), "", "session-abc", product.ID, 2)
	require.NoError(t, err)

	_, err = svc.RemoveItemFromCart(context.Background(), "", "session-abc", product.ID)
	require.NoError(t, err)

	var reservations []models.StockReservation
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&reservations).Error)
	assert.Empty(t, reservations)
}
