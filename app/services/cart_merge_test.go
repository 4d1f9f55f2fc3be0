package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogaprasetya/go-storefront/app/models"
)

func TestMergeGuestCartNoGuestCartIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	user := seedUser(t, db)
	product := seedProduct(t, db, "widget", 50000, 10)
	userCart := seedUserCart(t, db, user.ID)
	seedCartItem(t, db, userCart.ID, product, 2)

	err := svc.MergeGuestCart(context.Background(), user.ID, "no-such-session")
	require.NoError(t, err)

	var carts []models.Cart
	require.NoError(t, db.Find(&carts).Error)
	assert.Len(t, carts, 1)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", userCart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
}

func TestMergeGuestCartPromotesWhenUserHasNoCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	user := seedUser(t, db)
	product := seedProduct(t, db, "widget", 50000, 10)
	guestCart := seedGuestCart(t, db, "session-abc")
	seedCartItem(t, db, guestCart.ID, product, 3)

	err := svc.MergeGuestCart(context.Background(), user.ID, "session-abc")
	require.NoError(t, err)

	var carts []models.Cart
	require.NoError(t, db.Find(&carts).Error)
	require.Len(t, carts, 1)

	promoted := carts[0]
	assert.Equal(t, guestCart.ID, promoted.ID)
	require.NotNil(t, promoted.UserID)
	assert.Equal(t, user.ID, *promoted.UserID)
	assert.Nil(t, promoted.SessionID)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", guestCart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Qty)
}

func TestMergeGuestCartSumsMatchingProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	user := seedUser(t, db)
	product := seedProduct(t, db, "widget", 50000, 10)

	userCart := seedUserCart(t, db, user.ID)
	seedCartItem(t, db, userCart.ID, product, 2)

	guestCart := seedGuestCart(t, db, "session-abc")
	seedCartItem(t, db, guestCart.ID, product, 3)

	err := svc.MergeGuestCart(context.Background(), user.ID, "session-abc")
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", userCart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)

	var guestCarts []models.Cart
	require.NoError(t, db.Where("id = ?", guestCart.ID).Find(&guestCarts).Error)
	assert.Empty(t, guestCarts, "guest cart should be gone after merge")

	var orphanItems []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", guestCart.ID).Find(&orphanItems).Error)
	assert.Empty(t, orphanItems, "guest cart items should be gone after merge")
}

func TestMergeGuestCartMovesUnmatchedProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	user := seedUser(t, db)
	productA := seedProduct(t, db, "widget", 50000, 10)
	productB := seedProduct(t, db, "gadget", 75000, 10)

	userCart := seedUserCart(t, db, user.ID)
	seedCartItem(t, db, userCart.ID, productA, 1)

	guestCart := seedGuestCart(t, db, "session-abc")
	moved := seedCartItem(t, db, guestCart.ID, productB, 1)

	err := svc.MergeGuestCart(context.Background(), user.ID, "session-abc")
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", userCart.ID).Order("created_at").Find(&items).Error)
	require.Len(t, items, 2)

	var movedItem models.CartItem
	require.NoError(t, db.Where("id = ?", moved.ID).First(&movedItem).Error)
	assert.Equal(t, userCart.ID, movedItem.CartID, "item should be moved, not copied")
	assert.Equal(t, 1, movedItem.Qty)
}

// The per-item maximum only guards add-to-cart and quantity updates;
// merging two large quantities can exceed it. This pins the current
// unclamped behavior.
func TestMergeGuestCartDoesNotEnforceQuantityCap(t *testing.T) {
	db := newTestDB(t)
	config := testCartConfig()
	config.MaxQuantityPerItem = 5
	svc := newTestCartService(t, db, config)

	user := seedUser(t, db)
	product := seedProduct(t, db, "widget", 50000, 100)

	userCart := seedUserCart(t, db, user.ID)
	seedCartItem(t, db, userCart.ID, product, 4)

	guestCart := seedGuestCart(t, db, "session-abc")
	seedCartItem(t, db, guestCart.ID, product, 4)

	err := svc.MergeGuestCart(context.Background(), user.ID, "session-abc")
	require.NoError(t, err)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", userCart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Qty, "merge sums past MaxQuantityPerItem")
}

func TestMergeGuestCartDisabledByConfig(t *testing.T) {
	db := newTestDB(t)
	config := testCartConfig()
	config.MergeCartOnLogin = false
	svc := newTestCartService(t, db, config)

	user := seedUser(t, db)
	product := seedProduct(t, db, "widget", 50000, 10)
	guestCart := seedGuestCart(t, db, "session-abc")
	seedCartItem(t, db, guestCart.ID, product, 3)

	err := svc.MergeGuestCart(context.Background(), user.ID, "session-abc")
	require.NoError(t, err)

	var cart models.Cart
	require.NoError(t, db.Where("id = ?", guestCart.ID).First(&cart).Error)
	assert.Nil(t, cart.UserID, "guest cart must be untouched when merge is disabled")
}

func TestMergeGuestCartIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCartService(t, db, testCartConfig())

	user := seedUser(t, db)
	product := seedProduct(t, db, "widget", 50000, 10)

	userCart := seedUserCart(t, db, user.ID)
	seedCartItem(t, db, userCart.ID, product, 2)

	guestCart := seedGuestCart(t, db, "session-abc")
	seedCartItem(t, db, guestCart.ID, product, 3)

	require.NoError(t, svc.MergeGuestCart(context.Background(), user.ID, "session-abc"))
	require.NoError(t, svc.MergeGuestCart(context.Background(), user.ID, "session-abc"))

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", userCart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty, "second merge with no guest cart must not change anything")
}
