package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogaprasetya/go-storefront/app/models"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"gorm.io/gorm"
)

type fakeGuestStore struct {
	touched []string
	deleted []string
	removed int
	err     error
}

func (f *fakeGuestStore) Touch(ctx context.Context, sessionID string) error {
	f.touched = append(f.touched, sessionID)
	return f.err
}

func (f *fakeGuestStore) Delete(ctx context.Context, sessionID string) error {
	f.deleted = append(f.deleted, sessionID)
	return f.err
}

func (f *fakeGuestStore) Cleanup(ctx context.Context) (int, error) {
	return f.removed, f.err
}

func newTestCleanupService(t *testing.T, db *gorm.DB, store *fakeGuestStore) *CleanupService {
	t.Helper()
	return NewCleanupService(
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewStockReservationRepository(db),
		store,
		testCartConfig(),
	)
}

func setCartAge(t *testing.T, db *gorm.DB, cartID string, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("updated_at", updatedAt).Error)
}

func TestCleanExpiredCartsDeletesOnlyStaleGuestCarts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCleanupService(t, db, &fakeGuestStore{})

	product := seedProduct(t, db, "widget", 50000, 10)
	user := seedUser(t, db)
	expiration := testCartConfig().GuestCartExpiration

	staleGuest := seedGuestCart(t, db, "stale-session")
	seedCartItem(t, db, staleGuest.ID, product, 2)
	setCartAge(t, db, staleGuest.ID, time.Now().Add(-expiration-time.Minute))

	freshGuest := seedGuestCart(t, db, "fresh-session")
	seedCartItem(t, db, freshGuest.ID, product, 1)
	setCartAge(t, db, freshGuest.ID, time.Now().Add(-expiration+time.Minute))

	oldUserCart := seedUserCart(t, db, user.ID)
	seedCartItem(t, db, oldUserCart.ID, product, 1)
	setCartAge(t, db, oldUserCart.ID, time.Now().Add(-expiration-time.Hour))

	result, err := svc.CleanExpiredCarts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCarts)
	assert.Equal(t, int64(1), result.DeletedItems)

	var remaining []models.Cart
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, cart := range remaining {
		assert.NotEqual(t, staleGuest.ID, cart.ID)
	}

	var orphans []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", staleGuest.ID).Find(&orphans).Error)
	assert.Empty(t, orphans, "stale cart's items must be deleted in the same sweep")
}

func TestCleanExpiredCartsReportsZeroWithoutWrites(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCleanupService(t, db, &fakeGuestStore{})

	product := seedProduct(t, db, "widget", 50000, 10)
	fresh := seedGuestCart(t, db, "fresh-session")
	seedCartItem(t, db, fresh.ID, product, 1)

	result, err := svc.CleanExpiredCarts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.DeletedCarts)
	assert.Equal(t, int64(0), result.DeletedItems)

	var carts []models.Cart
	require.NoError(t, db.Find(&carts).Error)
	assert.Len(t, carts, 1)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	assert.Len(t, items, 1)
}

func TestCleanExpiredSessionsReportsStoreCount(t *testing.T) {
	db := newTestDB(t)
	store := &fakeGuestStore{removed: 4}
	svc := newTestCleanupService(t, db, store)

	removed, err := svc.CleanExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, removed)
}

func TestCleanExpiredSessionsWrapsStoreFailure(t *testing.T) {
	db := newTestDB(t)
	store := &fakeGuestStore{err: errors.New("redis unreachable")}
	svc := newTestCleanupService(t, db, store)

	_, err := svc.CleanExpiredSessions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis unreachable")
}
