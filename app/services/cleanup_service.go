package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/utils/sessions"
)

// CleanupService hosts the two timer-driven sweep jobs. They are
// stateless and touch disjoint stores: expired guest carts live in the
// relational database, expired guest sessions in the fast-lookup store.
type CleanupService struct {
	cartRepo        repositories.CartRepositoryImpl
	cartItemRepo    repositories.CartItemRepositoryImpl
	reservationRepo repositories.StockReservationRepositoryImpl
	guestStore      sessions.GuestSessionStore
	config          configs.CartConfig
}

func NewCleanupService(
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	reservationRepo repositories.StockReservationRepositoryImpl,
	guestStore sessions.GuestSessionStore,
	config configs.CartConfig,
) *CleanupService {
	return &CleanupService{
		cartRepo:        cartRepo,
		cartItemRepo:    cartItemRepo,
		reservationRepo: reservationRepo,
		guestStore:      guestStore,
		config:          config,
	}
}

type CartSweepResult struct {
	DeletedCarts int64
	DeletedItems int64
}

// CleanExpiredCarts deletes guest carts whose last update is older than
// the configured expiration, items first so no orphan rows are left
// behind. User-owned carts are never touched.
func (s *CleanupService) CleanExpiredCarts(ctx context.Context) (*CartSweepResult, error) {
	cutoff := time.Now().Add(-s.config.GuestCartExpiration)

	ids, err := s.cartRepo.FindExpiredGuestCartIDs(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired guest carts: %w", err)
	}
	if len(ids) == 0 {
		return &CartSweepResult{}, nil
	}

	deletedItems, err := s.cartItemRepo.DeleteByCartIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expired cart items: %w", err)
	}

	if err := s.reservationRepo.DeleteByCartIDs(ctx, ids); err != nil {
		log.Printf("CleanExpiredCarts: failed to release reservations: %v", err)
	}

	deletedCarts, err := s.cartRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expired carts: %w", err)
	}

	return &CartSweepResult{
		DeletedCarts: deletedCarts,
		DeletedItems: deletedItems,
	}, nil
}

// CleanExpiredSessions delegates to the guest session store's own
// cleanup routine. A store failure is reported, never panicked, so the
// scheduler keeps running.
func (s *CleanupService) CleanExpiredSessions(ctx context.Context) (int, error) {
	removed, err := s.guestStore.Cleanup(ctx)
	if err != nil {
		return removed, fmt.Errorf("failed to clean expired sessions: %w", err)
	}
	return removed, nil
}
