package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yogaprasetya/go-storefront/app/utils/calc"
	"gorm.io/gorm"
)

// MergeGuestCart folds the guest cart identified by sessionID into the
// user's cart. Safe to call when no guest cart exists; both the session
// middleware and the login event consumer invoke it.
//
// When the user has no cart yet the guest cart is promoted in place by
// rewriting its ownership columns. Otherwise each guest item either
// tops up the user's row for the same product or is moved across, and
// the emptied guest cart is deleted.
//
// The steps deliberately run outside a transaction; two simultaneous
// logins for the same session can race (see DESIGN.md). Quantities are
// summed without applying MaxQuantityPerItem, which only guards
// add-to-cart and quantity updates.
func (s *CartService) MergeGuestCart(ctx context.Context, userID, sessionID string) error {
	if !s.config.MergeCartOnLogin {
		return nil
	}
	if userID == "" || sessionID == "" {
		return nil
	}

	guestCart, err := s.cartRepo.FindGuestCart(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up guest cart: %w", err)
	}

	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if promoteErr := s.cartRepo.PromoteToUser(ctx, guestCart.ID, userID); promoteErr != nil {
				return fmt.Errorf("failed to promote guest cart %s: %w", guestCart.ID, promoteErr)
			}
			log.Printf("MergeGuestCart: promoted guest cart %s to user %s", guestCart.ID, userID)
			return nil
		}
		return fmt.Errorf("failed to look up user cart: %w", err)
	}

	guestItems, err := s.cartItemRepo.GetByCartID(ctx, guestCart.ID)
	if err != nil {
		return fmt.Errorf("failed to load guest cart items: %w", err)
	}

	for _, guestItem := range guestItems {
		existing, err := s.cartItemRepo.GetCartAndProduct(ctx, userCart.ID, guestItem.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check user cart item for product %s: %w", guestItem.ProductID, err)
		}

		if existing != nil {
			existing.Qty += guestItem.Qty
			qty := decimal.NewFromInt(int64(existing.Qty))
			existing.BaseTotal = existing.BasePrice.Mul(qty)
			existing.SubTotal = existing.BaseTotal
			existing.TaxAmount = calc.CalculateTax(existing.SubTotal, existing.TaxPercent)
			existing.GrandTotal = existing.SubTotal.Add(existing.TaxAmount)
			existing.UpdatedAt = time.Now()
			if err := s.cartItemRepo.Update(ctx, existing); err != nil {
				return fmt.Errorf("failed to merge quantity for product %s: %w", guestItem.ProductID, err)
			}
			if err := s.cartItemRepo.Delete(ctx, guestCart.ID, guestItem.ProductID); err != nil {
				return fmt.Errorf("failed to remove merged guest item for product %s: %w", guestItem.ProductID, err)
			}
		} else {
			if err := s.cartItemRepo.MoveToCart(ctx, guestItem.ID, userCart.ID); err != nil {
				return fmt.Errorf("failed to move guest item %s: %w", guestItem.ID, err)
			}
		}
	}

	if err := s.reservationRepo.DeleteByCartIDs(ctx, []string{guestCart.ID}); err != nil {
		log.Printf("MergeGuestCart: failed to release reservations for guest cart %s: %v", guestCart.ID, err)
	}

	if err := s.cartRepo.DeleteCart(ctx, guestCart.ID); err != nil {
		return fmt.Errorf("failed to delete emptied guest cart %s: %w", guestCart.ID, err)
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, userCart.ID); err != nil {
		log.Printf("MergeGuestCart: failed to update summary for cart %s: %v", userCart.ID, err)
	}

	log.Printf("MergeGuestCart: merged %d guest item(s) into cart %s for user %s", len(guestItems), userCart.ID, userID)
	return nil
}
