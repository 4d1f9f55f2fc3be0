package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/models"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/utils/calc"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("not enough stock for product")
	ErrMaxQuantityExceeded = errors.New("maximum quantity per item exceeded")
	ErrNoCartOwner         = errors.New("neither user nor guest session identifies a cart")
)

type CartService struct {
	cartRepo        repositories.CartRepositoryImpl
	cartItemRepo    repositories.CartItemRepositoryImpl
	productRepo     repositories.ProductRepositoryImpl
	reservationRepo repositories.StockReservationRepositoryImpl
	config          configs.CartConfig
}

func NewCartService(
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	reservationRepo repositories.StockReservationRepositoryImpl,
	config configs.CartConfig,
) *CartService {
	return &CartService{
		cartRepo:        cartRepo,
		cartItemRepo:    cartItemRepo,
		productRepo:     productRepo,
		reservationRepo: reservationRepo,
		config:          config,
	}
}

// GetOrCreateCart resolves the request's cart by owner: the user's cart
// when authenticated, otherwise the guest cart for the session token.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID, sessionID string) (*models.Cart, error) {
	if userID != "" {
		return s.cartRepo.GetOrCreateByUserID(ctx, userID)
	}
	if sessionID != "" {
		return s.cartRepo.GetOrCreateGuestCart(ctx, sessionID)
	}
	return nil, ErrNoCartOwner
}

func (s *CartService) AddItemToCart(ctx context.Context, userID, sessionID, productID string, qty int) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existingItem, err := s.cartItemRepo.GetCartAndProduct(ctx, cart.ID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	newQty := qty
	if existingItem != nil {
		newQty = existingItem.Qty + qty
	}

	if newQty > s.config.MaxQuantityPerItem {
		return nil, ErrMaxQuantityExceeded
	}

	available, err := s.availableStock(ctx, product, cart.ID)
	if err != nil {
		return nil, err
	}
	if available < newQty {
		return nil, fmt.Errorf("%w %s (available: %d)", ErrInsufficientStock, product.Name, available)
	}

	var cartItem *models.CartItem
	if existingItem != nil {
		cartItem = existingItem
		cartItem.Qty = newQty
	} else {
		cartItem = &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Qty:       newQty,
			CreatedAt: time.Now(),
		}
	}
	s.priceCartItem(cartItem, product)

	if existingItem != nil {
		if err := s.cartItemRepo.Update(ctx, cartItem); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		if err := s.cartItemRepo.Add(ctx, cartItem); err != nil {
			return nil, fmt.Errorf("failed to add new cart item: %w", err)
		}
	}

	if s.config.ReserveStockOnAdd {
		if err := s.reserveStock(ctx, cart.ID, productID, newQty); err != nil {
			log.Printf("AddItemToCart: failed to reserve stock for product %s: %v", productID, err)
		}
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to update cart summary: %w", err)
	}

	updatedCart, err := s.cartRepo.GetCartWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated cart: %w", err)
	}
	return updatedCart, nil
}

func (s *CartService) UpdateCartItemQty(ctx context.Context, userID, sessionID, productID string, newQty int) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if newQty <= 0 {
		return s.RemoveItemFromCart(ctx, userID, sessionID, productID)
	}

	if newQty > s.config.MaxQuantityPerItem {
		return nil, ErrMaxQuantityExceeded
	}

	item, err := s.cartItemRepo.GetCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item not found")
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	available, err := s.availableStock(ctx, product, cart.ID)
	if err != nil {
		return nil, err
	}
	if available < newQty {
		return nil, fmt.Errorf("%w %s (available: %d)", ErrInsufficientStock, product.Name, available)
	}

	item.Qty = newQty
	s.priceCartItem(item, product)

	if err := s.cartItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	if s.config.ReserveStockOnAdd {
		if err := s.reserveStock(ctx, cart.ID, productID, newQty); err != nil {
			log.Printf("UpdateCartItemQty: failed to refresh reservation for product %s: %v", productID, err)
		}
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to update cart summary: %w", err)
	}

	return s.cartRepo.GetCartWithItems(ctx, cart.ID)
}

func (s *CartService) RemoveItemFromCart(ctx context.Context, userID, sessionID, productID string) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := s.cartItemRepo.Delete(ctx, cart.ID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove item from cart: %w", err)
	}

	if err := s.reservationRepo.DeleteByCartAndProduct(ctx, cart.ID, productID); err != nil {
		log.Printf("RemoveItemFromCart: failed to release reservation for product %s: %v", productID, err)
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		log.Printf("RemoveItemFromCart: failed to update summary for cart %s: %v", cart.ID, err)
	}

	return s.cartRepo.GetCartWithItems(ctx, cart.ID)
}

func (s *CartService) GetCart(ctx context.Context, userID, sessionID string) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}
	return s.cartRepo.GetCartWithItems(ctx, cart.ID)
}

// availableStock subtracts unexpired reservations held by other carts
// from the raw stock figure.
func (s *CartService) availableStock(ctx context.Context, product *models.Product, cartID string) (int, error) {
	if !s.config.ReserveStockOnAdd {
		return product.Stock, nil
	}
	reserved, err := s.reservationRepo.SumActiveByProduct(ctx, product.ID, cartID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum active reservations: %w", err)
	}
	return product.Stock - reserved, nil
}

func (s *CartService) reserveStock(ctx context.Context, cartID, productID string, qty int) error {
	if err := s.reservationRepo.DeleteByCartAndProduct(ctx, cartID, productID); err != nil {
		return err
	}
	return s.reservationRepo.Create(ctx, &models.StockReservation{
		CartID:    cartID,
		ProductID: productID,
		Qty:       qty,
		ExpiresAt: time.Now().Add(s.config.StockReservationTime),
	})
}

func (s *CartService) priceCartItem(item *models.CartItem, product *models.Product) {
	qty := decimal.NewFromInt(int64(item.Qty))
	discount := product.DiscountAmount.Mul(qty)

	item.BasePrice = product.Price
	item.BaseTotal = item.BasePrice.Mul(qty)
	item.TaxPercent = s.config.TaxRate
	item.SubTotal = item.BaseTotal.Sub(discount)
	item.TaxAmount = calc.CalculateTax(item.SubTotal, s.config.TaxRate)
	item.GrandTotal = item.SubTotal.Add(item.TaxAmount)
	item.UpdatedAt = time.Now()
}
