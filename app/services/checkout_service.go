package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/models"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/utils/calc"
	"gorm.io/gorm"
)

var ErrEmptyCart = errors.New("cart is empty or not found")

type CheckoutService struct {
	db              *gorm.DB
	cartRepo        repositories.CartRepositoryImpl
	cartItemRepo    repositories.CartItemRepositoryImpl
	productRepo     repositories.ProductRepositoryImpl
	userRepo        repositories.UserRepositoryImpl
	orderRepo       repositories.OrderRepositoryImpl
	reservationRepo repositories.StockReservationRepositoryImpl
	snapClient      snap.Client
	config          configs.CartConfig
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	orderRepo repositories.OrderRepositoryImpl,
	reservationRepo repositories.StockReservationRepositoryImpl,
	snapClient snap.Client,
	config configs.CartConfig,
) *CheckoutService {
	return &CheckoutService{
		db:              db,
		cartRepo:        cartRepo,
		cartItemRepo:    cartItemRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		snapClient:      snapClient,
		config:          config,
	}
}

// ProcessCheckout turns the user's cart into a pending order inside a
// single transaction: stock is decremented, order and items written,
// the cart emptied. The midtrans snap token is requested after commit.
func (s *CheckoutService) ProcessCheckout(ctx context.Context, userID, shippingAddress string) (*models.Order, string, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEmptyCart
		}
		return nil, "", fmt.Errorf("failed to get cart: %w", err)
	}

	detailed, err := s.cartRepo.GetCartWithItems(ctx, cart.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get cart with items: %w", err)
	}
	if len(detailed.CartItems) == 0 {
		return nil, "", ErrEmptyCart
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", errors.New("user not found")
	}

	totalWeight := decimal.Zero
	baseTotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(detailed.CartItems))
	for _, item := range detailed.CartItems {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("product %s no longer available: %w", item.ProductID, err)
		}
		totalWeight = totalWeight.Add(product.Weight.Mul(decimal.NewFromInt(int64(item.Qty))))
		baseTotal = baseTotal.Add(item.SubTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Qty:       item.Qty,
			BasePrice: item.BasePrice,
			SubTotal:  item.SubTotal,
		})
	}

	taxAmount := calc.CalculateTax(baseTotal, s.config.TaxRate)
	shippingCost := calc.CalculateShippingCost(s.config.BaseShippingRate, s.config.WeightShippingMultiplier, totalWeight)
	grandTotal := calc.CalculateGrandTotal(baseTotal, taxAmount, shippingCost)

	order := &models.Order{
		ID:              uuid.New().String(),
		Code:            generateOrderCode(),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		BaseTotalPrice:  baseTotal,
		TaxAmount:       taxAmount,
		ShippingCost:    shippingCost,
		GrandTotal:      grandTotal,
		ShippingAddress: shippingAddress,
	}
	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	order.OrderItems = orderItems

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, "", fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ProcessCheckout: rolling back after panic: %v", r)
			tx.Rollback()
		}
	}()

	for _, item := range detailed.CartItems {
		if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Qty); err != nil {
			tx.Rollback()
			return nil, "", fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
		}
	}

	if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID); err != nil {
		tx.Rollback()
		return nil, "", fmt.Errorf("failed to clear cart items: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, "", fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	if err := s.reservationRepo.DeleteByCartIDs(ctx, []string{cart.ID}); err != nil {
		log.Printf("ProcessCheckout: failed to release reservations for cart %s: %v", cart.ID, err)
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		log.Printf("ProcessCheckout: failed to reset summary for cart %s: %v", cart.ID, err)
	}

	snapToken, err := s.requestSnapToken(order, user)
	if err != nil {
		log.Printf("ProcessCheckout: failed to request payment token for order %s: %v", order.Code, err)
		return order, "", nil
	}

	return order, snapToken, nil
}

func (s *CheckoutService) requestSnapToken(order *models.Order, user *models.User) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Code,
			GrossAmt: order.GrandTotal.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FirstName,
			LName: user.LastName,
			Email: user.Email,
			Phone: user.Phone,
		},
	}

	resp, midErr := s.snapClient.CreateTransaction(req)
	if midErr != nil {
		return "", fmt.Errorf("midtrans snap request failed: %w", midErr)
	}
	return resp.Token, nil
}

func generateOrderCode() string {
	return "ORD-" + time.Now().Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:8])
}
