package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/models"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/services"
)

type CheckoutHandler struct {
	render          *render.Render
	cartService     *services.CartService
	checkoutService *services.CheckoutService
	orderRepo       repositories.OrderRepositoryImpl
	validator       *validator.Validate
}

func NewCheckoutHandler(r *render.Render, cartService *services.CartService, checkoutService *services.CheckoutService, orderRepo repositories.OrderRepositoryImpl, validate *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{
		render:          r,
		cartService:     cartService,
		checkoutService: checkoutService,
		orderRepo:       orderRepo,
		validator:       validate,
	}
}

type CheckoutForm struct {
	Address    string `form:"address" validate:"required,min=10,max=500"`
	City       string `form:"city" validate:"required,max=100"`
	PostalCode string `form:"postal_code" validate:"required,max=10"`
}

func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	cart, err := h.cartService.GetCart(r.Context(), userID, "")
	if err != nil {
		log.Printf("Show: failed to load cart for user %s: %v", userID, err)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if len(cart.CartItems) == 0 {
		redirectWithError(w, r, "/cart", "your cart is empty")
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":         "Checkout",
		"Cart":          cart,
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout/index", data)
}

func (h *CheckoutHandler) Process(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/checkout", "failed to process checkout data")
		return
	}

	form := CheckoutForm{
		Address:    r.FormValue("address"),
		City:       r.FormValue("city"),
		PostalCode: r.FormValue("postal_code"),
	}
	if err := h.validator.Struct(form); err != nil {
		redirectWithError(w, r, "/checkout", "please fill in the shipping address completely")
		return
	}

	shippingAddress := form.Address + ", " + form.City + " " + form.PostalCode
	order, snapToken, err := h.checkoutService.ProcessCheckout(r.Context(), userID, shippingAddress)
	if err != nil {
		log.Printf("Process: checkout failed for user %s: %v", userID, err)
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			redirectWithError(w, r, "/cart", "your cart is empty")
		case errors.Is(err, services.ErrInsufficientStock):
			redirectWithError(w, r, "/cart", "some items are no longer in stock")
		default:
			redirectWithError(w, r, "/checkout", "checkout failed, please try again")
		}
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":     "Payment",
		"Order":     order,
		"SnapToken": snapToken,
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout/payment", data)
}

// PaymentFinish is the snap redirect target after a completed sandbox
// payment. It marks the order paid and shows the confirmation page.
func (h *CheckoutHandler) PaymentFinish(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	code := r.URL.Query().Get("order_id")
	order, err := h.orderRepo.GetByCode(r.Context(), code)
	if err != nil || order.UserID != userID {
		log.Printf("PaymentFinish: order %q not found for user %s: %v", code, userID, err)
		http.NotFound(w, r)
		return
	}

	if order.Status == models.OrderStatusPending {
		if err := h.orderRepo.MarkPaid(r.Context(), order.ID); err != nil {
			log.Printf("PaymentFinish: failed to mark order %s paid: %v", order.Code, err)
		}
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title": "Order confirmed",
		"Order": order,
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout/finish", data)
}
