package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/services"
	"github.com/yogaprasetya/go-storefront/app/utils/sessions"
)

type CartHandler struct {
	render       *render.Render
	cartService  *services.CartService
	sessionStore sessions.SessionStore
}

func NewCartHandler(r *render.Render, cartService *services.CartService, sessionStore sessions.SessionStore) *CartHandler {
	return &CartHandler{
		render:       r,
		cartService:  cartService,
		sessionStore: sessionStore,
	}
}

func (h *CartHandler) owner(r *http.Request) (userID, sessionID string) {
	if id, ok := r.Context().Value(helpers.ContextKeyUserID).(string); ok {
		userID = id
	}
	return userID, sessions.ReadGuestToken(r)
}

func (h *CartHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := h.owner(r)
	if userID == "" && sessionID == "" {
		data := helpers.GetBaseData(r, map[string]interface{}{
			"title": "Cart",
		})
		_ = h.render.HTML(w, http.StatusOK, "cart/index", data)
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), userID, sessionID)
	if err != nil {
		log.Printf("Show: failed to load cart: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title": "Cart",
		"Cart":  cart,
	})
	_ = h.render.HTML(w, http.StatusOK, "cart/index", data)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/products", "invalid form data")
		return
	}

	productID := r.FormValue("product_id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}

	userID, sessionID := h.owner(r)
	if _, err := h.cartService.AddItemToCart(r.Context(), userID, sessionID, productID, qty); err != nil {
		log.Printf("Add: failed to add product %s: %v", productID, err)
		redirectWithError(w, r, "/cart", cartErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/cart", "invalid form data")
		return
	}

	productID := r.FormValue("product_id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		redirectWithError(w, r, "/cart", "invalid quantity")
		return
	}

	userID, sessionID := h.owner(r)
	if _, err := h.cartService.UpdateCartItemQty(r.Context(), userID, sessionID, productID, qty); err != nil {
		log.Printf("Update: failed to update product %s: %v", productID, err)
		redirectWithError(w, r, "/cart", cartErrorMessage(err))
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/cart", "invalid form data")
		return
	}

	productID := r.FormValue("product_id")
	userID, sessionID := h.owner(r)
	if _, err := h.cartService.RemoveItemFromCart(r.Context(), userID, sessionID, productID); err != nil {
		log.Printf("Remove: failed to remove product %s: %v", productID, err)
		redirectWithError(w, r, "/cart", "failed to remove item")
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func cartErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, services.ErrMaxQuantityExceeded):
		return "maximum quantity per item exceeded"
	case errors.Is(err, services.ErrInsufficientStock):
		return err.Error()
	default:
		return "failed to update cart"
	}
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, fmt.Sprintf("%s?status=error&message=%s", path, url.QueryEscape(message)), http.StatusSeeOther)
}
