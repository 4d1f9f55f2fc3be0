package handlers

import (
	"log"
	"net/http"

	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/models"
	"github.com/yogaprasetya/go-storefront/app/repositories"
)

type WishlistHandler struct {
	render       *render.Render
	wishlistRepo repositories.WishlistRepositoryImpl
	config       configs.CartConfig
}

func NewWishlistHandler(r *render.Render, wishlistRepo repositories.WishlistRepositoryImpl, config configs.CartConfig) *WishlistHandler {
	return &WishlistHandler{
		render:       r,
		wishlistRepo: wishlistRepo,
		config:       config,
	}
}

func (h *WishlistHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	items, err := h.wishlistRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Show: failed to load wishlist for user %s: %v", userID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":         "Wishlist",
		"Items":         items,
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
	})
	_ = h.render.HTML(w, http.StatusOK, "wishlist/index", data)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/wishlist", "invalid form data")
		return
	}
	productID := r.FormValue("product_id")

	count, err := h.wishlistRepo.CountByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Add: failed to count wishlist for user %s: %v", userID, err)
		redirectWithError(w, r, "/wishlist", "server error")
		return
	}
	if count >= h.config.MaxWishlistItems {
		redirectWithError(w, r, "/wishlist", "wishlist is full")
		return
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := h.wishlistRepo.Add(r.Context(), item); err != nil {
		log.Printf("Add: failed to add product %s to wishlist: %v", productID, err)
		redirectWithError(w, r, "/wishlist", "failed to add item")
		return
	}

	http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/wishlist", "invalid form data")
		return
	}
	productID := r.FormValue("product_id")

	if err := h.wishlistRepo.Remove(r.Context(), userID, productID); err != nil {
		log.Printf("Remove: failed to remove product %s from wishlist: %v", productID, err)
		redirectWithError(w, r, "/wishlist", "failed to remove item")
		return
	}

	http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
}
