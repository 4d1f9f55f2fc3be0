package handlers

import (
	"log"
	"net/http"

	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/repositories"
)

type HomeHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
}

func NewHomeHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl) *HomeHandler {
	return &HomeHandler{
		render:      r,
		productRepo: productRepo,
	}
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	products, _, err := h.productRepo.GetPaginated(r.Context(), 0, 8, "")
	if err != nil {
		log.Printf("Index: failed to load featured products: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":    "Home",
		"Products": products,
	})
	_ = h.render.HTML(w, http.StatusOK, "home/index", data)
}
