package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/repositories"
)

const productsPerPage = 12

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl) *ProductHandler {
	return &ProductHandler{
		render:      r,
		productRepo: productRepo,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	categorySlug := r.URL.Query().Get("category")

	offset := (page - 1) * productsPerPage
	products, total, err := h.productRepo.GetPaginated(r.Context(), offset, productsPerPage, categorySlug)
	if err != nil {
		log.Printf("List: failed to load products: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	totalPages := int((total + productsPerPage - 1) / productsPerPage)

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":       "Products",
		"Products":    products,
		"Category":    categorySlug,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
	_ = h.render.HTML(w, http.StatusOK, "products/index", data)
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("Detail: product %q not found: %v", slug, err)
		http.NotFound(w, r)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":   product.Name,
		"Product": product,
	})
	_ = h.render.HTML(w, http.StatusOK, "products/detail", data)
}
