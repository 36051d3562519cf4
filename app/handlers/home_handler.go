package handlers

import (
	"log"
	"net/http"

	"github.com/rmaulana/go-catalog/app/helpers"
	"github.com/rmaulana/go-catalog/app/repositories"
	"github.com/unrolled/render"
)

const featuredProductCount = 4

type HomeHandler struct {
	render       *render.Render
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewHomeHandler(r *render.Render, c repositories.CategoryRepositoryImpl, p repositories.ProductRepositoryImpl) *HomeHandler {
	return &HomeHandler{
		render:       r,
		categoryRepo: c,
		productRepo:  p,
	}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("Home: failed to load categories: %v", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	products, err := h.productRepo.GetProducts(r.Context())
	if err != nil {
		log.Printf("Home: failed to load products: %v", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	featured, err := h.productRepo.GetFeatured(r.Context(), featuredProductCount)
	if err != nil {
		log.Printf("Home: failed to load featured products: %v", err)
		http.Error(w, "Failed to load featured products", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "Catalog",
		"Categories": categories,
		"Products":   products,
		"Featured":   featured,
	})

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}
