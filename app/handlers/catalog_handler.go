package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rmaulana/go-catalog/app/helpers"
	"github.com/rmaulana/go-catalog/app/repositories"
	"github.com/unrolled/render"
)

type CatalogHandler struct {
	render       *render.Render
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCatalogHandler(r *render.Render, c repositories.CategoryRepositoryImpl, p repositories.ProductRepositoryImpl) *CatalogHandler {
	return &CatalogHandler{
		render:       r,
		categoryRepo: c,
		productRepo:  p,
	}
}

func (h *CatalogHandler) ShowCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil {
		log.Printf("ShowCategory: error finding category %d: %v", categoryID, err)
		http.Error(w, "Failed to load category", http.StatusInternalServerError)
		return
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("ShowCategory: failed to load categories: %v", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	products, err := h.productRepo.GetByCategoryID(r.Context(), categoryID)
	if err != nil {
		log.Printf("ShowCategory: failed to load products for category %d: %v", categoryID, err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	title := "Category"
	if category != nil {
		title = category.Name
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      title,
		"Category":   category,
		"Categories": categories,
		"Products":   products,
	})

	_ = h.render.HTML(w, http.StatusOK, "catalog/category", data)
}

// RecordView bumps a product's view counter. Called from the storefront via
// fetch, so the response is JSON rather than a redirect.
func (h *CatalogHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.productRepo.IncrementViews(r.Context(), productID)
	if err != nil {
		log.Printf("RecordView: failed to increment views for product %d: %v", productID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "failed to record view",
		})
		return
	}
	if product == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "product not found",
		})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
