package admin

import (
	"log"
	"net/http"
)

func (h *AdminHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminDashboardPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Admin Dashboard"

	products, err := h.productRepo.GetProducts(r.Context())
	if err != nil {
		log.Printf("DashboardPage: failed to load products: %v", err)
		data.Message = "Failed to load products."
		data.MessageStatus = "error"
	} else {
		data.ProductCount = len(products)
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("DashboardPage: failed to load categories: %v", err)
		data.Message = "Failed to load categories."
		data.MessageStatus = "error"
	} else {
		data.CategoryCount = len(categories)
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
