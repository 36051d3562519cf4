package admin

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rmaulana/go-catalog/app/helpers"
	"github.com/rmaulana/go-catalog/app/models"
	"github.com/rmaulana/go-catalog/app/utils/images"
	"github.com/shopspring/decimal"
)

const maxUploadBytes = 10 << 20

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminProductPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Product Management"

	products, err := h.productRepo.GetProducts(r.Context())
	if err != nil {
		log.Printf("GetProductsPage: failed to load products: %v", err)
		data.Message = "Failed to load products."
		data.MessageStatus = "error"
	} else {
		data.Products = products
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminProductPageData{
		FormAction:  "/admin/products/add",
		IsEdit:      false,
		ProductData: &ProductForm{},
		Errors:      make(map[string]string),
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Add Product"

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AddProductPage: failed to load categories: %v", err)
		data.Message = "Failed to load categories."
		data.MessageStatus = "error"
	}
	data.Categories = categories

	_ = h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Printf("AddProductPost: error parsing multipart form: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("Error parsing form.")), http.StatusSeeOther)
		return
	}

	var form ProductForm
	form.Name = r.FormValue("name")
	form.Description = r.FormValue("description")
	form.Price = r.FormValue("price")
	form.CategoryID = r.FormValue("category_id")

	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		h.renderProductForm(w, r, &form, "/admin/products/add", false, helpers.FormatValidationErrors(validationErrors))
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		log.Printf("AddProductPost: invalid price %q: %v", form.Price, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("Price must be a non-negative number.")), http.StatusSeeOther)
		return
	}

	categoryID, err := strconv.Atoi(form.CategoryID)
	if err != nil {
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("Invalid category.")), http.StatusSeeOther)
		return
	}
	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		log.Printf("AddProductPost: category %d not found: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("Invalid category.")), http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil || header.Filename == "" {
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("The product image is required.")), http.StatusSeeOther)
		return
	}
	defer file.Close()

	newID, err := h.productRepo.NextID(r.Context())
	if err != nil {
		log.Printf("AddProductPost: failed to assign product id: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("Failed to add product.")), http.StatusSeeOther)
		return
	}

	basename := fmt.Sprintf("product_%d", newID)
	filename, converted, err := images.Save(file, header.Filename, h.uploadDir, basename)
	if err != nil {
		log.Printf("AddProductPost: failed to store image: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("Failed to store the product image.")), http.StatusSeeOther)
		return
	}

	product := &models.Product{
		ID:          newID,
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Image:       "/uploads/" + filename,
		CategoryID:  categoryID,
		Views:       0,
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		log.Printf("AddProductPost: failed to create product: %v", err)
		images.Remove(h.uploadDir, product.Image)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/add?status=error&message=%s", url.QueryEscape("Failed to add product: "+err.Error())), http.StatusSeeOther)
		return
	}

	if !converted {
		http.Redirect(w, r, fmt.Sprintf("/admin/products?status=warning&message=%s", url.QueryEscape("Product added, but the image format could not be converted to WebP. The original image was stored.")), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/admin/products?status=success&message=%s", url.QueryEscape("Product added successfully!")), http.StatusSeeOther)
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, _ := strconv.Atoi(vars["id"])

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		log.Printf("EditProductPage: product %d not found: %v", productID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products?status=error&message=%s", url.QueryEscape("Product not found.")), http.StatusSeeOther)
		return
	}

	formData := ProductForm{
		ID:          strconv.Itoa(product.ID),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.String(),
		CategoryID:  strconv.Itoa(product.CategoryID),
		Image:       product.Image,
	}

	h.renderProductForm(w, r, &formData, fmt.Sprintf("/admin/products/edit/%d", productID), true, make(map[string]string))
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, _ := strconv.Atoi(vars["id"])

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		log.Printf("EditProductPost: product %d not found: %v", productID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products?status=error&message=%s", url.QueryEscape("Product not found.")), http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Printf("EditProductPost: error parsing multipart form: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit/%d?status=error&message=%s", productID, url.QueryEscape("Error parsing form.")), http.StatusSeeOther)
		return
	}

	var form ProductForm
	form.ID = strconv.Itoa(productID)
	form.Name = r.FormValue("name")
	form.Description = r.FormValue("description")
	form.Price = r.FormValue("price")
	form.CategoryID = r.FormValue("category_id")
	form.Image = product.Image

	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		h.renderProductForm(w, r, &form, fmt.Sprintf("/admin/products/edit/%d", productID), true, helpers.FormatValidationErrors(validationErrors))
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		log.Printf("EditProductPost: invalid price %q: %v", form.Price, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit/%d?status=error&message=%s", productID, url.QueryEscape("Price must be a non-negative number.")), http.StatusSeeOther)
		return
	}

	categoryID, err := strconv.Atoi(form.CategoryID)
	if err != nil {
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit/%d?status=error&message=%s", productID, url.QueryEscape("Invalid category.")), http.StatusSeeOther)
		return
	}
	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		log.Printf("EditProductPost: category %d not found: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit/%d?status=error&message=%s", productID, url.QueryEscape("Invalid category.")), http.StatusSeeOther)
		return
	}

	product.Name = form.Name
	product.Description = form.Description
	product.Price = price
	product.CategoryID = categoryID

	converted := true
	if file, header, ferr := r.FormFile("image"); ferr == nil && header.Filename != "" {
		defer file.Close()

		if product.Image != "" {
			images.Remove(h.uploadDir, product.Image)
		}

		// Timestamped basename so browsers do not serve a stale cached image.
		basename := fmt.Sprintf("product_%d_%d", productID, time.Now().Unix())
		filename, ok, serr := images.Save(file, header.Filename, h.uploadDir, basename)
		if serr != nil {
			log.Printf("EditProductPost: failed to store image: %v", serr)
			http.Redirect(w, r, fmt.Sprintf("/admin/products/edit/%d?status=error&message=%s", productID, url.QueryEscape("Failed to store the product image.")), http.StatusSeeOther)
			return
		}
		converted = ok
		product.Image = "/uploads/" + filename
	}

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		log.Printf("EditProductPost: failed to update product %d: %v", productID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit/%d?status=error&message=%s", productID, url.QueryEscape("Failed to update product: "+err.Error())), http.StatusSeeOther)
		return
	}

	if !converted {
		http.Redirect(w, r, fmt.Sprintf("/admin/products?status=warning&message=%s", url.QueryEscape("Product updated, but the image format could not be converted to WebP. The original image was stored.")), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/admin/products?status=success&message=%s", url.QueryEscape("Product updated successfully!")), http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProductPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, _ := strconv.Atoi(vars["id"])

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		log.Printf("DeleteProductPost: product %d not found: %v", productID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products?status=error&message=%s", url.QueryEscape("Product not found or already deleted.")), http.StatusSeeOther)
		return
	}

	if product.Image != "" {
		images.Remove(h.uploadDir, product.Image)
	}

	if err := h.productRepo.Delete(r.Context(), productID); err != nil {
		log.Printf("DeleteProductPost: failed to delete product %d: %v", productID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/products?status=error&message=%s", url.QueryEscape("Failed to delete product.")), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/admin/products?status=success&message=%s", url.QueryEscape("Product deleted successfully!")), http.StatusSeeOther)
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, form *ProductForm, action string, isEdit bool, errors map[string]string) {
	data := &AdminProductPageData{
		FormAction:  action,
		IsEdit:      isEdit,
		ProductData: form,
		Errors:      errors,
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	if isEdit {
		data.Title = "Edit Product"
	} else {
		data.Title = "Add Product"
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("renderProductForm: failed to load categories: %v", err)
	}
	data.Categories = categories

	_ = h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}
