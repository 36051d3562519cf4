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
)

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminCategoryPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Category Management"

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetCategoriesPage: failed to load categories: %v", err)
		data.Message = "Failed to load categories."
		data.MessageStatus = "error"
	} else {
		data.Categories = categories
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}

func (h *AdminHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminCategoryPageData{
		FormAction:   "/admin/categories/add",
		IsEdit:       false,
		CategoryData: &CategoryForm{},
		Errors:       make(map[string]string),
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Add Category"

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Printf("AddCategoryPost: error parsing multipart form: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/add?status=error&message=%s", url.QueryEscape("Error parsing form.")), http.StatusSeeOther)
		return
	}

	var form CategoryForm
	form.Name = r.FormValue("name")

	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		h.renderCategoryForm(w, r, &form, "/admin/categories/add", false, helpers.FormatValidationErrors(validationErrors))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil || header.Filename == "" {
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/add?status=error&message=%s", url.QueryEscape("The category image is required.")), http.StatusSeeOther)
		return
	}
	defer file.Close()

	newID, err := h.categoryRepo.NextID(r.Context())
	if err != nil {
		log.Printf("AddCategoryPost: failed to assign category id: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/add?status=error&message=%s", url.QueryEscape("Failed to add category.")), http.StatusSeeOther)
		return
	}

	basename := fmt.Sprintf("category_%d", newID)
	filename, converted, err := images.Save(file, header.Filename, h.uploadDir, basename)
	if err != nil {
		log.Printf("AddCategoryPost: failed to store image: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/add?status=error&message=%s", url.QueryEscape("Failed to store the category image.")), http.StatusSeeOther)
		return
	}

	category := &models.Category{
		ID:    newID,
		Name:  form.Name,
		Image: "/uploads/" + filename,
	}

	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		log.Printf("AddCategoryPost: failed to create category: %v", err)
		images.Remove(h.uploadDir, category.Image)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/add?status=error&message=%s", url.QueryEscape("Failed to add category: "+err.Error())), http.StatusSeeOther)
		return
	}

	if !converted {
		http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=warning&message=%s", url.QueryEscape("Category added, but the image format could not be converted to WebP. The original image was stored.")), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=success&message=%s", url.QueryEscape("Category added successfully!")), http.StatusSeeOther)
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID, _ := strconv.Atoi(vars["id"])

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		log.Printf("EditCategoryPage: category %d not found: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=error&message=%s", url.QueryEscape("Category not found.")), http.StatusSeeOther)
		return
	}

	formData := CategoryForm{
		ID:    strconv.Itoa(category.ID),
		Name:  category.Name,
		Image: category.Image,
	}

	h.renderCategoryForm(w, r, &formData, fmt.Sprintf("/admin/categories/edit/%d", categoryID), true, make(map[string]string))
}

func (h *AdminHandler) EditCategoryPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID, _ := strconv.Atoi(vars["id"])

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		log.Printf("EditCategoryPost: category %d not found: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=error&message=%s", url.QueryEscape("Category not found.")), http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Printf("EditCategoryPost: error parsing multipart form: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/edit/%d?status=error&message=%s", categoryID, url.QueryEscape("Error parsing form.")), http.StatusSeeOther)
		return
	}

	var form CategoryForm
	form.ID = strconv.Itoa(categoryID)
	form.Name = r.FormValue("name")
	form.Image = category.Image

	if err := h.validator.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		h.renderCategoryForm(w, r, &form, fmt.Sprintf("/admin/categories/edit/%d", categoryID), true, helpers.FormatValidationErrors(validationErrors))
		return
	}

	category.Name = form.Name

	converted := true
	if file, header, ferr := r.FormFile("image"); ferr == nil && header.Filename != "" {
		defer file.Close()

		if category.Image != "" {
			images.Remove(h.uploadDir, category.Image)
		}

		basename := fmt.Sprintf("category_%d_%d", categoryID, time.Now().Unix())
		filename, ok, serr := images.Save(file, header.Filename, h.uploadDir, basename)
		if serr != nil {
			log.Printf("EditCategoryPost: failed to store image: %v", serr)
			http.Redirect(w, r, fmt.Sprintf("/admin/categories/edit/%d?status=error&message=%s", categoryID, url.QueryEscape("Failed to store the category image.")), http.StatusSeeOther)
			return
		}
		converted = ok
		category.Image = "/uploads/" + filename
	}

	if err := h.categoryRepo.Update(r.Context(), category); err != nil {
		log.Printf("EditCategoryPost: failed to update category %d: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/edit/%d?status=error&message=%s", categoryID, url.QueryEscape("Failed to update category: "+err.Error())), http.StatusSeeOther)
		return
	}

	if !converted {
		http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=warning&message=%s", url.QueryEscape("Category updated, but the image format could not be converted to WebP. The original image was stored.")), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=success&message=%s", url.QueryEscape("Category updated successfully!")), http.StatusSeeOther)
}

// DeleteCategoryPost removes a category together with its products and all of
// their stored image files.
func (h *AdminHandler) DeleteCategoryPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID, _ := strconv.Atoi(vars["id"])

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		log.Printf("DeleteCategoryPost: category %d not found: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=warning&message=%s", url.QueryEscape("Category not found.")), http.StatusSeeOther)
		return
	}

	if category.Image != "" {
		images.Remove(h.uploadDir, category.Image)
	}

	if err := h.categoryRepo.Delete(r.Context(), categoryID); err != nil {
		log.Printf("DeleteCategoryPost: failed to delete category %d: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=error&message=%s", url.QueryEscape("Failed to delete category.")), http.StatusSeeOther)
		return
	}

	removed, err := h.productRepo.DeleteByCategoryID(r.Context(), categoryID)
	if err != nil {
		log.Printf("DeleteCategoryPost: failed to delete products of category %d: %v", categoryID, err)
		http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=error&message=%s", url.QueryEscape("Category deleted, but removing its products failed.")), http.StatusSeeOther)
		return
	}
	for _, product := range removed {
		if product.Image != "" {
			images.Remove(h.uploadDir, product.Image)
		}
	}

	message := fmt.Sprintf("Category and %d associated product(s) deleted successfully!", len(removed))
	http.Redirect(w, r, fmt.Sprintf("/admin/categories?status=success&message=%s", url.QueryEscape(message)), http.StatusSeeOther)
}

func (h *AdminHandler) renderCategoryForm(w http.ResponseWriter, r *http.Request, form *CategoryForm, action string, isEdit bool, errors map[string]string) {
	data := &AdminCategoryPageData{
		FormAction:   action,
		IsEdit:       isEdit,
		CategoryData: form,
		Errors:       errors,
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	if isEdit {
		data.Title = "Edit Category"
	} else {
		data.Title = "Add Category"
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}
