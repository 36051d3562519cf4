package admin

import (
	"html/template"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/rmaulana/go-catalog/app/helpers"
	"github.com/rmaulana/go-catalog/app/models"
	"github.com/rmaulana/go-catalog/app/repositories"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render       *render.Render
	validator    *validator.Validate
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	uploadDir    string
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	uploadDir string,
) *AdminHandler {
	return &AdminHandler{
		render:       render,
		validator:    validator,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		uploadDir:    uploadDir,
	}
}

type BasePageData struct {
	Title         string
	IsLoggedIn    bool
	UserID        string
	Message       string
	MessageStatus string
	IsAdminPage   bool
	CSRFField     template.HTML
}

type AdminDashboardPageData struct {
	BasePageData
	ProductCount  int
	CategoryCount int
}

type AdminProductPageData struct {
	BasePageData
	Products    []models.Product
	Categories  []models.Category
	ProductData *ProductForm
	IsEdit      bool
	FormAction  string
	Errors      map[string]string
}

type ProductForm struct {
	ID          string
	Name        string `form:"name" validate:"required,min=2,max=255"`
	Description string `form:"description" validate:"required"`
	Price       string `form:"price" validate:"required,numeric"`
	CategoryID  string `form:"category_id" validate:"required,numeric"`
	Image       string
}

type AdminCategoryPageData struct {
	BasePageData
	Categories   []models.Category
	CategoryData *CategoryForm
	IsEdit       bool
	FormAction   string
	Errors       map[string]string
}

type CategoryForm struct {
	ID    string
	Name  string `form:"name" validate:"required,min=2,max=100"`
	Image string
}

func (h *AdminHandler) populateBaseDataForAdmin(r *http.Request, data *BasePageData) {
	data.IsAdminPage = true
	data.CSRFField = csrf.TemplateField(r)

	if userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string); ok && userID != "" {
		data.IsLoggedIn = true
		data.UserID = userID
	}

	if data.MessageStatus == "" {
		data.MessageStatus = r.URL.Query().Get("status")
	}
	if data.Message == "" {
		data.Message = r.URL.Query().Get("message")
	}
}
