package routes

import (
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rmaulana/go-catalog/app/configs"
	"github.com/rmaulana/go-catalog/app/handlers"
	"github.com/rmaulana/go-catalog/app/handlers/admin"
	"github.com/rmaulana/go-catalog/app/middlewares"
	"github.com/rmaulana/go-catalog/app/repositories"
	"github.com/rmaulana/go-catalog/app/utils/sessions"
	"github.com/unrolled/render"
)

func NewRouter(env configs.ENV, keys *configs.SessionKeys, sessionStore sessions.SessionStore, rnd *render.Render) *mux.Router {
	productRepo := repositories.NewProductRepository(env.DataDir)
	categoryRepo := repositories.NewCategoryRepository(env.DataDir)
	validate := validator.New()

	uploadDir := filepath.Join(env.DataDir, "uploads")

	homeHandler := handlers.NewHomeHandler(rnd, categoryRepo, productRepo)
	catalogHandler := handlers.NewCatalogHandler(rnd, categoryRepo, productRepo)
	authHandler := handlers.NewAuthHandler(rnd, sessionStore, env)
	adminHandler := admin.NewAdminHandler(rnd, validate, productRepo, categoryRepo, uploadDir)

	router := mux.NewRouter()
	router.Use(middlewares.MethodOverrideMiddleware)
	router.Use(middlewares.SessionUserMiddleware(sessionStore))

	router.HandleFunc("/", homeHandler.Home).Methods("GET")
	router.HandleFunc("/category/{id:[0-9]+}", catalogHandler.ShowCategory).Methods("GET")
	router.HandleFunc("/product/{id:[0-9]+}/view", catalogHandler.RecordView).Methods("POST")

	router.HandleFunc("/login", authHandler.LoginGetHandler).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	router.HandleFunc("/logout", authHandler.LogoutHandler).Methods("GET")

	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))),
	)

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware(env.AdminUsername))
	if env.AppEnv == "production" {
		adminRouter.Use(csrf.Protect(
			csrfKey(keys.AuthKey),
			csrf.Path("/"),
			csrf.Secure(true),
		))
	}

	adminRouter.HandleFunc("/dashboard", adminHandler.DashboardPage).Methods("GET")

	adminRouter.HandleFunc("/products", adminHandler.GetProductsPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", adminHandler.AddProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", adminHandler.AddProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/edit/{id:[0-9]+}", adminHandler.EditProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/edit/{id:[0-9]+}", adminHandler.EditProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/delete/{id:[0-9]+}", adminHandler.DeleteProductPost).Methods("POST")

	adminRouter.HandleFunc("/categories", adminHandler.GetCategoriesPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", adminHandler.AddCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", adminHandler.AddCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/edit/{id:[0-9]+}", adminHandler.EditCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/edit/{id:[0-9]+}", adminHandler.EditCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/delete/{id:[0-9]+}", adminHandler.DeleteCategoryPost).Methods("POST")

	return router
}

func csrfKey(authKey []byte) []byte {
	if len(authKey) > 32 {
		return authKey[:32]
	}
	return authKey
}
