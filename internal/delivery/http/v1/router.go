package v1

import (
	"context"
	"net/http"

	"jbfsport-backend/internal/delivery/http/middleware"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"
)

type Handlers struct {
	Catalog      *CatalogHandler
	AdminCatalog *AdminCatalogHandler
	AdminBulk    *AdminBulkHandler
	AdminStats   *AdminStatsHandler
	Auth         *AuthHandler
	Contact      *ContactHandler
	Upload       *UploadHandler
	// Ping checks the database for the health endpoints.
	Ping func(ctx context.Context) error
}

func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	admin := middleware.RequireAdmin

	// Storefront (public)
	mux.HandleFunc("GET /api/v1/categories", h.Catalog.GetCategories)
	mux.HandleFunc("GET /api/v1/categories/random", h.Catalog.GetRandomCategories)
	mux.HandleFunc("GET /api/v1/products/featured", h.Catalog.GetFeaturedProducts)
	mux.HandleFunc("GET /api/v1/subcategories/{id}/products", h.Catalog.GetSubCategoryProducts)

	mux.HandleFunc("GET /api/v1/pages/{categorySlug}", h.Catalog.GetCategoryPage)
	mux.HandleFunc("GET /api/v1/pages/{categorySlug}/{subCategorySlug}", h.Catalog.GetSubCategoryPage)
	mux.HandleFunc("GET /api/v1/pages/{categorySlug}/{subCategorySlug}/{subSubSlug}", h.Catalog.GetSubSubCategoryPage)
	mux.HandleFunc("GET /api/v1/pages/{categorySlug}/{subCategorySlug}/products/{sku}", h.Catalog.GetProductPage)
	mux.HandleFunc("GET /api/v1/pages/{categorySlug}/{subCategorySlug}/{subSubSlug}/products/{sku}", h.Catalog.GetProductPage)

	mux.HandleFunc("POST /api/v1/contact", h.Contact.Submit)

	// Admin auth
	mux.HandleFunc("POST /api/v1/admin/login", h.Auth.Login)
	mux.Handle("GET /api/v1/admin/me", middleware.AuthMiddleware(http.HandlerFunc(h.Auth.Me)))

	// Admin taxonomy
	mux.Handle("GET /api/v1/admin/categories", admin(h.AdminCatalog.ListCategories))
	mux.Handle("POST /api/v1/admin/categories", admin(h.AdminCatalog.CreateCategory))
	mux.Handle("GET /api/v1/admin/categories/{id}", admin(h.AdminCatalog.GetCategory))
	mux.Handle("PUT /api/v1/admin/categories/{id}", admin(h.AdminCatalog.UpdateCategory))
	mux.Handle("DELETE /api/v1/admin/categories/{id}", admin(h.AdminCatalog.DeleteCategory))

	mux.Handle("GET /api/v1/admin/subcategories", admin(h.AdminCatalog.ListSubCategories))
	mux.Handle("POST /api/v1/admin/subcategories", admin(h.AdminCatalog.CreateSubCategory))
	mux.Handle("POST /api/v1/admin/subcategories/bulk", admin(h.AdminBulk.ImportSubCategories))
	mux.Handle("GET /api/v1/admin/subcategories/{id}", admin(h.AdminCatalog.GetSubCategory))
	mux.Handle("PUT /api/v1/admin/subcategories/{id}", admin(h.AdminCatalog.UpdateSubCategory))
	mux.Handle("DELETE /api/v1/admin/subcategories/{id}", admin(h.AdminCatalog.DeleteSubCategory))

	mux.Handle("GET /api/v1/admin/subsubcategories", admin(h.AdminCatalog.ListSubSubCategories))
	mux.Handle("POST /api/v1/admin/subsubcategories", admin(h.AdminCatalog.CreateSubSubCategory))
	mux.Handle("POST /api/v1/admin/subsubcategories/bulk", admin(h.AdminBulk.ImportSubSubCategories))
	mux.Handle("GET /api/v1/admin/subsubcategories/{id}", admin(h.AdminCatalog.GetSubSubCategory))
	mux.Handle("PUT /api/v1/admin/subsubcategories/{id}", admin(h.AdminCatalog.UpdateSubSubCategory))
	mux.Handle("DELETE /api/v1/admin/subsubcategories/{id}", admin(h.AdminCatalog.DeleteSubSubCategory))

	// Admin products
	mux.Handle("GET /api/v1/admin/products", admin(h.AdminCatalog.ListProducts))
	mux.Handle("POST /api/v1/admin/products", admin(h.AdminCatalog.CreateProduct))
	mux.Handle("POST /api/v1/admin/products/bulk", admin(h.AdminBulk.ImportProducts))
	mux.Handle("POST /api/v1/admin/products/featured/auto", admin(h.AdminBulk.AutoSelectFeatured))
	mux.Handle("POST /api/v1/admin/products/featured/reset", admin(h.AdminBulk.ResetFeatured))
	mux.Handle("GET /api/v1/admin/products/{id}", admin(h.AdminCatalog.GetProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", admin(h.AdminCatalog.UpdateProduct))
	mux.Handle("PATCH /api/v1/admin/products/{id}/flags", admin(h.AdminCatalog.UpdateProductFlags))
	mux.Handle("DELETE /api/v1/admin/products/{id}", admin(h.AdminCatalog.DeleteProduct))
	mux.Handle("POST /api/v1/admin/uploads", admin(h.Upload.UploadImage))

	// Admin misc
	mux.Handle("GET /api/v1/admin/contact-messages", admin(h.Contact.List))
	mux.Handle("GET /api/v1/admin/stats", admin(h.AdminStats.GetCatalogStats))

	health := healthHandler(h.Ping)
	mux.HandleFunc("GET /api/v1/health", health)
	mux.HandleFunc("GET /health", health)
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger.WithContext(r.Context()).Error().Err(err).Msg("Health check: database unreachable")
				utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error", "db": "unreachable"})
				return
			}
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "connected"})
	}
}
