package v1

import (
	"net/http"

	"jbfsport-backend/internal/usecase"
	"jbfsport-backend/pkg/utils"
)

// CatalogHandler serves the public storefront reads.
type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	tree, err := h.catalogUC.GetCategoryTree(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, tree)
}

type randomCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *CatalogHandler) GetRandomCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalogUC.GetRandomCategories(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	out := make([]randomCategory, len(cats))
	for i, c := range cats {
		out[i] = randomCategory{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.GetFeaturedProducts(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetSubCategoryProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.GetSubCategoryProducts(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// --- pages ---

func (h *CatalogHandler) GetCategoryPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalogUC.GetCategoryPage(r.Context(), r.PathValue("categorySlug"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) GetSubCategoryPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalogUC.GetSubCategoryPage(r.Context(), r.PathValue("categorySlug"), r.PathValue("subCategorySlug"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) GetSubSubCategoryPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalogUC.GetSubSubCategoryPage(r.Context(),
		r.PathValue("categorySlug"), r.PathValue("subCategorySlug"), r.PathValue("subSubSlug"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

// GetProductPage serves both product routes; subSubSlug is empty on the
// subcategory-level one.
func (h *CatalogHandler) GetProductPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalogUC.GetProductPage(r.Context(),
		r.PathValue("categorySlug"), r.PathValue("subCategorySlug"), r.PathValue("subSubSlug"), r.PathValue("sku"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}
