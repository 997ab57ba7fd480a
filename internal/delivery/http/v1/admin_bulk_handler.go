package v1

import (
	"net/http"

	"jbfsport-backend/internal/usecase"
	"jbfsport-backend/pkg/utils"
)

// AdminBulkHandler covers the bulk imports and the category-page product
// selection.
type AdminBulkHandler struct {
	bulkUC     *usecase.BulkUsecase
	featuredUC *usecase.FeaturedUsecase
}

func NewAdminBulkHandler(bulkUC *usecase.BulkUsecase, featuredUC *usecase.FeaturedUsecase) *AdminBulkHandler {
	return &AdminBulkHandler{bulkUC: bulkUC, featuredUC: featuredUC}
}

func (h *AdminBulkHandler) ImportSubCategories(w http.ResponseWriter, r *http.Request) {
	var in usecase.BulkSubCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.bulkUC.ImportSubCategories(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

func (h *AdminBulkHandler) ImportSubSubCategories(w http.ResponseWriter, r *http.Request) {
	var in usecase.BulkSubSubCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.bulkUC.ImportSubSubCategories(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

func (h *AdminBulkHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	var in usecase.BulkProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.bulkUC.ImportProducts(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

func (h *AdminBulkHandler) AutoSelectFeatured(w http.ResponseWriter, r *http.Request) {
	res, err := h.featuredUC.AutoSelect(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *AdminBulkHandler) ResetFeatured(w http.ResponseWriter, r *http.Request) {
	res, err := h.featuredUC.Reset(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"updated": res.Updated})
}
