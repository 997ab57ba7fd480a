package v1

import (
	"net/http"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/internal/usecase"
	"jbfsport-backend/pkg/utils"
)

// AdminCatalogHandler is the back-office CRUD for the three taxonomy levels
// and for products.
type AdminCatalogHandler struct {
	taxonomyUC *usecase.TaxonomyUsecase
	productUC  *usecase.ProductUsecase
}

func NewAdminCatalogHandler(taxonomyUC *usecase.TaxonomyUsecase, productUC *usecase.ProductUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{taxonomyUC: taxonomyUC, productUC: productUC}
}

// --- Categories ---

func (h *AdminCatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.taxonomyUC.ListCategories(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

func (h *AdminCatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.taxonomyUC.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cat)
}

func (h *AdminCatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in usecase.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	cat, err := h.taxonomyUC.CreateCategory(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, cat)
}

func (h *AdminCatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in usecase.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	cat, err := h.taxonomyUC.UpdateCategory(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cat)
}

func (h *AdminCatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomyUC.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "category deleted")
}

// --- SubCategories ---

func (h *AdminCatalogHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.taxonomyUC.ListSubCategories(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, subs)
}

func (h *AdminCatalogHandler) GetSubCategory(w http.ResponseWriter, r *http.Request) {
	sub, err := h.taxonomyUC.GetSubCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sub)
}

func (h *AdminCatalogHandler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var in usecase.SubCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sub, err := h.taxonomyUC.CreateSubCategory(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sub)
}

func (h *AdminCatalogHandler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	var in usecase.SubCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	sub, err := h.taxonomyUC.UpdateSubCategory(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sub)
}

func (h *AdminCatalogHandler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomyUC.DeleteSubCategory(r.Context(), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "subcategory deleted")
}

// --- SubSubCategories ---

func (h *AdminCatalogHandler) ListSubSubCategories(w http.ResponseWriter, r *http.Request) {
	subSubs, err := h.taxonomyUC.ListSubSubCategories(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, subSubs)
}

func (h *AdminCatalogHandler) GetSubSubCategory(w http.ResponseWriter, r *http.Request) {
	ss, err := h.taxonomyUC.GetSubSubCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ss)
}

func (h *AdminCatalogHandler) CreateSubSubCategory(w http.ResponseWriter, r *http.Request) {
	var in usecase.SubSubCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ss, err := h.taxonomyUC.CreateSubSubCategory(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ss)
}

func (h *AdminCatalogHandler) UpdateSubSubCategory(w http.ResponseWriter, r *http.Request) {
	var in usecase.SubSubCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ss, err := h.taxonomyUC.UpdateSubSubCategory(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ss)
}

func (h *AdminCatalogHandler) DeleteSubSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomyUC.DeleteSubSubCategory(r.Context(), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "subsubcategory deleted")
}

// --- Products ---

func (h *AdminCatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUC.ListProducts(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *AdminCatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.productUC.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in usecase.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.productUC.CreateProduct(r.Context(), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in usecase.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.productUC.UpdateProduct(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *AdminCatalogHandler) UpdateProductFlags(w http.ResponseWriter, r *http.Request) {
	var flags domain.ProductFlags
	if !decodeJSON(w, r, &flags) {
		return
	}
	p, err := h.productUC.UpdateFlags(r.Context(), r.PathValue("id"), flags)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.productUC.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "product deleted")
}
