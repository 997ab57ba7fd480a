package v1

import (
	"net/http"

	"jbfsport-backend/internal/usecase"
	"jbfsport-backend/pkg/utils"
)

type ContactHandler struct {
	contactUC *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{contactUC: uc}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in usecase.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if _, err := h.contactUC.Submit(r.Context(), in); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "your message has been sent",
	})
}

// GET /admin/contact-messages?page=1&limit=20
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	msgs, pagination, err := h.contactUC.List(r.Context(), utils.ParseInt(q.Get("page"), 1), utils.ParseInt(q.Get("limit"), 20))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":       msgs,
		"pagination": pagination,
	})
}
