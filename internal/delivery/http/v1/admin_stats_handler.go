package v1

import (
	"net/http"

	"jbfsport-backend/internal/usecase"
	"jbfsport-backend/pkg/utils"
)

type AdminStatsHandler struct {
	statsUC *usecase.StatsUsecase
}

func NewAdminStatsHandler(uc *usecase.StatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{statsUC: uc}
}

// GET /admin/stats
func (h *AdminStatsHandler) GetCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.GetCatalogStats(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
