package handlers

import (
	"net/http"

	"github.com/tropicaldog17/folio/internal/auth"
	"github.com/tropicaldog17/folio/internal/services"
)

type PriceHandler struct {
	refresher services.PriceRefresher
}

func NewPriceHandler(refresher services.PriceRefresher) *PriceHandler {
	return &PriceHandler{refresher: refresher}
}

// HandleRefresh handles POST /api/admin/prices/refresh
// @Summary Run price simulation now
// @Description Perturbs every priced holding by up to 1% and revalues all portfolios
// @Tags admin
// @Produce json
// @Param X-Owner-ID header string true "Acting owner"
// @Success 200 {object} models.PriceRefreshResult
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/prices/refresh [post]
func (h *PriceHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.OwnerFromContext(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.refresher.RefreshPrices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
