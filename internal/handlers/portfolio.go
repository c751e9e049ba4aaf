package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/folio/internal/auth"
	"github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
	"github.com/tropicaldog17/folio/internal/services"
)

type PortfolioHandler struct {
	service services.PortfolioService
}

func NewPortfolioHandler(service services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// PortfolioRequest is the body of create and update calls
type PortfolioRequest struct {
	Name string `json:"name"`
}

// HoldingRequest is the body of an add-holding call
type HoldingRequest struct {
	Symbol       string              `json:"symbol"`
	Quantity     decimal.Decimal     `json:"quantity"`
	AveragePrice decimal.NullDecimal `json:"average_price"`
	LastPrice    decimal.NullDecimal `json:"last_price"`
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &errors.ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// HandleListPortfolios handles GET /api/portfolios
// @Summary List portfolios
// @Description List every portfolio owned by the caller, holdings included
// @Tags portfolios
// @Produce json
// @Param X-Owner-ID header string true "Acting owner"
// @Success 200 {array} models.Portfolio
// @Failure 401 {object} ErrorResponse
// @Router /portfolios [get]
func (h *PortfolioHandler) HandleListPortfolios(w http.ResponseWriter, r *http.Request) {
	owner, err := auth.OwnerFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	portfolios, err := h.service.ListPortfolios(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolios)
}

// HandleCreatePortfolio handles POST /api/portfolios
// @Summary Create portfolio
// @Tags portfolios
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Acting owner"
// @Param portfolio body PortfolioRequest true "Portfolio name"
// @Success 200 {object} models.Portfolio
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /portfolios [post]
func (h *PortfolioHandler) HandleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	owner, err := auth.OwnerFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req PortfolioRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	portfolio, err := h.service.CreatePortfolio(r.Context(), owner, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

// HandleGetPortfolio handles GET /api/portfolios/{id}
// @Summary Get portfolio
// @Tags portfolios
// @Produce json
// @Param X-Owner-ID header string true "Acting owner"
// @Param id path int true "Portfolio ID"
// @Success 200 {object} models.Portfolio
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /portfolios/{id} [get]
func (h *PortfolioHandler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	owner, err := auth.OwnerFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	portfolio, err := h.service.GetPortfolio(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

// HandleUpdatePortfolio handles PUT /api/portfolios/{id}
// @Summary Rename portfolio
// @Tags portfolios
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Acting owner"
// @Param id path int true "Portfolio ID"
// @Param portfolio body PortfolioRequest true "New name"
// @Success 200 {object} models.Portfolio
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /portfolios/{id} [put]
func (h *PortfolioHandler) HandleUpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	owner, err := auth.OwnerFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req PortfolioRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	portfolio, err := h.service.UpdatePortfolio(r.Context(), owner, id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio)
}

// HandleDeletePortfolio handles DELETE /api/portfolios/{id}
// @Summary Delete portfolio and its holdings
// @Tags portfolios
// @Param X-Owner-ID header string true "Acting owner"
// @Param id path int true "Portfolio ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /portfolios/{id} [delete]
func (h *PortfolioHandler) HandleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	owner, err := auth.OwnerFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeletePortfolio(r.Context(), owner, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddHolding handles POST /api/portfolios/{portfolioId}/holdings
// @Summary Add holding
// @Description Attach a holding to a portfolio; the portfolio total is recomputed
// @Tags holdings
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Acting owner"
// @Param portfolioId path int true "Portfolio ID"
// @Param holding body HoldingRequest true "Holding"
// @Success 200 {object} models.Holding
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /portfolios/{portfolioId}/holdings [post]
func (h *PortfolioHandler) HandleAddHolding(w http.ResponseWriter, r *http.Request) {
	owner, err := auth.OwnerFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	portfolioID, err := pathID(r, "portfolioId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req HoldingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	holding, err := h.service.AddHolding(r.Context(), owner, portfolioID, &models.Holding{
		Symbol:       req.Symbol,
		Quantity:     req.Quantity,
		AveragePrice: req.AveragePrice,
		LastPrice:    req.LastPrice,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holding)
}

// HandleRemoveHolding handles DELETE /api/portfolios/holdings/{holdingId}
// @Summary Remove holding
// @Description Delete a holding; its portfolio total is recomputed
// @Tags holdings
// @Param X-Owner-ID header string true "Acting owner"
// @Param holdingId path int true "Holding ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /portfolios/holdings/{holdingId} [delete]
func (h *PortfolioHandler) HandleRemoveHolding(w http.ResponseWriter, r *http.Request) {
	owner, err := auth.OwnerFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	holdingID, err := pathID(r, "holdingId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.RemoveHolding(r.Context(), owner, holdingID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
