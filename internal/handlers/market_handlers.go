package handlers

import (
	"agrotech-backend/internal/models"
	"agrotech-backend/pkg/httputil"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PriceSource defines the interface expected from the price generator.
type PriceSource interface {
	Prices() []models.CommodityQuote
	Quote(name string) (models.CommodityQuote, bool)
	History(name string, days int) []models.PricePoint
}

// TrendAnalyst turns a price history into a short market reading.
type TrendAnalyst interface {
	AnalyzeMarketTrend(ctx context.Context, commodity string, history []models.PricePoint) string
}

type MarketHandler struct {
	prices  PriceSource
	analyst TrendAnalyst
}

func NewMarketHandler(prices PriceSource, analyst TrendAnalyst) *MarketHandler {
	return &MarketHandler{prices: prices, analyst: analyst}
}

// HandleListPrices handles GET /api/market/prices.
func (h *MarketHandler) HandleListPrices(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.prices.Prices())
}

// HandleGetPrice handles GET /api/market/prices/{commodity}.
func (h *MarketHandler) HandleGetPrice(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.prices.Quote(chi.URLParam(r, "commodity"))
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "Commodity not found")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, quote)
}

// HandleGetHistory handles GET /api/market/history/{commodity}.
// Unknown commodities yield an empty array.
func (h *MarketHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	history := h.prices.History(chi.URLParam(r, "commodity"), daysFromQuery(r))
	if history == nil {
		history = []models.PricePoint{}
	}
	httputil.RespondJSON(w, http.StatusOK, history)
}

// HandleAnalyzeHistory handles GET /api/market/history/{commodity}/analysis.
func (h *MarketHandler) HandleAnalyzeHistory(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.prices.Quote(chi.URLParam(r, "commodity"))
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "Commodity not found")
		return
	}
	history := h.prices.History(chi.URLParam(r, "commodity"), daysFromQuery(r))

	httputil.RespondJSON(w, http.StatusOK, models.MarketAnalysisResponse{
		Commodity: quote.Commodity,
		Analysis:  h.analyst.AnalyzeMarketTrend(r.Context(), quote.Commodity, history),
	})
}
