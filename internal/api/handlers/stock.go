package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/service"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/validation"
)

// StockHandler handles HTTP requests for normalized stock data.
// It parses the request and delegates retrieval to the stockService.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// Stock handles GET requests for the normalized snapshot of one symbol.
//
// Endpoint: GET /api/stock/{symbol}?period=annual|quarterly
// Response: 200 OK with model.Snapshot
// Error: 400 for a malformed period, 500 for an unknown symbol,
// 502 when every retrieval tier failed
func (h *StockHandler) Stock(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	period, err := validation.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	snap, err := h.stockService.FetchSnapshot(r.Context(), symbol, period)
	if err != nil {
		response.RespondError(w, response.StatusFor(err), err.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, snap)
}

// AppData handles GET requests for the snapshot enriched with per-share
// metrics and data quality flags.
//
// Endpoint: GET /api/app-data/{symbol}?period=annual|quarterly
// Response: 200 OK with model.AppData
// Error: same mapping as Stock
func (h *StockHandler) AppData(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	period, err := validation.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	data, err := h.stockService.GetAppData(r.Context(), symbol, period)
	if err != nil {
		response.RespondError(w, response.StatusFor(err), err.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, data)
}
