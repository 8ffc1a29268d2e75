package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/api/response"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/service"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/validation"
)

// ValuationHandler handles HTTP requests for model valuations.
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler with the provided service dependency.
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
	}
}

// Valuate handles POST requests to value a symbol under the supplied
// assumptions. The body may be empty or partial; omitted assumptions take the
// configured defaults.
//
// Endpoint: POST /api/valuation/{symbol}?period=annual|quarterly
// Request: request.ValuationRequest
// Response: 200 OK with model.ValuationResult
// Error: 400 for a malformed period or assumptions (details lists the fields),
// 500 for an unknown symbol, 502 when every retrieval tier failed
func (h *ValuationHandler) Valuate(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	period, err := validation.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	assumptions, err := request.ParseValuationRequest(r.Body, h.valuationService.Defaults())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := validation.ValidateAssumptions(assumptions); err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.RespondError(w, http.StatusBadRequest, "invalid valuation assumptions", vErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.valuationService.Valuate(r.Context(), symbol, period, assumptions)
	if err != nil {
		response.RespondError(w, response.StatusFor(err), err.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
