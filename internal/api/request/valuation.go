package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

// ValuationRequest is the body of POST /api/valuation/{symbol}. Every field is
// optional; omitted fields keep their configured default.
type ValuationRequest struct {
	RevenueGrowth        *float64           `json:"revenue_growth"`
	TerminalGrowth       *float64           `json:"terminal_growth"`
	WACC                 *float64           `json:"wacc"`
	RequiredReturnEquity *float64           `json:"required_return_equity"`
	RequiredReturn       *float64           `json:"requiredReturn"`
	TaxRate              *float64           `json:"tax_rate"`
	ProjectionYears      *int               `json:"projection_years"`
	DividendPayoutRatio  *float64           `json:"dividend_payout_ratio"`
	ModelWeights         map[string]float64 `json:"model_weights"`
}

// ParseValuationRequest decodes a partial assumptions body and merges it over
// defaults. An empty body yields the defaults unchanged. A supplied
// model_weights object replaces the default weights as a whole. Unknown keys
// are rejected so a misspelled assumption never silently keeps its default.
func ParseValuationRequest(body io.Reader, defaults model.Assumptions) (model.Assumptions, error) {
	var req ValuationRequest
	if body != nil {
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return model.Assumptions{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidAssumptions, err)
		}
	}
	return req.Merge(defaults), nil
}

// Merge overlays the supplied fields on a copy of defaults.
func (r ValuationRequest) Merge(defaults model.Assumptions) model.Assumptions {
	a := defaults
	a.ModelWeights = maps.Clone(defaults.ModelWeights)

	setFloat(&a.RevenueGrowth, r.RevenueGrowth)
	setFloat(&a.TerminalGrowth, r.TerminalGrowth)
	setFloat(&a.WACC, r.WACC)
	// required_return_equity wins over the legacy alias when both are sent
	setFloat(&a.RequiredReturnEquity, r.RequiredReturn)
	setFloat(&a.RequiredReturnEquity, r.RequiredReturnEquity)
	setFloat(&a.TaxRate, r.TaxRate)
	setFloat(&a.DividendPayoutRatio, r.DividendPayoutRatio)
	if r.ProjectionYears != nil {
		a.ProjectionYears = *r.ProjectionYears
	}
	if r.ModelWeights != nil {
		a.ModelWeights = maps.Clone(r.ModelWeights)
	}
	return a
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
