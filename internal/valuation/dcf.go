// Package valuation implements the closed-form intrinsic value models.
// Every function here is pure: it reads a snapshot and a set of assumptions and
// returns numbers. Failures are reported as zero values, never as errors.
package valuation

import (
	"math"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

// Heuristics applied when the snapshot lacks the figures to derive them.
const (
	DefaultEBITMargin       = 0.15
	DefaultDepreciationRate = 0.04
	CapexRate               = 0.04
	WorkingCapitalRate      = 0.02
)

// DCFProjection is one explicit year of the free-cash-flow-to-firm forecast.
type DCFProjection struct {
	Year                 int
	Revenue              float64
	EBIT                 float64
	EBITAfterTax         float64
	Depreciation         float64
	Capex                float64
	WorkingCapitalChange float64
	FCFF                 float64
	PresentValue         float64
}

// CalculateDCF values the firm by discounting projected FCFF at WACC and
// subtracting net debt. The per-share value is floored at zero.
//
// The margins are taken from the trailing figures: ebit/revenue and
// depreciation/revenue. Without revenue the default 15% margin and 4%
// depreciation rate are used. Capex is fixed at 4% of revenue and the
// working-capital change at 2% of incremental revenue.
//
// Parameters:
//   - s: Normalized snapshot; shares outstanding must be present and positive
//   - a: Assumptions supplying WACC, growth rates, tax rate and horizon
//
// Returns:
//   - model.ModelDetail: Per-share value with the enterprise, equity and
//     terminal figures behind it, or a zero detail when WACC does not exceed
//     terminal growth or shares outstanding are missing
func CalculateDCF(s model.Snapshot, a model.Assumptions) model.ModelDetail {
	if a.WACC <= a.TerminalGrowth {
		return model.ModelDetail{}
	}
	shares, ok := positive(s.SharesOutstanding)
	if !ok {
		return model.ModelDetail{}
	}

	revenue := s.RevenueTTM.ValueOrZero()
	ebitMargin := DefaultEBITMargin
	depreciationRate := DefaultDepreciationRate
	if revenue > 0 {
		ebitMargin = s.EBIT.ValueOrZero() / revenue
		depreciationRate = s.Depreciation.ValueOrZero() / revenue
	}

	projections := ProjectFCFF(revenue, ebitMargin, depreciationRate, a)
	var pvCashFlows float64
	for _, p := range projections {
		pvCashFlows += p.PresentValue
	}

	finalRevenue := revenue
	if len(projections) > 0 {
		finalRevenue = projections[len(projections)-1].Revenue
	}
	terminalRevenue := finalRevenue * (1 + a.TerminalGrowth)
	terminalFCFF := terminalRevenue*ebitMargin*(1-a.TaxRate) +
		terminalRevenue*depreciationRate -
		terminalRevenue*CapexRate
	terminalValue := terminalFCFF / (a.WACC - a.TerminalGrowth)
	pvTerminal := terminalValue / math.Pow(1+a.WACC, float64(a.ProjectionYears))

	enterpriseValue := pvCashFlows + pvTerminal
	netDebt := s.TotalDebt.ValueOrZero() - s.Cash.ValueOrZero()
	equityValue := enterpriseValue - netDebt

	detail := model.ModelDetail{
		ValuePerShare:         math.Max(0, equityValue/shares),
		EnterpriseValue:       enterpriseValue,
		EquityValue:           equityValue,
		PresentValueCashFlows: pvCashFlows,
		TerminalValue:         terminalValue,
		PresentValueTerminal:  pvTerminal,
	}
	return finite(detail)
}

// ProjectFCFF grows revenue at the revenue growth rate for each projection year
// and derives the free cash flow to the firm and its present value at WACC.
func ProjectFCFF(revenue, ebitMargin, depreciationRate float64, a model.Assumptions) []DCFProjection {
	years := max(a.ProjectionYears, 0)
	projections := make([]DCFProjection, 0, years)
	projected := revenue
	for year := 1; year <= years; year++ {
		projected *= 1 + a.RevenueGrowth
		ebit := projected * ebitMargin
		afterTax := ebit * (1 - a.TaxRate)
		depreciation := projected * depreciationRate
		capex := projected * CapexRate
		wcChange := projected * a.RevenueGrowth * WorkingCapitalRate
		fcff := afterTax + depreciation - capex - wcChange

		projections = append(projections, DCFProjection{
			Year:                 year,
			Revenue:              projected,
			EBIT:                 ebit,
			EBITAfterTax:         afterTax,
			Depreciation:         depreciation,
			Capex:                capex,
			WorkingCapitalChange: wcChange,
			FCFF:                 fcff,
			PresentValue:         fcff / math.Pow(1+a.WACC, float64(year)),
		})
	}
	return projections
}
