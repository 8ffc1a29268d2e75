package valuation

import (
	"math"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

// CalculateDDM applies the Gordon growth model to a dividend derived from EPS
// and the payout ratio. Only computed when the caller weights the "ddm" model.
//
// EPS comes from the provider figure, or net income per share when absent.
func CalculateDDM(s model.Snapshot, a model.Assumptions) model.ModelDetail {
	if a.RequiredReturnEquity <= a.TerminalGrowth {
		return model.ModelDetail{}
	}

	eps := model.Coalesce(s.EPS, s.EPSTTM, model.DivPositive(s.NetIncomeTTM, s.SharesOutstanding)).ValueOrZero()
	dividend := eps * a.DividendPayoutRatio
	value := dividend * (1 + a.TerminalGrowth) / (a.RequiredReturnEquity - a.TerminalGrowth)

	detail := model.ModelDetail{
		ValuePerShare: math.Max(0, value),
		TerminalValue: value,
	}
	if shares, ok := positive(s.SharesOutstanding); ok {
		detail.EquityValue = value * shares
	}
	return finite(detail)
}
