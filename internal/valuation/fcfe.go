package valuation

import (
	"math"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

// NetIncomeProxyRatio is the share of net income used as FCFE when neither the
// reported figure nor the cash-flow estimate is positive.
const NetIncomeProxyRatio = 0.7

// BaseFCFE picks the starting free cash flow to equity.
// Reported FCFE wins when positive; otherwise net income + depreciation - |capex|;
// if that is still not positive and net income is, 70% of net income.
func BaseFCFE(s model.Snapshot) float64 {
	if reported := s.FCFE.ValueOrZero(); reported > 0 {
		return reported
	}
	netIncome := s.NetIncomeTTM.ValueOrZero()
	estimate := netIncome + s.Depreciation.ValueOrZero() - math.Abs(s.Capex.ValueOrZero())
	if estimate <= 0 && netIncome > 0 {
		estimate = netIncome * NetIncomeProxyRatio
	}
	return estimate
}

// CalculateFCFE values equity directly by compounding the base FCFE at the
// revenue growth rate and discounting at the required return on equity.
// Returns a zero detail when the required return does not exceed terminal growth.
func CalculateFCFE(s model.Snapshot, a model.Assumptions) model.ModelDetail {
	if a.RequiredReturnEquity <= a.TerminalGrowth {
		return model.ModelDetail{}
	}
	shares, ok := positive(s.SharesOutstanding)
	if !ok {
		return model.ModelDetail{}
	}

	projected := BaseFCFE(s)
	var pvCashFlows float64
	for year := 1; year <= a.ProjectionYears; year++ {
		projected *= 1 + a.RevenueGrowth
		pvCashFlows += projected / math.Pow(1+a.RequiredReturnEquity, float64(year))
	}

	terminalValue := projected * (1 + a.TerminalGrowth) / (a.RequiredReturnEquity - a.TerminalGrowth)
	pvTerminal := terminalValue / math.Pow(1+a.RequiredReturnEquity, float64(a.ProjectionYears))
	equityValue := pvCashFlows + pvTerminal

	return finite(model.ModelDetail{
		ValuePerShare:         math.Max(0, equityValue/shares),
		EquityValue:           equityValue,
		PresentValueCashFlows: pvCashFlows,
		TerminalValue:         terminalValue,
		PresentValueTerminal:  pvTerminal,
	})
}
