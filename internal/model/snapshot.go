package model

import (
	"math"

	"github.com/guregu/null/v6"
)

// Period selects which reporting period the provider statements are read from.
type Period string

const (
	PeriodAnnual    Period = "annual"
	PeriodQuarterly Period = "quarterly"
)

// IsQuarterly reports whether figures come from a single quarter and need annualizing.
func (p Period) IsQuarterly() bool {
	return p == PeriodQuarterly
}

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	return p == PeriodAnnual || p == PeriodQuarterly
}

// DataSourceVCI is the provenance tag of the only supported provider.
const DataSourceVCI = "VCI"

// Placeholder values used when the company overview cannot resolve a field.
const (
	DefaultExchange = "HOSE"
	DefaultSector   = "Unknown"
)

// Snapshot is the canonical financial record for one symbol and reporting period.
// Every optional figure is a null.Float: an invalid value means the provider did not
// supply it and it serializes as JSON null.
type Snapshot struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Sector   string `json:"sector"`

	SharesOutstanding null.Float `json:"shares_outstanding"`

	RevenueTTM       null.Float `json:"revenue_ttm"`
	NetIncomeTTM     null.Float `json:"net_income_ttm"`
	EBIT             null.Float `json:"ebit"`
	EBITDA           null.Float `json:"ebitda"`
	TotalAssets      null.Float `json:"total_assets"`
	TotalDebt        null.Float `json:"total_debt"`
	TotalLiabilities null.Float `json:"total_liabilities"`
	Cash             null.Float `json:"cash"`
	Depreciation     null.Float `json:"depreciation"`
	FCFE             null.Float `json:"fcfe"`
	Capex            null.Float `json:"capex"`

	CurrentPrice null.Float `json:"current_price"`
	PriceChange  null.Float `json:"price_change"`
	MarketCap    null.Float `json:"market_cap"`
	PERatio      null.Float `json:"pe_ratio"`
	PBRatio      null.Float `json:"pb_ratio"`

	Ratios

	DataSource      string `json:"data_source"`
	DataPeriod      Period `json:"data_period"`
	IsQuarterlyData bool   `json:"is_quarterly_data"`
	Success         bool   `json:"success"`
}

// Ratios holds the per-share and ratio figures published by the provider's
// consolidated summary. Percent-style ratios are stored as percentages.
type Ratios struct {
	RevenueGrowth    null.Float `json:"revenue_growth"`
	NetProfitMargin  null.Float `json:"net_profit_margin"`
	GrossMargin      null.Float `json:"gross_margin"`
	ROE              null.Float `json:"roe"`
	ROA              null.Float `json:"roa"`
	ROIC             null.Float `json:"roic"`
	PSRatio          null.Float `json:"ps_ratio"`
	PCFRatio         null.Float `json:"pcf_ratio"`
	EVEBITDA         null.Float `json:"ev_ebitda"`
	EPS              null.Float `json:"eps"`
	EPSTTM           null.Float `json:"eps_ttm"`
	BVPS             null.Float `json:"bvps"`
	DebtToEquity     null.Float `json:"debt_to_equity"`
	CurrentRatio     null.Float `json:"current_ratio"`
	QuickRatio       null.Float `json:"quick_ratio"`
	CashRatio        null.Float `json:"cash_ratio"`
	EnterpriseValue  null.Float `json:"enterprise_value"`
	CharterCapital   null.Float `json:"charter_capital"`
	EBITMargin       null.Float `json:"ebit_margin"`
	DividendPerShare null.Float `json:"dividend_per_share"`
	YearReport       null.Float `json:"year_report"`
}

// NewSnapshot returns an all-missing snapshot carrying the placeholder descriptors.
func NewSnapshot(symbol string, period Period) Snapshot {
	return Snapshot{
		Symbol:          symbol,
		Name:            symbol,
		Exchange:        DefaultExchange,
		Sector:          DefaultSector,
		DataSource:      DataSourceVCI,
		DataPeriod:      period,
		IsQuarterlyData: period.IsQuarterly(),
	}
}

// HasFinancials reports whether any income, balance or cash-flow figure is present.
func (s Snapshot) HasFinancials() bool {
	for _, f := range []null.Float{
		s.RevenueTTM, s.NetIncomeTTM, s.EBIT, s.EBITDA, s.TotalAssets, s.TotalDebt,
		s.TotalLiabilities, s.Cash, s.Depreciation, s.FCFE, s.Capex,
	} {
		if f.Valid {
			return true
		}
	}
	return false
}

// UpdateMarketCap recomputes market_cap from price and shares. It is missing
// unless both operands are present.
func (s *Snapshot) UpdateMarketCap() {
	s.MarketCap = Mul(s.CurrentPrice, s.SharesOutstanding)
}

// Num wraps a float as a present value, mapping NaN and ±Inf to missing.
func Num(v float64) null.Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return null.Float{}
	}
	return null.FloatFrom(v)
}

// Mul returns a*b, or missing when either operand is missing.
func Mul(a, b null.Float) null.Float {
	if !a.Valid || !b.Valid {
		return null.Float{}
	}
	return Num(a.Float64 * b.Float64)
}

// Sub returns a-b, or missing when either operand is missing.
func Sub(a, b null.Float) null.Float {
	if !a.Valid || !b.Valid {
		return null.Float{}
	}
	return Num(a.Float64 - b.Float64)
}

// Div returns a/b, or missing when either operand is missing or b is zero.
func Div(a, b null.Float) null.Float {
	if !a.Valid || !b.Valid || b.Float64 == 0 {
		return null.Float{}
	}
	return Num(a.Float64 / b.Float64)
}

// DivPositive returns a/b only when b is strictly positive.
func DivPositive(a, b null.Float) null.Float {
	if !b.Valid || b.Float64 <= 0 {
		return null.Float{}
	}
	return Div(a, b)
}

// Scale multiplies a present value by k.
func Scale(a null.Float, k float64) null.Float {
	if !a.Valid {
		return a
	}
	return Num(a.Float64 * k)
}

// Coalesce returns the first present value.
func Coalesce(values ...null.Float) null.Float {
	for _, v := range values {
		if v.Valid {
			return v
		}
	}
	return null.Float{}
}
