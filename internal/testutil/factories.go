package testutil

import (
	"github.com/guregu/null/v6"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

// RatioSummaryRecord returns a consolidated ratio record shaped like the
// provider's, with fractions for percent ratios.
//
// Derived figures: equity = 2e9 × 17,000 = 3.4e13, total assets =
// 1.5 × equity = 5.1e13, total debt = 0.5 × equity = 1.7e13.
func RatioSummaryRecord() vci.Record {
	return vci.Record{
		"revenue":           6.0e13,
		"net_profit":        9.0e12,
		"revenue_growth":    0.05,
		"net_profit_margin": 0.15,
		"gross_margin":      0.40,
		"roe":               0.25,
		"roa":               0.18,
		"roic":              0.20,
		"pe":                15.0,
		"pb":                4.0,
		"ps":                2.2,
		"pcf":               12.0,
		"ev_per_ebitda":     10.0,
		"eps":               4300.0,
		"eps_ttm":           4250.0,
		"bvps":              17000.0,
		"de":                0.5,
		"current_ratio":     2.0,
		"quick_ratio":       1.5,
		"cash_ratio":        0.8,
		"ev":                1.4e14,
		"issue_share":       2.0e9,
		"charter_capital":   2.0e13,
		"ebitda":            1.3e13,
		"ebit":              1.1e13,
		"ebit_margin":       0.18,
		"dividend":          3000.0,
		"year_report":       2024.0,
		"update_date":       "2025-03-31",
		"ae":                1.5,
	}
}

// VietnameseStatements returns one annual row per statement with
// Vietnamese field labels. Revenue arrives as comma-grouped text.
func VietnameseStatements() vci.Statements {
	return vci.Statements{
		Income: []vci.Record{{
			"Doanh thu thuần":                   "60,000,000,000,000",
			"Lợi nhuận sau thuế":                9.0e12,
			"Lợi nhuận từ hoạt động kinh doanh": 1.1e13,
		}},
		Balance: []vci.Record{{
			"TỔNG CỘNG TÀI SẢN":        5.0e13,
			"TỔNG CỘNG NỢ PHẢI TRẢ":    1.5e13,
			"Tiền và tương đương tiền": 1.0e13,
		}},
		CashFlow: []vci.Record{{
			"Khấu hao tài sản cố định":                      2.0e12,
			"Lưu chuyển tiền thuần từ hoạt động kinh doanh": 1.0e13,
			"Chi để mua sắm tài sản cố định":                -1.5e12,
		}},
	}
}

// EnglishStatements returns the same figures as VietnameseStatements with
// English field labels.
func EnglishStatements() vci.Statements {
	return vci.Statements{
		Income: []vci.Record{{
			"Revenue":          6.0e13,
			"Net income":       9.0e12,
			"Operating income": 1.1e13,
		}},
		Balance: []vci.Record{{
			"Total assets":      5.0e13,
			"Total liabilities": 1.5e13,
			"Cash":              1.0e13,
		}},
		CashFlow: []vci.Record{{
			"Depreciation":        2.0e12,
			"Operating cash flow": 1.0e13,
			"Capital expenditure": -1.5e12,
		}},
	}
}

// PriceBoard returns a trading board whose matched price is price.
func PriceBoard(price float64) vci.Board {
	return vci.Board{
		{Category: "match", Field: "match_price"}: price,
	}
}

// SnapshotBuilder provides a fluent interface for creating test snapshots.
//
// Example usage:
//
//	snap := testutil.NewSnapshot("VNM").
//	    WithPrice(61500).
//	    WithShares(2e9).
//	    Build()
type SnapshotBuilder struct {
	snap model.Snapshot
}

// NewSnapshot creates a SnapshotBuilder for an annual snapshot with every
// figure missing.
func NewSnapshot(symbol string) *SnapshotBuilder {
	snap := model.NewSnapshot(symbol, model.PeriodAnnual)
	snap.Success = true
	return &SnapshotBuilder{snap: snap}
}

func (b *SnapshotBuilder) WithPrice(price float64) *SnapshotBuilder {
	b.snap.CurrentPrice = null.FloatFrom(price)
	return b
}

func (b *SnapshotBuilder) WithShares(shares float64) *SnapshotBuilder {
	b.snap.SharesOutstanding = null.FloatFrom(shares)
	return b
}

func (b *SnapshotBuilder) WithNetIncome(ni float64) *SnapshotBuilder {
	b.snap.NetIncomeTTM = null.FloatFrom(ni)
	return b
}

// WithBalance sets total assets and total debt.
func (b *SnapshotBuilder) WithBalance(assets, debt float64) *SnapshotBuilder {
	b.snap.TotalAssets = null.FloatFrom(assets)
	b.snap.TotalDebt = null.FloatFrom(debt)
	b.snap.TotalLiabilities = null.FloatFrom(debt)
	return b
}

func (b *SnapshotBuilder) WithEPS(eps float64) *SnapshotBuilder {
	b.snap.EPS = null.FloatFrom(eps)
	return b
}

func (b *SnapshotBuilder) WithBVPS(bvps float64) *SnapshotBuilder {
	b.snap.BVPS = null.FloatFrom(bvps)
	return b
}

// Build returns the snapshot with market cap kept consistent.
func (b *SnapshotBuilder) Build() model.Snapshot {
	b.snap.UpdateMarketCap()
	return b.snap
}
