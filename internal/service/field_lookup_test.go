package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

func TestLookup(t *testing.T) {
	candidates := []string{"organ_name", "short_name", "company_name", "shortName"}

	tests := []struct {
		name     string
		rec      vci.Record
		expected any
	}{
		{"first candidate wins", vci.Record{"organ_name": "A", "shortName": "D"}, "A"},
		{"fourth candidate when first three are absent", vci.Record{"shortName": "D"}, "D"},
		{"null and blank values are skipped", vci.Record{"organ_name": nil, "short_name": "  ", "company_name": "C"}, "C"},
		{"default when nothing matches", vci.Record{"other": "X"}, "default"},
		{"nil record", nil, "default"},
		{"numbers are returned as is", vci.Record{"short_name": 12.0}, 12.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Lookup(tt.rec, candidates, "default"))
		})
	}
}

func TestLookupString(t *testing.T) {
	assert.Equal(t, "Vinamilk", LookupString(vci.Record{"organ_name": " Vinamilk "}, overviewNameFields, "VNM"))
	assert.Equal(t, "VNM", LookupString(vci.Record{}, overviewNameFields, "VNM"))
	assert.Equal(t, "1", LookupString(vci.Record{"type": 1}, exchangeFields, "HOSE"))
}

func TestLookupFloat(t *testing.T) {
	tests := []struct {
		name     string
		rec      vci.Record
		expected null.Float
	}{
		{"numeric value", vci.Record{"Revenue": 1.5e12}, null.FloatFrom(1.5e12)},
		{"comma grouped text", vci.Record{"Doanh thu thuần": "1,234,567"}, null.FloatFrom(1234567)},
		{"negative text", vci.Record{"Revenue": "-2,500.5"}, null.FloatFrom(-2500.5)},
		{"unparseable text falls through to next candidate", vci.Record{"Doanh thu thuần": "n/a", "Revenue": 10.0}, null.FloatFrom(10)},
		{"unparseable text alone is missing", vci.Record{"Revenue": "n/a"}, null.Float{}},
		{"null is missing", vci.Record{"Revenue": nil}, null.Float{}},
		{"boolean is missing", vci.Record{"Revenue": true}, null.Float{}},
		{"json number", vci.Record{"revenue": json.Number("42")}, null.FloatFrom(42)},
		{"absent", vci.Record{}, null.Float{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LookupFloat(tt.rec, revenueFields))
		})
	}
}

// TestLookupPositive tests the share-count lookup.
//
// WHY: A zero or negative share count is a placeholder, not a quantity. It must
// not shadow a later valid candidate, and must not count as present.
func TestLookupPositive(t *testing.T) {
	tests := []struct {
		name     string
		rec      vci.Record
		expected null.Float
	}{
		{"zero listed share falls through", vci.Record{"listed_share": 0.0, "issue_share": 5.0}, null.FloatFrom(5)},
		{"negative text falls through", vci.Record{"listed_share": "-1,000", "outstanding_share": "2,000"}, null.FloatFrom(2000)},
		{"all zero is missing", vci.Record{"listed_share": 0.0, "issue_share": 0.0, "totalShares": "0"}, null.Float{}},
		{"first positive wins", vci.Record{"listed_share": 3.0, "issue_share": 5.0}, null.FloatFrom(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LookupPositive(tt.rec, listingShareFields))
		})
	}

	t.Run("zero shares leave market cap missing", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodAnnual)
		snap.CurrentPrice = null.FloatFrom(61500)
		applyRatioSummary(&snap, vci.Record{"issue_share": 0.0, "net_profit": 9.0e12})

		applyMarket(&snap)

		assert.False(t, snap.SharesOutstanding.Valid)
		assert.False(t, snap.MarketCap.Valid)
	})
}

func TestParseNumber_NonFinite(t *testing.T) {
	_, ok := parseNumber(math.NaN())
	assert.False(t, ok)
	_, ok = parseNumber(math.Inf(1))
	assert.False(t, ok)
}

func TestApplyStatements(t *testing.T) {
	st := vci.Statements{
		Income:   []vci.Record{{"Net income": 100.0, "Revenue": "1,000"}, {"Net income": 999.0}},
		Balance:  []vci.Record{{"Total assets": 5000.0, "Total liabilities": 2000.0}},
		CashFlow: []vci.Record{{"Capital expenditure": -50.0}},
	}

	t.Run("annual figures are taken as is from the first row", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodAnnual)
		applyStatements(&snap, st)

		assert.Equal(t, null.FloatFrom(100), snap.NetIncomeTTM)
		assert.Equal(t, null.FloatFrom(1000), snap.RevenueTTM)
		assert.Equal(t, null.FloatFrom(2000), snap.TotalDebt)
		assert.Equal(t, snap.TotalLiabilities, snap.TotalDebt)
		assert.False(t, snap.Cash.Valid)
	})

	t.Run("quarterly flows are multiplied by four", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodQuarterly)
		applyStatements(&snap, st)

		assert.Equal(t, null.FloatFrom(400), snap.NetIncomeTTM)
		assert.Equal(t, null.FloatFrom(4000), snap.RevenueTTM)
		assert.Equal(t, null.FloatFrom(-200), snap.Capex)
		assert.Equal(t, null.FloatFrom(5000), snap.TotalAssets, "balance sheet is not annualized")
	})
}

func TestReconcileRatios(t *testing.T) {
	t.Run("derives from shares and book value", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodAnnual)
		snap.SharesOutstanding = null.FloatFrom(100)
		snap.BVPS = null.FloatFrom(10)
		snap.DebtToEquity = null.FloatFrom(0.5)
		snap.NetIncomeTTM = null.FloatFrom(200)

		reconcileRatios(&snap, null.FloatFrom(2))

		assert.Equal(t, null.FloatFrom(2000), snap.TotalAssets)
		assert.Equal(t, null.FloatFrom(500), snap.TotalDebt)
		assert.Equal(t, null.FloatFrom(500), snap.TotalLiabilities)
		assert.Equal(t, null.FloatFrom(20), snap.ROE)
		assert.Equal(t, null.FloatFrom(10), snap.ROA)
	})

	t.Run("derives from assets and liabilities", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodAnnual)
		snap.TotalAssets = null.FloatFrom(1000)
		snap.TotalLiabilities = null.FloatFrom(600)
		snap.TotalDebt = null.FloatFrom(600)
		snap.NetIncomeTTM = null.FloatFrom(80)

		reconcileRatios(&snap, null.Float{})

		assert.Equal(t, null.FloatFrom(20), snap.ROE)
		assert.Equal(t, null.FloatFrom(8), snap.ROA)
		assert.Equal(t, null.FloatFrom(1.5), snap.DebtToEquity)
	})

	t.Run("keeps provider ratios", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodAnnual)
		snap.TotalAssets = null.FloatFrom(1000)
		snap.TotalLiabilities = null.FloatFrom(600)
		snap.NetIncomeTTM = null.FloatFrom(80)
		snap.ROE = null.FloatFrom(33)

		reconcileRatios(&snap, null.Float{})

		assert.Equal(t, null.FloatFrom(33), snap.ROE)
	})

	t.Run("zero equity leaves ratios missing", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodAnnual)
		snap.TotalAssets = null.FloatFrom(600)
		snap.TotalLiabilities = null.FloatFrom(600)
		snap.NetIncomeTTM = null.FloatFrom(80)

		reconcileRatios(&snap, null.Float{})

		assert.False(t, snap.ROE.Valid)
		assert.False(t, snap.DebtToEquity.Valid)
		assert.True(t, snap.ROA.Valid)
	})

	t.Run("non-positive assets to equity ratio is ignored", func(t *testing.T) {
		snap := model.NewSnapshot("VNM", model.PeriodAnnual)
		snap.SharesOutstanding = null.FloatFrom(100)
		snap.BVPS = null.FloatFrom(10)

		reconcileRatios(&snap, null.FloatFrom(0))

		assert.False(t, snap.TotalAssets.Valid)
	})
}

func TestApplyMarket(t *testing.T) {
	tests := []struct {
		name      string
		price     null.Float
		eps       null.Float
		bvps      null.Float
		reported  null.Float
		wantPE    null.Float
		wantPBSet bool
	}{
		{"computes from price and eps", null.FloatFrom(100), null.FloatFrom(10), null.FloatFrom(50), null.Float{}, null.FloatFrom(10), true},
		{"keeps reported pe", null.FloatFrom(100), null.FloatFrom(10), null.Float{}, null.FloatFrom(12), null.FloatFrom(12), false},
		{"clears reported pe without price", null.Float{}, null.FloatFrom(10), null.FloatFrom(50), null.FloatFrom(12), null.Float{}, false},
		{"negative eps", null.FloatFrom(100), null.FloatFrom(-10), null.Float{}, null.Float{}, null.Float{}, false},
		{"zero book value", null.FloatFrom(100), null.Float{}, null.FloatFrom(0), null.Float{}, null.Float{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := model.NewSnapshot("VNM", model.PeriodAnnual)
			snap.CurrentPrice = tt.price
			snap.EPS = tt.eps
			snap.BVPS = tt.bvps
			snap.PERatio = tt.reported

			applyMarket(&snap)

			assert.Equal(t, tt.wantPE, snap.PERatio)
			assert.Equal(t, tt.wantPBSet, snap.PBRatio.Valid)
		})
	}
}

func TestPickPrice(t *testing.T) {
	tests := []struct {
		name     string
		board    vci.Board
		expected null.Float
	}{
		{
			name: "matched price first",
			board: vci.Board{
				{Category: "match", Field: "match_price"}: 61500.0,
				{Category: "listing", Field: "ref_price"}: 61000.0,
			},
			expected: null.FloatFrom(61500),
		},
		{
			name: "zero matched price falls back to reference",
			board: vci.Board{
				{Category: "match", Field: "match_price"}: 0.0,
				{Category: "listing", Field: "ref_price"}: 61000.0,
			},
			expected: null.FloatFrom(61000),
		},
		{
			name: "textual bid price",
			board: vci.Board{
				{Category: "bid_ask", Field: "bid_1_price"}: "60,900",
				{Category: "match", Field: "close_price"}:   60000.0,
			},
			expected: null.FloatFrom(60900),
		},
		{
			name: "last price is the final resort",
			board: vci.Board{
				{Category: "match", Field: "close_price"}: nil,
				{Category: "match", Field: "last_price"}:  59000.0,
			},
			expected: null.FloatFrom(59000),
		},
		{
			name:     "nothing usable",
			board:    vci.Board{{Category: "match", Field: "match_price"}: -1.0},
			expected: null.Float{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pickPrice(tt.board))
		})
	}
}
