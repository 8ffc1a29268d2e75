package valuation_test

import (
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/valuation"
)

func dcfFixture() model.Snapshot {
	s := model.NewSnapshot("TST", model.PeriodAnnual)
	s.RevenueTTM = null.FloatFrom(2e12)
	s.EBIT = null.FloatFrom(3e11)
	s.Depreciation = null.FloatFrom(1e11)
	s.TotalDebt = null.FloatFrom(3e12)
	s.Cash = null.FloatFrom(1e12)
	s.SharesOutstanding = null.FloatFrom(1e9)
	return s
}

func fcfeFixture() model.Snapshot {
	s := model.NewSnapshot("TST", model.PeriodAnnual)
	s.FCFE = null.FloatFrom(1.5e11)
	s.SharesOutstanding = null.FloatFrom(1e9)
	return s
}

func TestCalculateDCF(t *testing.T) {
	t.Run("matches the regression fixture", func(t *testing.T) {
		detail := valuation.CalculateDCF(dcfFixture(), model.DefaultAssumptions())

		assert.InDelta(t, 2705.9797078030538, detail.ValuePerShare, 1e-6)
		assert.InDelta(t, 4.705979707803054e12, detail.EnterpriseValue, 1e3)
		assert.InDelta(t, 2.7059797078030537e12, detail.EquityValue, 1e3)
		assert.InDelta(t, 1.215638502958094e12, detail.PresentValueCashFlows, 1e3)
		assert.InDelta(t, 5.621229413814858e12, detail.TerminalValue, 1e3)
		assert.InDelta(t, 3.49034120484496e12, detail.PresentValueTerminal, 1e3)
	})

	t.Run("is deterministic", func(t *testing.T) {
		a := model.DefaultAssumptions()
		first := valuation.CalculateDCF(dcfFixture(), a)
		second := valuation.CalculateDCF(dcfFixture(), a)
		assert.Equal(t, first, second)
	})

	t.Run("clamps negative equity to zero per share", func(t *testing.T) {
		s := dcfFixture()
		s.TotalDebt = null.FloatFrom(30e12)

		detail := valuation.CalculateDCF(s, model.DefaultAssumptions())

		assert.Zero(t, detail.ValuePerShare)
		assert.Negative(t, detail.EquityValue)
	})

	t.Run("returns zero when wacc does not exceed terminal growth", func(t *testing.T) {
		for _, wacc := range []float64{0.03, 0.02} {
			a := model.DefaultAssumptions()
			a.WACC = wacc

			detail := valuation.CalculateDCF(dcfFixture(), a)

			assert.Equal(t, model.ModelDetail{}, detail, "wacc %v", wacc)
		}
	})

	t.Run("uses default margins without revenue", func(t *testing.T) {
		s := dcfFixture()
		s.RevenueTTM = null.Float{}

		projections := valuation.ProjectFCFF(1000, valuation.DefaultEBITMargin, valuation.DefaultDepreciationRate, model.DefaultAssumptions())
		require.Len(t, projections, 5)
		assert.InDelta(t, 1080, projections[0].Revenue, 1e-9)
		assert.InDelta(t, 1080*0.15, projections[0].EBIT, 1e-9)

		// zero revenue projects zero cash flows, leaving only net cash
		detail := valuation.CalculateDCF(s, model.DefaultAssumptions())
		assert.Zero(t, detail.EnterpriseValue)
		assert.Zero(t, detail.ValuePerShare)
	})

	t.Run("returns zero without shares outstanding", func(t *testing.T) {
		s := dcfFixture()
		s.SharesOutstanding = null.Float{}

		assert.Equal(t, model.ModelDetail{}, valuation.CalculateDCF(s, model.DefaultAssumptions()))
	})
}

func TestCalculateFCFE(t *testing.T) {
	t.Run("matches the regression fixture", func(t *testing.T) {
		detail := valuation.CalculateFCFE(fcfeFixture(), model.DefaultAssumptions())

		assert.InDelta(t, 2104.615508512077, detail.ValuePerShare, 1e-6)
		assert.InDelta(t, 6.733683469173928e11, detail.PresentValueCashFlows, 1e3)
		assert.InDelta(t, 2.52234653184e12, detail.TerminalValue, 1e3)
		assert.InDelta(t, 1.4312471615946846e12, detail.PresentValueTerminal, 1e3)
	})

	t.Run("returns zero when required return does not exceed terminal growth", func(t *testing.T) {
		a := model.DefaultAssumptions()
		a.RequiredReturnEquity = 0.03

		assert.Equal(t, model.ModelDetail{}, valuation.CalculateFCFE(fcfeFixture(), a))
	})

	t.Run("never reports a negative value", func(t *testing.T) {
		s := model.NewSnapshot("TST", model.PeriodAnnual)
		s.NetIncomeTTM = null.FloatFrom(-5e11)
		s.SharesOutstanding = null.FloatFrom(1e9)

		detail := valuation.CalculateFCFE(s, model.DefaultAssumptions())

		assert.Zero(t, detail.ValuePerShare)
	})
}

func TestBaseFCFE(t *testing.T) {
	tests := []struct {
		name     string
		fcfe     null.Float
		income   null.Float
		dep      null.Float
		capex    null.Float
		expected float64
	}{
		{"reported positive figure", null.FloatFrom(100), null.FloatFrom(999), null.Float{}, null.Float{}, 100},
		{"estimate from net income", null.FloatFrom(-5), null.FloatFrom(200), null.FloatFrom(50), null.FloatFrom(-100), 150},
		{"capex sign is ignored", null.Float{}, null.FloatFrom(200), null.FloatFrom(50), null.FloatFrom(100), 150},
		{"falls back to 70% of net income", null.Float{}, null.FloatFrom(100), null.FloatFrom(0), null.FloatFrom(500), 70},
		{"keeps negative estimate on losses", null.Float{}, null.FloatFrom(-100), null.Float{}, null.Float{}, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.NewSnapshot("TST", model.PeriodAnnual)
			s.FCFE = tt.fcfe
			s.NetIncomeTTM = tt.income
			s.Depreciation = tt.dep
			s.Capex = tt.capex

			assert.InDelta(t, tt.expected, valuation.BaseFCFE(s), 1e-9)
		})
	}
}

func TestCalculateDDM(t *testing.T) {
	s := model.NewSnapshot("TST", model.PeriodAnnual)
	s.EPS = null.FloatFrom(2000)

	detail := valuation.CalculateDDM(s, model.DefaultAssumptions())

	assert.InDelta(t, 6866.666666666667, detail.ValuePerShare, 1e-6)
}

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]float64
		weights  map[string]float64
		expected float64
	}{
		{
			name:     "equal weights",
			values:   map[string]float64{"dcf": 100, "fcfe": 200},
			weights:  map[string]float64{"dcf": 0.5, "fcfe": 0.5},
			expected: 150,
		},
		{
			name:     "failed model is excluded from the denominator",
			values:   map[string]float64{"dcf": 0, "fcfe": 200},
			weights:  map[string]float64{"dcf": 0.5, "fcfe": 0.5},
			expected: 200,
		},
		{
			name:     "unweighted model is ignored",
			values:   map[string]float64{"dcf": 100, "fcfe": 200},
			weights:  map[string]float64{"dcf": 1},
			expected: 100,
		},
		{
			name:     "uneven weights",
			values:   map[string]float64{"dcf": 100, "fcfe": 200},
			weights:  map[string]float64{"dcf": 0.75, "fcfe": 0.25},
			expected: 125,
		},
		{
			name:     "nothing qualifies",
			values:   map[string]float64{"dcf": 0, "fcfe": -1},
			weights:  map[string]float64{"dcf": 0.5, "fcfe": 0.5},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, valuation.Blend(tt.values, tt.weights), 1e-9)
		})
	}

	t.Run("three models blend to the same bits every time", func(t *testing.T) {
		values := map[string]float64{"dcf": 0.1, "fcfe": 0.2, "ddm": 0.3}
		weights := map[string]float64{"dcf": 1.0 / 3, "fcfe": 1.0 / 7, "ddm": 1.0 / 11}

		first := valuation.Blend(values, weights)
		for range 200 {
			require.Equal(t, first, valuation.Blend(values, weights))
		}
	})
}

func TestCalculateAll(t *testing.T) {
	t.Run("rejects a missing snapshot", func(t *testing.T) {
		_, err := valuation.CalculateAll(nil, model.DefaultAssumptions())
		assert.ErrorIs(t, err, apperrors.ErrNoStockData)
	})

	t.Run("blends dcf and fcfe", func(t *testing.T) {
		s := dcfFixture()
		s.FCFE = null.FloatFrom(1.5e11)

		result, err := valuation.CalculateAll(&s, model.DefaultAssumptions())
		require.NoError(t, err)

		assert.InDelta(t, 2705.9797078030538, result.Models["dcf"], 1e-6)
		assert.InDelta(t, 2104.615508512077, result.Models["fcfe"], 1e-6)
		assert.InDelta(t, (2705.9797078030538+2104.615508512077)/2, result.WeightedAverage, 1e-6)
		assert.NotContains(t, result.Models, "ddm")
		assert.Nil(t, result.UpsidePct)
	})

	t.Run("one failing model does not suppress the other", func(t *testing.T) {
		s := dcfFixture()
		s.FCFE = null.FloatFrom(1.5e11)
		a := model.DefaultAssumptions()
		a.WACC = 0.01

		result, err := valuation.CalculateAll(&s, a)
		require.NoError(t, err)

		assert.Zero(t, result.Models["dcf"])
		assert.InDelta(t, 2104.615508512077, result.WeightedAverage, 1e-6)
	})

	t.Run("includes ddm when weighted", func(t *testing.T) {
		s := dcfFixture()
		s.EPS = null.FloatFrom(2000)
		a := model.DefaultAssumptions()
		a.ModelWeights = map[string]float64{"dcf": 0.5, "fcfe": 0.25, "ddm": 0.25}

		result, err := valuation.CalculateAll(&s, a)
		require.NoError(t, err)

		assert.Contains(t, result.Models, "ddm")
	})

	t.Run("adds a recommendation when price is known", func(t *testing.T) {
		s := dcfFixture()
		s.CurrentPrice = null.FloatFrom(1000)

		result, err := valuation.CalculateAll(&s, model.DefaultAssumptions())
		require.NoError(t, err)

		require.NotNil(t, result.UpsidePct)
		assert.Equal(t, model.RecommendationBuy, result.Recommendation)
		assert.InDelta(t, 100, *result.Confidence, 1e-9)
	})

	t.Run("no recommendation when every model fails", func(t *testing.T) {
		s := dcfFixture()
		s.CurrentPrice = null.FloatFrom(1000)
		s.SharesOutstanding = null.Float{}

		result, err := valuation.CalculateAll(&s, model.DefaultAssumptions())
		require.NoError(t, err)

		assert.Zero(t, result.WeightedAverage)
		require.NotNil(t, result.CurrentPrice)
		assert.Nil(t, result.UpsidePct)
		assert.Nil(t, result.Confidence)
		assert.Empty(t, result.Recommendation)
	})
}

func TestSafe(t *testing.T) {
	panicky := func(model.Snapshot, model.Assumptions) model.ModelDetail {
		panic("boom")
	}

	assert.NotPanics(t, func() {
		detail := valuation.Safe(panicky, model.Snapshot{}, model.DefaultAssumptions())
		assert.Equal(t, model.ModelDetail{}, detail)
	})
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		expected   model.Recommendation
		confidence float64
	}{
		{"undervalued", 120, model.RecommendationBuy, 100},
		{"fair", 105, model.RecommendationHold, 70},
		{"overvalued", 80, model.RecommendationSell, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rec, confidence := valuation.Recommend(100, tt.value)
			assert.Equal(t, tt.expected, rec)
			assert.InDelta(t, tt.confidence, confidence, 1e-9)
		})
	}
}
