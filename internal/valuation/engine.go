package valuation

import (
	"maps"
	"math"
	"slices"

	"github.com/guregu/null/v6"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

// Calculator computes a per-share value for one model.
type Calculator func(model.Snapshot, model.Assumptions) model.ModelDetail

// Models lists the calculators by model name. DCF and FCFE always run;
// DDM runs only when weighted.
var Models = map[string]Calculator{
	model.ModelDCF:  CalculateDCF,
	model.ModelFCFE: CalculateFCFE,
	model.ModelDDM:  CalculateDDM,
}

// CalculateAll runs every applicable model against the snapshot and blends the
// results with the assumption weights. A model that fails contributes zero and
// does not affect the others.
//
// Parameters:
//   - s: Normalized snapshot to value
//   - a: Merged and validated assumptions; weighting "ddm" enables that model
//
// Returns:
//   - model.ValuationResult: Per-model values, the weighted average and, when
//     a market price is known and some model succeeded, the recommendation
//   - error: apperrors.ErrNoStockData when s is nil
func CalculateAll(s *model.Snapshot, a model.Assumptions) (model.ValuationResult, error) {
	if s == nil {
		return model.ValuationResult{}, apperrors.ErrNoStockData
	}

	names := []string{model.ModelDCF, model.ModelFCFE}
	if _, ok := a.ModelWeights[model.ModelDDM]; ok {
		names = append(names, model.ModelDDM)
	}

	result := model.ValuationResult{
		Symbol:      s.Symbol,
		Models:      make(map[string]float64, len(names)),
		Details:     make(map[string]model.ModelDetail, len(names)),
		Assumptions: a,
	}
	for _, name := range names {
		detail := Safe(Models[name], *s, a)
		result.Models[name] = detail.ValuePerShare
		result.Details[name] = detail
	}
	result.WeightedAverage = Blend(result.Models, a.ModelWeights)

	price, ok := positive(s.CurrentPrice)
	if ok {
		result.CurrentPrice = &price
	}
	// a valuation where every model failed carries no call
	if ok && result.WeightedAverage > 0 {
		upside, rec, confidence := Recommend(price, result.WeightedAverage)
		result.UpsidePct = &upside
		result.Recommendation = rec
		result.Confidence = &confidence
	}
	return result, nil
}

// Safe runs a calculator and converts a panic into a zero result.
func Safe(calc Calculator, s model.Snapshot, a model.Assumptions) (detail model.ModelDetail) {
	if calc == nil {
		return model.ModelDetail{}
	}
	defer func() {
		if r := recover(); r != nil {
			detail = model.ModelDetail{}
		}
	}()
	return calc(s, a)
}

// Blend returns the weighted average over models that have a weight and a
// strictly positive value. Models that failed are left out of both sums.
// Models are summed in name order so identical inputs give identical bits.
// Returns 0 when nothing qualifies.
func Blend(values, weights map[string]float64) float64 {
	var weighted, total float64
	for _, name := range slices.Sorted(maps.Keys(values)) {
		value := values[name]
		weight, ok := weights[name]
		if !ok || value <= 0 {
			continue
		}
		weighted += value * weight
		total += weight
	}
	if total <= 0 {
		return 0
	}
	return weighted / total
}

// Recommendation thresholds on upside to market price, in percent.
const (
	BuyThreshold  = 15.0
	SellThreshold = -15.0
)

// Recommend compares the blended value with the market price and returns the
// upside in percent, the buy/hold/sell call and a confidence score capped at 100.
func Recommend(price, value float64) (float64, model.Recommendation, float64) {
	if price <= 0 {
		return 0, model.RecommendationHold, 0
	}
	upside := (value - price) / price * 100
	rec := model.RecommendationHold
	switch {
	case upside > BuyThreshold:
		rec = model.RecommendationBuy
	case upside <= SellThreshold:
		rec = model.RecommendationSell
	}
	confidence := math.Min(100, math.Abs(upside)*2+60)
	return upside, rec, confidence
}

func positive(v null.Float) (float64, bool) {
	if !v.Valid || v.Float64 <= 0 || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return 0, false
	}
	return v.Float64, true
}

// finite zeroes a detail whose figures overflowed or went NaN.
func finite(d model.ModelDetail) model.ModelDetail {
	for _, v := range []float64{
		d.ValuePerShare, d.EnterpriseValue, d.EquityValue,
		d.PresentValueCashFlows, d.TerminalValue, d.PresentValueTerminal,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.ModelDetail{}
		}
	}
	return d
}
