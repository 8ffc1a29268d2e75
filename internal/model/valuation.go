package model

// Model names used as keys in weights and results.
const (
	ModelDCF  = "dcf"
	ModelFCFE = "fcfe"
	ModelDDM  = "ddm"
)

// Assumptions are the caller-supplied scalar inputs of the valuation models.
// All rates are decimal fractions (0.08 = 8%).
type Assumptions struct {
	RevenueGrowth        float64            `json:"revenue_growth" yaml:"revenue_growth" validate:"gte=-1,lte=1"`
	TerminalGrowth       float64            `json:"terminal_growth" yaml:"terminal_growth" validate:"gte=-1,lt=1"`
	WACC                 float64            `json:"wacc" yaml:"wacc" validate:"gt=0,lte=1"`
	RequiredReturnEquity float64            `json:"required_return_equity" yaml:"required_return_equity" validate:"gt=0,lte=1"`
	TaxRate              float64            `json:"tax_rate" yaml:"tax_rate" validate:"gte=0,lt=1"`
	ProjectionYears      int                `json:"projection_years" yaml:"projection_years" validate:"min=1,max=30"`
	DividendPayoutRatio  float64            `json:"dividend_payout_ratio" yaml:"dividend_payout_ratio" validate:"gte=0,lte=1"`
	ModelWeights         map[string]float64 `json:"model_weights" yaml:"model_weights" validate:"required,min=1,dive,keys,oneof=dcf fcfe ddm,endkeys,gte=0"`
}

// DefaultAssumptions returns the provider defaults applied to omitted inputs.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RevenueGrowth:        0.08,
		TerminalGrowth:       0.03,
		WACC:                 0.10,
		RequiredReturnEquity: 0.12,
		TaxRate:              0.20,
		ProjectionYears:      5,
		DividendPayoutRatio:  0.30,
		ModelWeights: map[string]float64{
			ModelDCF:  0.5,
			ModelFCFE: 0.5,
		},
	}
}

// ModelDetail breaks a single model's per-share value into its components.
type ModelDetail struct {
	ValuePerShare         float64 `json:"value_per_share"`
	EnterpriseValue       float64 `json:"enterprise_value,omitempty"`
	EquityValue           float64 `json:"equity_value"`
	PresentValueCashFlows float64 `json:"present_value_cash_flows"`
	TerminalValue         float64 `json:"terminal_value"`
	PresentValueTerminal  float64 `json:"present_value_terminal"`
}

// Recommendation is the buy/hold/sell call derived from upside to market price.
type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationHold Recommendation = "HOLD"
	RecommendationSell Recommendation = "SELL"
)

// ValuationResult maps each model to its per-share estimate plus the weighted blend.
type ValuationResult struct {
	ValuationID     string                 `json:"valuation_id,omitempty"`
	Symbol          string                 `json:"symbol"`
	Models          map[string]float64     `json:"models"`
	WeightedAverage float64                `json:"weighted_average"`
	Details         map[string]ModelDetail `json:"details"`
	CurrentPrice    *float64               `json:"current_price,omitempty"`
	UpsidePct       *float64               `json:"upside_pct,omitempty"`
	Recommendation  Recommendation         `json:"recommendation,omitempty"`
	Confidence      *float64               `json:"confidence,omitempty"`
	Assumptions     Assumptions            `json:"assumptions"`
}
