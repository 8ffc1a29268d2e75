package service

import (
	"context"

	"github.com/guregu/null/v6"
	"go.uber.org/zap"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

// quarterlyMultiplier annualizes a single quarter. This is not a true
// trailing sum of four quarters.
const quarterlyMultiplier = 4

// percentFields are ratio-summary fractions reported as percentages.
var percentFields = map[string]func(*model.Snapshot) *null.Float{
	"revenue_growth":    func(s *model.Snapshot) *null.Float { return &s.RevenueGrowth },
	"net_profit_margin": func(s *model.Snapshot) *null.Float { return &s.NetProfitMargin },
	"gross_margin":      func(s *model.Snapshot) *null.Float { return &s.GrossMargin },
	"roe":               func(s *model.Snapshot) *null.Float { return &s.ROE },
	"roa":               func(s *model.Snapshot) *null.Float { return &s.ROA },
	"roic":              func(s *model.Snapshot) *null.Float { return &s.ROIC },
	"ebit_margin":       func(s *model.Snapshot) *null.Float { return &s.EBITMargin },
}

// plainFields are ratio-summary values copied as they are.
var plainFields = map[string]func(*model.Snapshot) *null.Float{
	"revenue":         func(s *model.Snapshot) *null.Float { return &s.RevenueTTM },
	"net_profit":      func(s *model.Snapshot) *null.Float { return &s.NetIncomeTTM },
	"ebitda":          func(s *model.Snapshot) *null.Float { return &s.EBITDA },
	"ebit":            func(s *model.Snapshot) *null.Float { return &s.EBIT },
	"pe":              func(s *model.Snapshot) *null.Float { return &s.PERatio },
	"pb":              func(s *model.Snapshot) *null.Float { return &s.PBRatio },
	"ps":              func(s *model.Snapshot) *null.Float { return &s.PSRatio },
	"pcf":             func(s *model.Snapshot) *null.Float { return &s.PCFRatio },
	"ev_per_ebitda":   func(s *model.Snapshot) *null.Float { return &s.EVEBITDA },
	"eps":             func(s *model.Snapshot) *null.Float { return &s.EPS },
	"eps_ttm":         func(s *model.Snapshot) *null.Float { return &s.EPSTTM },
	"bvps":            func(s *model.Snapshot) *null.Float { return &s.BVPS },
	"de":              func(s *model.Snapshot) *null.Float { return &s.DebtToEquity },
	"current_ratio":   func(s *model.Snapshot) *null.Float { return &s.CurrentRatio },
	"quick_ratio":     func(s *model.Snapshot) *null.Float { return &s.QuickRatio },
	"cash_ratio":      func(s *model.Snapshot) *null.Float { return &s.CashRatio },
	"ev":              func(s *model.Snapshot) *null.Float { return &s.EnterpriseValue },
	"charter_capital": func(s *model.Snapshot) *null.Float { return &s.CharterCapital },
	"dividend":        func(s *model.Snapshot) *null.Float { return &s.DividendPerShare },
	"year_report":     func(s *model.Snapshot) *null.Float { return &s.YearReport },
}

// applyRatioSummary maps the consolidated ratio record onto snap. Fields the
// record does not carry stay missing.
func applyRatioSummary(snap *model.Snapshot, rec vci.Record) {
	for key, field := range plainFields {
		*field(snap) = LookupFloat(rec, []string{key})
	}
	for key, field := range percentFields {
		*field(snap) = model.Scale(LookupFloat(rec, []string{key}), 100)
	}
	snap.SharesOutstanding = LookupPositive(rec, ratioShareFields)
}

// fetchStatements fetches statements in Vietnamese and retries in English when
// both the income statement and the balance sheet came back empty.
func (s *StockService) fetchStatements(ctx context.Context, symbol string, period model.Period) (vci.Statements, error) {
	st, err := s.client.FinancialStatements(ctx, symbol, period, vci.LanguageVietnamese)
	if err != nil {
		return vci.Statements{}, err
	}
	if !st.Empty() {
		return st, nil
	}
	s.logger.Debug("statements empty, retrying in english", zap.String("symbol", symbol))
	return s.client.FinancialStatements(ctx, symbol, period, vci.LanguageEnglish)
}

// applyStatements extracts the aggregates from the most recent row of each
// statement. Flow figures of a quarterly snapshot are multiplied by four;
// balance-sheet stocks are not.
func applyStatements(snap *model.Snapshot, st vci.Statements) {
	mult := 1.0
	if snap.DataPeriod.IsQuarterly() {
		mult = quarterlyMultiplier
	}
	income, balance, cashFlow := firstRow(st.Income), firstRow(st.Balance), firstRow(st.CashFlow)

	snap.RevenueTTM = model.Scale(LookupFloat(income, revenueFields), mult)
	snap.NetIncomeTTM = model.Scale(LookupFloat(income, netIncomeFields), mult)
	snap.EBIT = model.Scale(LookupFloat(income, ebitFields), mult)
	snap.EBITDA = model.Scale(LookupFloat(income, ebitdaFields), mult)

	snap.TotalAssets = LookupFloat(balance, totalAssetsFields)
	snap.TotalLiabilities = LookupFloat(balance, totalLiabilitiesFields)
	snap.TotalDebt = snap.TotalLiabilities
	snap.Cash = LookupFloat(balance, cashFields)

	snap.Depreciation = model.Scale(LookupFloat(cashFlow, depreciationFields), mult)
	snap.FCFE = model.Scale(LookupFloat(cashFlow, operatingCashFields), mult)
	snap.Capex = model.Scale(LookupFloat(cashFlow, capexFields), mult)
}

func firstRow(rows []vci.Record) vci.Record {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// reconcileRatios fills balance-sheet figures and ratios the provider left
// out from the identities that link them. A derivation runs only when all of
// its operands are present and its denominator is non-zero.
// assetsToEquity is the provider's assets/equity ratio, if any.
func reconcileRatios(snap *model.Snapshot, assetsToEquity null.Float) {
	equity := model.Sub(snap.TotalAssets, snap.TotalLiabilities)
	if !equity.Valid {
		equity = model.Mul(snap.SharesOutstanding, snap.BVPS)
	}

	if !snap.TotalAssets.Valid && assetsToEquity.Valid && assetsToEquity.Float64 > 0 {
		snap.TotalAssets = model.Mul(assetsToEquity, equity)
	}
	if !snap.TotalDebt.Valid {
		snap.TotalDebt = model.Mul(snap.DebtToEquity, equity)
	}
	if !snap.TotalLiabilities.Valid {
		snap.TotalLiabilities = snap.TotalDebt
	}

	if !snap.ROE.Valid {
		snap.ROE = model.Scale(model.Div(snap.NetIncomeTTM, equity), 100)
	}
	if !snap.ROA.Valid {
		snap.ROA = model.Scale(model.Div(snap.NetIncomeTTM, snap.TotalAssets), 100)
	}
	if !snap.DebtToEquity.Valid {
		snap.DebtToEquity = model.Div(snap.TotalLiabilities, equity)
	}
}

// applyMarket derives the market fields from the resolved price. Market cap
// needs price and shares; PE and PB need price and a strictly positive
// per-share denominator, otherwise they are cleared even if the provider
// supplied them.
func applyMarket(snap *model.Snapshot) {
	snap.UpdateMarketCap()

	eps := model.Coalesce(snap.EPS, snap.EPSTTM)
	snap.PERatio = marketRatio(snap.PERatio, snap.CurrentPrice, eps)
	snap.PBRatio = marketRatio(snap.PBRatio, snap.CurrentPrice, snap.BVPS)
}

func marketRatio(reported, price, perShare null.Float) null.Float {
	if !price.Valid || !perShare.Valid || perShare.Float64 <= 0 {
		return null.Float{}
	}
	if reported.Valid {
		return reported
	}
	return model.DivPositive(price, perShare)
}

// ResolvePrice returns the first present, positive price on the trading board,
// trying each trading source in turn. A missing price is not an error.
func (s *StockService) ResolvePrice(ctx context.Context, symbol string) null.Float {
	for i, source := range s.priceSources {
		board, err := source.PriceBoard(ctx, []string{symbol})
		if err != nil {
			s.logger.Debug("price board failed", zap.String("symbol", symbol), zap.Int("source", i), zap.Error(err))
			continue
		}
		if price := pickPrice(board); price.Valid {
			return price
		}
		s.logger.Debug("no usable price on board", zap.String("symbol", symbol), zap.Int("source", i))
	}
	s.logger.Warn("could not retrieve market price", zap.String("symbol", symbol))
	return null.Float{}
}

func pickPrice(board vci.Board) null.Float {
	for _, key := range priceFields {
		if price, ok := parseNumber(board[key]); ok && price.Float64 > 0 {
			return price
		}
	}
	return null.Float{}
}
