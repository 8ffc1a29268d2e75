package service

import (
	"context"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

// GetAppData fetches the snapshot for symbol and enriches it for the front end.
func (s *StockService) GetAppData(ctx context.Context, symbol string, period model.Period) (model.AppData, error) {
	snap, err := s.FetchSnapshot(ctx, symbol, period)
	if err != nil {
		return model.AppData{}, err
	}
	return BuildAppData(snap), nil
}

// BuildAppData derives per-share metrics and data-quality flags from snap.
//
// Earnings and book value per share prefer the statement identities
// (net income / shares, equity / shares) and fall back to the provider's
// EPS and BVPS. ROE, ROA, debt-to-equity, PE and PB are only computed when
// the snapshot does not already carry them.
//
// Parameters:
//   - snap: Snapshot returned by FetchSnapshot
//
// Returns:
//   - model.AppData: The snapshot plus derived per-share figures and quality flags
func BuildAppData(snap model.Snapshot) model.AppData {
	data := model.AppData{Snapshot: snap}

	equity := model.Sub(snap.TotalAssets, snap.TotalDebt)

	data.EarningsPerShare = model.Coalesce(
		model.DivPositive(snap.NetIncomeTTM, snap.SharesOutstanding),
		snap.EPS,
	)
	data.BookValuePerShare = model.Coalesce(
		model.DivPositive(equity, snap.SharesOutstanding),
		snap.BVPS,
	)

	if !data.ROE.Valid {
		data.ROE = model.Scale(model.Div(snap.NetIncomeTTM, equity), 100)
	}
	if !data.ROA.Valid {
		data.ROA = model.Scale(model.Div(snap.NetIncomeTTM, snap.TotalAssets), 100)
	}
	if !data.DebtToEquity.Valid {
		data.DebtToEquity = model.Div(snap.TotalDebt, equity)
	}
	if !data.PERatio.Valid {
		data.PERatio = model.DivPositive(snap.CurrentPrice, data.EarningsPerShare)
	}
	if !data.PBRatio.Valid {
		data.PBRatio = model.DivPositive(snap.CurrentPrice, data.BookValuePerShare)
	}

	data.DataQuality = model.DataQuality{
		HasRealPrice:  snap.CurrentPrice.Valid,
		HasFinancials: snap.NetIncomeTTM.Valid,
		PEReliable:    data.PERatio.Valid,
		PBReliable:    data.PBRatio.Valid,
		VCIData:       snap.DataSource == model.DataSourceVCI,
	}
	return data
}
