package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guregu/null/v6"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/trace"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

// retrievalStrategy is one tier of snapshot retrieval. A tier either returns
// a snapshot with usable financial data or an error explaining why not.
type retrievalStrategy struct {
	name     string
	retrieve func(ctx context.Context, symbol string, period model.Period) (model.Snapshot, error)
}

// StockService is the data normalizer. It turns the provider's loosely named
// records into one canonical snapshot per symbol and reporting period.
type StockService struct {
	client       vci.Client
	priceSources []vci.PriceBoarder
	universe     *SymbolUniverse
	logger       *zap.Logger
	strategies   []retrievalStrategy
}

// NewStockService creates a StockService. The client is always the first
// trading source; any extra sources are tried in order when it has no price.
func NewStockService(
	client vci.Client,
	universe *SymbolUniverse,
	logger *zap.Logger,
	secondary ...vci.PriceBoarder,
) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StockService{
		client:       client,
		priceSources: append([]vci.PriceBoarder{client}, secondary...),
		universe:     universe,
		logger:       logger,
	}
	s.strategies = []retrievalStrategy{
		{name: "ratio_summary", retrieve: s.retrieveFromRatioSummary},
		{name: "statements", retrieve: s.retrieveFromStatements},
	}
	return s
}

// ValidateSymbol reports whether symbol belongs to the known universe.
// It always returns true when the universe could not be loaded.
func (s *StockService) ValidateSymbol(ctx context.Context, symbol string) bool {
	if s.universe == nil {
		return true
	}
	return s.universe.Contains(ctx, symbol)
}

// FetchSnapshot retrieves and normalizes the snapshot for symbol.
//
// Retrieval tiers are tried in order and the first one producing financial
// data wins:
//  1. the consolidated ratio summary, enriched with a live market price
//  2. company listing/overview, financial statements and price, fetched
//     independently and merged
//
// Parameters:
//   - ctx: Request context; cancellation aborts in-flight provider calls
//   - symbol: Ticker in any case, surrounding whitespace ignored
//   - period: Annual or quarterly; quarterly statement flows are multiplied by four
//
// Returns:
//   - model.Snapshot: Normalized snapshot with missing figures left null
//   - error: *apperrors.ValidationError when the symbol is not in the loaded
//     universe, *apperrors.AggregationError when every tier failed
func (s *StockService) FetchSnapshot(ctx context.Context, symbol string, period model.Period) (model.Snapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !s.ValidateSymbol(ctx, symbol) {
		return model.Snapshot{}, &apperrors.ValidationError{Symbol: symbol}
	}

	var causes []error
	for _, strategy := range s.strategies {
		snap, err := s.runStrategy(ctx, strategy, symbol, period)
		if err == nil {
			s.logger.Info("retrieved snapshot",
				zap.String("symbol", symbol),
				zap.String("tier", strategy.name),
				zap.String("period", string(period)),
			)
			return snap, nil
		}
		s.logger.Warn("retrieval tier failed",
			zap.String("symbol", symbol),
			zap.String("tier", strategy.name),
			zap.Error(err),
		)
		causes = append(causes, fmt.Errorf("%s: %w", strategy.name, err))
	}

	s.logger.Error("all retrieval tiers failed", zap.String("symbol", symbol), zap.Errors("causes", causes))
	return model.Snapshot{}, &apperrors.AggregationError{Symbol: symbol, Causes: causes}
}

func (s *StockService) runStrategy(ctx context.Context, strategy retrievalStrategy, symbol string, period model.Period) (snap model.Snapshot, err error) {
	ctx, span := trace.StartSpan(ctx, "retrieve."+strategy.name, symbol)
	defer func() { trace.End(span, err) }()

	return strategy.retrieve(ctx, symbol, period)
}

// retrieveFromRatioSummary is the primary tier.
func (s *StockService) retrieveFromRatioSummary(ctx context.Context, symbol string, period model.Period) (model.Snapshot, error) {
	rec, err := s.client.RatioSummary(ctx, symbol)
	if err != nil {
		return model.Snapshot{}, err
	}
	if len(rec) == 0 {
		return model.Snapshot{}, apperrors.ErrEmptyResponse
	}

	snap := model.NewSnapshot(symbol, period)
	applyRatioSummary(&snap, rec)
	reconcileRatios(&snap, LookupFloat(rec, []string{"ae"}))
	if !snap.HasFinancials() {
		return model.Snapshot{}, apperrors.ErrNoStockData
	}

	snap.CurrentPrice = s.ResolvePrice(ctx, symbol)
	applyMarket(&snap)
	snap.Success = true
	return snap, nil
}

// retrieveFromStatements is the fallback tier. Company, statements, price and
// ratio sub-fetches run concurrently; each one that fails leaves its fields
// missing instead of failing the tier.
func (s *StockService) retrieveFromStatements(ctx context.Context, symbol string, period model.Period) (model.Snapshot, error) {
	snap := model.NewSnapshot(symbol, period)

	var (
		g        errgroup.Group
		st       vci.Statements
		stErr    error
		price    null.Float
		ratios   vci.Record
		ratioErr error
	)
	g.Go(func() error {
		s.applyCompany(ctx, &snap)
		return nil
	})
	g.Go(func() error {
		st, stErr = s.fetchStatements(ctx, symbol, period)
		return nil
	})
	g.Go(func() error {
		price = s.ResolvePrice(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		ratios, ratioErr = s.client.RatioSummary(ctx, symbol)
		return nil
	})
	_ = g.Wait()

	if stErr != nil {
		s.logger.Warn("financial statements failed", zap.String("symbol", symbol), zap.Error(stErr))
	} else {
		applyStatements(&snap, st)
	}

	snap.CurrentPrice = price

	if ratioErr != nil {
		s.logger.Debug("ratio summary failed", zap.String("symbol", symbol), zap.Error(ratioErr))
	} else {
		snap.EPS = LookupFloat(ratios, epsFields)
		snap.BVPS = LookupFloat(ratios, bookValueFields)
	}

	reconcileRatios(&snap, null.Float{})
	if !snap.HasFinancials() {
		return model.Snapshot{}, apperrors.ErrNoStockData
	}

	applyMarket(&snap)
	snap.Success = true
	return snap, nil
}

// applyCompany resolves name, exchange, sector and shares outstanding from the
// listing tables, then fills what is still unresolved from the company overview.
func (s *StockService) applyCompany(ctx context.Context, snap *model.Snapshot) {
	symbol := snap.Symbol

	listing, err := s.client.ExchangeListing(ctx, symbol)
	if err != nil {
		s.logger.Debug("exchange listing failed", zap.String("symbol", symbol), zap.Error(err))
	} else {
		snap.Name = LookupString(listing, listingNameFields, symbol)
		snap.Exchange = LookupString(listing, exchangeFields, model.DefaultExchange)
		snap.SharesOutstanding = LookupPositive(listing, listingShareFields)
	}

	industry, err := s.client.IndustryListing(ctx, symbol)
	if err != nil {
		s.logger.Debug("industry listing failed", zap.String("symbol", symbol), zap.Error(err))
	} else {
		snap.Sector = LookupString(industry, sectorFields, model.DefaultSector)
	}

	if snap.SharesOutstanding.Valid && snap.Name != symbol {
		return
	}

	overview, err := s.client.CompanyOverview(ctx, symbol)
	if err != nil {
		s.logger.Debug("company overview failed", zap.String("symbol", symbol), zap.Error(err))
		return
	}
	if !snap.SharesOutstanding.Valid {
		snap.SharesOutstanding = LookupPositive(overview, overviewShareFields)
	}
	if snap.Name == symbol {
		snap.Name = LookupString(overview, overviewNameFields, symbol)
	}
}
