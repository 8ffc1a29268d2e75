package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/valuation"
)

// ValuationService runs the valuation models against freshly fetched snapshots.
type ValuationService struct {
	stockService *StockService
	defaults     model.Assumptions
	logger       *zap.Logger
}

// NewValuationService creates a ValuationService. defaults seed every request
// before the caller's overrides are applied.
func NewValuationService(stockService *StockService, defaults model.Assumptions, logger *zap.Logger) *ValuationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValuationService{
		stockService: stockService,
		defaults:     defaults,
		logger:       logger,
	}
}

// Defaults returns a copy of the default assumptions.
func (s *ValuationService) Defaults() model.Assumptions {
	a := s.defaults
	a.ModelWeights = make(map[string]float64, len(s.defaults.ModelWeights))
	for name, w := range s.defaults.ModelWeights {
		a.ModelWeights[name] = w
	}
	return a
}

// Valuate fetches the snapshot for symbol and values it under a.
// Snapshot retrieval errors are returned unchanged so callers can tell
// validation failures from aggregation failures.
func (s *ValuationService) Valuate(ctx context.Context, symbol string, period model.Period, a model.Assumptions) (model.ValuationResult, error) {
	snap, err := s.stockService.FetchSnapshot(ctx, symbol, period)
	if err != nil {
		return model.ValuationResult{}, err
	}

	result, err := valuation.CalculateAll(&snap, a)
	if err != nil {
		return model.ValuationResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToValuate, err)
	}
	result.ValuationID = uuid.New().String()

	s.logger.Info("valuation computed",
		zap.String("valuation_id", result.ValuationID),
		zap.String("symbol", result.Symbol),
		zap.Float64("weighted_average", result.WeightedAverage),
		zap.Any("models", result.Models),
	)
	return result, nil
}
