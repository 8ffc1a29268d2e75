package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrSymbolNotFound indicates that a ticker is not part of the known symbol universe.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrAllSourcesFailed indicates that every retrieval tier was exhausted without usable data.
	ErrAllSourcesFailed = errors.New("all sources failed")

	// ErrNoStockData indicates that a valuation was requested without a snapshot.
	ErrNoStockData = errors.New("no stock data available")
)

// Request validation errors represent malformed input from the caller.
var (
	ErrInvalidSymbol      = errors.New("symbol must be 1 to 10 letters or digits")
	ErrInvalidPeriod      = errors.New("period must be annual or quarterly")
	ErrInvalidAssumptions = errors.New("invalid valuation assumptions")
)

// Upstream provider errors represent failures talking to the market-data provider.
// They never reach the caller directly; the normalizer turns them into missing data.
var (
	ErrProviderUnavailable = errors.New("data provider unavailable")
	ErrEmptyResponse       = errors.New("data provider returned no data")
)

// ErrFailedToValuate wraps an unexpected valuation engine failure.
var ErrFailedToValuate = errors.New("failed to compute valuation")

// ValidationError is returned when a symbol is rejected by the loaded symbol universe.
type ValidationError struct {
	Symbol string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("symbol %s is not valid", e.Symbol)
}

func (e *ValidationError) Unwrap() error {
	return ErrSymbolNotFound
}

// AggregationError is returned when no retrieval tier produced financial data.
// Causes holds the per-tier failures in the order they were attempted.
type AggregationError struct {
	Symbol string
	Causes []error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s for %s", ErrAllSourcesFailed.Error(), e.Symbol)
}

func (e *AggregationError) Unwrap() error {
	return ErrAllSourcesFailed
}
