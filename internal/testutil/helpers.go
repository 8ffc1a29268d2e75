package testutil

import (
	"math/rand"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/service"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

// NewTestStockService wires a StockService around client with a test logger.
// Any secondary sources are tried for price after the client.
func NewTestStockService(t *testing.T, client vci.Client, secondary ...vci.PriceBoarder) *service.StockService {
	t.Helper()

	logger := zaptest.NewLogger(t)
	universe := service.NewSymbolUniverse(client, logger)
	return service.NewStockService(client, universe, logger, secondary...)
}

// NewTestValuationService wires a ValuationService with the built-in default assumptions.
func NewTestValuationService(t *testing.T, client vci.Client) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(
		NewTestStockService(t, client),
		model.DefaultAssumptions(),
		zaptest.NewLogger(t),
	)
}

// NewPrimaryMock returns a mock whose ratio summary and trading board succeed,
// so snapshots come from the primary tier.
func NewPrimaryMock(price float64) *MockVCIClient {
	return NewMockVCIClient().
		WithRatios(RatioSummaryRecord()).
		WithBoard(PriceBoard(price))
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("VN")
//	// Returns: "VN1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
