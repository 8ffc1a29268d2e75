package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

// MockVCIClient is a mock implementation of vci.Client for testing.
// Every provider call returns its configured record or error, so each
// retrieval tier and sub-fetch can be failed independently.
type MockVCIClient struct {
	Symbols      []string
	SymbolsError error

	Overview      vci.Record
	OverviewError error

	Exchange      vci.Record
	ExchangeError error

	Industry      vci.Record
	IndustryError error

	// Statements are keyed by language so the vi → en retry can be exercised.
	Statements      map[vci.Language]vci.Statements
	StatementsError error

	Ratios      vci.Record
	RatiosError error

	Board      vci.Board
	BoardError error

	mu    sync.Mutex
	calls map[string]int
}

// NewMockVCIClient creates a mock whose every call fails with ErrEmptyResponse
// until configured.
func NewMockVCIClient() *MockVCIClient {
	return &MockVCIClient{
		Statements: map[vci.Language]vci.Statements{},
		calls:      map[string]int{},
	}
}

// Calls returns how many times the named method was invoked.
func (m *MockVCIClient) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockVCIClient) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[method]++
}

// ListSymbols returns the configured symbol universe.
func (m *MockVCIClient) ListSymbols(_ context.Context) ([]string, error) {
	m.record("ListSymbols")
	if m.SymbolsError != nil {
		return nil, m.SymbolsError
	}
	return m.Symbols, nil
}

// CompanyOverview returns the configured overview row.
func (m *MockVCIClient) CompanyOverview(_ context.Context, _ string) (vci.Record, error) {
	m.record("CompanyOverview")
	return recordOrError(m.Overview, m.OverviewError)
}

// ExchangeListing returns the configured exchange listing row.
func (m *MockVCIClient) ExchangeListing(_ context.Context, _ string) (vci.Record, error) {
	m.record("ExchangeListing")
	return recordOrError(m.Exchange, m.ExchangeError)
}

// IndustryListing returns the configured industry listing row.
func (m *MockVCIClient) IndustryListing(_ context.Context, _ string) (vci.Record, error) {
	m.record("IndustryListing")
	return recordOrError(m.Industry, m.IndustryError)
}

// FinancialStatements returns the statements configured for lang.
// An unconfigured language yields empty statements.
func (m *MockVCIClient) FinancialStatements(_ context.Context, _ string, _ model.Period, lang vci.Language) (vci.Statements, error) {
	m.record("FinancialStatements:" + string(lang))
	if m.StatementsError != nil {
		return vci.Statements{}, m.StatementsError
	}
	return m.Statements[lang], nil
}

// RatioSummary returns the configured ratio summary.
func (m *MockVCIClient) RatioSummary(_ context.Context, _ string) (vci.Record, error) {
	m.record("RatioSummary")
	return recordOrError(m.Ratios, m.RatiosError)
}

// PriceBoard returns the configured trading board.
func (m *MockVCIClient) PriceBoard(_ context.Context, _ []string) (vci.Board, error) {
	m.record("PriceBoard")
	if m.BoardError != nil {
		return nil, m.BoardError
	}
	if m.Board == nil {
		return nil, apperrors.ErrEmptyResponse
	}
	return m.Board, nil
}

// WithSymbols configures the symbol universe.
func (m *MockVCIClient) WithSymbols(symbols ...string) *MockVCIClient {
	m.Symbols = symbols
	return m
}

// WithRatios configures the ratio summary record.
func (m *MockVCIClient) WithRatios(rec vci.Record) *MockVCIClient {
	m.Ratios = rec
	return m
}

// WithStatements configures the statements returned for lang.
func (m *MockVCIClient) WithStatements(lang vci.Language, st vci.Statements) *MockVCIClient {
	if m.Statements == nil {
		m.Statements = map[vci.Language]vci.Statements{}
	}
	m.Statements[lang] = st
	return m
}

// WithBoard configures the trading board.
func (m *MockVCIClient) WithBoard(board vci.Board) *MockVCIClient {
	m.Board = board
	return m
}

// WithExchange configures the exchange listing row.
func (m *MockVCIClient) WithExchange(rec vci.Record) *MockVCIClient {
	m.Exchange = rec
	return m
}

// WithIndustry configures the industry listing row.
func (m *MockVCIClient) WithIndustry(rec vci.Record) *MockVCIClient {
	m.Industry = rec
	return m
}

// WithOverview configures the company overview row.
func (m *MockVCIClient) WithOverview(rec vci.Record) *MockVCIClient {
	m.Overview = rec
	return m
}

// MockPriceBoard is a stand-alone trading source, used as the secondary
// source in tests.
type MockPriceBoard struct {
	Board      vci.Board
	Error      error
	QueryCount int
}

// PriceBoard returns the configured board or error.
func (m *MockPriceBoard) PriceBoard(_ context.Context, _ []string) (vci.Board, error) {
	m.QueryCount++
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Board, nil
}

func recordOrError(rec vci.Record, err error) (vci.Record, error) {
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.ErrEmptyResponse
	}
	return rec, nil
}
