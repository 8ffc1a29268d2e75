// Package vci is the client for the upstream Vietnamese market-data provider.
// It speaks to a JSON gateway in front of the provider and returns loosely
// typed records; reconciling their field names is the normalizer's job.
package vci

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/trace"
)

const (
	// DefaultTimeout bounds every provider call.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5
)

// PriceBoarder returns real-time trading snapshots.
// Both the primary and the secondary trading source implement it.
type PriceBoarder interface {
	PriceBoard(ctx context.Context, symbols []string) (Board, error)
}

// Client is the contract the normalizer consumes. Every method may fail
// independently of the others.
type Client interface {
	PriceBoarder
	ListSymbols(ctx context.Context) ([]string, error)
	CompanyOverview(ctx context.Context, symbol string) (Record, error)
	ExchangeListing(ctx context.Context, symbol string) (Record, error)
	IndustryListing(ctx context.Context, symbol string) (Record, error)
	FinancialStatements(ctx context.Context, symbol string, period model.Period, lang Language) (Statements, error)
	RatioSummary(ctx context.Context, symbol string) (Record, error)
}

// HTTPClient implements Client against the provider gateway.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// ClientOption configures the HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets a custom rate limit in requests per second.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *HTTPClient) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets a logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient creates a provider client for the given gateway base URL.
//
// Defaults to a 15 second timeout, 5 requests per second and a no-op logger;
// any option overrides them.
//
// Parameters:
//   - baseURL: Gateway root; a trailing slash is ignored
//   - opts: Optional timeout, rate limit, HTTP client and logger settings
//
// Returns:
//   - *HTTPClient: Client ready for concurrent use
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError represents a non-200 answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vci API error: %s (status %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

func (e *APIError) Unwrap() error {
	return apperrors.ErrProviderUnavailable
}

// ListSymbols returns the upper-cased ticker universe.
func (c *HTTPClient) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := c.rows(ctx, "/listing/symbols", nil, "")
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(rows))
	for _, row := range rows {
		if s, ok := row["symbol"].(string); ok && s != "" {
			symbols = append(symbols, strings.ToUpper(s))
		}
	}
	if len(symbols) == 0 {
		return nil, apperrors.ErrEmptyResponse
	}
	return symbols, nil
}

// CompanyOverview returns the first row of the company overview.
func (c *HTTPClient) CompanyOverview(ctx context.Context, symbol string) (Record, error) {
	return c.first(ctx, "/company/"+url.PathEscape(symbol)+"/overview", nil, symbol)
}

// ExchangeListing returns the symbol's row of the listing-by-exchange table.
func (c *HTTPClient) ExchangeListing(ctx context.Context, symbol string) (Record, error) {
	return c.listingRow(ctx, "/listing/symbols-by-exchange", symbol)
}

// IndustryListing returns the symbol's row of the listing-by-industry table.
func (c *HTTPClient) IndustryListing(ctx context.Context, symbol string) (Record, error) {
	return c.listingRow(ctx, "/listing/symbols-by-industries", symbol)
}

// RatioSummary returns the most recent consolidated ratio record.
func (c *HTTPClient) RatioSummary(ctx context.Context, symbol string) (Record, error) {
	return c.first(ctx, "/company/"+url.PathEscape(symbol)+"/ratio-summary", nil, symbol)
}

// FinancialStatements fetches income statement, balance sheet and cash flow.
// A failure of any single statement fails the whole call.
//
// Parameters:
//   - symbol: Ticker, e.g. "VNM"
//   - period: Annual or quarterly reporting period
//   - lang: Label language of the returned rows
//
// Returns:
//   - Statements: Rows per statement, most recent first
//   - error: *APIError for a non-200 answer, or a transport or decode failure
func (c *HTTPClient) FinancialStatements(ctx context.Context, symbol string, period model.Period, lang Language) (Statements, error) {
	params := url.Values{}
	params.Set("period", statementPeriod(period))
	params.Set("lang", string(lang))
	params.Set("dropna", "true")

	base := "/finance/" + url.PathEscape(symbol) + "/"
	income, err := c.rows(ctx, base+statementIncome, params, symbol)
	if err != nil {
		return Statements{}, err
	}
	balance, err := c.rows(ctx, base+statementBalance, params, symbol)
	if err != nil {
		return Statements{}, err
	}
	cashFlow, err := c.rows(ctx, base+statementCashFlow, params, symbol)
	if err != nil {
		return Statements{}, err
	}
	return Statements{Income: income, Balance: balance, CashFlow: cashFlow}, nil
}

// PriceBoard returns the trading snapshot of the first requested symbol.
// The gateway answers with nested objects per category; they are flattened
// into (category, field) keys.
func (c *HTTPClient) PriceBoard(ctx context.Context, symbols []string) (Board, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))

	symbol := ""
	if len(symbols) > 0 {
		symbol = symbols[0]
	}
	body, err := c.get(ctx, "/trading/price-board", params, symbol)
	if err != nil {
		return nil, err
	}
	return ParseBoard(body)
}

// ParseBoard flattens the first element of a price-board JSON array.
func ParseBoard(body []byte) (Board, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to decode price board: invalid JSON")
	}
	first := gjson.GetBytes(body, "0")
	if !first.Exists() || !first.IsObject() {
		return nil, apperrors.ErrEmptyResponse
	}

	board := make(Board)
	first.ForEach(func(category, fields gjson.Result) bool {
		if !fields.IsObject() {
			return true
		}
		fields.ForEach(func(field, value gjson.Result) bool {
			board[BoardKey{Category: category.String(), Field: field.String()}] = value.Value()
			return true
		})
		return true
	})
	if len(board) == 0 {
		return nil, apperrors.ErrEmptyResponse
	}
	return board, nil
}

func (c *HTTPClient) listingRow(ctx context.Context, path, symbol string) (Record, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	rows, err := c.rows(ctx, path, params, symbol)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if s, ok := row["symbol"].(string); ok && strings.EqualFold(s, symbol) {
			return row, nil
		}
	}
	return nil, apperrors.ErrEmptyResponse
}

func (c *HTTPClient) first(ctx context.Context, path string, params url.Values, symbol string) (Record, error) {
	rows, err := c.rows(ctx, path, params, symbol)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyResponse
	}
	return rows[0], nil
}

func (c *HTTPClient) rows(ctx context.Context, path string, params url.Values, symbol string) ([]Record, error) {
	body, err := c.get(ctx, path, params, symbol)
	if err != nil {
		return nil, err
	}
	var rows []Record
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return rows, nil
}

// get performs a rate-limited GET request and returns the raw body.
func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, symbol string) (body []byte, err error) {
	ctx, span := trace.StartSpan(ctx, "vci.get "+path, symbol)
	defer func() { trace.End(span, err) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("vci request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}
	return body, nil
}

func statementPeriod(p model.Period) string {
	if p.IsQuarterly() {
		return "quarter"
	}
	return "year"
}
