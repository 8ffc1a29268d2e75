package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/api"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/config"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/service"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/testutil"
)

// TestRouter tests the assembled routes end to end against a fake provider.
//
// WHY: Handler tests bypass chi routing and middleware. This checks that the
// symbol-format guard runs before the services and that every route is
// mounted at the path the front end calls.
func TestRouter(t *testing.T) {
	setup := func(t *testing.T) (http.Handler, *testutil.MockVCIClient) {
		t.Helper()
		client := testutil.NewPrimaryMock(61500)
		logger := zaptest.NewLogger(t)
		stockService := testutil.NewTestStockService(t, client)
		valuationService := service.NewValuationService(stockService, model.DefaultAssumptions(), logger)
		cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
		return api.NewRouter(stockService, valuationService, cfg, logger), client
	}

	t.Run("health", func(t *testing.T) {
		router, _ := setup(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","vnstock_available":true}`, w.Body.String())
	})

	t.Run("stock", func(t *testing.T) {
		router, _ := setup(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stock/VNM", nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var snap model.Snapshot
		require.NoError(t, json.NewDecoder(w.Body).Decode(&snap))
		assert.Equal(t, "VNM", snap.Symbol)
		assert.NotEmpty(t, w.Header().Get("Content-Type"))
	})

	t.Run("app data", func(t *testing.T) {
		router, _ := setup(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/app-data/VNM?period=quarterly", nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("valuation", func(t *testing.T) {
		router, _ := setup(t)

		req := httptest.NewRequest(http.MethodPost, "/api/valuation/VNM", strings.NewReader(`{"wacc":0.11}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var result model.ValuationResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.InDelta(t, 0.11, result.Assumptions.WACC, 0)
	})

	t.Run("malformed symbol is rejected before the provider", func(t *testing.T) {
		router, client := setup(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stock/TOOLONGSYMBOL", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, client.Calls("ListSymbols"))
		assert.Zero(t, client.Calls("RatioSummary"))
	})

	t.Run("valuation requires POST", func(t *testing.T) {
		router, _ := setup(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/valuation/VNM", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("cors preflight from allowed origin", func(t *testing.T) {
		router, _ := setup(t)

		req := httptest.NewRequest(http.MethodOptions, "/api/valuation/VNM", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
