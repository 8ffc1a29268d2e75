package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Stock-Valuation-Backend/internal/api/middleware"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/config"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	stockService *service.StockService,
	valuationService *service.ValuationService,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler()
	r.Get("/health", systemHandler.Health)

	stockHandler := handlers.NewStockHandler(stockService)
	valuationHandler := handlers.NewValuationHandler(valuationService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/stock/{symbol}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateSymbolMiddleware)
			r.Get("/", stockHandler.Stock)
		})

		r.Route("/app-data/{symbol}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateSymbolMiddleware)
			r.Get("/", stockHandler.AppData)
		})

		r.Route("/valuation/{symbol}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateSymbolMiddleware)
			r.Post("/", valuationHandler.Valuate)
		})
	})

	return r
}
