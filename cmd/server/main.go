package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/api"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/config"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/logging"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/service"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/trace"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/validation"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/vci"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals
	zap.ReplaceGlobals(logger)

	if err := validation.ValidateAssumptions(cfg.Assumptions); err != nil {
		logger.Fatal("invalid default assumptions", zap.Error(err))
	}

	if cfg.Logging.TracingEnabled {
		shutdownTracer, err := trace.Init(os.Stdout, version)
		if err != nil {
			logger.Fatal("failed to start tracer", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				logger.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	// Create provider clients
	clientOpts := []vci.ClientOption{
		vci.WithTimeout(cfg.VCI.Timeout),
		vci.WithRateLimit(cfg.VCI.RateLimit),
		vci.WithLogger(logger.Named("vci")),
	}
	client := vci.NewHTTPClient(cfg.VCI.BaseURL, clientOpts...)

	var secondary []vci.PriceBoarder
	if cfg.VCI.SecondaryBaseURL != "" {
		secondary = append(secondary, vci.NewHTTPClient(cfg.VCI.SecondaryBaseURL, clientOpts...))
		logger.Info("secondary trading source enabled", zap.String("base_url", cfg.VCI.SecondaryBaseURL))
	}

	// Create services
	universe := service.NewSymbolUniverse(client, logger.Named("universe"))
	stockService := service.NewStockService(client, universe, logger.Named("stock"), secondary...)
	valuationService := service.NewValuationService(stockService, cfg.Assumptions, logger.Named("valuation"))

	router := api.NewRouter(stockService, valuationService, cfg, logger.Named("http"))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("version", version),
			zap.String("vci_base_url", cfg.VCI.BaseURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited")
}
