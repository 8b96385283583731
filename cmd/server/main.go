package main

import (
	"fmt"
	"log"
	"net/http"

	"takeprofit/internal/config"
	"takeprofit/internal/handlers"
	"takeprofit/internal/logger"
	"takeprofit/internal/providers"
	"takeprofit/internal/providers/static"
	"takeprofit/internal/providers/yahoo"
	"takeprofit/internal/treasury"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("🚀 Take-Profit Analyzer starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - Detailed provider calls and simulation runs will be logged to %s\n", cfg.Logging.LogFile)
	}

	// Select the market data provider from configuration
	var provider providers.MarketProvider
	switch cfg.Market.Provider {
	case "yahoo":
		provider = yahoo.NewYahooProvider(cfg.Market.DefaultDividendYield, cfg.Market.DefaultImpliedVol)
		logger.Always.Printf("📡 MARKET DATA: yahoo")
	case "static":
		provider = static.NewStaticProvider(
			cfg.Market.Static.Spot,
			cfg.Market.Static.DividendYield,
			cfg.Market.Static.ImpliedVolatility,
		)
		logger.Always.Printf("📡 MARKET DATA: static (spot=%.2f)", cfg.Market.Static.Spot)
	default:
		log.Fatalf("Unknown market provider %q (supported: yahoo, static)", cfg.Market.Provider)
	}

	manager := providers.NewProviderManager(provider)
	defer manager.Close()

	// Treasury client caches the risk-free rate with a fallback
	treasuryClient := treasury.NewClient(cfg.Treasury.FallbackRate)
	logger.Info.Printf("🏦 Treasury client created - fallback rate %.3f", cfg.Treasury.FallbackRate)

	logger.Always.Printf("🎲 SIMULATION DEFAULTS: paths=%d steps=%d workers=%d seed=%d",
		cfg.Simulation.PathCount, cfg.Simulation.TimeSteps, cfg.Simulation.Workers, cfg.Simulation.Seed)

	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(cfg, manager, treasuryClient)

	// Setup router
	r := mux.NewRouter()

	r.HandleFunc("/api/analyze", analysisHandler.AnalyzeHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/autofill", analysisHandler.AutofillHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/status", analysisHandler.StatusHandler).Methods("GET")

	// Start server
	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
