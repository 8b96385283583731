package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"takeprofit/internal/config"
	"takeprofit/internal/dto"
	"takeprofit/internal/logger"
	"takeprofit/internal/services"
	takeprofit "takeprofit/takeprofit_lib"
)

// Command-line analyzer for a single option contract. Prints the same
// summary block the API returns, without needing a running server.
func main() {
	cfg := config.Load()

	spot := flag.Float64("spot", 0, "current underlying price")
	strike := flag.Float64("strike", 0, "option strike price")
	rate := flag.Float64("rate", cfg.Treasury.FallbackRate, "annualized risk-free rate (decimal)")
	dividend := flag.Float64("dividend", 0, "annualized dividend yield (decimal)")
	vol := flag.Float64("vol", 0, "annualized implied volatility (decimal)")
	expiry := flag.String("expiry", "", "expiration date YYYY-MM-DD (or use -years)")
	years := flag.Float64("years", 0, "time to expiration in years (alternative to -expiry)")
	bid := flag.Float64("bid", 0, "quoted bid premium")
	ask := flag.Float64("ask", 0, "quoted ask premium")
	multiple := flag.Float64("multiple", 2.0, "take-profit multiple of the midpoint premium")
	paths := flag.Int("paths", cfg.Simulation.PathCount, "Monte Carlo paths")
	steps := flag.Int("steps", cfg.Simulation.TimeSteps, "time steps per path")
	workers := flag.Int("workers", cfg.Simulation.Workers, "simulation workers (0 = one per CPU)")
	seed := flag.Uint64("seed", cfg.Simulation.Seed, "base RNG seed")
	flag.Parse()

	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	horizon := *years
	if *expiry != "" {
		t, err := services.YearsToExpiration(*expiry, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		horizon = t
	}

	params := &takeprofit.ParameterSet{
		Spot:               *spot,
		Strike:             *strike,
		RiskFreeRate:       *rate,
		DividendYield:      *dividend,
		ImpliedVolatility:  *vol,
		TimeToExpiration:   horizon,
		Bid:                *bid,
		Ask:                *ask,
		TakeProfitMultiple: *multiple,
		PathCount:          *paths,
		TimeStepsPerPath:   *steps,
	}

	engine := takeprofit.NewEngine(*seed, *workers)
	report, err := engine.RunAnalysis(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📊 Take-Profit Analysis")
	fmt.Println("=======================")
	for _, line := range dto.BuildSummary(report, *bid, *ask) {
		fmt.Println(line)
	}
}
