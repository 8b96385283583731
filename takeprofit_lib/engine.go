// Package takeprofit implements the quantitative core of the take-profit
// analyzer: a closed-form Black-Scholes pricer, a Monte Carlo first-crossing
// simulator under geometric Brownian motion, and the verdict classification
// that compares a market quote against fair value.
//
// The engine is stateless between runs: every analysis builds its inputs
// fresh, returns an immutable Report, and holds nothing back. Market data
// retrieval and display belong to the caller.
package takeprofit

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Sentinel errors for the two failure classes the engine can surface.
// Callers branch with errors.Is.
var (
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrInvalidMarketInputs = errors.New("invalid market inputs")
)

// ParameterSet is a validated snapshot of contract and market inputs for a
// single analysis run. Rates and volatility are decimals (0.045 = 4.5%),
// time to expiration is in years.
type ParameterSet struct {
	Spot               float64 // current underlying price
	Strike             float64
	RiskFreeRate       float64
	DividendYield      float64
	ImpliedVolatility  float64 // annualized
	TimeToExpiration   float64 // years, must be in the future
	Bid                float64
	Ask                float64
	TakeProfitMultiple float64 // target premium as a multiple of midpoint, > 1.0
	PathCount          int
	TimeStepsPerPath   int
}

// Validate checks every field against its required domain. It must pass
// before the ParameterSet reaches the pricer or the simulator; nothing is
// computed from an invalid set.
func (p *ParameterSet) Validate() error {
	if p.Spot <= 0 {
		return fmt.Errorf("%w: spot price must be positive, got %g", ErrInvalidParameter, p.Spot)
	}
	if p.Strike <= 0 {
		return fmt.Errorf("%w: strike price must be positive, got %g", ErrInvalidParameter, p.Strike)
	}
	if p.ImpliedVolatility <= 0 {
		return fmt.Errorf("%w: implied volatility must be positive, got %g", ErrInvalidParameter, p.ImpliedVolatility)
	}
	if p.TimeToExpiration <= 0 {
		return fmt.Errorf("%w: time to expiration must be positive, got %g", ErrInvalidParameter, p.TimeToExpiration)
	}
	// Guard the d1/d2 denominator explicitly: tiny but positive inputs can
	// still underflow sigma*sqrt(T) to zero.
	if p.ImpliedVolatility*math.Sqrt(p.TimeToExpiration) == 0 {
		return fmt.Errorf("%w: sigma*sqrt(T) underflows to zero", ErrInvalidParameter)
	}
	if p.Bid < 0 || p.Ask < 0 {
		return fmt.Errorf("%w: bid and ask must be non-negative, got bid=%g ask=%g", ErrInvalidParameter, p.Bid, p.Ask)
	}
	if p.TakeProfitMultiple <= 1.0 {
		return fmt.Errorf("%w: take-profit multiple must exceed 1.0, got %g", ErrInvalidParameter, p.TakeProfitMultiple)
	}
	if p.PathCount <= 0 {
		return fmt.Errorf("%w: path count must be positive, got %d", ErrInvalidParameter, p.PathCount)
	}
	if p.TimeStepsPerPath <= 0 {
		return fmt.Errorf("%w: time steps per path must be positive, got %d", ErrInvalidParameter, p.TimeStepsPerPath)
	}
	if p.Bid > p.Ask {
		return fmt.Errorf("%w: bid %g exceeds ask %g", ErrInvalidMarketInputs, p.Bid, p.Ask)
	}
	if p.Bid == 0 && p.Ask == 0 {
		return fmt.Errorf("%w: bid and ask are both zero, no midpoint exists", ErrInvalidMarketInputs)
	}
	return nil
}

// Midpoint returns the bid/ask midpoint quote.
func (p *ParameterSet) Midpoint() float64 {
	return (p.Bid + p.Ask) / 2
}

// BarrierPrice translates the take-profit premium target into an underlying
// price level through the call's payoff structure: the target premium
// midpoint*multiple is realized when intrinsic value S-K reaches it.
func (p *ParameterSet) BarrierPrice() float64 {
	return p.Strike + p.Midpoint()*p.TakeProfitMultiple
}

// PricingResult pairs the theoretical fair value with the market midpoint it
// is judged against.
type PricingResult struct {
	FairValue float64 `json:"fair_value"`
	Midpoint  float64 `json:"midpoint"`
}

// Report is the composed output of RunAnalysis. It is owned by the caller;
// the engine keeps no reference to it.
type Report struct {
	Pricing    PricingResult    `json:"pricing"`
	Verdict    Verdict          `json:"verdict"`
	Simulation SimulationResult `json:"simulation"`

	// Derived figures carried for display.
	Barrier        float64 `json:"barrier"`
	Difference     float64 `json:"difference"`      // midpoint - fair value
	DifferencePct  float64 `json:"difference_pct"`  // difference as % of fair value
	HorizonYears   float64 `json:"horizon_years"`   // time to expiration
	RuntimeSeconds float64 `json:"runtime_seconds"` // wall clock for the run
}

// Engine runs complete analyses. The zero value is not usable; construct with
// NewEngine.
type Engine struct {
	sim PathSimulator
}

// NewEngine creates an engine whose simulations derive from the given seed
// and fan out across the given number of workers. workers <= 0 lets the
// simulator pick a worker per CPU.
func NewEngine(seed uint64, workers int) *Engine {
	return &Engine{sim: PathSimulator{Seed: seed, Workers: workers}}
}

// Seed returns the seed simulations derive their substreams from.
func (e *Engine) Seed() uint64 { return e.sim.Seed }

// RunAnalysis validates params, prices the contract, classifies the market
// midpoint against fair value, simulates take-profit crossings, and bundles
// everything into a Report. A validation failure aborts the whole run; no
// partial report is ever produced.
func (e *Engine) RunAnalysis(params *ParameterSet) (*Report, error) {
	start := time.Now()

	if err := params.Validate(); err != nil {
		return nil, err
	}

	fair, err := Price(params)
	if err != nil {
		return nil, err
	}

	mid := params.Midpoint()
	verdict := Classify(fair, mid)

	barrier := params.BarrierPrice()
	outcomes := e.sim.Simulate(params, barrier)
	result := Aggregate(outcomes, params.RiskFreeRate)

	diff := mid - fair
	return &Report{
		Pricing:        PricingResult{FairValue: fair, Midpoint: mid},
		Verdict:        verdict,
		Simulation:     result,
		Barrier:        barrier,
		Difference:     diff,
		DifferencePct:  100 * diff / fair,
		HorizonYears:   params.TimeToExpiration,
		RuntimeSeconds: time.Since(start).Seconds(),
	}, nil
}
