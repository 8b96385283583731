package takeprofit

import (
	"errors"
	"testing"
)

func TestRunAnalysis_EndToEnd(t *testing.T) {
	// S=100, K=100, r=0.02, q=0, sigma=0.3, T=0.5; quoted 8.00/8.20.
	// Fair value from the closed form is ~8.9118, so the 8.10 midpoint is
	// more than a cent below it: OVERVALUED.
	engine := NewEngine(42, 0)
	report, err := engine.RunAnalysis(validParams())
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}

	if !almostEqual(report.Pricing.FairValue, 8.9118, 5e-3) {
		t.Errorf("fair value = %v, want ~8.9118", report.Pricing.FairValue)
	}
	if !almostEqual(report.Pricing.Midpoint, 8.10, 1e-12) {
		t.Errorf("midpoint = %v, want 8.10", report.Pricing.Midpoint)
	}
	if report.Verdict != VerdictOvervalued {
		t.Errorf("verdict = %s, want %s", report.Verdict, VerdictOvervalued)
	}
	// barrier = strike + midpoint*multiple = 100 + 16.20
	if !almostEqual(report.Barrier, 116.20, 1e-9) {
		t.Errorf("barrier = %v, want 116.20", report.Barrier)
	}
	if report.Difference >= 0 {
		t.Errorf("difference = %v, want negative for an overvalued verdict", report.Difference)
	}
	if report.Simulation.HitProbability < 0 || report.Simulation.HitProbability > 1 {
		t.Errorf("hit probability %v outside [0,1]", report.Simulation.HitProbability)
	}
	if report.Simulation.PresentValueOfPayoff < 0 {
		t.Errorf("present value %v must be non-negative", report.Simulation.PresentValueOfPayoff)
	}
}

func TestRunAnalysis_ReproducibleWithSameSeed(t *testing.T) {
	first, err := NewEngine(77, 4).RunAnalysis(validParams())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := NewEngine(77, 2).RunAnalysis(validParams())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Simulation != second.Simulation {
		t.Fatalf("same seed produced different simulation results:\n%+v\n%+v", first.Simulation, second.Simulation)
	}
	if first.Pricing != second.Pricing || first.Verdict != second.Verdict {
		t.Fatal("same inputs produced different pricing or verdict")
	}
}

func TestRunAnalysis_DeepInTheMoneyHitsCertainly(t *testing.T) {
	// Quoted well under intrinsic with a modest multiple, the barrier lands
	// below spot and every path hits immediately.
	p := validParams()
	p.Spot = 150
	p.Strike = 100
	p.ImpliedVolatility = 0.10
	p.Bid = 29
	p.Ask = 31
	p.TakeProfitMultiple = 1.5

	report, err := NewEngine(5, 0).RunAnalysis(p)
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}
	if report.Simulation.HitProbability != 1 {
		t.Errorf("hit probability = %v, want 1", report.Simulation.HitProbability)
	}
	if !report.Simulation.AverageHitTimeValid || report.Simulation.AverageHitTimeYears != 0 {
		t.Errorf("expected immediate hits, got %+v", report.Simulation)
	}
	if !almostEqual(report.Simulation.PresentValueOfPayoff, 45, 1e-9) {
		t.Errorf("present value = %v, want 45", report.Simulation.PresentValueOfPayoff)
	}
}

func TestRunAnalysis_DeepOutOfTheMoneyNeverHits(t *testing.T) {
	p := validParams()
	p.Spot = 100
	p.Strike = 200
	p.ImpliedVolatility = 0.05
	p.TimeToExpiration = 0.05
	p.Bid = 0.05
	p.Ask = 0.07
	p.TimeStepsPerPath = 50

	report, err := NewEngine(5, 0).RunAnalysis(p)
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}
	if report.Simulation.HitProbability != 0 {
		t.Errorf("hit probability = %v, want 0", report.Simulation.HitProbability)
	}
	if report.Simulation.AverageHitTimeValid {
		t.Error("average hit time must be invalid with zero hit probability")
	}
	if report.Simulation.PresentValueOfPayoff != 0 {
		t.Errorf("present value = %v, want 0 with zero hit probability", report.Simulation.PresentValueOfPayoff)
	}
}

func TestRunAnalysis_ValidationFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ParameterSet)
		want   error
	}{
		{"zero spot", func(p *ParameterSet) { p.Spot = 0 }, ErrInvalidParameter},
		{"zero strike", func(p *ParameterSet) { p.Strike = 0 }, ErrInvalidParameter},
		{"zero vol", func(p *ParameterSet) { p.ImpliedVolatility = 0 }, ErrInvalidParameter},
		{"expired", func(p *ParameterSet) { p.TimeToExpiration = 0 }, ErrInvalidParameter},
		{"negative bid", func(p *ParameterSet) { p.Bid = -1 }, ErrInvalidParameter},
		{"multiple at one", func(p *ParameterSet) { p.TakeProfitMultiple = 1.0 }, ErrInvalidParameter},
		{"multiple below one", func(p *ParameterSet) { p.TakeProfitMultiple = 0.5 }, ErrInvalidParameter},
		{"zero paths", func(p *ParameterSet) { p.PathCount = 0 }, ErrInvalidParameter},
		{"zero steps", func(p *ParameterSet) { p.TimeStepsPerPath = 0 }, ErrInvalidParameter},
		{"crossed market", func(p *ParameterSet) { p.Bid = 9.00; p.Ask = 8.00 }, ErrInvalidMarketInputs},
		{"empty market", func(p *ParameterSet) { p.Bid = 0; p.Ask = 0 }, ErrInvalidMarketInputs},
	}

	engine := NewEngine(1, 0)
	for _, c := range cases {
		p := validParams()
		c.mutate(p)
		report, err := engine.RunAnalysis(p)
		if !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
		if report != nil {
			t.Errorf("%s: no report should be produced on validation failure", c.name)
		}
	}
}
