package takeprofit

import (
	"math"
	"testing"
)

func TestAggregate_HandcraftedOutcomes(t *testing.T) {
	rate := 0.05
	outcomes := []PathOutcome{
		{Hit: true, HitTimeYears: 0.2, PayoffAtHit: 10},
		{Hit: true, HitTimeYears: 0.6, PayoffAtHit: 10},
		{Hit: false},
		{Hit: false},
	}

	got := Aggregate(outcomes, rate)

	if !almostEqual(got.HitProbability, 0.5, 1e-12) {
		t.Errorf("hit probability = %v, want 0.5", got.HitProbability)
	}
	if !got.AverageHitTimeValid {
		t.Fatal("average hit time should be valid with hits present")
	}
	if !almostEqual(got.AverageHitTimeYears, 0.4, 1e-12) {
		t.Errorf("average hit time = %v, want 0.4", got.AverageHitTimeYears)
	}

	wantPV := (10*math.Exp(-rate*0.2) + 10*math.Exp(-rate*0.6)) / 4
	if !almostEqual(got.PresentValueOfPayoff, wantPV, 1e-12) {
		t.Errorf("present value = %v, want %v", got.PresentValueOfPayoff, wantPV)
	}
}

func TestAggregate_NoHits(t *testing.T) {
	outcomes := []PathOutcome{{Hit: false}, {Hit: false}, {Hit: false}}

	got := Aggregate(outcomes, 0.05)

	if got.HitProbability != 0 {
		t.Errorf("hit probability = %v, want 0", got.HitProbability)
	}
	if got.AverageHitTimeValid {
		t.Error("average hit time must be flagged invalid when nothing hits")
	}
	if got.AverageHitTimeYears != 0 {
		// The field is undefined here; it must at least not carry a NaN that
		// could leak into downstream arithmetic.
		t.Errorf("undefined average hit time should stay at its zero value, got %v", got.AverageHitTimeYears)
	}
	if got.PresentValueOfPayoff != 0 {
		t.Errorf("present value = %v, want 0 with no hits", got.PresentValueOfPayoff)
	}
}

func TestAggregate_AllHitAtZero(t *testing.T) {
	outcomes := make([]PathOutcome, 10)
	for i := range outcomes {
		outcomes[i] = PathOutcome{Hit: true, HitTimeYears: 0, PayoffAtHit: 45}
	}

	got := Aggregate(outcomes, 0.02)

	if got.HitProbability != 1 {
		t.Errorf("hit probability = %v, want 1", got.HitProbability)
	}
	if !got.AverageHitTimeValid || got.AverageHitTimeYears != 0 {
		t.Errorf("average hit time = %v (valid=%v), want 0 (valid)", got.AverageHitTimeYears, got.AverageHitTimeValid)
	}
	// No discounting at t=0.
	if !almostEqual(got.PresentValueOfPayoff, 45, 1e-12) {
		t.Errorf("present value = %v, want 45", got.PresentValueOfPayoff)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	got := Aggregate(nil, 0.05)
	if got.HitProbability != 0 || got.AverageHitTimeValid || got.PresentValueOfPayoff != 0 {
		t.Errorf("empty input should produce a zero result, got %+v", got)
	}
}

func TestAggregate_FinalStepHitIsCounted(t *testing.T) {
	// A crossing on the last step is reported as steps*dt, and for some
	// (T, steps) pairs that product rounds one ulp above T. The hit must
	// still count toward probability, average time, and PV.
	horizon := 0.997
	steps := 510
	rate := 0.02
	dt := horizon / float64(steps)
	hitTime := float64(steps) * dt
	if hitTime <= horizon {
		t.Fatalf("setup: %d steps over %v should round above the horizon, got %v", steps, horizon, hitTime)
	}

	outcomes := []PathOutcome{
		{Hit: true, HitTimeYears: hitTime, PayoffAtHit: 10},
		{Hit: false},
	}

	got := Aggregate(outcomes, rate)

	if !almostEqual(got.HitProbability, 0.5, 1e-12) {
		t.Errorf("hit probability = %v, want 0.5", got.HitProbability)
	}
	if !got.AverageHitTimeValid || !almostEqual(got.AverageHitTimeYears, hitTime, 1e-12) {
		t.Errorf("average hit time = %v (valid=%v), want %v", got.AverageHitTimeYears, got.AverageHitTimeValid, hitTime)
	}
	wantPV := 10 * math.Exp(-rate*hitTime) / 2
	if !almostEqual(got.PresentValueOfPayoff, wantPV, 1e-12) {
		t.Errorf("present value = %v, want %v", got.PresentValueOfPayoff, wantPV)
	}
}
