package takeprofit

import "math"

// SimulationResult reduces per-path outcomes into the statistics the report
// carries. AverageHitTimeYears is meaningful only when AverageHitTimeValid is
// set; a run with no hits must never report it as zero.
type SimulationResult struct {
	HitProbability       float64 `json:"hit_probability"`
	AverageHitTimeYears  float64 `json:"average_hit_time_years"`
	AverageHitTimeValid  bool    `json:"average_hit_time_valid"`
	PresentValueOfPayoff float64 `json:"present_value_of_payoff"`
}

// Aggregate reduces path outcomes deterministically: hit probability is the
// hit fraction, average hit time is the mean over hit paths, and the present
// value of payoff is the expectation across all paths of the payoff
// discounted back from its own hit time (non-hit paths contribute zero).
// Hit times are taken as reported; a final-step crossing time accumulated as
// steps*dt can round one ulp past the horizon and must still count.
func Aggregate(outcomes []PathOutcome, riskFreeRate float64) SimulationResult {
	if len(outcomes) == 0 {
		return SimulationResult{}
	}

	hits := 0
	sumHitTime := 0.0
	sumDiscounted := 0.0
	for _, o := range outcomes {
		if !o.Hit {
			continue
		}
		hits++
		sumHitTime += o.HitTimeYears
		sumDiscounted += o.PayoffAtHit * math.Exp(-riskFreeRate*o.HitTimeYears)
	}

	result := SimulationResult{
		HitProbability: float64(hits) / float64(len(outcomes)),
	}
	if hits > 0 {
		result.AverageHitTimeYears = sumHitTime / float64(hits)
		result.AverageHitTimeValid = true
		result.PresentValueOfPayoff = sumDiscounted / float64(len(outcomes))
	}
	return result
}
