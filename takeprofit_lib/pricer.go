package takeprofit

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal is the N(0,1) distribution used for the closed-form CDF terms.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Price computes the Black-Scholes fair value of a European call with a
// continuous dividend yield:
//
//	d1 = [ln(S/K) + (r - q + 0.5*sigma^2)*T] / (sigma*sqrt(T))
//	d2 = d1 - sigma*sqrt(T)
//	C  = S*e^(-q*T)*N(d1) - K*e^(-r*T)*N(d2)
//
// It is a pure function of params and validates its own preconditions so it
// stays safe when called outside RunAnalysis.
func Price(params *ParameterSet) (float64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}

	s := params.Spot
	k := params.Strike
	r := params.RiskFreeRate
	q := params.DividendYield
	sigma := params.ImpliedVolatility
	t := params.TimeToExpiration

	volSqrtT := sigma * math.Sqrt(t)
	d1 := (math.Log(s/k) + (r-q+0.5*sigma*sigma)*t) / volSqrtT
	d2 := d1 - volSqrtT

	return s*math.Exp(-q*t)*stdNormal.CDF(d1) - k*math.Exp(-r*t)*stdNormal.CDF(d2), nil
}
