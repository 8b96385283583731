package takeprofit

// Verdict is the three-way mispricing classification.
type Verdict string

const (
	VerdictUndervalued  Verdict = "UNDERVALUED"
	VerdictFairlyPriced Verdict = "FAIRLY_PRICED"
	VerdictOvervalued   Verdict = "OVERVALUED"
)

// fairValueTolerance is the fixed band, in dollars, inside which a midpoint
// counts as fairly priced.
const fairValueTolerance = 0.01

// Classify compares the market midpoint against theoretical fair value. The
// comparisons are strict, so a midpoint exactly fairValue +/- 0.01 is
// FAIRLY_PRICED.
func Classify(fairValue, midpoint float64) Verdict {
	switch {
	case midpoint > fairValue+fairValueTolerance:
		return VerdictUndervalued
	case midpoint < fairValue-fairValueTolerance:
		return VerdictOvervalued
	default:
		return VerdictFairlyPriced
	}
}
