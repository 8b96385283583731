package dto

import (
	"fmt"

	takeprofit "takeprofit/takeprofit_lib"
)

// AnalysisRequest represents a take-profit analysis request. Rates and
// volatility are decimals (0.045 = 4.5%); the expiration date is YYYY-MM-DD.
type AnalysisRequest struct {
	Symbol             string  `json:"symbol,omitempty"`
	Spot               float64 `json:"spot"`
	Strike             float64 `json:"strike"`
	RiskFreeRate       float64 `json:"risk_free_rate"`
	DividendYield      float64 `json:"dividend_yield"`
	ImpliedVolatility  float64 `json:"implied_volatility"`
	ExpirationDate     string  `json:"expiration_date"`
	Bid                float64 `json:"bid"`
	Ask                float64 `json:"ask"`
	TakeProfitMultiple float64 `json:"take_profit_multiple"`

	// Optional simulation overrides; zero means "use configured defaults".
	PathCount int    `json:"path_count,omitempty"`
	TimeSteps int    `json:"time_steps,omitempty"`
	Seed      uint64 `json:"seed,omitempty"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	Symbol         string  `json:"symbol,omitempty"`
	Timestamp      string  `json:"timestamp"`
	ProcessingTime float64 `json:"processing_time"`
	PathCount      int     `json:"path_count"`
	TimeSteps      int     `json:"time_steps"`
	Seed           uint64  `json:"seed"`
}

// AnalysisResponse represents the complete API response for an analysis run
type AnalysisResponse struct {
	Success bool               `json:"success"`
	Report  *takeprofit.Report `json:"report"`
	Summary []string           `json:"summary"`
	Meta    ResponseMetadata   `json:"meta"`
}

// AutofillResponse carries the fetched market snapshot plus the fields the
// form can pre-populate alongside it.
type AutofillResponse struct {
	Success             bool    `json:"success"`
	Symbol              string  `json:"symbol"`
	Spot                float64 `json:"spot"`
	DividendYield       float64 `json:"dividend_yield"`
	ImpliedVolatility   float64 `json:"implied_volatility"`
	RiskFreeRate        float64 `json:"risk_free_rate"`
	SuggestedExpiration string  `json:"suggested_expiration"`
	Provider            string  `json:"provider"`
}

// StatusResponse reports service wiring and cached state
type StatusResponse struct {
	Provider         string  `json:"provider"`
	TreasuryRate     float64 `json:"treasury_rate"`
	TreasuryRateAge  string  `json:"treasury_rate_age"`
	DefaultPathCount int     `json:"default_path_count"`
	DefaultTimeSteps int     `json:"default_time_steps"`
}

// ErrorResponse is the JSON shape of every non-2xx answer
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BuildSummary renders the report as the display block the original analyzer
// printed, one line per entry. The caller may show it verbatim or ignore it
// in favor of the structured fields.
func BuildSummary(report *takeprofit.Report, bid, ask float64) []string {
	avgHitTime := "N/A"
	if report.Simulation.AverageHitTimeValid {
		avgHitTime = fmt.Sprintf("%.2f yrs", report.Simulation.AverageHitTimeYears)
	}

	return []string{
		fmt.Sprintf("Verdict:         %s (%+.2f, %+.2f%%)", report.Verdict, report.Difference, report.DifferencePct),
		fmt.Sprintf("Midpoint Price:  %.2f (Bid: %g, Ask: %g)", report.Pricing.Midpoint, bid, ask),
		fmt.Sprintf("BS Fair Value:   %.2f", report.Pricing.FairValue),
		fmt.Sprintf("Barrier:         %.2f", report.Barrier),
		fmt.Sprintf("PV (sell@bar):   %.2f", report.Simulation.PresentValueOfPayoff),
		fmt.Sprintf("Hit Probability: %.2f%%", report.Simulation.HitProbability*100),
		fmt.Sprintf("Avg Hit Time:    %s", avgHitTime),
		fmt.Sprintf("Time to Expiry:  %.2f yrs", report.HorizonYears),
		fmt.Sprintf("Runtime:         %.2f s", report.RuntimeSeconds),
	}
}
