package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"takeprofit/internal/config"
	"takeprofit/internal/dto"
	takeprofit "takeprofit/takeprofit_lib"
)

// RequestService handles HTTP request parsing and the translation from wire
// fields to a validated-ready ParameterSet.
type RequestService struct {
	simDefaults config.SimulationConfig
}

// NewRequestService creates a new request service
func NewRequestService(simDefaults config.SimulationConfig) *RequestService {
	return &RequestService{simDefaults: simDefaults}
}

// ParseAnalysisRequest parses an HTTP request into an AnalysisRequest
func (s *RequestService) ParseAnalysisRequest(r *http.Request) (*dto.AnalysisRequest, error) {
	if r.Method != http.MethodPost {
		return nil, fmt.Errorf("method not allowed: %s", r.Method)
	}

	var req dto.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}

	if req.ExpirationDate == "" {
		return nil, fmt.Errorf("expiration_date is required")
	}

	req.Symbol = strings.TrimSpace(strings.ToUpper(req.Symbol))

	return &req, nil
}

// BuildParameterSet converts a wire request into the engine's ParameterSet,
// resolving the expiration date against now and filling simulation fields
// from configured defaults where the request leaves them zero. Domain
// validation stays with the engine; this only handles shape and defaults.
func (s *RequestService) BuildParameterSet(req *dto.AnalysisRequest, now time.Time) (*takeprofit.ParameterSet, error) {
	years, err := YearsToExpiration(req.ExpirationDate, now)
	if err != nil {
		return nil, err
	}

	params := &takeprofit.ParameterSet{
		Spot:               req.Spot,
		Strike:             req.Strike,
		RiskFreeRate:       req.RiskFreeRate,
		DividendYield:      req.DividendYield,
		ImpliedVolatility:  req.ImpliedVolatility,
		TimeToExpiration:   years,
		Bid:                req.Bid,
		Ask:                req.Ask,
		TakeProfitMultiple: req.TakeProfitMultiple,
		PathCount:          req.PathCount,
		TimeStepsPerPath:   req.TimeSteps,
	}

	if params.PathCount == 0 {
		params.PathCount = s.simDefaults.PathCount
	}
	if params.TimeStepsPerPath == 0 {
		params.TimeStepsPerPath = s.simDefaults.TimeSteps
	}

	return params, nil
}

// SeedFor resolves the seed for a run: the request's when set, otherwise the
// configured default.
func (s *RequestService) SeedFor(req *dto.AnalysisRequest) uint64 {
	if req.Seed != 0 {
		return req.Seed
	}
	return s.simDefaults.Seed
}

// YearsToExpiration converts a YYYY-MM-DD expiration date into a year
// fraction from the calendar day of now, using the original's days/365
// convention. A date on or before today is rejected.
func YearsToExpiration(dateStr string, now time.Time) (float64, error) {
	expiry, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return 0, fmt.Errorf("invalid expiration date format (want YYYY-MM-DD): %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := expiry.Sub(today).Hours() / 24
	if days <= 0 {
		return 0, fmt.Errorf("expiration must be in the future")
	}

	return days / 365.0, nil
}
