package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"takeprofit/internal/config"
	"takeprofit/internal/dto"
	"takeprofit/internal/logger"
	"takeprofit/internal/providers"
	"takeprofit/internal/services"
	"takeprofit/internal/treasury"
	"takeprofit/internal/utils"
	takeprofit "takeprofit/takeprofit_lib"
)

// AnalysisHandler wires the HTTP API to the analysis engine and the market
// data collaborators.
type AnalysisHandler struct {
	cfg      *config.Config
	requests *services.RequestService
	market   *providers.ProviderManager
	treasury *treasury.Client
}

// NewAnalysisHandler creates the handler set for the API server
func NewAnalysisHandler(cfg *config.Config, market *providers.ProviderManager, treasuryClient *treasury.Client) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:      cfg,
		requests: services.NewRequestService(cfg.Simulation),
		market:   market,
		treasury: treasuryClient,
	}
}

// setCORS applies the response headers every API endpoint shares
func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Error: code, Message: message})
}

// AnalyzeHandler runs a full take-profit analysis for one contract.
// POST /api/analyze
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	req, err := h.requests.ParseAnalysisRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	params, err := h.requests.BuildParameterSet(req, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	seed := h.requests.SeedFor(req)
	logger.Debug.Printf("🔍 ANALYZE: symbol=%s spot=%.2f strike=%.2f paths=%d steps=%d seed=%d",
		req.Symbol, params.Spot, params.Strike, params.PathCount, params.TimeStepsPerPath, seed)

	startTime := time.Now()
	engine := takeprofit.NewEngine(seed, h.cfg.Simulation.Workers)
	report, err := engine.RunAnalysis(params)
	if err != nil {
		switch {
		case errors.Is(err, takeprofit.ErrInvalidParameter):
			writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		case errors.Is(err, takeprofit.ErrInvalidMarketInputs):
			writeError(w, http.StatusBadRequest, "INVALID_MARKET_INPUTS", err.Error())
		default:
			logger.Error.Printf("❌ Analysis failed: %v", err)
			writeError(w, http.StatusInternalServerError, "ANALYSIS_FAILED", err.Error())
		}
		return
	}

	logger.Info.Printf("📊 %s verdict=%s fair=%.2f mid=%.2f hit=%.1f%% in %.2fs",
		req.Symbol, report.Verdict, report.Pricing.FairValue, report.Pricing.Midpoint,
		report.Simulation.HitProbability*100, report.RuntimeSeconds)

	response := dto.AnalysisResponse{
		Success: true,
		Report:  report,
		Summary: dto.BuildSummary(report, req.Bid, req.Ask),
		Meta: dto.ResponseMetadata{
			Symbol:         req.Symbol,
			Timestamp:      time.Now().Format(time.RFC3339),
			ProcessingTime: time.Since(startTime).Seconds(),
			PathCount:      params.PathCount,
			TimeSteps:      params.TimeStepsPerPath,
			Seed:           engine.Seed(),
		},
	}
	json.NewEncoder(w).Encode(response)
}

// AutofillHandler fetches live market fields for a ticker so a client form
// can pre-populate itself. GET /api/autofill?symbol=AAPL
func (h *AnalysisHandler) AutofillHandler(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "symbol query parameter is required")
		return
	}

	result, err := h.market.GetMarketSnapshot(r.Context(), symbol)
	if err != nil {
		logger.Warn.Printf("⚠️ Autofill failed for %s: %v", symbol, err)
		writeError(w, http.StatusBadGateway, "SNAPSHOT_FAILED", err.Error())
		return
	}

	snapshot := result.Data
	response := dto.AutofillResponse{
		Success:             true,
		Symbol:              snapshot.Symbol,
		Spot:                snapshot.Spot,
		DividendYield:       snapshot.DividendYield,
		ImpliedVolatility:   snapshot.ImpliedVolatility,
		RiskFreeRate:        h.treasury.GetRiskFreeRateWithLastKnown(),
		SuggestedExpiration: utils.NextStandardExpiration(time.Now()),
		Provider:            h.market.GetProvider().GetProviderName(),
	}
	json.NewEncoder(w).Encode(response)
}

// StatusHandler reports service wiring and cached state. GET /api/status
func (h *AnalysisHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	setCORS(w)

	rate, age, _ := h.treasury.GetCacheInfo()
	response := dto.StatusResponse{
		Provider:         h.market.GetProvider().GetProviderName(),
		TreasuryRate:     rate,
		TreasuryRateAge:  age.Round(time.Second).String(),
		DefaultPathCount: h.cfg.Simulation.PathCount,
		DefaultTimeSteps: h.cfg.Simulation.TimeSteps,
	}
	json.NewEncoder(w).Encode(response)
}
