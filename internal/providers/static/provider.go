package static

import (
	"context"
	"fmt"
	"strings"
	"time"

	"takeprofit/internal/providers"
)

// StaticProvider serves a fixed snapshot for every symbol. It exists for
// offline runs and handler tests, where a network provider would make the
// analysis path nondeterministic.
type StaticProvider struct {
	spot              float64
	dividendYield     float64
	impliedVolatility float64

	requests int
}

// NewStaticProvider creates a provider that answers every snapshot request
// with the given values.
func NewStaticProvider(spot, dividendYield, impliedVolatility float64) *StaticProvider {
	return &StaticProvider{
		spot:              spot,
		dividendYield:     dividendYield,
		impliedVolatility: impliedVolatility,
	}
}

func (s *StaticProvider) GetProviderName() string {
	return "static"
}

func (s *StaticProvider) GetMarketSnapshot(_ context.Context, symbol string) (*providers.SnapshotResult, error) {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if s.spot <= 0 {
		return nil, fmt.Errorf("static provider has no spot price configured")
	}

	s.requests++
	return &providers.SnapshotResult{
		Data: &providers.MarketSnapshot{
			Symbol:            symbol,
			Spot:              s.spot,
			DividendYield:     s.dividendYield,
			ImpliedVolatility: s.impliedVolatility,
			Timestamp:         time.Now(),
		},
		Metrics: providers.PerformanceMetrics{RequestCount: 1},
	}, nil
}

func (s *StaticProvider) GetPerformanceStats() providers.PerformanceMetrics {
	return providers.PerformanceMetrics{RequestCount: s.requests}
}

func (s *StaticProvider) Close() error {
	return nil
}
