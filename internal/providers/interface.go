package providers

import (
	"context"
	"time"
)

// PerformanceMetrics tracks timing and performance data for provider operations
type PerformanceMetrics struct {
	RequestDuration time.Duration `json:"request_duration"`
	QueueTime       time.Duration `json:"queue_time"`   // Time waiting for rate limiter
	NetworkTime     time.Duration `json:"network_time"` // Actual HTTP request time
	ParseTime       time.Duration `json:"parse_time"`   // JSON parsing time
	RequestCount    int           `json:"request_count"`
	BytesReceived   int64         `json:"bytes_received"`
	RateLimitHit    bool          `json:"rate_limit_hit"`
}

// MarketSnapshot carries the per-ticker fields an analysis form needs
// pre-populated: spot price, dividend yield, and implied volatility. Yield and
// volatility are decimals (0.015 = 1.5%).
type MarketSnapshot struct {
	Symbol            string    `json:"symbol"`
	Spot              float64   `json:"spot"`
	DividendYield     float64   `json:"dividend_yield"`
	ImpliedVolatility float64   `json:"implied_volatility"`
	Timestamp         time.Time `json:"timestamp"`
}

// SnapshotResult contains a market snapshot with performance metrics
type SnapshotResult struct {
	Data    *MarketSnapshot    `json:"data"`
	Metrics PerformanceMetrics `json:"metrics"`
}

// MarketProvider defines the interface for market data providers. The
// analysis engine never touches this; it exists for the caller layer to fill
// in ParameterSet fields ahead of a run.
type MarketProvider interface {
	// GetMarketSnapshot fetches the current spot, dividend yield, and implied
	// volatility for a symbol
	GetMarketSnapshot(ctx context.Context, symbol string) (*SnapshotResult, error)

	// GetProviderName returns the name of the provider (e.g., "yahoo")
	GetProviderName() string

	// GetPerformanceStats returns cumulative performance statistics
	GetPerformanceStats() PerformanceMetrics

	// Close cleans up any resources (connections, rate limiters, etc.)
	Close() error
}
