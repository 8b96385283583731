package providers

import (
	"context"
	"fmt"
	"time"

	"takeprofit/internal/logger"
)

// ProviderManager wraps a market data provider with logging and performance
// monitoring.
type ProviderManager struct {
	provider MarketProvider
}

// NewProviderManager creates a new provider manager
func NewProviderManager(provider MarketProvider) *ProviderManager {
	return &ProviderManager{
		provider: provider,
	}
}

// GetMarketSnapshot is a convenience wrapper that adds logging
func (pm *ProviderManager) GetMarketSnapshot(ctx context.Context, symbol string) (*SnapshotResult, error) {
	result, err := pm.provider.GetMarketSnapshot(ctx, symbol)

	if err != nil {
		return nil, fmt.Errorf("provider %s failed to get market snapshot: %v",
			pm.provider.GetProviderName(), err)
	}

	// Log performance if request was slow
	if result.Metrics.RequestDuration > 5*time.Second {
		logger.Warn.Printf("⚠️  SLOW REQUEST: %s snapshot for %s took %v (queue: %v, network: %v)",
			pm.provider.GetProviderName(),
			symbol,
			result.Metrics.RequestDuration,
			result.Metrics.QueueTime,
			result.Metrics.NetworkTime)
	}

	return result, nil
}

// GetProvider returns the underlying provider
func (pm *ProviderManager) GetProvider() MarketProvider {
	return pm.provider
}

// GetPerformanceReport returns a detailed performance report
func (pm *ProviderManager) GetPerformanceReport() string {
	stats := pm.provider.GetPerformanceStats()

	report := fmt.Sprintf(`
📊 Provider Performance Report (%s)
=====================================
Requests Made:     %d
Average Queue Time: %v
Average Network:   %v
Average Parse:     %v
Total Duration:    %v
Rate Limit Hits:   %v
`,
		pm.provider.GetProviderName(),
		stats.RequestCount,
		stats.QueueTime,
		stats.NetworkTime,
		stats.ParseTime,
		stats.RequestDuration,
		stats.RateLimitHit,
	)

	return report
}

// Close cleans up the provider
func (pm *ProviderManager) Close() error {
	return pm.provider.Close()
}
