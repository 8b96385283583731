package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"takeprofit/internal/providers"
)

const (
	// Unauthenticated chart API tolerates roughly two requests per second
	// before it starts returning 429s; stay under that.
	requestDelay = 500 * time.Millisecond

	// HTTP timeout
	defaultTimeout = 30 * time.Second
)

// YahooProvider implements the MarketProvider interface against the public
// Yahoo Finance chart API. The chart feed carries spot price only; dividend
// yield and implied volatility fall back to configured defaults, mirroring
// what the original autofill did when the feed omitted them.
type YahooProvider struct {
	baseURL    string
	httpClient *http.Client

	defaultDividendYield float64
	defaultImpliedVol    float64

	// Rate limiting
	lastRequest time.Time
	rateMutex   sync.Mutex

	// Performance tracking
	totalRequests    int64
	totalQueueTime   time.Duration
	totalNetworkTime time.Duration
	totalParseTime   time.Duration
	rateLimitHits    int64
	statsMutex       sync.RWMutex
}

// NewYahooProvider creates a new Yahoo Finance market data provider
func NewYahooProvider(defaultDividendYield, defaultImpliedVol float64) *YahooProvider {
	return &YahooProvider{
		baseURL:              "https://query1.finance.yahoo.com",
		defaultDividendYield: defaultDividendYield,
		defaultImpliedVol:    defaultImpliedVol,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// GetProviderName returns the provider name
func (y *YahooProvider) GetProviderName() string {
	return "yahoo"
}

// rateLimit enforces the spacing between requests
func (y *YahooProvider) rateLimit() time.Duration {
	y.rateMutex.Lock()
	defer y.rateMutex.Unlock()

	elapsed := time.Since(y.lastRequest)
	if elapsed < requestDelay {
		waitTime := requestDelay - elapsed
		time.Sleep(waitTime)
		y.lastRequest = time.Now()
		return waitTime
	}

	y.lastRequest = time.Now()
	return 0
}

// makeRequest handles HTTP requests with performance tracking
func (y *YahooProvider) makeRequest(ctx context.Context, endpoint string) ([]byte, providers.PerformanceMetrics, error) {
	metrics := providers.PerformanceMetrics{
		RequestCount: 1,
	}

	startTime := time.Now()

	// Rate limiting
	queueTime := y.rateLimit()
	metrics.QueueTime = queueTime
	metrics.RateLimitHit = queueTime > 0

	req, err := http.NewRequestWithContext(ctx, "GET", y.baseURL+endpoint, nil)
	if err != nil {
		return nil, metrics, fmt.Errorf("creating request: %v", err)
	}

	// Yahoo rejects the default Go user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; takeprofit/1.0)")
	req.Header.Set("Accept", "application/json")

	networkStart := time.Now()
	resp, err := y.httpClient.Do(req)
	metrics.NetworkTime = time.Since(networkStart)

	if err != nil {
		return nil, metrics, fmt.Errorf("network request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, metrics, fmt.Errorf("reading response: %v", err)
	}

	metrics.BytesReceived = int64(len(body))
	metrics.RequestDuration = time.Since(startTime)

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.RateLimitHit = true
		return nil, metrics, fmt.Errorf("rate limited by API")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, metrics, fmt.Errorf("API error: %d - %s", resp.StatusCode, string(body))
	}

	y.updateStats(metrics)

	return body, metrics, nil
}

// updateStats updates cumulative performance statistics
func (y *YahooProvider) updateStats(metrics providers.PerformanceMetrics) {
	y.statsMutex.Lock()
	defer y.statsMutex.Unlock()

	y.totalRequests++
	y.totalQueueTime += metrics.QueueTime
	y.totalNetworkTime += metrics.NetworkTime
	y.totalParseTime += metrics.ParseTime

	if metrics.RateLimitHit {
		y.rateLimitHits++
	}
}

// GetPerformanceStats returns cumulative performance statistics
func (y *YahooProvider) GetPerformanceStats() providers.PerformanceMetrics {
	y.statsMutex.RLock()
	defer y.statsMutex.RUnlock()

	requests := y.totalRequests
	if requests == 0 {
		requests = 1
	}
	avgQueueTime := time.Duration(int64(y.totalQueueTime) / requests)
	avgNetworkTime := time.Duration(int64(y.totalNetworkTime) / requests)

	return providers.PerformanceMetrics{
		RequestDuration: avgQueueTime + avgNetworkTime,
		QueueTime:       avgQueueTime,
		NetworkTime:     avgNetworkTime,
		ParseTime:       time.Duration(int64(y.totalParseTime) / requests),
		RequestCount:    int(y.totalRequests),
		RateLimitHit:    y.rateLimitHits > 0,
	}
}

// Close cleans up resources
func (y *YahooProvider) Close() error {
	// Nothing to clean up for HTTP client
	return nil
}

// Yahoo chart API response structures
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
}

// GetMarketSnapshot fetches the latest spot price for a symbol and fills the
// remaining snapshot fields with configured defaults.
func (y *YahooProvider) GetMarketSnapshot(ctx context.Context, symbol string) (*providers.SnapshotResult, error) {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	endpoint := fmt.Sprintf("/v8/finance/chart/%s?range=1d&interval=1d", symbol)

	body, metrics, err := y.makeRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("market snapshot request: %v", err)
	}

	parseStart := time.Now()
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing snapshot response: %v", err)
	}
	metrics.ParseTime = time.Since(parseStart)

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", symbol)
	}

	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("no market price available for %s", symbol)
	}

	snapshot := &providers.MarketSnapshot{
		Symbol:            symbol,
		Spot:              meta.RegularMarketPrice,
		DividendYield:     y.defaultDividendYield,
		ImpliedVolatility: y.defaultImpliedVol,
		Timestamp:         time.Unix(meta.RegularMarketTime, 0),
	}

	return &providers.SnapshotResult{
		Data:    snapshot,
		Metrics: metrics,
	}, nil
}
