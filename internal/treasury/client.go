package treasury

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"takeprofit/internal/logger"
)

// Client fetches the current Treasury Bill rate to use as the risk-free rate
// in pricing and simulation. It remembers the last successful fetch so a dead
// API degrades to a stale-but-real rate instead of an error.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	fallbackRate  float64
	lastKnownRate float64
	lastFetchTime time.Time
}

type treasuryResponse struct {
	Data []treasuryRate `json:"data"`
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
}

type treasuryRate struct {
	RecordDate            string `json:"record_date"`
	SecurityDesc          string `json:"security_desc"`
	AvgInterestRateAmount string `json:"avg_interest_rate_amt"`
}

// NewClient creates a Treasury rate client. fallbackRate is used until the
// first successful fetch (the original analyzer assumed a flat 4.5%).
func NewClient(fallbackRate float64) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:      "https://api.fiscaldata.treasury.gov/services/api/fiscal_service",
		fallbackRate: fallbackRate,
	}

	// Initialize with current rate on startup
	if rate, err := client.fetchRiskFreeRate(); err == nil {
		client.lastKnownRate = rate
		client.lastFetchTime = time.Now()
		logger.Info.Printf("🏛️ Initialized Treasury client with rate: %.6f (%.3f%%)", rate, rate*100)
	} else {
		client.lastKnownRate = fallbackRate
		logger.Warn.Printf("⚠️ Failed to fetch initial Treasury rate: %v, using fallback: %.3f%%", err, fallbackRate*100)
	}

	return client
}

// fetchRiskFreeRate does the actual API call (internal method)
func (c *Client) fetchRiskFreeRate() (float64, error) {
	url := fmt.Sprintf("%s/v2/accounting/od/avg_interest_rates?fields=avg_interest_rate_amt,record_date&filter=security_desc:eq:Treasury%%20Bills&sort=-record_date&page[size]=1", c.baseURL)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch Treasury rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("Treasury API returned status %d", resp.StatusCode)
	}

	var treasuryResp treasuryResponse
	if err := json.NewDecoder(resp.Body).Decode(&treasuryResp); err != nil {
		return 0, fmt.Errorf("failed to decode Treasury response: %w", err)
	}

	if len(treasuryResp.Data) == 0 {
		return 0, fmt.Errorf("no Treasury rate data returned")
	}

	// Convert percentage string to float64 (e.g., "3.983" -> 0.03983)
	rateStr := treasuryResp.Data[0].AvgInterestRateAmount
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate %s: %w", rateStr, err)
	}

	return rate / 100.0, nil
}

// GetRiskFreeRate fetches the most recent Treasury Bill rate as the risk-free rate
func (c *Client) GetRiskFreeRate() (float64, error) {
	rate, err := c.fetchRiskFreeRate()
	if err != nil {
		return 0, err
	}

	c.lastKnownRate = rate
	c.lastFetchTime = time.Now()

	logger.Debug.Printf("📈 Fetched Treasury Bill rate: %.3f%% (%.6f decimal)", rate*100, rate)

	return rate, nil
}

// GetRiskFreeRateWithLastKnown tries to fetch the current rate, falling back
// to the last known rate when the fetch fails.
func (c *Client) GetRiskFreeRateWithLastKnown() float64 {
	if rate, err := c.GetRiskFreeRate(); err == nil {
		return rate
	}

	age := time.Since(c.lastFetchTime)
	logger.Warn.Printf("⚠️ Treasury API failed, using last known rate: %.6f (%.3f%%) from %v ago",
		c.lastKnownRate, c.lastKnownRate*100, age.Round(time.Minute))

	return c.lastKnownRate
}

// GetCacheInfo returns information about the cached rate
func (c *Client) GetCacheInfo() (rate float64, age time.Duration, isInitialized bool) {
	if c.lastFetchTime.IsZero() {
		return c.lastKnownRate, 0, false
	}
	return c.lastKnownRate, time.Since(c.lastFetchTime), true
}
