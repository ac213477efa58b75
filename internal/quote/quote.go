// Package quote fetches market prices used to refresh position mark prices.
package quote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the interface the quote service depends on. Tests substitute a
// mock implementation. token is the optional provider API token; empty when
// no provider token is configured.
type Client interface {
	LatestClose(symbol, token string) (float64, error)
}

// FinanceClient fetches daily price data from the Yahoo Finance chart API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a quote client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// WithBaseURL returns a copy of the client pointed at a different endpoint.
// Used by tests to target an httptest server.
func (c *FinanceClient) WithBaseURL(baseURL string) *FinanceClient {
	clone := *c
	clone.baseURL = baseURL
	return &clone
}

// chartResponse maps the subset of the Yahoo Finance chart API response the
// mark-price refresh needs: close prices and the API error field.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// LatestClose fetches the most recent daily closing price for a symbol.
// The five-day range tolerates weekends and market holidays: the last
// populated close wins.
func (c *FinanceClient) LatestClose(symbol, token string) (float64, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("User-Agent", "finance-tracker/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote request for %s returned status %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read quote response: %w", err)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if parsed.Chart.Error != nil {
		return 0, fmt.Errorf("quote provider error for %s: %s", symbol, *parsed.Chart.Error)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return 0, fmt.Errorf("no price data returned for %s", symbol)
	}

	closes := parsed.Chart.Result[0].Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			return closes[i], nil
		}
	}

	return 0, fmt.Errorf("no close prices returned for %s", symbol)
}
