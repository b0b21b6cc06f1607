package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopscout/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20 // 1 MiB is far beyond any sane result page

// Client handles communication with the programmable custom search API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	engineID    string
	baseURL     string
	maxResults  int
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new search API client. dailyQuota throttles outbound
// calls to stay inside the API quota (requests per day).
func NewClient(apiKey, engineID, baseURL string, maxResults, dailyQuota int, timeout time.Duration) *Client {
	if maxResults < 1 || maxResults > 10 {
		maxResults = 10
	}
	if dailyQuota <= 0 {
		dailyQuota = 100
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// Spread the quota over the day, with a small burst for interactive use
	limiter := rate.NewLimiter(rate.Limit(float64(dailyQuota)/86400.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		engineID:    engineID,
		baseURL:     baseURL,
		maxResults:  maxResults,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request/response logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[SEARCH] "+format, args...)
	}
}

// exponentialBackoff returns the sleep duration before the given retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// sleepBackoff waits out the backoff for the given attempt, or returns early
// when the context is cancelled.
func sleepBackoff(ctx context.Context, attempt int) error {
	timer := time.NewTimer(exponentialBackoff(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// readLimitedBody reads at most limit bytes from the response body
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopScout/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}

	return resp, nil
}

// Search issues one query against the search API and returns the raw result
// items. A response without an items array is zero results, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResultItem, error) {
	c.debugLog("Search called with query: %q", query)

	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("cx", c.engineID)
	params.Add("q", query)
	params.Add("num", strconv.Itoa(c.maxResults))
	params.Add("safe", "active")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	// Retry transient failures (5xx, 429); give up on other 4xx immediately
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Fail fast when the daily quota is spent. A refill can be minutes
		// away; the caller has a fallback and must not wait for it.
		if !c.rateLimiter.Allow() {
			return nil, fmt.Errorf("%w: daily search quota exhausted", domain.ErrRateLimited)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.debugLog("request error (attempt %d): %v", attempt, err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			if err := sleepBackoff(ctx, attempt); err != nil {
				return nil, lastErr
			}
			continue
		}

		body, _ := readLimitedBody(resp.Body, maxResponseBytes)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.debugLog("API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrSearchAPIFailure, resp.StatusCode)
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				if err := sleepBackoff(ctx, attempt); err != nil {
					return nil, lastErr
				}
				continue
			}
			return nil, lastErr
		}

		var searchResp domain.SearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			c.debugLog("JSON decode error: %v", err)
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		c.debugLog("found %d items for query: %q", len(searchResp.Items), query)
		return searchResp.Items, nil
	}

	c.debugLog("all retries failed for query: %q", query)
	return nil, lastErr
}
