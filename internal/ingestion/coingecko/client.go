package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// CoinGecko's free tier allows roughly 30 calls per minute; stay under it.
	rateLimit = 0.5
	rateBurst = 2

	maxRetries   = 5
	initialDelay = 1 * time.Second
	maxDelay     = 32 * time.Second
)

// Client wraps the CoinGecko REST API with rate limiting and retries.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		logger:      logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// ListExchanges fetches one page of the exchange listing.
func (c *Client) ListExchanges(ctx context.Context, page, perPage int) ([]ExchangeListing, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var listings []ExchangeListing
	if err := c.doRequest(ctx, "/exchanges", params, &listings); err != nil {
		return nil, fmt.Errorf("fetch exchanges page %d: %w", page, err)
	}
	return listings, nil
}

// doRequest performs a GET with rate limiting and exponential-backoff
// retries on 429 and 5xx.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-cg-demo-api-key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				c.logger.Warn("request failed, retrying",
					"endpoint", endpoint, "attempt", attempt+1, "delay", delay, "error", err)
				if !sleepCtx(ctx, delay) {
					return ctx.Err()
				}
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if seconds, err := strconv.Atoi(retryAfter); err == nil {
						delay = time.Duration(seconds) * time.Second
					}
				}
				c.logger.Warn("server pushed back, retrying",
					"endpoint", endpoint, "status", resp.StatusCode, "attempt", attempt+1, "delay", delay)
				if !sleepCtx(ctx, delay) {
					return ctx.Err()
				}
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// sleepCtx sleeps for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
