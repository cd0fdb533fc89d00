package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/time/rate"

	"coinfolio-api/pkg/market"
)

const (
	defaultBaseURL     = "https://api.coingecko.com/api/v3"
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxAttempts = 3

	quoteCurrency = "usd"
)

// Client wraps access to the CoinGecko REST API. All calls go through a
// single GET helper that owns the retry and backoff policy; the typed
// accessors never retry on their own.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	limiter     *rate.Limiter

	backoffBase time.Duration
	backoffCap  time.Duration
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithMaxAttempts adjusts the attempt budget per call.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRateLimit throttles outgoing requests to rps requests per second,
// keeping the client under the public API quota instead of burning the
// retry budget on 429 responses.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient constructs a CoinGecko API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		maxAttempts: defaultMaxAttempts,
		backoffBase: time.Second,
		backoffCap:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// getJSON performs a GET with exponential backoff and decodes the body into
// out. HTTP 429 waits out the backoff window and retries inside the same
// attempt loop without displacing an earlier recorded failure; other non-2xx
// statuses and transport errors each consume an attempt. A malformed body is
// terminal immediately. Every exit path carries a concrete error.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + "/" + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("coingecko: build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("coingecko: %w", err)
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("coingecko: read response: %w", readErr)
			case resp.StatusCode == http.StatusTooManyRequests:
				logx.WithContext(ctx).Slowf("coingecko: rate limited, attempt %d/%d", attempt+1, c.maxAttempts)
				if lastErr == nil {
					lastErr = market.ErrRateLimited
				}
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = &market.StatusError{
					Code:   resp.StatusCode,
					Status: http.StatusText(resp.StatusCode),
				}
			default:
				if out != nil {
					if err := json.Unmarshal(body, out); err != nil {
						return fmt.Errorf("coingecko: decode response: %w", err)
					}
				}
				return nil
			}
		}

		if attempt == c.maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoffDelay(attempt)):
		}
	}
	return lastErr
}

// backoffDelay returns min(base << attempt, cap).
func (c *Client) backoffDelay(attempt int) time.Duration {
	d := c.backoffBase << uint(attempt)
	if d <= 0 || d > c.backoffCap {
		return c.backoffCap
	}
	return d
}
