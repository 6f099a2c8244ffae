package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL          = "https://finnhub.io/api/v1"
	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 2
	defaultRetryBackoffBase = 150 * time.Millisecond
)

// ErrSymbolNotFound indicates the requested symbol is not tracked by Finnhub.
var ErrSymbolNotFound = errors.New("finnhub: symbol not found")

// ErrRateLimited indicates the API key exhausted its request budget.
var ErrRateLimited = errors.New("finnhub: rate limited")

// Client wraps access to the Finnhub REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
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

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithAPIKey sets the Finnhub API token.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// NewClient constructs a Finnhub API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// doRequest issues a GET against path with params and decodes the response into result.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("token", c.apiKey)
	}
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("finnhub: build request: %w", err)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("finnhub: read response: %w", readErr)
			case resp.StatusCode == http.StatusTooManyRequests:
				lastErr = ErrRateLimited
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = fmt.Errorf("finnhub: http status %d: %s", resp.StatusCode, string(body))
			default:
				if result != nil {
					if err := json.Unmarshal(body, result); err != nil {
						return fmt.Errorf("finnhub: decode response: %w", err)
					}
				}
				return nil
			}
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("finnhub: request failed without error detail")
}

// Quote fetches the latest quote for a symbol.
// Returns ErrSymbolNotFound when Finnhub has no data for it.
func (c *Client) Quote(ctx context.Context, symbol string) (*QuoteData, error) {
	canonical, err := canonicalSymbol(symbol)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("symbol", canonical)

	var quote QuoteData
	if err := c.doRequest(ctx, "/quote", params, &quote); err != nil {
		return nil, err
	}
	if quote.empty() {
		return nil, ErrSymbolNotFound
	}
	return &quote, nil
}

// Profile fetches the company profile for a symbol.
// Returns ErrSymbolNotFound when Finnhub has no profile for it.
func (c *Client) Profile(ctx context.Context, symbol string) (*ProfileData, error) {
	canonical, err := canonicalSymbol(symbol)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("symbol", canonical)

	var profile ProfileData
	if err := c.doRequest(ctx, "/stock/profile2", params, &profile); err != nil {
		return nil, err
	}
	if profile.Ticker == "" && profile.Name == "" {
		return nil, ErrSymbolNotFound
	}
	return &profile, nil
}

// Metrics fetches basic financials for a symbol.
func (c *Client) Metrics(ctx context.Context, symbol string) (*MetricsData, error) {
	canonical, err := canonicalSymbol(symbol)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("symbol", canonical)
	params.Set("metric", "all")

	var metrics MetricsData
	if err := c.doRequest(ctx, "/stock/metric", params, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

func canonicalSymbol(symbol string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(symbol))
	if trimmed == "" {
		return "", errors.New("finnhub: symbol cannot be empty")
	}
	return trimmed, nil
}
