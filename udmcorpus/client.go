package udmcorpus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codemurt/udmcorpus-wrapper/internal/infra"
	"github.com/codemurt/udmcorpus-wrapper/metrics"
)

const (
	// DefaultBaseURL is the public corpus API root
	DefaultBaseURL = "https://udmcorpus.udman.ru/api/public"

	// API endpoints, relative to the base URL
	endpointDictionary = "dictionary/search"
	endpointSearch     = "search"

	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DictionaryCacheSize bounds the word-lookup memoization cache
	DictionaryCacheSize = 128

	// dictionaryCacheTTL for cached lookups; the dictionary is stable
	// within a session, so the TTL is generous
	dictionaryCacheTTL = time.Hour
)

// Client provides access to the Udmurt corpus API. It is the single entry
// point for both the dictionary and the text-search endpoint families.
// A Client is safe to reuse across calls; pages within one search are
// always fetched sequentially because each request echoes state from the
// previous response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	logger     *slog.Logger
	analyzer   Analyzer

	// Resilience infrastructure
	cache          *infra.Cache
	circuitBreaker *infra.CircuitBreaker
	dedup          *infra.RequestDeduplicator
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom API root (useful for testing)
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithAnalyzer sets the morphological analyzer used for the lemma fallback
func WithAnalyzer(a Analyzer) ClientOption {
	return func(c *Client) {
		c.analyzer = a
	}
}

// WithCache sets a custom lookup cache
func WithCache(cache *infra.Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxRetries sets the transport retry budget for network and 5xx failures
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// NewClient creates a corpus client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:     newHTTPClient(DefaultTimeout),
		baseURL:        DefaultBaseURL,
		userAgent:      "udmcorpus-wrapper/1.0 (https://github.com/codemurt/udmcorpus-wrapper)",
		maxRetries:     3,
		logger:         slog.Default(),
		cache:          infra.NewCache(DictionaryCacheSize),
		circuitBreaker: infra.NewCircuitBreaker(),
		dedup:          infra.NewRequestDeduplicator(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromConfig creates a client from environment-driven configuration
func NewClientFromConfig(cfg *Config, logger *slog.Logger) *Client {
	opts := []ClientOption{
		WithBaseURL(cfg.BaseURL),
		WithHTTPClient(newHTTPClient(cfg.Timeout)),
		WithUserAgent(cfg.UserAgent),
		WithMaxRetries(cfg.MaxRetries),
		WithLogger(logger),
	}
	if cfg.HasAnalyzer() {
		opts = append(opts, WithAnalyzer(NewHTTPAnalyzer(cfg.AnalyzerURL)))
	}
	return NewClient(opts...)
}

// Close releases resources held by the client
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// CircuitBreakerStats returns the current circuit breaker state
func (c *Client) CircuitBreakerStats() infra.CircuitBreakerStats {
	return c.circuitBreaker.Stats()
}

// CacheSize returns the current number of cached lookups
func (c *Client) CacheSize() int64 {
	return c.cache.Size()
}

// makeRequest POSTs a JSON payload to an endpoint and returns the response
// body. Network errors and 5xx responses are retried with backoff; any
// final non-200 status surfaces as UpstreamError. Callers handle decoding.
func (c *Client) makeRequest(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	if !c.circuitBreaker.Allow() {
		stats := c.circuitBreaker.Stats()
		return nil, &infra.ErrCircuitOpen{
			State:    stats.State,
			RetryAt:  stats.LastFailure.Add(30 * time.Second),
			Failures: stats.ConsecutiveFails,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request for %s: %w", endpoint, err)
	}

	reqURL := c.baseURL + "/" + endpoint
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with context awareness
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			metrics.CorpusAPIRetries.WithLabelValues(endpoint).Inc()
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			}
		}

		// Fresh request per attempt; the body reader is consumed on send
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Warn("corpus API request failed, retrying",
				"endpoint", endpoint,
				"attempt", attempt+1,
				"error", err)
			continue
		}

		respBody, err := readAndClose(resp)
		if err != nil {
			lastErr = fmt.Errorf("reading response: %w", err)
			continue
		}

		// 5xx means the service is struggling; retry
		if resp.StatusCode >= 500 {
			lastErr = &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
			c.logger.Warn("corpus API returned server error",
				"endpoint", endpoint,
				"status", resp.StatusCode,
				"attempt", attempt+1)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			// Client errors are the caller's problem, not a service outage
			c.circuitBreaker.RecordSuccess()
			metrics.RecordAPICall(endpoint, time.Since(start).Seconds(), false, fmt.Sprintf("http_%d", resp.StatusCode))
			return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}

		c.circuitBreaker.RecordSuccess()
		metrics.RecordAPICall(endpoint, time.Since(start).Seconds(), true, "")
		return respBody, nil
	}

	c.circuitBreaker.RecordFailure()
	metrics.RecordAPICall(endpoint, time.Since(start).Seconds(), false, "transport")
	return nil, lastErr
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with tuned transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
