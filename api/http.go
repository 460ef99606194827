package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultUserAgent   = "readmore/1.0 (https://github.com/poiesic/readmore)"
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultRetryDelay  = 200 * time.Millisecond
	maxBodySize        = 4 << 20
)

// HTTPClient implements QueryClient against an api.php endpoint.
type HTTPClient struct {
	endpoint    *url.URL
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

var _ QueryClient = (*HTTPClient)(nil)

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient) error

// WithHTTPClient sets the underlying *http.Client.
// Default is a client with a 10s timeout.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) error {
		if client != nil {
			c.httpClient = client
		}
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default *http.Client.
// It has no effect on a client set with WithHTTPClient.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(c *HTTPClient) error {
		if timeout > 0 {
			c.timeout = timeout
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) HTTPOption {
	return func(c *HTTPClient) error {
		if userAgent != "" {
			c.userAgent = userAgent
		}
		return nil
	}
}

// WithRetry sets the retry policy for transient failures.
// maxAttempts below 1 disables retries.
func WithRetry(maxAttempts int, baseDelay time.Duration) HTTPOption {
	return func(c *HTTPClient) error {
		if maxAttempts < 1 {
			maxAttempts = 1
		}
		c.maxAttempts = maxAttempts
		c.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(c *HTTPClient) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewHTTPClient creates a client for the given api.php endpoint.
func NewHTTPClient(endpoint string, opts ...HTTPOption) (*HTTPClient, error) {
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidEndpoint, u.Scheme)
	}

	c := &HTTPClient{
		endpoint:    u,
		timeout:     defaultTimeout,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Get issues a GET request with params and decodes the JSON response.
// Network errors, 429 and 5xx responses are retried; other failures are not.
func (c *HTTPClient) Get(ctx context.Context, params Params) (*Response, error) {
	u := *c.endpoint
	u.RawQuery = params.Encode()
	target := u.String()

	var resp *Response
	err := RetryWithBackoff(ctx, func() error {
		var err error
		resp, err = c.do(ctx, target)
		return err
	}, c.maxAttempts, c.retryDelay)
	if err != nil {
		c.logger.Debug("query failed", "url", target, "err", err)
		return nil, err
	}

	if resp.Error != nil {
		c.logger.Warn("query returned api error", "code", resp.Error.Code, "info", resp.Error.Info)
	}
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, Permanent(err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, Permanent(ctx.Err())
		}
		return nil, err
	}
	defer httpResp.Body.Close()

	switch {
	case httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500:
		io.Copy(io.Discard, io.LimitReader(httpResp.Body, maxBodySize))
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, httpResp.Status)
	case httpResp.StatusCode < 200 || httpResp.StatusCode >= 300:
		return nil, Permanent(fmt.Errorf("%w: %s", ErrBadStatus, httpResp.Status))
	}

	var resp Response
	if err := json.NewDecoder(io.LimitReader(httpResp.Body, maxBodySize)).Decode(&resp); err != nil {
		return nil, Permanent(fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	return &resp, nil
}
