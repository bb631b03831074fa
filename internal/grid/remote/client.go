package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/powercast-data/internal/grid"
	"github.com/i474232898/powercast-data/internal/metrics"
)

const (
	DefaultBaseURL = "http://localhost:8000"

	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
)

// ErrUnavailable is the only error Request returns. Transport failures, non-2xx
// statuses and undecodable bodies are all wrapped in it.
var ErrUnavailable = errors.New("remote unavailable")

var (
	errStatus       = errors.New("unexpected status code")
	errDecode       = errors.New("malformed response body")
	errNoHTTPClient = errors.New("http client not configured")
)

// Config holds the settings read once at startup.
type Config struct {
	BaseURL string

	// HTTPClient defaults to a client without an explicit timeout.
	HTTPClient *http.Client

	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// Client issues single-attempt JSON requests against the forecasting backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

var _ grid.Remote = (*Client)(nil)

// NewClient creates a Client. The configuration is copied; later changes to
// cfg have no effect.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}

	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "forecast-backend",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.CircuitBreakerStateGauge.WithLabelValues(name).Set(float64(to))
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		circuit:    cb,
		logger:     logger,
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs one call to BaseURL+endpoint and decodes the JSON body into
// out (skipped when out is nil). Caller headers are merged over the default
// Content-Type: application/json.
func (c *Client) Request(ctx context.Context, endpoint string, opts grid.RequestOptions, out any) error {
	if c.httpClient == nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, errNoHTTPClient)
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	req, err := c.buildRequest(ctx, method, endpoint, opts)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, endpoint, err)
	}

	start := time.Now()
	_, err = c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("%w: %d", errStatus, resp.StatusCode)
		}

		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, nil
		}
		if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
			return nil, fmt.Errorf("%w: %v", errDecode, decErr)
		}
		return nil, nil
	})
	duration := time.Since(start)

	path := pathOf(endpoint)
	metrics.RemoteRequestDuration.WithLabelValues(path).Observe(duration.Seconds())

	if err != nil {
		outcome := "unavailable"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "circuit_open"
		}
		metrics.RemoteRequestsTotal.WithLabelValues(path, outcome).Inc()

		c.logger.Debug("remote request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", req.Header.Get("X-Request-ID")),
			zap.String("outcome", outcome),
			zap.Duration("duration", duration),
			zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, endpoint, err)
	}

	metrics.RemoteRequestsTotal.WithLabelValues(path, "ok").Inc()
	c.logger.Debug("remote request succeeded",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Duration("duration", duration))
	return nil
}

func (c *Client) buildRequest(ctx context.Context, method, endpoint string, opts grid.RequestOptions) (*http.Request, error) {
	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	return req, nil
}

// encodeBody passes raw bodies through untouched and JSON-encodes anything else.
func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	case io.Reader:
		return b, nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(raw), nil
	}
}

// pathOf drops the query so metric labels stay low-cardinality.
func pathOf(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
