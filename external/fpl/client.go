package fpl

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
	"github.com/riskibarqy/fpl-mcp/internal/platform/resilience"
	"github.com/riskibarqy/fpl-mcp/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	DefaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "fpl-mcp/1.0"
	maxBodySize      = 16 << 20
)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public FPL API. One instance is shared by every tool call.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	userAgent      string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                userAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
			MaxResponseBodySize: maxBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		http:           httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		userAgent:      userAgent,
		logger:         logger,
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
	c.breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker, func(from, to resilience.CircuitState) {
		c.logger.Warn("fpl circuit breaker state changed", "from", from, "to", to)
	})

	return c
}

// CloseIdleConnections releases pooled upstream connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "GET %s", endpoint)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			return errors.Wrapf(err, "GET %s", endpoint)
		}
	}

	raw, err := c.execute(ctx, endpoint)
	if c.circuitEnabled {
		if isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		c.logger.WarnContext(ctx, "fpl request failed", "endpoint", endpoint, "error", err)
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return errors.Wrapf(err, "decode %s payload", endpoint)
	}

	return nil
}

func (c *Client) execute(ctx context.Context, endpoint string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.SetUserAgent(c.userAgent)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
			return nil, errors.Mark(errors.Wrapf(err, "GET %s", endpoint), usecase.ErrUpstreamTimeout)
		}
		return nil, errors.Wrapf(err, "GET %s", endpoint)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return nil, errors.WithStack(&usecase.UpstreamError{Endpoint: endpoint, StatusCode: status})
	}

	return append([]byte(nil), resp.Body()...), nil
}

// isCircuitFailure counts only failures that say the upstream itself is unhealthy.
func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}

	var upstreamErr *usecase.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode >= fasthttp.StatusInternalServerError
	}

	return true
}

func isNotFound(err error) bool {
	var upstreamErr *usecase.UpstreamError
	return errors.As(err, &upstreamErr) && upstreamErr.StatusCode == fasthttp.StatusNotFound
}
