package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/pkg/request"
)

// ErrCoreUnavailable is returned while the breaker is open or half-open and saturated.
var ErrCoreUnavailable = errors.New("core service unavailable")

// Outbound describes one request relayed to the core service.
type Outbound struct {
	Method    string
	Path      string
	RawQuery  string
	UserID    string
	RequestID string
	Body      []byte
}

// Response is the buffered core response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Forwarder relays a validated request to the core service.
type Forwarder interface {
	Forward(ctx context.Context, out Outbound) (*Response, error)
}

// serverFailure marks a 5xx answer so the breaker counts it, while the response still reaches the caller.
type serverFailure struct {
	resp *Response
}

func (e *serverFailure) Error() string {
	return fmt.Sprintf("core answered %d", e.resp.Status)
}

type Client struct {
	base    *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	base, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_SERVER_URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid GATEWAY_SERVER_URL %q: scheme and host are required", cfg.ServerURL)
	}

	log = log.Named("client")
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "core",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		log:     log,
	}, nil
}

// Forward sends out to the core service through the circuit breaker.
// Transport errors and 5xx answers count as breaker failures.
func (c *Client) Forward(ctx context.Context, out Outbound) (*Response, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.do(ctx, out)
		if err != nil {
			return nil, err
		}
		if resp.Status >= http.StatusInternalServerError {
			return nil, &serverFailure{resp: resp}
		}
		return resp, nil
	})

	var failure *serverFailure
	switch {
	case err == nil:
		return result.(*Response), nil
	case errors.As(err, &failure):
		return failure.resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%w: %v", ErrCoreUnavailable, err)
	default:
		c.log.Error("relay failed", zap.String("method", out.Method), zap.String("path", out.Path), zap.Error(err))
		return nil, err
	}
}

func (c *Client) do(ctx context.Context, out Outbound) (*Response, error) {
	target := *c.base
	target.Path = strings.TrimRight(c.base.Path, "/") + out.Path
	target.RawQuery = out.RawQuery

	var body io.Reader = http.NoBody
	if len(out.Body) > 0 {
		body = bytes.NewReader(out.Body)
	}

	req, err := http.NewRequestWithContext(ctx, out.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if len(out.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if out.UserID != "" {
		req.Header.Set(request.UserIDHeader, out.UserID)
	}
	if out.RequestID != "" {
		req.Header.Set("X-Request-Id", out.RequestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach core: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read core response: %w", err)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
