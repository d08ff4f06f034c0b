// Package formspree submits form fields to a hosted form-ingestion endpoint.
package formspree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 64 << 10

var ErrCircuitOpen = errors.New("formspree: circuit open")

// FieldError is a per-field rejection reported by the endpoint.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the outcome of a submission the endpoint answered.
type Response struct {
	Accepted bool
	Next     string
	Errors   []FieldError
}

// UpstreamError covers transport failures and answers that are neither accepted nor field errors.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("formspree: %s: %v", e.Message, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("formspree: %s (status %d)", e.Message, e.StatusCode)
	default:
		return "formspree: " + e.Message
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type Logger interface {
	Warn(msg string, args ...any)
}

type Options struct {
	Endpoint string
	Timeout  time.Duration
	// FailureThreshold consecutive upstream failures open the circuit.
	FailureThreshold uint32
	// RecoveryTimeout is how long the circuit stays open before a probe.
	RecoveryTimeout time.Duration
	HTTPClient      *http.Client
	Logger          Logger
}

type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
}

func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("formspree: invalid endpoint %q", opts.Endpoint)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.RecoveryTimeout <= 0 {
		opts.RecoveryTimeout = 30 * time.Second
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	threshold := opts.FailureThreshold
	logger := opts.Logger
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "formspree",
		MaxRequests: 1,
		Timeout:     opts.RecoveryTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("Form backend circuit changed state", "breaker", name, "from", from.String(), "to", to.String())
			}
		},
	})

	return &Client{endpoint: endpoint, http: httpClient, breaker: breaker}, nil
}

// State reports the circuit breaker state ("closed", "half-open", "open").
func (c *Client) State() string {
	return c.breaker.State().String()
}

// Submit posts fields to {endpoint}/{formID} once. Field rejections are returned
// as a Response; everything else that is not an acceptance is an error.
func (c *Client) Submit(ctx context.Context, formID string, fields map[string]string) (*Response, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, errors.New("formspree: form ID is required")
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("formspree: encode fields: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, c.endpoint+"/"+url.PathEscape(formID), body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return nil, err
	}

	return result.(*Response), nil
}

type wireResponse struct {
	OK     bool         `json:"ok"`
	Next   string       `json:"next"`
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors"`
}

func (c *Client) post(ctx context.Context, target string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}

	var wire wireResponse
	decodeErr := json.Unmarshal(raw, &wire)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return &Response{Accepted: true, Next: wire.Next}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests &&
		decodeErr == nil && len(wire.Errors) > 0:
		return &Response{Errors: wire.Errors}, nil
	}

	msg := strings.TrimSpace(wire.Error)
	if msg == "" {
		msg = "unexpected response"
	}
	return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
}
