// Package httpclient implements the HTTP transport used by the mempool API
// client: a thin wrapper over net/http that retries transient upstream
// statuses with exponential backoff and maps terminal non-2xx responses to a
// structured error.
//
// The retry policy covers HTTP statuses only. Network-level failures
// (connection reset, DNS) surface immediately without retry. No timeout is
// imposed here; configure one on the underlying *http.Client.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goodnatureofminers/mempool-api/internal/clock"
)

// Method is an HTTP request method. The upstream API only uses GET and POST.
type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPost Method = http.MethodPost
)

const (
	// DefaultMaxRetries is the default number of retries of a retryable status.
	DefaultMaxRetries uint32 = 6
	// DefaultBaseBackoff is the first retry delay; each retry doubles it.
	DefaultBaseBackoff = 256 * time.Millisecond
)

// Config carries the tunables of a Client.
type Config struct {
	// MaxRetries bounds the number of retried attempts. 0 disables retry.
	MaxRetries uint32
	// BaseBackoff is the delay before the first retry.
	BaseBackoff time.Duration
	// HTTPClient is the underlying client. Nil means a default one.
	HTTPClient *http.Client
}

// Client sends HTTP requests with retry on transient upstream statuses.
// It is safe for concurrent use; retry state is per call.
type Client struct {
	httpClient  *http.Client
	maxRetries  uint32
	baseBackoff time.Duration
}

// New constructs a Client with default configuration: DefaultMaxRetries
// retries with DefaultBaseBackoff.
func New() *Client {
	return NewWithConfig(Config{MaxRetries: DefaultMaxRetries})
}

// NewWithConfig constructs a Client from cfg, applying defaults for the zero
// BaseBackoff and HTTPClient. MaxRetries is taken as given: a zero value
// disables retry, which is a valid configuration; use New for the default
// retry count.
func NewWithConfig(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseBackoff := cfg.BaseBackoff
	if baseBackoff == 0 {
		baseBackoff = DefaultBaseBackoff
	}
	return &Client{
		httpClient:  httpClient,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: baseBackoff,
	}
}

// Send issues one HTTP exchange against the fully-qualified url and returns
// the response body. Statuses 429, 500 and 503 are retried up to MaxRetries
// times with doubling backoff; any other non-2xx status terminates the call
// with a *StatusError carrying the body text. A network error is returned
// as-is without retry. Cancelling ctx is honored during both the exchange and
// the backoff sleep.
func (c *Client) Send(ctx context.Context, method Method, url string, body []byte) ([]byte, error) {
	backoff := clock.Backoff{Base: c.baseBackoff}
	attempts := uint32(0)

	for {
		status, respBody, err := c.do(ctx, method, url, body)
		if err != nil {
			return nil, err
		}

		if attempts < c.maxRetries && isStatusRetryable(status) {
			if err := clock.Sleep(ctx, backoff.Next()); err != nil {
				return nil, err
			}
			attempts++
			continue
		}

		if status >= 200 && status < 300 {
			return respBody, nil
		}
		return nil, &StatusError{Status: status, Message: string(respBody)}
	}
}

func (c *Client) do(ctx context.Context, method Method, url string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// isStatusRetryable reports whether the status indicates a transient upstream
// failure: 429 Too Many Requests, 500 Internal Server Error, 503 Service
// Unavailable.
func isStatusRetryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	default:
		return false
	}
}

// StatusError is a terminal non-2xx response. Message holds the response body
// text.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Status, e.Message)
}
