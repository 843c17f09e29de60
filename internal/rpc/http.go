package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mDuo13/txsplain/internal/rpc/rpc_types"
	"go.uber.org/zap"
)

// HTTPError is a non-200 answer from the JSON-RPC endpoint.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("POST %s failed with status %d %s: %s", e.URL, e.StatusCode, e.Status, e.Body)
}

// Retryable reports whether another attempt may succeed.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout ||
		e.StatusCode >= 500
}

// RetryConfig configures the retry behavior
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxElapsedTime  time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
		MaxElapsedTime:  30 * time.Second,
	}
}

func (r RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.InitialInterval
	exp.MaxInterval = r.MaxInterval
	exp.Multiplier = r.Multiplier
	exp.MaxElapsedTime = r.MaxElapsedTime

	var b backoff.BackOff = exp
	if r.MaxRetries >= 0 {
		b = backoff.WithMaxRetries(exp, uint64(r.MaxRetries))
	}
	return backoff.WithContext(b, ctx)
}

// HTTPTransport posts JSON-RPC requests. Each attempt gets its own
// timeout; transport errors, 429, 5xx and busy-server statuses are retried.
type HTTPTransport struct {
	url     string
	client  *http.Client
	timeout time.Duration
	retry   RetryConfig
	logger  *zap.Logger
}

func NewHTTPTransport(url string, timeout time.Duration, retry RetryConfig, logger *zap.Logger) *HTTPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPTransport{
		url:     url,
		client:  &http.Client{},
		timeout: timeout,
		retry:   retry,
		logger:  logger,
	}
}

func (t *HTTPTransport) Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	if params == nil {
		params = struct{}{}
	}
	body, err := json.Marshal(rpc_types.Request{Method: method, Params: []interface{}{params}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var result json.RawMessage
	operation := func() error {
		res, err := t.attempt(ctx, body)
		if err != nil {
			return err
		}
		result = res
		return nil
	}
	notify := func(err error, wait time.Duration) {
		t.logger.Debug("retrying api call",
			zap.String("method", method),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, t.retry.backOff(ctx), notify); err != nil {
		return nil, err
	}
	return result, nil
}

func (t *HTTPTransport) attempt(ctx context.Context, body []byte) (json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        t.url,
			Body:       string(data),
		}
		if httpErr.Retryable() {
			return nil, httpErr
		}
		return nil, backoff.Permanent(httpErr)
	}

	var envelope rpc_types.Response
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	var status rpc_types.Status
	if err := json.Unmarshal(envelope.Result, &status); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode status: %w", err))
	}
	if rpcErr := status.Err(); rpcErr != nil {
		if rpcErr.IsTransient() {
			return nil, rpcErr
		}
		return nil, backoff.Permanent(rpcErr)
	}
	return envelope.Result, nil
}

func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
