// Package identity talks to the account-name service that maps ledger
// addresses to human-readable names and back.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	URL               string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
}

// User is the service's answer for one lookup.
type User struct {
	Username string `json:"username"`
	Address  string `json:"address"`
	Exists   *bool  `json:"exists,omitempty"`
}

// StatusError is a non-200, non-404 answer.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("identity service returned %d: %s", e.StatusCode, e.Body)
}

// Client looks names up over HTTP. Requests are rate limited and retried
// with exponential backoff on transport errors and 5xx answers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	logger     *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, cfg.Burst),
		maxRetries: cfg.MaxRetries,
		logger:     logger.Named("identity"),
	}
}

// ResolveAlias returns the name registered for address. found is false when
// the service knows no name for it.
func (c *Client) ResolveAlias(ctx context.Context, address string) (name string, found bool, err error) {
	u, ok, err := c.lookup(ctx, address)
	if err != nil || !ok || u.Username == "" {
		return "", false, err
	}
	return u.Username, true, nil
}

// ResolveAddress is the inverse lookup: the address registered under name.
func (c *Client) ResolveAddress(ctx context.Context, name string) (address string, found bool, err error) {
	u, ok, err := c.lookup(ctx, name)
	if err != nil || !ok || u.Address == "" {
		return "", false, err
	}
	return u.Address, true, nil
}

func (c *Client) lookup(ctx context.Context, key string) (User, bool, error) {
	endpoint := c.baseURL + "/v1/user/" + url.PathEscape(key)

	var (
		user  User
		found bool
	)
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		u, ok, err := c.get(ctx, endpoint)
		if err != nil {
			return err
		}
		user, found = u, ok
		return nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxElapsedTime = 15 * time.Second
	var b backoff.BackOff = exp
	if c.maxRetries >= 0 {
		b = backoff.WithMaxRetries(exp, uint64(c.maxRetries))
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		c.logger.Debug("retrying lookup", zap.String("key", key), zap.Duration("wait", wait), zap.Error(err))
	})
	if err != nil {
		return User{}, false, fmt.Errorf("lookup %s: %w", key, err)
	}

	c.logger.Debug("lookup", zap.String("key", key), zap.Bool("found", found))
	return user, found, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (User, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return User{}, false, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return User{}, false, backoff.Permanent(ctx.Err())
		}
		return User{}, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return User{}, false, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return User{}, false, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return User{}, false, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	case resp.StatusCode != http.StatusOK:
		return User{}, false, backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, false, backoff.Permanent(fmt.Errorf("decode user: %w", err))
	}
	if u.Exists != nil && !*u.Exists {
		return User{}, false, nil
	}
	return u, true, nil
}
