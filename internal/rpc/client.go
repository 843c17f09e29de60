// Package rpc is a client for the rippled public API. It fetches the
// transactions, ledgers and ledger entries the explainer narrates.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/mDuo13/txsplain/internal/rpc/rpc_types"
	"go.uber.org/zap"
)

const (
	TransportHTTP      = "http"
	TransportWebSocket = "ws"
)

// Transport sends one API call and returns the result object. Error
// statuses are returned as *rpc_types.RpcError.
type Transport interface {
	Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error)
	Close() error
}

// Observer receives one callback per API call.
type Observer interface {
	ObserveCall(method string, duration time.Duration, err error)
}

type Config struct {
	URL             string
	Transport       string
	Timeout         time.Duration
	MaxRetries      int
	Binary          bool
	LedgerCacheSize int
}

// Client implements the ledger-data lookups on top of a Transport.
type Client struct {
	transport Transport
	binary    bool
	ledgers   *LedgerCache
	observer  Observer
	logger    *zap.Logger
}

type Option func(*Client)

// WithTransport replaces the transport built from Config.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New builds a client. The transport is chosen by cfg.Transport unless
// WithTransport is given.
func New(cfg Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := NewLedgerCache(LedgerCacheConfig{MaxLedgers: cfg.LedgerCacheSize})
	if err != nil {
		return nil, fmt.Errorf("create ledger cache: %w", err)
	}

	c := &Client{
		binary:  cfg.Binary,
		ledgers: cache,
		logger:  logger.Named("rpc"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		switch cfg.Transport {
		case TransportHTTP, "":
			retry := DefaultRetryConfig()
			retry.MaxRetries = cfg.MaxRetries
			c.transport = NewHTTPTransport(cfg.URL, cfg.Timeout, retry, c.logger)
		case TransportWebSocket:
			c.transport = NewWebSocketTransport(cfg.URL, cfg.Timeout, c.logger)
		default:
			return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
		}
	}

	return c, nil
}

func (c *Client) Close() error {
	return c.transport.Close()
}

// CacheStats reports the ledger header cache counters.
func (c *Client) CacheStats() CacheStats {
	return c.ledgers.Stats()
}

// call runs one method and decodes its result into out. Not-found errors
// from the server are reported as ledger.ErrNotFound.
func (c *Client) call(ctx context.Context, method string, params, out interface{}) error {
	start := time.Now()
	raw, err := c.transport.Call(ctx, method, params)
	if c.observer != nil {
		c.observer.ObserveCall(method, time.Since(start), err)
	}
	if err != nil {
		var rpcErr *rpc_types.RpcError
		if errors.As(err, &rpcErr) && rpcErr.IsNotFound() {
			return fmt.Errorf("%s: %w: %w", method, ledger.ErrNotFound, err)
		}
		return fmt.Errorf("%s: %w", method, err)
	}

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)))

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", method, err)
	}
	return nil
}
