package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/explain"
	"github.com/mDuo13/txsplain/internal/identity"
	"github.com/mDuo13/txsplain/internal/metrics"
	"github.com/mDuo13/txsplain/internal/rpc"
	"go.uber.org/zap"
)

// app holds the collaborators one command run needs.
type app struct {
	client    *rpc.Client
	resolver  *alias.Resolver
	store     alias.Store
	explainer *explain.Explainer
	metrics   *metrics.Metrics
}

// openApp wires the ledger client, the alias resolver and its persisted
// cache. Metrics are collected only when a listener is configured.
func openApp(ctx context.Context, explainOpts ...explain.Option) (*app, error) {
	a := &app{}
	if cfg.Metrics.Listen != "" {
		a.metrics = metrics.New()
	}

	var rpcOpts []rpc.Option
	if a.metrics != nil {
		rpcOpts = append(rpcOpts, rpc.WithObserver(a.metrics))
	}
	client, err := rpc.New(rpc.Config{
		URL:             cfg.Rippled.URL,
		Transport:       cfg.Rippled.Transport,
		Timeout:         cfg.Rippled.Timeout,
		MaxRetries:      cfg.Rippled.MaxRetries,
		Binary:          cfg.Rippled.Binary,
		LedgerCacheSize: cfg.Rippled.LedgerCacheSize,
	}, logger, rpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("ledger client: %w", err)
	}
	a.client = client

	resolver, store, err := openResolver(ctx, a.metrics)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	a.resolver = resolver
	a.store = store

	if a.metrics != nil {
		explainOpts = append(explainOpts, explain.WithObserver(a.metrics))
	}
	a.explainer = explain.New(client, a.resolver, logger, explainOpts...)
	return a, nil
}

// openResolver restores the persisted alias cache behind a resolver. A nil
// m disables lookup metrics.
func openResolver(ctx context.Context, m *metrics.Metrics) (*alias.Resolver, alias.Store, error) {
	store, err := alias.OpenStore(ctx, alias.StoreConfig{
		Backend: cfg.AliasCache.Backend,
		Path:    cfg.AliasCache.Path,
		DSN:     cfg.AliasCache.DSN,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("alias cache: %w", err)
	}

	cache := alias.NewCache()
	entries, err := store.Load(ctx)
	if err != nil {
		// A cold cache only costs lookups.
		logger.Warn("couldn't load alias cache", zap.String("backend", cfg.AliasCache.Backend), zap.Error(err))
	} else {
		cache.Restore(entries)
		logger.Debug("loaded alias cache", zap.Int("entries", len(entries)))
	}

	// Each attempt gets the identity timeout; retries add attempts.
	lookupTimeout := cfg.Identity.Timeout * time.Duration(cfg.Identity.MaxRetries+1)
	opts := []alias.Option{
		alias.WithConcurrency(cfg.Identity.Concurrency),
		alias.WithLookupTimeout(lookupTimeout),
	}
	if m != nil {
		opts = append(opts, alias.WithObserver(m))
	}
	return alias.NewResolver(cache, identityService(), logger, opts...), store, nil
}

// identityService returns nil when lookups are disabled so every miss is
// unknown for this run.
func identityService() alias.Identity {
	if !cfg.Identity.Enabled {
		return nil
	}
	return identity.New(identity.Config{
		URL:               cfg.Identity.URL,
		Timeout:           cfg.Identity.Timeout,
		RequestsPerSecond: cfg.Identity.RequestsPerSecond,
		Burst:             cfg.Identity.Burst,
		MaxRetries:        cfg.Identity.MaxRetries,
	}, logger)
}

// Close persists the alias cache and releases connections.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	cache := a.resolver.Cache()
	if err := a.store.Save(ctx, cache.Snapshot()); err != nil {
		errs = append(errs, fmt.Errorf("save alias cache: %w", err))
	} else {
		logger.Debug("saved alias cache", zap.Int("entries", cache.Len()))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close alias cache: %w", err))
	}
	if err := a.client.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close ledger client: %w", err))
	}

	stats := a.client.CacheStats()
	logger.Debug("ledger cache",
		zap.Uint64("hits", stats.Hits),
		zap.Uint64("misses", stats.Misses),
		zap.Float64("hit_rate", stats.HitRate))
	return errors.Join(errs...)
}
