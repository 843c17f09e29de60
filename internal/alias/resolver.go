package alias

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mDuo13/txsplain/internal/core/ledger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned by ReverseResolve when no address carries the
// name. It matches ledger.ErrNotFound under errors.Is.
var ErrNotFound = fmt.Errorf("alias: %w", ledger.ErrNotFound)

//go:generate mockgen -destination=mock_alias/mock_identity.go -package=mock_alias github.com/mDuo13/txsplain/internal/alias Identity

// Identity is the remote name service.
type Identity interface {
	ResolveAlias(ctx context.Context, address string) (name string, found bool, err error)
	ResolveAddress(ctx context.Context, name string) (address string, found bool, err error)
}

// DefaultLookupTimeout bounds one identity lookup when no timeout is set.
const DefaultLookupTimeout = 30 * time.Second

// Outcome labels a lookup for metrics.
type Outcome string

const (
	OutcomeHit      Outcome = "hit"
	OutcomeResolved Outcome = "resolved"
	OutcomeUnknown  Outcome = "unknown"
	OutcomeError    Outcome = "error"
)

type Observer interface {
	ObserveAliasLookup(outcome Outcome)
}

// Resolver answers from the cache and asks the identity service on a miss.
// A nil identity service makes every miss unknown for this process.
type Resolver struct {
	cache       *Cache
	identity    Identity
	concurrency int
	// lookupTimeout bounds one identity lookup, independent of callers.
	lookupTimeout time.Duration
	observer      Observer
	logger        *zap.Logger

	group singleflight.Group
}

type Option func(*Resolver)

// WithConcurrency bounds Prefetch.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		r.concurrency = n
	}
}

// WithLookupTimeout bounds each identity lookup. Non-positive values keep
// the default.
func WithLookupTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.lookupTimeout = d
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

func NewResolver(cache *Cache, identity Identity, logger *zap.Logger, opts ...Option) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		cache:         cache,
		identity:      identity,
		concurrency:   4,
		lookupTimeout: DefaultLookupTimeout,
		logger:        logger.Named("alias"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve returns the display text for address and records it in parties.
// It never fails: lookup errors render the address as unknown.
func (r *Resolver) Resolve(ctx context.Context, parties *Parties, address string, withPrefix bool) string {
	e := r.lookup(ctx, address)
	parties.Add(address, e.Display(address, true))
	return e.Display(address, withPrefix)
}

// Prefetch resolves addresses concurrently into the cache without touching
// any Parties, so a later sequential pass is all cache hits.
func (r *Resolver) Prefetch(ctx context.Context, addresses []string) error {
	seen := make(map[string]bool, len(addresses))
	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for _, addr := range addresses {
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		if _, ok := r.cache.Get(addr); ok {
			continue
		}
		addr := addr
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.lookup(gctx, addr)
			return nil
		})
	}
	return g.Wait()
}

// lookup answers from the cache or joins the one flight for address. The
// flight runs detached from ctx, so a caller that goes away gets an unknown
// answer without failing the others or poisoning the cache.
func (r *Resolver) lookup(ctx context.Context, address string) Entry {
	if e, ok := r.cache.Get(address); ok {
		r.observe(OutcomeHit)
		return e
	}

	flight := r.group.DoChan(address, func() (interface{}, error) {
		if e, ok := r.cache.Get(address); ok {
			return e, nil
		}
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.lookupTimeout)
		defer cancel()
		e, keep := r.fetch(fctx, address)
		if keep {
			r.cache.Set(address, e)
		}
		return e, nil
	})

	select {
	case res := <-flight:
		return res.Val.(Entry)
	case <-ctx.Done():
		r.logger.Debug("alias lookup abandoned", zap.String("address", address), zap.Error(ctx.Err()))
		return Entry{Transient: true}
	}
}

// fetch asks the identity service. keep is false when the lookup ran out
// of time, so the next caller asks again.
func (r *Resolver) fetch(ctx context.Context, address string) (e Entry, keep bool) {
	if r.identity == nil {
		r.observe(OutcomeUnknown)
		return Entry{Transient: true}, true
	}

	name, found, err := r.identity.ResolveAlias(ctx, address)
	switch {
	case err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		r.logger.Warn("alias lookup timed out", zap.String("address", address), zap.Error(err))
		r.observe(OutcomeError)
		return Entry{Transient: true}, false
	case err != nil:
		r.logger.Warn("alias lookup failed", zap.String("address", address), zap.Error(err))
		r.observe(OutcomeError)
		return Entry{Transient: true}, true
	case !found || name == "":
		r.logger.Debug("no alias", zap.String("address", address))
		r.observe(OutcomeUnknown)
		return Entry{}, true
	}
	r.logger.Debug("alias resolved", zap.String("address", address), zap.String("name", name))
	r.observe(OutcomeResolved)
	return Entry{Name: name, Known: true}, true
}

// ReverseResolve finds the address for a name, with or without the display
// prefix. The cache is scanned first.
func (r *Resolver) ReverseResolve(ctx context.Context, name string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), Prefix)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if addr, ok := r.cache.FindByName(name); ok {
		r.observe(OutcomeHit)
		return addr, nil
	}
	if r.identity == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	addr, found, err := r.identity.ResolveAddress(ctx, name)
	if err != nil {
		r.observe(OutcomeError)
		return "", fmt.Errorf("resolve %s%s: %w", Prefix, name, err)
	}
	if !found || addr == "" {
		r.observe(OutcomeUnknown)
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	r.observe(OutcomeResolved)
	if _, ok := r.cache.Get(addr); !ok {
		r.cache.Set(addr, Entry{Name: name, Known: true})
	}
	return addr, nil
}

// IsNotFound reports whether err came from a failed reverse lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (r *Resolver) observe(o Outcome) {
	if r.observer != nil {
		r.observer.ObserveAliasLookup(o)
	}
}
