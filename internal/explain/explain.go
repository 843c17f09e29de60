// Package explain turns ledger records into prose. Every narration first
// collects the addresses it will mention and prefetches their aliases,
// then formats sentences from cache hits in a single sequential pass.
package explain

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/mDuo13/txsplain/internal/core/tx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mock_explain/mock_source.go -package=mock_explain github.com/mDuo13/txsplain/internal/explain LedgerSource

// LedgerSource fetches the records narrated here. Implementations return
// an error matching ledger.ErrNotFound when a record does not exist.
type LedgerSource interface {
	Transaction(ctx context.Context, hash string) (*tx.Record, error)
	Ledger(ctx context.Context, sel ledger.Selector) (*ledger.Header, error)
	AccountRoot(ctx context.Context, address string, sel ledger.Selector) (*ledger.AccountRoot, error)
	TrustLine(ctx context.Context, key ledger.TrustLineKey, sel ledger.Selector) (*ledger.RippleState, error)
	Offer(ctx context.Context, key ledger.OfferKey, sel ledger.Selector) (*ledger.Offer, error)
	Reserves(ctx context.Context) (ledger.Reserves, error)
}

// Kind names a record kind for observers.
type Kind string

const (
	KindTransaction Kind = "transaction"
	KindAccount     Kind = "account"
	KindTrustLine   Kind = "trustline"
	KindOffer       Kind = "offer"
)

type Observer interface {
	ObserveNarration(kind Kind, duration time.Duration, err error)
}

// Explainer narrates records. It is safe for concurrent use; each call
// owns its own party tracker.
type Explainer struct {
	source   LedgerSource
	resolver *alias.Resolver
	selector ledger.Selector
	observer Observer
	logger   *zap.Logger
}

type Option func(*Explainer)

// WithSelector picks the ledger version account, trust line and offer
// lookups read from. The default is the latest validated ledger.
func WithSelector(sel ledger.Selector) Option {
	return func(e *Explainer) {
		e.selector = sel
	}
}

func WithObserver(o Observer) Option {
	return func(e *Explainer) {
		e.observer = o
	}
}

// New builds an Explainer. A nil resolver resolves every address as
// unknown.
func New(source LedgerSource, resolver *alias.Resolver, logger *zap.Logger, opts ...Option) *Explainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resolver == nil {
		resolver = alias.NewResolver(nil, nil, logger)
	}
	e := &Explainer{
		source:   source,
		resolver: resolver,
		selector: ledger.Validated(),
		logger:   logger.Named("explain"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Explainer) Resolver() *alias.Resolver {
	return e.resolver
}

func (e *Explainer) observe(kind Kind, start time.Time, err error) {
	if e.observer != nil {
		e.observer.ObserveNarration(kind, time.Since(start), err)
	}
}

// narration is the state of one explanation: its party tracker and the
// sentences written so far.
type narration struct {
	ctx      context.Context
	resolver *alias.Resolver
	parties  *alias.Parties
	b        strings.Builder
}

// begin prefetches the aliases of addresses and starts a fresh narration.
// Prefetch failures only cost cache hits, so they are logged and ignored.
func (e *Explainer) begin(ctx context.Context, addresses []string) *narration {
	if err := e.resolver.Prefetch(ctx, addresses); err != nil {
		e.logger.Warn("alias prefetch failed", zap.Error(err))
	}
	return &narration{
		ctx:      ctx,
		resolver: e.resolver,
		parties:  alias.NewParties(),
	}
}

// name renders an address with the display prefix.
func (n *narration) name(address string) string {
	return n.resolver.Resolve(n.ctx, n.parties, address, true)
}

// bare renders an address without the prefix, as used after a currency
// code.
func (n *narration) bare(address string) string {
	return n.resolver.Resolve(n.ctx, n.parties, address, false)
}

func (n *narration) amount(a amount.Amount) string {
	return amount.ToDisplay(a, "", n.bare)
}

// amountEliding omits the issuer when it equals elide.
func (n *narration) amountEliding(a amount.Amount, elide string) string {
	return amount.ToDisplay(a, elide, n.bare)
}

func (n *narration) say(format string, args ...interface{}) {
	fmt.Fprintf(&n.b, format, args...)
	n.b.WriteByte('\n')
}

// text prepends the parties preamble.
func (n *narration) text() string {
	return n.parties.Preamble() + n.b.String()
}

func xrp(d amount.Drops) string {
	return amount.FormatXRP(d.XRP())
}

func plural(count int, one, many string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, one)
	}
	return fmt.Sprintf("%d %s", count, many)
}

// joinClauses renders change clauses as ", a" or ", a, b, and c".
func joinClauses(clauses []string) string {
	switch len(clauses) {
	case 0:
		return ""
	case 1:
		return ", " + clauses[0]
	}
	last := len(clauses) - 1
	return ", " + strings.Join(clauses[:last], ", ") + ", and " + clauses[last]
}

// decodeText hex-decodes a memo or domain field. It fails on bad hex and on
// anything that is not printable UTF-8.
func decodeText(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	text := string(raw)
	for _, r := range text {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return "", false
		}
	}
	return text, true
}

func epoch(seconds uint32) string {
	return amount.EpochToISO8601(int64(seconds))
}
