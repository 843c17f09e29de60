package explain

import (
	"context"
	"fmt"

	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/mDuo13/txsplain/internal/query"
	"go.uber.org/zap"
)

// Transaction fetches a transaction by hash and narrates it.
func (e *Explainer) Transaction(ctx context.Context, hash string, verbose bool) (string, error) {
	rec, err := e.source.Transaction(ctx, hash)
	if err != nil {
		return "", fmt.Errorf("transaction %s: %w", hash, err)
	}
	return e.ExplainTransaction(ctx, rec, verbose)
}

// Account fetches an account root and narrates it.
func (e *Explainer) Account(ctx context.Context, address string, verbose bool) (string, error) {
	acct, err := e.source.AccountRoot(ctx, address, e.selector)
	if err != nil {
		return "", fmt.Errorf("account %s: %w", address, err)
	}
	return e.ExplainAccount(ctx, acct, verbose)
}

// TrustLine fetches a trust line and narrates it.
func (e *Explainer) TrustLine(ctx context.Context, key ledger.TrustLineKey, verbose bool) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	line, err := e.source.TrustLine(ctx, key, e.selector)
	if err != nil {
		return "", fmt.Errorf("trust line %s %s %s: %w", key.A, key.B, key.Currency, err)
	}
	return e.ExplainTrustLine(ctx, line, verbose)
}

// Offer fetches an offer and narrates it.
func (e *Explainer) Offer(ctx context.Context, key ledger.OfferKey, verbose bool) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	offer, err := e.source.Offer(ctx, key, e.selector)
	if err != nil {
		return "", fmt.Errorf("offer %s %d: %w", key.Account, key.Sequence, err)
	}
	return e.ExplainOffer(ctx, offer, verbose)
}

// Explain dispatches a classified query. Aliases are reverse-resolved
// first; an unknown alias fails with alias.ErrNotFound.
func (e *Explainer) Explain(ctx context.Context, q query.Query) (string, error) {
	e.logger.Debug("explain", zap.Stringer("kind", q.Kind), zap.Bool("verbose", q.Verbose))

	switch q.Kind {
	case query.KindTransaction:
		return e.Transaction(ctx, q.Hash, q.Verbose)

	case query.KindAccount:
		address, err := e.address(ctx, q.Account)
		if err != nil {
			return "", err
		}
		return e.Account(ctx, address, q.Verbose)

	case query.KindTrustLine:
		a, err := e.address(ctx, q.Account)
		if err != nil {
			return "", err
		}
		b, err := e.address(ctx, q.Counterparty)
		if err != nil {
			return "", err
		}
		return e.TrustLine(ctx, ledger.TrustLineKey{A: a, B: b, Currency: q.Currency}, q.Verbose)

	case query.KindOffer:
		owner, err := e.address(ctx, q.Account)
		if err != nil {
			return "", err
		}
		return e.Offer(ctx, ledger.OfferKey{Account: owner, Sequence: q.Sequence}, q.Verbose)
	}
	return "", fmt.Errorf("%w: kind %s", query.ErrUnrecognized, q.Kind)
}

func (e *Explainer) address(ctx context.Context, p query.Party) (string, error) {
	if !p.IsAlias() {
		return p.Address, nil
	}
	return e.resolver.ReverseResolve(ctx, p.Alias)
}
