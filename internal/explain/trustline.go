package explain

import (
	"context"
	"time"

	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/mDuo13/txsplain/internal/core/ledger"
)

// ExplainTrustLine narrates a RippleState entry.
func (e *Explainer) ExplainTrustLine(ctx context.Context, line *ledger.RippleState, verbose bool) (text string, err error) {
	start := time.Now()
	defer func() { e.observe(KindTrustLine, start, err) }()

	low, high := line.Low(), line.High()
	currency := line.Balance.CurrencyCode()
	if currency == "" {
		currency = line.LowLimit.CurrencyCode()
	}

	n := e.begin(ctx, []string{high, low})
	n.say("This is the %s trust line between %s and %s.", currency, n.name(high), n.name(low))

	// A positive balance is held by the low account.
	switch sign := line.Balance.Sign(); {
	case sign > 0:
		n.say("%s holds %s %s issued by %s.", n.name(low), line.Balance.Number().String(), currency, n.name(high))
	case sign < 0:
		n.say("%s holds %s %s issued by %s.", n.name(high), line.Balance.Number().Neg().String(), currency, n.name(low))
	default:
		n.say("The balance is zero.")
	}

	n.limit(low, high, line.LowLimit, currency)
	n.limit(high, low, line.HighLimit, currency)

	n.entryFlags(line.Flags, "RippleState")

	n.lineQuality(low, "incoming", line.LowQualityIn)
	n.lineQuality(low, "outgoing", line.LowQualityOut)
	n.lineQuality(high, "incoming", line.HighQualityIn)
	n.lineQuality(high, "outgoing", line.HighQualityOut)

	n.ownerPage(line.LowNode, low)
	n.ownerPage(line.HighNode, high)

	n.lastModified(line.PreviousTxnID, line.PreviousTxnLgrSeq)
	if verbose && line.Index != "" {
		n.say("Its ledger entry index is %s.", line.Index)
	}
	n.where(line.Where)
	return n.text(), nil
}

func (n *narration) limit(holder, issuer string, limit amount.Amount, currency string) {
	if limit.Sign() == 0 {
		n.say("%s does not extend any trust to %s.", n.name(holder), n.name(issuer))
		return
	}
	n.say("%s trusts %s for up to %s %s.", n.name(holder), n.name(issuer), limit.Number().String(), currency)
}

func (n *narration) lineQuality(account, direction string, q *uint32) {
	if pct, ok := qualityPercent(q); ok {
		n.say("%s values %s balances at %s%% of face value.", n.name(account), direction, pct)
	}
}
