package explain

import (
	"context"
	"strings"
	"time"

	"github.com/mDuo13/txsplain/internal/core/flags"
	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/mDuo13/txsplain/internal/core/tx"
	"go.uber.org/zap"
)

// ExplainTransaction narrates rec. The containing ledger is fetched for
// its close time and transaction count; if that fails the narration goes
// on without them. It only fails when ctx is done.
func (e *Explainer) ExplainTransaction(ctx context.Context, rec *tx.Record, verbose bool) (text string, err error) {
	start := time.Now()
	defer func() { e.observe(KindTransaction, start, err) }()

	hdr := e.containingLedger(ctx, rec)
	n := e.begin(ctx, transactionAddresses(rec, verbose))

	n.lead(rec)
	n.tags(rec)
	n.flags(rec)
	n.say("Sending this transaction consumed %s XRP.", xrp(rec.Fee.Drops))
	n.result(rec.Meta)
	n.finality(rec, hdr)
	if p, ok := rec.Body.(*tx.Payment); ok {
		n.delivery(rec, p)
	}
	n.memos(rec.Memos)
	if verbose {
		if p, ok := rec.Body.(*tx.Payment); ok && len(p.Paths) > 0 {
			n.describePaths(p.Paths)
		}
		n.affectedNodes(rec.Meta)
	}
	n.position(rec, hdr)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return n.text(), nil
}

func (e *Explainer) containingLedger(ctx context.Context, rec *tx.Record) *ledger.Header {
	if rec.LedgerIndex == 0 || e.source == nil {
		return nil
	}
	hdr, err := e.source.Ledger(ctx, ledger.AtIndex(rec.LedgerIndex))
	if err != nil {
		e.logger.Warn("ledger context unavailable",
			zap.Uint32("ledger", rec.LedgerIndex),
			zap.String("tx", rec.Hash),
			zap.Error(err))
		return nil
	}
	return hdr
}

func (n *narration) tags(rec *tx.Record) {
	if rec.DestinationTag != nil {
		n.say("The destination tag is %d.", *rec.DestinationTag)
	}
	if rec.SourceTag != nil {
		n.say("The source tag is %d.", *rec.SourceTag)
	}
}

func (n *narration) flags(rec *tx.Record) {
	names := flags.Transactions.Decode(rec.FlagsValue(), rec.TypeName)
	if len(names) == 0 {
		n.say("The transaction used no flags.")
		return
	}
	n.say("The transaction specified the following flags: %s.", strings.Join(names, ", "))
}

func (n *narration) result(meta *tx.Meta) {
	switch {
	case meta == nil:
		n.say("The transaction has no execution metadata yet.")
	case meta.Succeeded():
		n.say("The transaction was successful.")
	default:
		n.say("The transaction failed with the code %s.", meta.TransactionResult)
	}
}

func (n *narration) finality(rec *tx.Record, hdr *ledger.Header) {
	switch {
	case rec.LedgerIndex == 0:
		n.say("This result is provisional and not yet part of any ledger.")
	case rec.Validated && hdr != nil && hdr.CloseTime != 0:
		n.say("This result has been validated by consensus, in ledger %d at %s.", rec.LedgerIndex, epoch(hdr.CloseTime))
	case rec.Validated:
		n.say("This result has been validated by consensus, in ledger %d.", rec.LedgerIndex)
	default:
		n.say("This result is provisionally part of ledger %d.", rec.LedgerIndex)
	}
}

// delivery elides the destination as issuer of Amount and the sender as
// issuer of SendMax, since either means any issuer is acceptable.
func (n *narration) delivery(rec *tx.Record, p *tx.Payment) {
	deliver := n.amountEliding(p.Amount, p.Destination)
	if p.SendMax != nil {
		n.say("It was instructed to deliver %s by spending up to %s.", deliver, n.amountEliding(*p.SendMax, rec.Account))
	} else {
		n.say("It was instructed to deliver %s.", deliver)
	}
	if rec.Meta == nil || rec.Meta.Delivered == nil || rec.Meta.Delivered.Unavailable {
		return
	}
	n.say("It actually delivered %s.", n.amount(rec.Meta.Delivered.Amount))
}

func (n *narration) memos(memos []tx.Memo) {
	for _, m := range memos {
		memoType, ok := decodeText(m.MemoType)
		if !ok {
			continue
		}
		if memoType == "client" {
			if format, ok := decodeText(m.MemoFormat); ok {
				n.say("A memo indicates it was sent with the client '%s'.", format)
			}
			continue
		}
		if data, ok := decodeText(m.MemoData); ok {
			n.say("It includes a memo of type '%s': '%s'.", memoType, data)
		}
	}
}

func (n *narration) affectedNodes(meta *tx.Meta) {
	if meta == nil || len(meta.AffectedNodes) == 0 {
		return
	}
	n.say("It affected %s in the global ledger, including:", plural(len(meta.AffectedNodes), "node", "nodes"))
	for _, node := range meta.AffectedNodes {
		n.say("  It %s %s%s.", verb(node), n.describeNode(node), n.describeChange(node))
	}
}

func (n *narration) position(rec *tx.Record, hdr *ledger.Header) {
	if rec.Meta == nil || rec.Meta.TransactionIndex == nil || rec.LedgerIndex == 0 {
		return
	}
	pos := *rec.Meta.TransactionIndex + 1
	if hdr != nil && hdr.HasTransactions {
		n.say("It was transaction #%d of %d in ledger %d.", pos, hdr.TransactionCount, rec.LedgerIndex)
		return
	}
	n.say("It was transaction #%d in ledger %d.", pos, rec.LedgerIndex)
}
