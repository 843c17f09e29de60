package explain

import (
	"context"
	"time"

	"github.com/mDuo13/txsplain/internal/core/flags"
	"github.com/mDuo13/txsplain/internal/core/ledger"
	"go.uber.org/zap"
)

// ExplainOffer narrates an Offer entry. Expiration is judged against the
// close time of the latest validated ledger when it can be fetched.
func (e *Explainer) ExplainOffer(ctx context.Context, offer *ledger.Offer, verbose bool) (text string, err error) {
	start := time.Now()
	defer func() { e.observe(KindOffer, start, err) }()

	n := e.begin(ctx, []string{offer.Account, offer.TakerPays.Issuer, offer.TakerGets.Issuer})
	n.say("This is %s's Offer #%d to buy %s for %s.", n.name(offer.Account), offer.Sequence, n.amount(offer.TakerPays), n.amount(offer.TakerGets))
	if offer.Flags&flags.LsfSell != 0 {
		n.say("It sells the full amount offered even if that returns more than asked for.")
	}
	if offer.Flags&flags.LsfPassive != 0 {
		n.say("It is passive, so it does not consume offers that exactly match it.")
	}
	n.entryFlags(offer.Flags, "Offer")

	if offer.BookDirectory != "" {
		page, _ := ledger.Page(offer.BookNode)
		n.say("It is listed in the order book directory %s, page %d.", offer.BookDirectory, page)
	}
	n.ownerPage(offer.OwnerNode, offer.Account)

	if offer.Expiration == nil {
		n.say("It does not expire.")
	} else {
		e.expiration(ctx, n, *offer.Expiration)
	}

	n.lastModified(offer.PreviousTxnID, offer.PreviousTxnLgrSeq)
	if verbose && offer.Index != "" {
		n.say("Its ledger entry index is %s.", offer.Index)
	}
	n.where(offer.Where)
	return n.text(), nil
}

func (e *Explainer) expiration(ctx context.Context, n *narration, expires uint32) {
	hdr, err := e.source.Ledger(ctx, ledger.Validated())
	if err != nil || hdr.CloseTime == 0 {
		if err != nil {
			e.logger.Warn("latest validated ledger unavailable", zap.Error(err))
		}
		n.say("It is set to expire at %s.", epoch(expires))
		return
	}
	if hdr.CloseTime >= expires {
		n.say("It expired at %s, so it can no longer be taken.", epoch(expires))
		return
	}
	n.say("It expires at %s.", epoch(expires))
}
