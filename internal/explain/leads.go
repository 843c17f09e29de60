package explain

import (
	"fmt"

	"github.com/mDuo13/txsplain/internal/core/amendment"
	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/mDuo13/txsplain/internal/core/flags"
	"github.com/mDuo13/txsplain/internal/core/tx"
)

// transferRateNone is the TransferRate meaning no fee; 0 means the same.
const transferRateNone uint32 = 1_000_000_000

// lead writes the type-specific opening sentences.
func (n *narration) lead(rec *tx.Record) {
	sender := func() string { return n.name(rec.Account) }

	switch b := rec.Body.(type) {
	case *tx.Payment:
		n.say("This is a Payment from %s to %s.", sender(), n.name(b.Destination))

	case *tx.OfferCreate:
		if rec.FlagsValue()&flags.TfSell != 0 {
			n.say("%s offered to pay %s in order to receive at least %s.", sender(), n.amount(b.TakerGets), n.amount(b.TakerPays))
		} else {
			n.say("%s offered to pay up to %s in order to receive %s.", sender(), n.amount(b.TakerGets), n.amount(b.TakerPays))
		}
		if b.OfferSequence != nil {
			n.say("It also asked to cancel the earlier Offer #%d.", *b.OfferSequence)
		}
		if b.Expiration != nil {
			n.say("The offer was set to expire at %s.", epoch(*b.Expiration))
		}

	case *tx.OfferCancel:
		n.say("%s asked to cancel their Offer #%d.", sender(), b.OfferSequence)

	case *tx.TrustSet:
		limit := b.LimitAmount
		n.say("%s set a trust line to %s for up to %s %s.", sender(), n.name(limit.Issuer), limit.Number().String(), limit.CurrencyCode())
		n.quality("incoming", b.QualityIn)
		n.quality("outgoing", b.QualityOut)

	case *tx.AccountSet:
		n.say("This is an AccountSet transaction, which changes the settings of %s.", sender())
		n.accountSet(b)

	case *tx.SetRegularKey:
		if b.RegularKey == "" {
			n.say("%s removed their regular key.", sender())
		} else {
			n.say("%s assigned %s as their regular key.", sender(), n.name(b.RegularKey))
		}

	case *tx.SignerListSet:
		if b.SignerQuorum == 0 {
			n.say("%s removed their multi-signing list.", sender())
			break
		}
		n.say("%s set a multi-signing list of %s with a quorum of %d:", sender(), plural(len(b.SignerEntries), "signer", "signers"), b.SignerQuorum)
		for _, s := range b.SignerEntries {
			n.say("  %s with weight %d", n.name(s.Account), s.SignerWeight)
		}

	case *tx.AccountDelete:
		n.say("%s deleted their account, sending the remaining XRP to %s.", sender(), n.name(b.Destination))

	case *tx.EscrowCreate:
		n.say("%s escrowed %s for %s.", sender(), n.amount(b.Amount), n.name(b.Destination))
		if b.FinishAfter != nil {
			n.say("It can be released after %s.", epoch(*b.FinishAfter))
		}
		if b.CancelAfter != nil {
			n.say("It can be cancelled after %s.", epoch(*b.CancelAfter))
		}
		if b.Condition != "" {
			n.say("Releasing it requires fulfilling a crypto-condition.")
		}

	case *tx.EscrowFinish:
		n.say("%s released the escrow created by %s with sequence number %d.", sender(), n.name(b.Owner), b.OfferSequence)
		if b.Fulfillment != "" {
			n.say("It supplied a crypto-condition fulfillment.")
		}

	case *tx.EscrowCancel:
		n.say("%s cancelled the escrow created by %s with sequence number %d.", sender(), n.name(b.Owner), b.OfferSequence)

	case *tx.PaymentChannelCreate:
		n.say("%s opened a payment channel to %s, funded with %s.", sender(), n.name(b.Destination), n.amount(b.Amount))
		n.say("The channel has a settlement delay of %s.", plural(int(b.SettleDelay), "second", "seconds"))
		if b.CancelAfter != nil {
			n.say("The channel can be closed after %s.", epoch(*b.CancelAfter))
		}

	case *tx.PaymentChannelFund:
		n.say("%s added %s to the payment channel %s.", sender(), n.amount(b.Amount), b.Channel)
		if b.Expiration != nil {
			n.say("It set the channel to expire at %s.", epoch(*b.Expiration))
		}

	case *tx.PaymentChannelClaim:
		n.say("%s submitted a claim against the payment channel %s.", sender(), b.Channel)
		if b.Balance != nil {
			n.say("It set the total delivered from the channel to %s.", n.amount(*b.Balance))
		}
		if b.Amount != nil {
			n.say("The claim authorized up to %s.", n.amount(*b.Amount))
		}

	case *tx.CheckCreate:
		n.say("%s wrote a Check to %s for up to %s.", sender(), n.name(b.Destination), n.amount(b.SendMax))
		if b.Expiration != nil {
			n.say("The Check expires at %s.", epoch(*b.Expiration))
		}

	case *tx.CheckCash:
		switch {
		case b.Amount != nil:
			n.say("%s cashed the Check %s for exactly %s.", sender(), b.CheckID, n.amount(*b.Amount))
		case b.DeliverMin != nil:
			n.say("%s cashed the Check %s for at least %s.", sender(), b.CheckID, n.amount(*b.DeliverMin))
		default:
			n.say("%s cashed the Check %s.", sender(), b.CheckID)
		}

	case *tx.CheckCancel:
		n.say("%s cancelled the Check %s.", sender(), b.CheckID)

	case *tx.TicketCreate:
		n.say("%s set aside %s.", sender(), plural(int(b.TicketCount), "Ticket", "Tickets"))

	case *tx.DepositPreauth:
		if b.Authorize != "" {
			n.say("%s preauthorized %s to send them payments.", sender(), n.name(b.Authorize))
		} else {
			n.say("%s revoked the preauthorization of %s.", sender(), n.name(b.Unauthorize))
		}

	case *tx.SetFee:
		n.say("This is a SetFee pseudo-transaction, which changes the network's fee settings.")
		n.say("The reference transaction cost became %s XRP.", xrp(b.BaseFee))
		n.say("The base reserve became %s XRP.", xrp(b.ReserveBase))
		n.say("The owner reserve increment became %s XRP.", xrp(b.ReserveIncrement))

	case *tx.EnableAmendment:
		n.say("This is an EnableAmendment pseudo-transaction for the amendment %s.", amendment.Describe(b.Amendment))
		switch f := rec.FlagsValue(); {
		case f&flags.TfGotMajority != 0:
			n.say("It records that the amendment gained majority support.")
		case f&flags.TfLostMajority != 0:
			n.say("It records that the amendment lost majority support.")
		default:
			n.say("It records that the amendment was enabled.")
		}

	default:
		n.say("This is a %s transaction.", rec.TypeName)
		n.say("The transaction was sent by %s.", sender())
	}
}

func (n *narration) quality(direction string, q *uint32) {
	if pct, ok := qualityPercent(q); ok {
		n.say("It values %s balances at %s%% of face value.", direction, pct)
	}
}

// qualityPercent skips the unset and face-value qualities.
func qualityPercent(q *uint32) (string, bool) {
	if q == nil || *q == 0 || *q == transferRateNone {
		return "", false
	}
	return amount.QualityToPercent(int64(*q)).String(), true
}

func (n *narration) accountSet(b *tx.AccountSet) {
	if b.SetFlag != nil {
		n.say("It enabled %s.", accountSetFlag(*b.SetFlag))
	}
	if b.ClearFlag != nil {
		n.say("It disabled %s.", accountSetFlag(*b.ClearFlag))
	}
	if b.Domain != nil {
		if domain, ok := decodeText(*b.Domain); ok {
			n.say("It set the domain to '%s'.", domain)
		} else if *b.Domain == "" {
			n.say("It removed the domain.")
		}
	}
	if b.EmailHash != nil {
		n.say("It set the email hash to %s.", *b.EmailHash)
	}
	if b.MessageKey != nil {
		if *b.MessageKey == "" {
			n.say("It removed the message key.")
		} else {
			n.say("It set the message key to %s.", *b.MessageKey)
		}
	}
	if b.TransferRate != nil {
		if r := *b.TransferRate; r == 0 || r == transferRateNone {
			n.say("It removed the transfer fee.")
		} else {
			n.say("It set a transfer fee of %s%%.", transferFee(r))
		}
	}
	if b.TickSize != nil {
		if *b.TickSize == 0 {
			n.say("It removed the tick size.")
		} else {
			n.say("It set the tick size to %d.", *b.TickSize)
		}
	}
}

func transferFee(rate uint32) string {
	return amount.TransferFeePercent(rate).String()
}

func accountSetFlag(v uint32) string {
	if name, ok := flags.AccountSetFlagName(v); ok {
		return "the flag " + name
	}
	return fmt.Sprintf("the unrecognized flag %d", v)
}
