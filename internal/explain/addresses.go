package explain

import (
	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/mDuo13/txsplain/internal/core/tx"
)

// accountZero is the sender of pseudo-transactions. It has no owner to
// name.
const accountZero = "rrrrrrrrrrrrrrrrrrrrrhoLvTp"

// accountOne is the placeholder issuer of trust line balances.
const accountOne = "rrrrrrrrrrrrrrrrrrrrBZbvji"

// collector gathers the addresses a narration will mention, in order.
type collector struct {
	seen map[string]bool
	list []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool)}
}

func (c *collector) add(addresses ...string) {
	for _, a := range addresses {
		if a == "" || a == accountZero || a == accountOne || c.seen[a] {
			continue
		}
		c.seen[a] = true
		c.list = append(c.list, a)
	}
}

func (c *collector) amount(a amount.Amount) {
	if !a.IsNative() {
		c.add(a.Issuer)
	}
}

func (c *collector) amountPtr(a *amount.Amount) {
	if a != nil {
		c.amount(*a)
	}
}

func (c *collector) fields(f tx.FieldSet) {
	for _, name := range []string{"Account", "Owner", "Destination"} {
		if s, ok := f.String(name); ok {
			c.add(s)
		}
	}
	for _, name := range []string{"HighLimit", "LowLimit", "TakerPays", "TakerGets"} {
		if a, ok := f.Amount(name); ok {
			c.amount(a)
		}
	}
}

// transactionAddresses lists every address rec's narration can mention.
func transactionAddresses(rec *tx.Record, verbose bool) []string {
	c := newCollector()
	c.add(rec.Account)

	switch b := rec.Body.(type) {
	case *tx.Payment:
		c.add(b.Destination)
		c.amount(b.Amount)
		c.amountPtr(b.SendMax)
		if verbose {
			for _, path := range b.Paths {
				for _, step := range path {
					c.add(step.Account, step.Issuer)
				}
			}
		}
	case *tx.OfferCreate:
		c.amount(b.TakerGets)
		c.amount(b.TakerPays)
	case *tx.TrustSet:
		c.add(b.LimitAmount.Issuer)
	case *tx.SetRegularKey:
		c.add(b.RegularKey)
	case *tx.SignerListSet:
		for _, s := range b.SignerEntries {
			c.add(s.Account)
		}
	case *tx.AccountDelete:
		c.add(b.Destination)
	case *tx.EscrowCreate:
		c.add(b.Destination)
		c.amount(b.Amount)
	case *tx.EscrowFinish:
		c.add(b.Owner)
	case *tx.EscrowCancel:
		c.add(b.Owner)
	case *tx.PaymentChannelCreate:
		c.add(b.Destination)
	case *tx.CheckCreate:
		c.add(b.Destination)
		c.amount(b.SendMax)
	case *tx.CheckCash:
		c.amountPtr(b.Amount)
		c.amountPtr(b.DeliverMin)
	case *tx.DepositPreauth:
		c.add(b.Authorize, b.Unauthorize)
	}

	if rec.Meta != nil {
		if d := rec.Meta.Delivered; d != nil && !d.Unavailable {
			c.amount(d.Amount)
		}
		if verbose {
			for _, node := range rec.Meta.AffectedNodes {
				c.fields(node.New)
				c.fields(node.Final)
				c.fields(node.Previous)
			}
		}
	}
	return c.list
}
