package explain

import (
	"fmt"

	"github.com/mDuo13/txsplain/internal/core/tx"
	"github.com/shopspring/decimal"
)

// firstString reads name from the first set that has it.
func firstString(name string, sets ...tx.FieldSet) (string, bool) {
	for _, s := range sets {
		if v, ok := s.String(name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func firstUint32(name string, sets ...tx.FieldSet) (uint32, bool) {
	for _, s := range sets {
		if v, ok := s.Uint32(name); ok {
			return v, true
		}
	}
	return 0, false
}

// verb is what the transaction did to node. A deleted offer with previous
// fields was consumed by a trade rather than cancelled.
func verb(node tx.AffectedNode) string {
	switch node.Action {
	case tx.ActionCreated:
		return "created"
	case tx.ActionDeleted:
		if node.EntryType == tx.EntryOffer && node.Previous != nil {
			return "consumed"
		}
		return "deleted"
	}
	return "modified"
}

// describeNode names the ledger entry an affected node touched. It never
// fails; missing fields fall back to a generic label.
func (n *narration) describeNode(node tx.AffectedNode) string {
	switch node.EntryType {
	case tx.EntryOffer:
		return n.describeOfferNode(node)
	case tx.EntryRippleState:
		return n.describeTrustLineNode(node)
	case tx.EntryDirectoryNode:
		if owner, ok := firstString("Owner", node.Final, node.New, node.Previous); ok {
			return fmt.Sprintf("a Directory owned by %s", n.name(owner))
		}
		if _, ok := firstString("TakerPaysCurrency", node.Final, node.New, node.Previous); ok {
			return "an offer Directory"
		}
		return "a Directory node"
	case tx.EntryAccountRoot:
		if account, ok := firstString("Account", node.Final, node.New, node.Previous); ok {
			return fmt.Sprintf("the account %s", n.name(account))
		}
		if node.LedgerIndex != "" {
			return fmt.Sprintf("the account with ledger index %s", node.LedgerIndex)
		}
		return "an account"
	}

	typeName := node.EntryTypeName
	if typeName == "" {
		typeName = "ledger"
	}
	return fmt.Sprintf("a %s node", typeName)
}

func (n *narration) describeOfferNode(node tx.AffectedNode) string {
	owner, hasOwner := firstString("Account", node.New, node.Final, node.Previous)
	subject := "an Offer"
	if hasOwner {
		subject = fmt.Sprintf("%s's Offer", n.name(owner))
	}

	// Previous fields hold the price of an offer that was just consumed.
	sizes, ok := tx.FirstWith([]tx.FieldSet{node.Previous, node.New, node.Final}, "TakerPays", "TakerGets")
	if !ok {
		return subject
	}
	pays, okPays := sizes.Amount("TakerPays")
	gets, okGets := sizes.Amount("TakerGets")
	if !okPays || !okGets {
		return subject
	}

	if seq, ok := firstUint32("Sequence", node.New, node.Final, node.Previous); ok && hasOwner {
		subject = fmt.Sprintf("%s #%d", subject, seq)
	}
	return fmt.Sprintf("%s to buy %s for %s", subject, n.amount(pays), n.amount(gets))
}

func (n *narration) describeTrustLineNode(node tx.AffectedNode) string {
	limits, ok := tx.FirstWith([]tx.FieldSet{node.New, node.Previous, node.Final}, "HighLimit", "LowLimit")
	if !ok {
		return "a trust line"
	}
	high, okHigh := limits.Amount("HighLimit")
	low, okLow := limits.Amount("LowLimit")
	if !okHigh || !okLow || high.Issuer == "" || low.Issuer == "" {
		return "a trust line"
	}
	return fmt.Sprintf("the %s trust line between %s and %s", high.CurrencyCode(), n.name(high.Issuer), n.name(low.Issuer))
}

// describeChange phrases what a modified node's numbers did. It returns ""
// when nothing recognizable changed.
func (n *narration) describeChange(node tx.AffectedNode) string {
	if node.Action != tx.ActionModified || node.Previous == nil || node.Final == nil {
		return ""
	}

	var clauses []string
	switch node.EntryType {
	case tx.EntryAccountRoot:
		clauses = n.accountRootChanges(node)
	case tx.EntryRippleState:
		if c, ok := n.trustLineChange(node); ok {
			clauses = append(clauses, c)
		}
	case tx.EntryOffer:
		clauses = n.offerChanges(node)
	}
	return joinClauses(clauses)
}

func (n *narration) accountRootChanges(node tx.AffectedNode) []string {
	var clauses []string

	prev, okPrev := node.Previous.Amount("Balance")
	final, okFinal := node.Final.Amount("Balance")
	if okPrev && okFinal && prev.IsNative() && final.IsNative() {
		switch diff := final.Drops.Sub(prev.Drops); {
		case diff > 0:
			clauses = append(clauses, fmt.Sprintf("increasing its XRP balance by %s", xrp(diff)))
		case diff < 0:
			clauses = append(clauses, fmt.Sprintf("decreasing its XRP balance by %s", xrp(-diff)))
		}
	}

	prevCount, okPrev := node.Previous.Uint32("OwnerCount")
	finalCount, okFinal := node.Final.Uint32("OwnerCount")
	if okPrev && okFinal && prevCount != finalCount {
		word := "increasing"
		if finalCount < prevCount {
			word = "decreasing"
		}
		clauses = append(clauses, fmt.Sprintf("%s its owner count to %d", word, finalCount))
	}
	return clauses
}

// trustLineChange narrates a balance change from one side of the line. The
// low account's view wins when its limit is higher or the line's balance
// is in its favour; a balance in the high account's favour picks the high
// side.
func (n *narration) trustLineChange(node tx.AffectedNode) (string, bool) {
	prev, okPrev := node.Previous.Amount("Balance")
	final, okFinal := node.Final.Amount("Balance")
	if !okPrev || !okFinal || prev.Kind != final.Kind {
		return "", false
	}
	limits, ok := tx.FirstWith([]tx.FieldSet{node.Final, node.Previous}, "HighLimit", "LowLimit")
	if !ok {
		return "", false
	}
	high, okHigh := limits.Amount("HighLimit")
	low, okLow := limits.Amount("LowLimit")
	if !okHigh || !okLow {
		return "", false
	}

	prevValue, finalValue := prev.Number(), final.Number()
	diff := finalValue.Sub(prevValue)
	if diff.IsZero() {
		return "", false
	}

	lowSide := perspectiveLow(low.Number(), high.Number(), prevValue, finalValue)
	holder := high.Issuer
	if lowSide {
		holder = low.Issuer
	} else {
		// A positive balance is owed to the low side.
		diff = diff.Neg()
	}
	if holder == "" {
		return "", false
	}

	word := "increasing"
	if diff.Sign() < 0 {
		word = "decreasing"
	}
	return fmt.Sprintf("%s the amount %s holds by %s %s", word, n.name(holder), diff.Abs().StringFixed(6), final.CurrencyCode()), true
}

func perspectiveLow(lowLimit, highLimit, prev, final decimal.Decimal) bool {
	switch {
	case lowLimit.GreaterThan(highLimit):
		return true
	case final.Sign() > 0 || prev.Sign() > 0:
		return true
	case final.Sign() < 0 || prev.Sign() < 0:
		return false
	}
	return true
}

func (n *narration) offerChanges(node tx.AffectedNode) []string {
	var clauses []string
	for _, f := range []struct{ field, phrase string }{
		{"TakerGets", "the amount it offers"},
		{"TakerPays", "the amount it asks for"},
	} {
		prev, okPrev := node.Previous.Amount(f.field)
		final, okFinal := node.Final.Amount(f.field)
		if !okPrev || !okFinal {
			continue
		}
		used, err := prev.Sub(final)
		if err != nil || used.Sign() == 0 {
			continue
		}
		word := "reducing"
		if used.Sign() < 0 {
			word = "raising"
		}
		clauses = append(clauses, fmt.Sprintf("%s %s by %s", word, f.phrase, n.amount(used.Abs())))
	}
	return clauses
}
