package explain

import (
	"strings"

	"github.com/mDuo13/txsplain/internal/core/tx"
)

// describePaths writes one line per path, hop by hop. Orderbook hops show
// the currency, plus the issuer when the step sets one; rippling hops show
// the account.
func (n *narration) describePaths(paths [][]tx.PathStep) {
	n.say("It specified %s other than the default one:", plural(len(paths), "path", "paths"))
	for _, path := range paths {
		var b strings.Builder
		b.WriteString("Source - ")
		for _, step := range path {
			kind := step.Kind()
			if kind&tx.PathStepOrderbook != 0 {
				b.WriteString("Orderbook:")
				b.WriteString(step.Currency)
				if kind&tx.PathStepIssuer != 0 && step.Issuer != "" {
					b.WriteString(".")
					b.WriteString(n.bare(step.Issuer))
				}
				b.WriteString(" - ")
			}
			if kind&tx.PathStepRippling != 0 && step.Account != "" {
				b.WriteString(n.name(step.Account))
				b.WriteString(" - ")
			}
		}
		b.WriteString("Destination")
		n.say("  %s", b.String())
	}
}
