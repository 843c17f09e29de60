package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mDuo13/txsplain/internal/core/flags"
	"github.com/mDuo13/txsplain/internal/core/ledger"
)

const gravatarURL = "https://www.gravatar.com/avatar/"

// ExplainAccount narrates an account root. It needs the network reserves;
// failing to fetch them fails the narration.
func (e *Explainer) ExplainAccount(ctx context.Context, acct *ledger.AccountRoot, verbose bool) (text string, err error) {
	start := time.Now()
	defer func() { e.observe(KindAccount, start, err) }()

	reserves, err := e.source.Reserves(ctx)
	if err != nil {
		return "", fmt.Errorf("explain account %s: reserves: %w", acct.Account, err)
	}

	n := e.begin(ctx, []string{acct.Account, acct.RegularKey})
	n.say("This is the account %s.", n.name(acct.Account))
	n.say("It holds %s XRP.", xrp(acct.Balance.Drops))

	reserve := reserves.ForOwnerCount(acct.OwnerCount)
	n.say("It owns %s in the ledger, so its reserve requirement is %s XRP.",
		plural(int(acct.OwnerCount), "object", "objects"), xrp(reserve))
	if spendable := acct.Balance.Drops.Sub(reserve); spendable > 0 {
		n.say("That leaves %s XRP available to spend.", xrp(spendable))
	} else {
		n.say("It has no XRP available to spend above its reserve.")
	}
	n.say("Its next transaction sequence number is %d.", acct.Sequence)

	n.entryFlags(acct.Flags, "AccountRoot")

	if acct.RegularKey != "" {
		n.say("It has a regular key set to %s.", n.name(acct.RegularKey))
	}
	if domain, ok := decodeText(acct.Domain); ok {
		n.say("Its domain is '%s'.", domain)
	}
	if acct.EmailHash != "" {
		n.say("Its avatar is %s%s.", gravatarURL, strings.ToLower(acct.EmailHash))
	}
	if acct.MessageKey != "" {
		n.say("Its message key is %s.", acct.MessageKey)
	}
	if r := acct.TransferRate; r != nil && *r != 0 && *r != transferRateNone {
		n.say("It charges a transfer fee of %s%% on the currencies it issues.", transferFee(*r))
	}
	if acct.TickSize != nil && *acct.TickSize != 0 {
		n.say("Its offers use a tick size of %d.", *acct.TickSize)
	}

	n.lastModified(acct.PreviousTxnID, acct.PreviousTxnLgrSeq)
	if verbose && acct.Index != "" {
		n.say("Its ledger entry index is %s.", acct.Index)
	}
	n.where(acct.Where)
	return n.text(), nil
}

// entryFlags names the ledger-entry flags set in mask.
func (n *narration) entryFlags(mask uint32, entryType string) {
	names := flags.LedgerEntries.Decode(mask, entryType)
	if len(names) == 0 {
		n.say("It has no flags enabled.")
		return
	}
	n.say("It has the following flags enabled: %s.", strings.Join(names, ", "))
}

func (n *narration) lastModified(txnID string, ledgerIndex uint32) {
	if txnID == "" {
		return
	}
	n.say("It was last modified by the transaction %s in ledger %d.", txnID, ledgerIndex)
}

func (n *narration) where(w ledger.Where) {
	if w.LedgerIndex == 0 {
		return
	}
	if w.Validated {
		n.say("This information comes from validated ledger %d.", w.LedgerIndex)
		return
	}
	n.say("This information comes from ledger %d, which is not yet validated.", w.LedgerIndex)
}

// ownerPage describes where an entry sits in its owner's directory.
func (n *narration) ownerPage(hexPage, owner string) {
	page, ok := ledger.Page(hexPage)
	if !ok {
		return
	}
	n.say("It is listed on page %d of %s's owner directory.", page, n.name(owner))
}
