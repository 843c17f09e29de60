// Package ledger holds the ledger-state records the explainer narrates.
package ledger

import (
	"fmt"
)

// Selector picks the ledger version a lookup reads from. The zero value
// selects the latest validated ledger.
type Selector struct {
	Index    uint32
	Hash     string
	Shortcut string
}

const (
	ShortcutValidated = "validated"
	ShortcutCurrent   = "current"
	ShortcutClosed    = "closed"
)

func Validated() Selector { return Selector{Shortcut: ShortcutValidated} }

func Current() Selector { return Selector{Shortcut: ShortcutCurrent} }

func AtIndex(index uint32) Selector { return Selector{Index: index} }

func AtHash(hash string) Selector { return Selector{Hash: hash} }

func (s Selector) String() string {
	switch {
	case s.Hash != "":
		return s.Hash
	case s.Index != 0:
		return fmt.Sprintf("%d", s.Index)
	case s.Shortcut != "":
		return s.Shortcut
	}
	return ShortcutValidated
}

// Header is a ledger version as reported by the ledger method.
type Header struct {
	Index uint32
	Hash  string
	// CloseTime is in network epoch seconds.
	CloseTime uint32
	Validated bool
	// TransactionCount is only meaningful when HasTransactions is set.
	TransactionCount int
	HasTransactions  bool
}
