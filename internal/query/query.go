// Package query classifies what a user typed into the record it names.
package query

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/core/ledger"
)

// ErrUnrecognized is returned for input that names no record.
var ErrUnrecognized = errors.New("unrecognized query")

// VerboseWord switches on verbose narration when it ends the input.
const VerboseWord = "verbose"

type Kind uint8

const (
	KindTransaction Kind = iota + 1
	KindAccount
	KindTrustLine
	KindOffer
)

func (k Kind) String() string {
	switch k {
	case KindTransaction:
		return "transaction"
	case KindAccount:
		return "account"
	case KindTrustLine:
		return "trust line"
	case KindOffer:
		return "offer"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Party is an account given either by address or by alias. Exactly one
// field is set.
type Party struct {
	Address string
	Alias   string
}

func (p Party) IsAlias() bool {
	return p.Alias != ""
}

func (p Party) String() string {
	if p.IsAlias() {
		return alias.Prefix + p.Alias
	}
	return p.Address
}

// Query is a classified input.
type Query struct {
	Kind Kind

	// Hash is set for KindTransaction, upper-cased.
	Hash string
	// Account is the account, the first trust line party or the offer owner.
	Account Party
	// Counterparty and Currency complete a trust line key.
	Counterparty Party
	Currency     string
	// Sequence is the offer's creating sequence.
	Sequence uint32

	Verbose bool
}

// Parse splits input on whitespace and classifies it.
func Parse(input string) (Query, error) {
	return ParseArgs(strings.Fields(input))
}

// ParseArgs classifies pre-split input:
//
//	<64 hex digits>                        transaction
//	<address|~alias>                       account
//	<address|~alias> <sequence>            offer
//	<address|~alias> <address|~alias> CUR  trust line
//
// A trailing "verbose" may follow any of them.
func ParseArgs(args []string) (Query, error) {
	var q Query
	if len(args) > 0 && strings.EqualFold(args[len(args)-1], VerboseWord) {
		q.Verbose = true
		args = args[:len(args)-1]
	}

	switch len(args) {
	case 1:
		if IsTransactionHash(args[0]) {
			q.Kind = KindTransaction
			q.Hash = strings.ToUpper(args[0])
			return q, nil
		}
		p, err := ParseParty(args[0])
		if err != nil {
			return Query{}, err
		}
		q.Kind = KindAccount
		q.Account = p
		return q, nil

	case 2:
		p, err := ParseParty(args[0])
		if err != nil {
			return Query{}, err
		}
		seq, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return Query{}, fmt.Errorf("%w: %q is not an offer sequence", ErrUnrecognized, args[1])
		}
		q.Kind = KindOffer
		q.Account = p
		q.Sequence = uint32(seq)
		return q, nil

	case 3:
		a, err := ParseParty(args[0])
		if err != nil {
			return Query{}, err
		}
		b, err := ParseParty(args[1])
		if err != nil {
			return Query{}, err
		}
		if a == b {
			return Query{}, fmt.Errorf("%w: a trust line needs two different accounts", ErrUnrecognized)
		}
		if err := ledger.ValidateCurrency(args[2]); err != nil {
			return Query{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
		}
		q.Kind = KindTrustLine
		q.Account = a
		q.Counterparty = b
		q.Currency = args[2]
		return q, nil
	}

	if len(args) == 0 {
		return Query{}, fmt.Errorf("%w: empty input", ErrUnrecognized)
	}
	return Query{}, fmt.Errorf("%w: %q", ErrUnrecognized, strings.Join(args, " "))
}

// ParseParty accepts a classic address or a ~alias.
func ParseParty(s string) (Party, error) {
	if strings.HasPrefix(s, alias.Prefix) {
		name := strings.TrimPrefix(s, alias.Prefix)
		if name == "" {
			return Party{}, fmt.Errorf("%w: empty alias", ErrUnrecognized)
		}
		return Party{Alias: name}, nil
	}
	if err := ledger.ValidateAddress(s); err != nil {
		return Party{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	return Party{Address: s}, nil
}

// IsTransactionHash reports whether s is 64 hex digits.
func IsTransactionHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
