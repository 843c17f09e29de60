package ledger

import (
	"strconv"

	"github.com/mDuo13/txsplain/internal/core/amount"
)

// Where is the ledger version a record was read from.
type Where struct {
	LedgerIndex uint32 `json:"-"`
	Validated   bool   `json:"-"`
}

// AccountRoot is the account_info view of an account.
type AccountRoot struct {
	Account           string        `json:"Account"`
	Balance           amount.Amount `json:"Balance"`
	Flags             uint32        `json:"Flags"`
	OwnerCount        uint32        `json:"OwnerCount"`
	Sequence          uint32        `json:"Sequence"`
	PreviousTxnID     string        `json:"PreviousTxnID"`
	PreviousTxnLgrSeq uint32        `json:"PreviousTxnLgrSeq"`
	Domain            string        `json:"Domain,omitempty"`
	EmailHash         string        `json:"EmailHash,omitempty"`
	MessageKey        string        `json:"MessageKey,omitempty"`
	TransferRate      *uint32       `json:"TransferRate,omitempty"`
	RegularKey        string        `json:"RegularKey,omitempty"`
	TickSize          *uint8        `json:"TickSize,omitempty"`
	Index             string        `json:"index"`

	Where
}

// RippleState is a trust line. A positive Balance means the low account
// holds currency issued by the high account.
type RippleState struct {
	Balance           amount.Amount `json:"Balance"`
	LowLimit          amount.Amount `json:"LowLimit"`
	HighLimit         amount.Amount `json:"HighLimit"`
	Flags             uint32        `json:"Flags"`
	LowNode           string        `json:"LowNode,omitempty"`
	HighNode          string        `json:"HighNode,omitempty"`
	LowQualityIn      *uint32       `json:"LowQualityIn,omitempty"`
	LowQualityOut     *uint32       `json:"LowQualityOut,omitempty"`
	HighQualityIn     *uint32       `json:"HighQualityIn,omitempty"`
	HighQualityOut    *uint32       `json:"HighQualityOut,omitempty"`
	PreviousTxnID     string        `json:"PreviousTxnID"`
	PreviousTxnLgrSeq uint32        `json:"PreviousTxnLgrSeq"`
	Index             string        `json:"index"`

	Where
}

func (r *RippleState) Low() string  { return r.LowLimit.Issuer }
func (r *RippleState) High() string { return r.HighLimit.Issuer }

type Offer struct {
	Account           string        `json:"Account"`
	Sequence          uint32        `json:"Sequence"`
	TakerPays         amount.Amount `json:"TakerPays"`
	TakerGets         amount.Amount `json:"TakerGets"`
	Flags             uint32        `json:"Flags"`
	BookDirectory     string        `json:"BookDirectory"`
	BookNode          string        `json:"BookNode,omitempty"`
	OwnerNode         string        `json:"OwnerNode,omitempty"`
	Expiration        *uint32       `json:"Expiration,omitempty"`
	PreviousTxnID     string        `json:"PreviousTxnID"`
	PreviousTxnLgrSeq uint32        `json:"PreviousTxnLgrSeq"`
	Index             string        `json:"index"`

	Where
}

// Page parses a hex directory page number such as "0000000000000001".
// An empty field is page zero.
func Page(hex string) (uint64, bool) {
	if hex == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
