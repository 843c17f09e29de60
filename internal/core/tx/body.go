package tx

import (
	"encoding/json"
	"strconv"

	"github.com/mDuo13/txsplain/internal/core/amount"
)

// Body holds the fields specific to one transaction type.
type Body interface {
	TxType() Type
}

// Path step type bits.
const (
	PathStepRippling  uint8 = 0x01
	PathStepRedeeming uint8 = 0x02
	PathStepOrderbook uint8 = 0x10
	PathStepIssuer    uint8 = 0x20
)

// PathStep is one hop of a payment path.
type PathStep struct {
	Account  string `json:"account,omitempty"`
	Currency string `json:"currency,omitempty"`
	Issuer   string `json:"issuer,omitempty"`
	Type     uint8  `json:"type,omitempty"`
	TypeHex  string `json:"type_hex,omitempty"`
}

// Kind returns the step's type bits. Servers that omit "type" get the bits
// implied by which fields are set.
func (s PathStep) Kind() uint8 {
	if s.Type != 0 {
		return s.Type
	}
	var kind uint8
	if s.Account != "" {
		kind |= PathStepRippling
	}
	if s.Currency != "" {
		kind |= PathStepOrderbook
	}
	if s.Issuer != "" {
		kind |= PathStepOrderbook | PathStepIssuer
	}
	return kind
}

// Payment moves value from Account to Destination.
type Payment struct {
	Destination string         `json:"Destination"`
	Amount      amount.Amount  `json:"Amount"`
	SendMax     *amount.Amount `json:"SendMax,omitempty"`
	DeliverMin  *amount.Amount `json:"DeliverMin,omitempty"`
	Paths       [][]PathStep   `json:"Paths,omitempty"`
	InvoiceID   string         `json:"InvoiceID,omitempty"`
}

func (*Payment) TxType() Type { return TypePayment }

// UnmarshalJSON accepts API v2 output, which renames Amount to DeliverMax.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type plain Payment
	var raw struct {
		plain
		DeliverMax *amount.Amount `json:"DeliverMax"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Payment(raw.plain)
	if raw.DeliverMax != nil && !hasField(data, "Amount") {
		p.Amount = *raw.DeliverMax
	}
	return nil
}

func hasField(data []byte, name string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	_, ok := fields[name]
	return ok
}

type OfferCreate struct {
	TakerPays     amount.Amount `json:"TakerPays"`
	TakerGets     amount.Amount `json:"TakerGets"`
	OfferSequence *uint32       `json:"OfferSequence,omitempty"`
	Expiration    *uint32       `json:"Expiration,omitempty"`
}

func (*OfferCreate) TxType() Type { return TypeOfferCreate }

type OfferCancel struct {
	OfferSequence uint32 `json:"OfferSequence"`
}

func (*OfferCancel) TxType() Type { return TypeOfferCancel }

type TrustSet struct {
	LimitAmount amount.Amount `json:"LimitAmount"`
	QualityIn   *uint32       `json:"QualityIn,omitempty"`
	QualityOut  *uint32       `json:"QualityOut,omitempty"`
}

func (*TrustSet) TxType() Type { return TypeTrustSet }

// AccountSet carries hex-encoded Domain and MessageKey as sent.
type AccountSet struct {
	SetFlag      *uint32 `json:"SetFlag,omitempty"`
	ClearFlag    *uint32 `json:"ClearFlag,omitempty"`
	Domain       *string `json:"Domain,omitempty"`
	EmailHash    *string `json:"EmailHash,omitempty"`
	MessageKey   *string `json:"MessageKey,omitempty"`
	TransferRate *uint32 `json:"TransferRate,omitempty"`
	TickSize     *uint8  `json:"TickSize,omitempty"`
}

func (*AccountSet) TxType() Type { return TypeAccountSet }

// SetRegularKey with an empty RegularKey removes the key.
type SetRegularKey struct {
	RegularKey string `json:"RegularKey,omitempty"`
}

func (*SetRegularKey) TxType() Type { return TypeRegularKeySet }

type SignerEntry struct {
	Account      string `json:"Account"`
	SignerWeight uint16 `json:"SignerWeight"`
}

type SignerListSet struct {
	SignerQuorum  uint32
	SignerEntries []SignerEntry
}

func (*SignerListSet) TxType() Type { return TypeSignerListSet }

func (s *SignerListSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		SignerQuorum  uint32 `json:"SignerQuorum"`
		SignerEntries []struct {
			SignerEntry SignerEntry `json:"SignerEntry"`
		} `json:"SignerEntries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.SignerQuorum = raw.SignerQuorum
	s.SignerEntries = make([]SignerEntry, 0, len(raw.SignerEntries))
	for _, w := range raw.SignerEntries {
		s.SignerEntries = append(s.SignerEntries, w.SignerEntry)
	}
	return nil
}

type AccountDelete struct {
	Destination string `json:"Destination"`
}

func (*AccountDelete) TxType() Type { return TypeAccountDelete }

type EscrowCreate struct {
	Destination string        `json:"Destination"`
	Amount      amount.Amount `json:"Amount"`
	FinishAfter *uint32       `json:"FinishAfter,omitempty"`
	CancelAfter *uint32       `json:"CancelAfter,omitempty"`
	Condition   string        `json:"Condition,omitempty"`
}

func (*EscrowCreate) TxType() Type { return TypeEscrowCreate }

type EscrowFinish struct {
	Owner         string `json:"Owner"`
	OfferSequence uint32 `json:"OfferSequence"`
	Condition     string `json:"Condition,omitempty"`
	Fulfillment   string `json:"Fulfillment,omitempty"`
}

func (*EscrowFinish) TxType() Type { return TypeEscrowFinish }

type EscrowCancel struct {
	Owner         string `json:"Owner"`
	OfferSequence uint32 `json:"OfferSequence"`
}

func (*EscrowCancel) TxType() Type { return TypeEscrowCancel }

type PaymentChannelCreate struct {
	Destination string        `json:"Destination"`
	Amount      amount.Amount `json:"Amount"`
	SettleDelay uint32        `json:"SettleDelay"`
	PublicKey   string        `json:"PublicKey,omitempty"`
	CancelAfter *uint32       `json:"CancelAfter,omitempty"`
}

func (*PaymentChannelCreate) TxType() Type { return TypePaymentChannelCreate }

type PaymentChannelFund struct {
	Channel    string        `json:"Channel"`
	Amount     amount.Amount `json:"Amount"`
	Expiration *uint32       `json:"Expiration,omitempty"`
}

func (*PaymentChannelFund) TxType() Type { return TypePaymentChannelFund }

type PaymentChannelClaim struct {
	Channel string         `json:"Channel"`
	Balance *amount.Amount `json:"Balance,omitempty"`
	Amount  *amount.Amount `json:"Amount,omitempty"`
}

func (*PaymentChannelClaim) TxType() Type { return TypePaymentChannelClaim }

type CheckCreate struct {
	Destination string        `json:"Destination"`
	SendMax     amount.Amount `json:"SendMax"`
	Expiration  *uint32       `json:"Expiration,omitempty"`
	InvoiceID   string        `json:"InvoiceID,omitempty"`
}

func (*CheckCreate) TxType() Type { return TypeCheckCreate }

type CheckCash struct {
	CheckID    string         `json:"CheckID"`
	Amount     *amount.Amount `json:"Amount,omitempty"`
	DeliverMin *amount.Amount `json:"DeliverMin,omitempty"`
}

func (*CheckCash) TxType() Type { return TypeCheckCash }

type CheckCancel struct {
	CheckID string `json:"CheckID"`
}

func (*CheckCancel) TxType() Type { return TypeCheckCancel }

type TicketCreate struct {
	TicketCount uint32 `json:"TicketCount"`
}

func (*TicketCreate) TxType() Type { return TypeTicketCreate }

type DepositPreauth struct {
	Authorize   string `json:"Authorize,omitempty"`
	Unauthorize string `json:"Unauthorize,omitempty"`
}

func (*DepositPreauth) TxType() Type { return TypeDepositPreauth }

// SetFee normalises the legacy (BaseFee hex, ReserveBase uint32) and the
// XRPFees (…Drops strings) encodings into drops.
type SetFee struct {
	BaseFee          amount.Drops
	ReserveBase      amount.Drops
	ReserveIncrement amount.Drops
}

func (*SetFee) TxType() Type { return TypeFee }

func (s *SetFee) UnmarshalJSON(data []byte) error {
	var raw struct {
		BaseFee               string  `json:"BaseFee"`
		ReserveBase           *uint32 `json:"ReserveBase"`
		ReserveIncrement      *uint32 `json:"ReserveIncrement"`
		BaseFeeDrops          string  `json:"BaseFeeDrops"`
		ReserveBaseDrops      string  `json:"ReserveBaseDrops"`
		ReserveIncrementDrops string  `json:"ReserveIncrementDrops"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.BaseFeeDrops != "" {
		var err error
		if s.BaseFee, err = amount.ParseDrops(raw.BaseFeeDrops); err != nil {
			return err
		}
		if s.ReserveBase, err = amount.ParseDrops(raw.ReserveBaseDrops); err != nil {
			return err
		}
		if s.ReserveIncrement, err = amount.ParseDrops(raw.ReserveIncrementDrops); err != nil {
			return err
		}
		return nil
	}

	if raw.BaseFee != "" {
		fee, err := strconv.ParseUint(raw.BaseFee, 16, 64)
		if err != nil {
			return err
		}
		s.BaseFee = amount.Drops(fee)
	}
	if raw.ReserveBase != nil {
		s.ReserveBase = amount.Drops(*raw.ReserveBase)
	}
	if raw.ReserveIncrement != nil {
		s.ReserveIncrement = amount.Drops(*raw.ReserveIncrement)
	}
	return nil
}

type EnableAmendment struct {
	Amendment string `json:"Amendment"`
}

func (*EnableAmendment) TxType() Type { return TypeAmendment }

// Generic keeps the raw fields of a type with no dedicated body.
type Generic struct {
	Fields map[string]json.RawMessage
}

func (*Generic) TxType() Type { return TypeUnknown }

func newBody(t Type) Body {
	switch t {
	case TypePayment:
		return &Payment{}
	case TypeOfferCreate:
		return &OfferCreate{}
	case TypeOfferCancel:
		return &OfferCancel{}
	case TypeTrustSet:
		return &TrustSet{}
	case TypeAccountSet:
		return &AccountSet{}
	case TypeRegularKeySet:
		return &SetRegularKey{}
	case TypeSignerListSet:
		return &SignerListSet{}
	case TypeAccountDelete:
		return &AccountDelete{}
	case TypeEscrowCreate:
		return &EscrowCreate{}
	case TypeEscrowFinish:
		return &EscrowFinish{}
	case TypeEscrowCancel:
		return &EscrowCancel{}
	case TypePaymentChannelCreate:
		return &PaymentChannelCreate{}
	case TypePaymentChannelFund:
		return &PaymentChannelFund{}
	case TypePaymentChannelClaim:
		return &PaymentChannelClaim{}
	case TypeCheckCreate:
		return &CheckCreate{}
	case TypeCheckCash:
		return &CheckCash{}
	case TypeCheckCancel:
		return &CheckCancel{}
	case TypeTicketCreate:
		return &TicketCreate{}
	case TypeDepositPreauth:
		return &DepositPreauth{}
	case TypeFee:
		return &SetFee{}
	case TypeAmendment:
		return &EnableAmendment{}
	}
	return nil
}
