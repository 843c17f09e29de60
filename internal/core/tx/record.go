package tx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mDuo13/txsplain/internal/core/amount"
)

// Memo fields are hex-encoded on the wire.
type Memo struct {
	MemoType   string `json:"MemoType,omitempty"`
	MemoData   string `json:"MemoData,omitempty"`
	MemoFormat string `json:"MemoFormat,omitempty"`
}

// MemoWrapper wraps a Memo for JSON serialization
type MemoWrapper struct {
	Memo Memo `json:"Memo"`
}

// Record is a transaction as returned by the tx method, with its metadata
// and the ledger it was found in.
type Record struct {
	Hash     string
	Type     Type
	TypeName string

	Account        string
	Fee            amount.Amount
	Flags          *uint32
	Sequence       uint32
	TicketSequence *uint32
	SourceTag      *uint32
	DestinationTag *uint32
	Memos          []Memo

	Body Body
	Meta *Meta

	// LedgerIndex is zero when the transaction is not in any ledger yet.
	LedgerIndex uint32
	Validated   bool
	// Date is the close time of the containing ledger, when reported.
	Date *uint32
}

// FlagsValue treats a missing Flags field as no flags.
func (r *Record) FlagsValue() uint32 {
	if r.Flags == nil {
		return 0
	}
	return *r.Flags
}

type commonJSON struct {
	TransactionType string        `json:"TransactionType"`
	Account         string        `json:"Account"`
	Fee             amount.Amount `json:"Fee"`
	Flags           *uint32       `json:"Flags"`
	Sequence        uint32        `json:"Sequence"`
	TicketSequence  *uint32       `json:"TicketSequence"`
	SourceTag       *uint32       `json:"SourceTag"`
	DestinationTag  *uint32       `json:"DestinationTag"`
	Memos           []MemoWrapper `json:"Memos"`
	Hash            string        `json:"hash"`
}

type envelopeJSON struct {
	Hash        string          `json:"hash"`
	LedgerIndex flexUint32      `json:"ledger_index"`
	Validated   bool            `json:"validated"`
	Date        *uint32         `json:"date"`
	Meta        json.RawMessage `json:"meta"`
	MetaData    json.RawMessage `json:"metaData"`
	TxJSON      json.RawMessage `json:"tx_json"`
}

// Decode parses a tx method result. Both the flat API v1 shape and the
// API v2 tx_json shape are accepted. Unknown transaction types decode into
// a Generic body.
func Decode(data []byte) (*Record, error) {
	var env envelopeJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode transaction envelope: %w", err)
	}

	txData := data
	if len(env.TxJSON) > 0 && !bytes.Equal(env.TxJSON, []byte("null")) {
		txData = env.TxJSON
	}

	var c commonJSON
	if err := json.Unmarshal(txData, &c); err != nil {
		return nil, fmt.Errorf("decode transaction fields: %w", err)
	}
	if c.TransactionType == "" {
		return nil, fmt.Errorf("decode transaction: missing TransactionType")
	}

	rec := &Record{
		Hash:           env.Hash,
		Type:           TypeFromName(c.TransactionType),
		TypeName:       c.TransactionType,
		Account:        c.Account,
		Fee:            c.Fee,
		Flags:          c.Flags,
		Sequence:       c.Sequence,
		TicketSequence: c.TicketSequence,
		SourceTag:      c.SourceTag,
		DestinationTag: c.DestinationTag,
		LedgerIndex:    uint32(env.LedgerIndex),
		Validated:      env.Validated,
		Date:           env.Date,
	}
	if rec.Hash == "" {
		rec.Hash = c.Hash
	}
	for _, w := range c.Memos {
		rec.Memos = append(rec.Memos, w.Memo)
	}

	body := newBody(rec.Type)
	if body == nil {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(txData, &fields); err != nil {
			return nil, fmt.Errorf("decode %s fields: %w", rec.TypeName, err)
		}
		body = &Generic{Fields: fields}
	} else if err := json.Unmarshal(txData, body); err != nil {
		return nil, fmt.Errorf("decode %s fields: %w", rec.TypeName, err)
	}
	rec.Body = body

	metaRaw := env.Meta
	if len(metaRaw) == 0 {
		metaRaw = env.MetaData
	}
	if len(metaRaw) > 0 && !bytes.Equal(metaRaw, []byte("null")) {
		var meta Meta
		if err := json.Unmarshal(metaRaw, &meta); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
		rec.Meta = &meta
	}

	return rec, nil
}

// flexUint32 accepts a JSON number or a decimal string.
type flexUint32 uint32

func (f *flexUint32) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid ledger index %q", s)
		}
		*f = flexUint32(v)
		return nil
	}
	var v uint32
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexUint32(v)
	return nil
}
