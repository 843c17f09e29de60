package tx

import (
	"encoding/json"

	"github.com/mDuo13/txsplain/internal/core/amount"
)

// ResultSuccess is the only result code that means the transaction did
// what it asked.
const ResultSuccess = "tesSUCCESS"

// Meta is the execution metadata attached to a validated or provisional
// transaction.
type Meta struct {
	TransactionIndex  *uint32
	TransactionResult string
	AffectedNodes     []AffectedNode
	Delivered         *Delivered
}

// Delivered is the amount a payment actually delivered. Old ledgers report
// the string "unavailable" instead of an amount.
type Delivered struct {
	Amount      amount.Amount
	Unavailable bool
}

func (d *Delivered) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == "unavailable" {
		*d = Delivered{Unavailable: true}
		return nil
	}
	var a amount.Amount
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = Delivered{Amount: a}
	return nil
}

type metaJSON struct {
	TransactionIndex     *uint32        `json:"TransactionIndex"`
	TransactionResult    string         `json:"TransactionResult"`
	AffectedNodes        []AffectedNode `json:"AffectedNodes"`
	DeliveredAmountSnake *Delivered     `json:"delivered_amount"`
	DeliveredAmountCamel *Delivered     `json:"DeliveredAmount"`
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	var raw metaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Meta{
		TransactionIndex:  raw.TransactionIndex,
		TransactionResult: raw.TransactionResult,
		AffectedNodes:     raw.AffectedNodes,
		Delivered:         raw.DeliveredAmountSnake,
	}
	if m.Delivered == nil {
		m.Delivered = raw.DeliveredAmountCamel
	}
	return nil
}

// Succeeded reports whether the result code is tesSUCCESS.
func (m *Meta) Succeeded() bool {
	return m != nil && m.TransactionResult == ResultSuccess
}
