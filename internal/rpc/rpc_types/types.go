package rpc_types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LedgerIndex is a custom type that can unmarshal from either a JSON number or string
// This matches XRPL API behavior where ledger_index can be: 12345, "12345", "validated", "current", "closed"
type LedgerIndex string

// UnmarshalJSON implements custom unmarshaling for LedgerIndex
func (li *LedgerIndex) UnmarshalJSON(data []byte) error {
	var strVal string
	if err := json.Unmarshal(data, &strVal); err == nil {
		*li = LedgerIndex(strVal)
		return nil
	}

	var numVal uint64
	if err := json.Unmarshal(data, &numVal); err == nil {
		*li = LedgerIndex(strconv.FormatUint(numVal, 10))
		return nil
	}

	return fmt.Errorf("ledger_index must be a number or string, got: %s", string(data))
}

// MarshalJSON sends numeric indexes as numbers and shortcuts as strings.
func (li LedgerIndex) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseUint(string(li), 10, 32); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(li))
}

func (li LedgerIndex) String() string {
	return string(li)
}

// Uint32 returns the numeric index, or 0 for a shortcut.
func (li LedgerIndex) Uint32() uint32 {
	n, err := strconv.ParseUint(string(li), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// LedgerSpecifier - used to specify which ledger to query
type LedgerSpecifier struct {
	LedgerHash  string      `json:"ledger_hash,omitempty"`
	LedgerIndex LedgerIndex `json:"ledger_index,omitempty"`
}

// Request is the body of a rippled JSON-RPC call: one method, one params
// object wrapped in a list.
type Request struct {
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// Response wraps every JSON-RPC result.
type Response struct {
	Result json.RawMessage `json:"result"`
}

// Status is embedded in every result and in every WebSocket response.
type Status struct {
	Status       string `json:"status,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorCode    int    `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Err converts an error status into an *RpcError, or nil on success.
func (s Status) Err() *RpcError {
	if s.Status != "error" && s.Error == "" {
		return nil
	}
	code := s.ErrorCode
	if code == 0 {
		code = RpcUNKNOWN
	}
	return &RpcError{Code: code, ErrorString: s.Error, Message: s.ErrorMessage}
}

// WebSocketCommand is a request on the WebSocket API. Params are merged
// into the top-level object when encoded.
type WebSocketCommand struct {
	ID      uint64
	Command string
	Params  interface{}
}

func (c WebSocketCommand) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if c.Params != nil {
		raw, err := json.Marshal(c.Params)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("websocket params must be an object: %w", err)
		}
	}
	id, _ := json.Marshal(c.ID)
	cmd, _ := json.Marshal(c.Command)
	fields["id"] = id
	fields["command"] = cmd
	return json.Marshal(fields)
}

// WebSocketResponse represents an XRPL WebSocket API response
type WebSocketResponse struct {
	Status
	ID     uint64          `json:"id"`
	Type   string          `json:"type"`
	Result json.RawMessage `json:"result,omitempty"`
}

// ============================================================================
// Method parameters
// ============================================================================

type TransactionParam struct {
	Transaction string `json:"transaction"`
	Binary      bool   `json:"binary"`
}

type LedgerParam struct {
	LedgerSpecifier
	Transactions bool `json:"transactions"`
	Expand       bool `json:"expand"`
}

type AccountInfoParam struct {
	LedgerSpecifier
	Account string `json:"account"`
	Strict  bool   `json:"strict"`
}

type RippleStateKey struct {
	Accounts [2]string `json:"accounts"`
	Currency string    `json:"currency"`
}

type OfferKey struct {
	Account string `json:"account"`
	Seq     uint32 `json:"seq"`
}

type LedgerEntryParam struct {
	LedgerSpecifier
	RippleState *RippleStateKey `json:"ripple_state,omitempty"`
	Offer       *OfferKey       `json:"offer,omitempty"`
	Binary      bool            `json:"binary"`
}

// ============================================================================
// Method results
// ============================================================================

// TxResult is the binary-mode tx response. API v1 names the blobs tx and
// meta, API v2 tx_blob and meta_blob.
type TxResult struct {
	Status
	Tx          string          `json:"tx"`
	TxBlob      string          `json:"tx_blob"`
	Meta        json.RawMessage `json:"meta"`
	MetaBlob    string          `json:"meta_blob"`
	Hash        string          `json:"hash"`
	LedgerIndex LedgerIndex     `json:"ledger_index"`
	Validated   bool            `json:"validated"`
	Date        *uint32         `json:"date,omitempty"`
}

type LedgerResult struct {
	Status
	Ledger struct {
		LedgerIndex  LedgerIndex       `json:"ledger_index"`
		LedgerHash   string            `json:"ledger_hash"`
		CloseTime    uint32            `json:"close_time"`
		Closed       bool              `json:"closed"`
		Transactions []json.RawMessage `json:"transactions"`
	} `json:"ledger"`
	LedgerHash  string      `json:"ledger_hash"`
	LedgerIndex LedgerIndex `json:"ledger_index"`
	Validated   bool        `json:"validated"`
}

type AccountInfoResult struct {
	Status
	AccountData        json.RawMessage `json:"account_data"`
	LedgerIndex        LedgerIndex     `json:"ledger_index"`
	LedgerCurrentIndex LedgerIndex     `json:"ledger_current_index"`
	Validated          bool            `json:"validated"`
}

type LedgerEntryResult struct {
	Status
	Index              string          `json:"index"`
	Node               json.RawMessage `json:"node"`
	NodeBinary         string          `json:"node_binary"`
	LedgerIndex        LedgerIndex     `json:"ledger_index"`
	LedgerCurrentIndex LedgerIndex     `json:"ledger_current_index"`
	Validated          bool            `json:"validated"`
}

type ServerStateResult struct {
	Status
	State struct {
		ValidatedLedger *struct {
			BaseFee     uint64 `json:"base_fee"`
			CloseTime   uint32 `json:"close_time"`
			Hash        string `json:"hash"`
			ReserveBase uint64 `json:"reserve_base"`
			ReserveInc  uint64 `json:"reserve_inc"`
			Seq         uint32 `json:"seq"`
		} `json:"validated_ledger"`
	} `json:"state"`
}
