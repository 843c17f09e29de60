package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/mDuo13/txsplain/internal/core/tx"
	"github.com/mDuo13/txsplain/internal/rpc/rpc_types"
	"go.uber.org/zap"
)

func specifier(sel ledger.Selector) rpc_types.LedgerSpecifier {
	switch {
	case sel.Hash != "":
		return rpc_types.LedgerSpecifier{LedgerHash: sel.Hash}
	case sel.Index != 0:
		return rpc_types.LedgerSpecifier{LedgerIndex: rpc_types.LedgerIndex(strconv.FormatUint(uint64(sel.Index), 10))}
	case sel.Shortcut != "":
		return rpc_types.LedgerSpecifier{LedgerIndex: rpc_types.LedgerIndex(sel.Shortcut)}
	}
	return rpc_types.LedgerSpecifier{LedgerIndex: ledger.ShortcutValidated}
}

func where(index, current rpc_types.LedgerIndex, validated bool) ledger.Where {
	n := index.Uint32()
	if n == 0 {
		n = current.Uint32()
	}
	return ledger.Where{LedgerIndex: n, Validated: validated}
}

// Transaction fetches a transaction and its metadata by hash.
func (c *Client) Transaction(ctx context.Context, hash string) (*tx.Record, error) {
	params := rpc_types.TransactionParam{Transaction: strings.ToUpper(hash), Binary: c.binary}

	var raw json.RawMessage
	if err := c.call(ctx, "tx", params, &raw); err != nil {
		return nil, err
	}

	data := []byte(raw)
	if c.binary {
		var res rpc_types.TxResult
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("tx: decode binary result: %w", err)
		}
		converted, err := binaryTransaction(&res)
		if err != nil {
			return nil, fmt.Errorf("tx %s: %w", hash, err)
		}
		data = converted
	}

	rec, err := tx.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", hash, err)
	}
	return rec, nil
}

// Ledger fetches a ledger header with its transaction count. Validated
// headers are served from the cache when possible.
func (c *Client) Ledger(ctx context.Context, sel ledger.Selector) (*ledger.Header, error) {
	if h, ok := c.ledgers.Get(sel); ok {
		c.logger.Debug("ledger cache hit", zap.String("ledger", sel.String()))
		return h, nil
	}

	params := rpc_types.LedgerParam{LedgerSpecifier: specifier(sel), Transactions: true}
	var res rpc_types.LedgerResult
	if err := c.call(ctx, "ledger", params, &res); err != nil {
		return nil, err
	}

	index := res.Ledger.LedgerIndex.Uint32()
	if index == 0 {
		index = res.LedgerIndex.Uint32()
	}
	hash := res.Ledger.LedgerHash
	if hash == "" {
		hash = res.LedgerHash
	}
	h := &ledger.Header{
		Index:            index,
		Hash:             hash,
		CloseTime:        res.Ledger.CloseTime,
		Validated:        res.Validated,
		TransactionCount: len(res.Ledger.Transactions),
		HasTransactions:  res.Ledger.Transactions != nil,
	}
	c.ledgers.Put(h)
	return h, nil
}

// AccountRoot fetches an account's root entry.
func (c *Client) AccountRoot(ctx context.Context, address string, sel ledger.Selector) (*ledger.AccountRoot, error) {
	params := rpc_types.AccountInfoParam{LedgerSpecifier: specifier(sel), Account: address, Strict: true}
	var res rpc_types.AccountInfoResult
	if err := c.call(ctx, "account_info", params, &res); err != nil {
		return nil, err
	}

	var acct ledger.AccountRoot
	if err := json.Unmarshal(res.AccountData, &acct); err != nil {
		return nil, fmt.Errorf("account_info: decode account_data: %w", err)
	}
	acct.Where = where(res.LedgerIndex, res.LedgerCurrentIndex, res.Validated)
	return &acct, nil
}

// TrustLine fetches the RippleState entry between two accounts.
func (c *Client) TrustLine(ctx context.Context, key ledger.TrustLineKey, sel ledger.Selector) (*ledger.RippleState, error) {
	params := rpc_types.LedgerEntryParam{
		LedgerSpecifier: specifier(sel),
		RippleState: &rpc_types.RippleStateKey{
			Accounts: [2]string{key.A, key.B},
			Currency: key.Currency,
		},
		Binary: c.binary,
	}
	var line ledger.RippleState
	w, err := c.ledgerEntry(ctx, params, &line)
	if err != nil {
		return nil, err
	}
	line.Where = w
	return &line, nil
}

// Offer fetches the Offer entry created by an account's sequence.
func (c *Client) Offer(ctx context.Context, key ledger.OfferKey, sel ledger.Selector) (*ledger.Offer, error) {
	params := rpc_types.LedgerEntryParam{
		LedgerSpecifier: specifier(sel),
		Offer:           &rpc_types.OfferKey{Account: key.Account, Seq: key.Sequence},
		Binary:          c.binary,
	}
	var offer ledger.Offer
	w, err := c.ledgerEntry(ctx, params, &offer)
	if err != nil {
		return nil, err
	}
	offer.Where = w
	return &offer, nil
}

func (c *Client) ledgerEntry(ctx context.Context, params rpc_types.LedgerEntryParam, out interface{}) (ledger.Where, error) {
	var res rpc_types.LedgerEntryResult
	if err := c.call(ctx, "ledger_entry", params, &res); err != nil {
		return ledger.Where{}, err
	}

	data := []byte(res.Node)
	if res.NodeBinary != "" {
		converted, err := binaryEntry(res.NodeBinary, res.Index)
		if err != nil {
			return ledger.Where{}, fmt.Errorf("ledger_entry: %w", err)
		}
		data = converted
	}
	if len(data) == 0 {
		return ledger.Where{}, fmt.Errorf("ledger_entry: result has no node")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return ledger.Where{}, fmt.Errorf("ledger_entry: decode node: %w", err)
	}
	return where(res.LedgerIndex, res.LedgerCurrentIndex, res.Validated), nil
}

// Reserves reads the reserve constants of the latest validated ledger.
func (c *Client) Reserves(ctx context.Context) (ledger.Reserves, error) {
	var res rpc_types.ServerStateResult
	if err := c.call(ctx, "server_state", nil, &res); err != nil {
		return ledger.Reserves{}, err
	}
	vl := res.State.ValidatedLedger
	if vl == nil {
		return ledger.Reserves{}, fmt.Errorf("server_state: server has no validated ledger")
	}
	return ledger.Reserves{
		Base:      amount.Drops(vl.ReserveBase),
		Increment: amount.Drops(vl.ReserveInc),
	}, nil
}
