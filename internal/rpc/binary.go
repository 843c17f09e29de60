package rpc

import (
	"encoding/json"
	"fmt"

	binarycodec "github.com/Peersyst/xrpl-go/binary-codec"
	"github.com/mDuo13/txsplain/internal/rpc/rpc_types"
)

// binaryTransaction turns a binary-mode tx result into the JSON shape of a
// non-binary one, so both decode through tx.Decode.
func binaryTransaction(res *rpc_types.TxResult) ([]byte, error) {
	txBlob := res.TxBlob
	if txBlob == "" {
		txBlob = res.Tx
	}
	if txBlob == "" {
		return nil, fmt.Errorf("binary result has no transaction blob")
	}
	fields, err := binarycodec.Decode(txBlob)
	if err != nil {
		return nil, fmt.Errorf("decode transaction blob: %w", err)
	}

	metaBlob := res.MetaBlob
	if metaBlob == "" && len(res.Meta) > 0 {
		// API v1 puts the hex blob in meta.
		if err := json.Unmarshal(res.Meta, &metaBlob); err != nil {
			return nil, fmt.Errorf("binary result meta is not a blob: %w", err)
		}
	}
	if metaBlob != "" {
		meta, err := binarycodec.Decode(metaBlob)
		if err != nil {
			return nil, fmt.Errorf("decode metadata blob: %w", err)
		}
		fields["meta"] = meta
	}

	fields["hash"] = res.Hash
	fields["validated"] = res.Validated
	if n := res.LedgerIndex.Uint32(); n != 0 {
		fields["ledger_index"] = n
	}
	if res.Date != nil {
		fields["date"] = *res.Date
	}
	return json.Marshal(fields)
}

// binaryEntry decodes a ledger_entry node_binary blob into JSON with the
// entry index added.
func binaryEntry(blob, index string) ([]byte, error) {
	fields, err := binarycodec.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("decode ledger entry blob: %w", err)
	}
	if index != "" {
		fields["index"] = index
	}
	return json.Marshal(fields)
}
