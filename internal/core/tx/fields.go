package tx

import (
	"encoding/json"
	"strconv"

	"github.com/mDuo13/txsplain/internal/core/amount"
)

// FieldSet is one of an affected node's NewFields, PreviousFields or
// FinalFields. Fields are decoded on access; a missing or mistyped field
// reads as absent.
type FieldSet map[string]json.RawMessage

// Has reports whether every named field is present.
func (f FieldSet) Has(names ...string) bool {
	if f == nil {
		return false
	}
	for _, name := range names {
		if _, ok := f[name]; !ok {
			return false
		}
	}
	return true
}

func (f FieldSet) String(name string) (string, bool) {
	raw, ok := f[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (f FieldSet) Uint32(name string) (uint32, bool) {
	raw, ok := f[name]
	if !ok {
		return 0, false
	}
	var v uint32
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

// HexUint64 reads the 64-bit hex strings used for directory page fields.
func (f FieldSet) HexUint64(name string) (uint64, bool) {
	s, ok := f.String(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (f FieldSet) Amount(name string) (amount.Amount, bool) {
	raw, ok := f[name]
	if !ok {
		return amount.Amount{}, false
	}
	var a amount.Amount
	if err := json.Unmarshal(raw, &a); err != nil {
		return amount.Amount{}, false
	}
	return a, true
}

// FirstWith returns the first set carrying every named field.
func FirstWith(sets []FieldSet, names ...string) (FieldSet, bool) {
	for _, s := range sets {
		if s.Has(names...) {
			return s, true
		}
	}
	return nil, false
}
