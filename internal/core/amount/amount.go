// Package amount models ledger amounts and renders them for people.
package amount

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NativeSymbol is the display symbol of the native currency.
const NativeSymbol = "XRP"

// Kind discriminates the Amount union.
type Kind uint8

const (
	KindNative Kind = iota
	KindIssued
)

// ErrInvalidAmount is returned when a wire amount is neither a drops string
// nor a {currency, value, issuer} object.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is either a native quantity in drops or an issued-currency value.
// Only the fields of the active Kind are meaningful.
type Amount struct {
	Kind     Kind
	Drops    Drops
	Currency string
	Value    decimal.Decimal
	Issuer   string
}

// Native builds a native amount.
func Native(d Drops) Amount {
	return Amount{Kind: KindNative, Drops: d}
}

// Issued builds an issued amount from its decimal string value.
func Issued(currency, value, issuer string) (Amount, error) {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: value %q: %v", ErrInvalidAmount, value, err)
	}
	return Amount{Kind: KindIssued, Currency: currency, Value: v, Issuer: issuer}, nil
}

// MustIssued is Issued for literals; it panics on a bad value.
func MustIssued(currency, value, issuer string) Amount {
	a, err := Issued(currency, value, issuer)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) IsNative() bool {
	return a.Kind == KindNative
}

// Number returns the amount as a decimal in display units.
func (a Amount) Number() decimal.Decimal {
	if a.IsNative() {
		return a.Drops.XRP()
	}
	return a.Value
}

// CurrencyCode returns NativeSymbol for native amounts.
func (a Amount) CurrencyCode() string {
	if a.IsNative() {
		return NativeSymbol
	}
	return a.Currency
}

func (a Amount) Sign() int {
	return a.Number().Sign()
}

// Sub returns a - b. Mixing kinds is a caller error.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Kind != b.Kind {
		return Amount{}, fmt.Errorf("%w: cannot subtract mixed kinds", ErrInvalidAmount)
	}
	if a.IsNative() {
		return Native(a.Drops.Sub(b.Drops)), nil
	}
	out := a
	out.Value = a.Value.Sub(b.Value)
	return out, nil
}

// Neg flips the sign.
func (a Amount) Neg() Amount {
	if a.IsNative() {
		return Native(-a.Drops)
	}
	out := a
	out.Value = a.Value.Neg()
	return out
}

// Abs drops the sign.
func (a Amount) Abs() Amount {
	if a.Sign() < 0 {
		return a.Neg()
	}
	return a
}

type issuedJSON struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
	Issuer   string `json:"issuer,omitempty"`
}

// UnmarshalJSON accepts a drops string for native amounts and an object for
// issued ones.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d, err := ParseDrops(s)
		if err != nil {
			return fmt.Errorf("%w: drops %q", ErrInvalidAmount, s)
		}
		*a = Native(d)
		return nil
	}

	var obj issuedJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if obj.Currency == "" {
		return fmt.Errorf("%w: missing currency", ErrInvalidAmount)
	}
	if obj.Currency == NativeSymbol && obj.Issuer == "" {
		// Some older responses spell native amounts as objects.
		v, err := decimal.NewFromString(obj.Value)
		if err != nil {
			return fmt.Errorf("%w: value %q", ErrInvalidAmount, obj.Value)
		}
		*a = Native(Drops(v.Shift(6).IntPart()))
		return nil
	}
	parsed, err := Issued(obj.Currency, obj.Value, obj.Issuer)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsNative() {
		return json.Marshal(a.Drops.String())
	}
	return json.Marshal(issuedJSON{Currency: a.Currency, Value: a.Value.String(), Issuer: a.Issuer})
}
