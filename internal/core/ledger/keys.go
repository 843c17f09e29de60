package ledger

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"
)

var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// ValidateAddress checks a classic address, including its checksum.
func ValidateAddress(address string) error {
	if !addresscodec.IsValidClassicAddress(address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return nil
}

// ValidateCurrency accepts three-character codes other than XRP and
// 40-character hex codes.
func ValidateCurrency(code string) error {
	switch len(code) {
	case 3:
		if strings.EqualFold(code, "XRP") {
			return fmt.Errorf("%w: XRP has no trust lines", ErrInvalidCurrency)
		}
		return nil
	case 40:
		if _, err := hex.DecodeString(code); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
}

// TrustLineKey identifies a trust line by its two parties and currency.
type TrustLineKey struct {
	A        string
	B        string
	Currency string
}

func (k TrustLineKey) Validate() error {
	if err := ValidateAddress(k.A); err != nil {
		return err
	}
	if err := ValidateAddress(k.B); err != nil {
		return err
	}
	if k.A == k.B {
		return fmt.Errorf("%w: a trust line needs two different accounts", ErrInvalidAddress)
	}
	return ValidateCurrency(k.Currency)
}

// OfferKey identifies an offer by its owner and creating sequence.
type OfferKey struct {
	Account  string
	Sequence uint32
}

func (k OfferKey) Validate() error {
	return ValidateAddress(k.Account)
}
