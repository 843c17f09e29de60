package ledger

import (
	"encoding/json"
	"testing"

	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	genesis = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	gateway = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
)

func TestReservesForOwnerCount(t *testing.T) {
	r := Reserves{Base: 10_000_000, Increment: 2_000_000}
	assert.Equal(t, amount.Drops(10_000_000), r.ForOwnerCount(0))
	assert.Equal(t, amount.Drops(16_000_000), r.ForOwnerCount(3))
}

func TestSelectorString(t *testing.T) {
	assert.Equal(t, "validated", Selector{}.String())
	assert.Equal(t, "current", Current().String())
	assert.Equal(t, "42", AtIndex(42).String())
	assert.Equal(t, "ABCD", AtHash("ABCD").String())
}

func TestPage(t *testing.T) {
	p, ok := Page("000000000000000F")
	assert.True(t, ok)
	assert.Equal(t, uint64(15), p)

	p, ok = Page("")
	assert.True(t, ok)
	assert.Zero(t, p)

	_, ok = Page("zz")
	assert.False(t, ok)
}

func TestValidateKeys(t *testing.T) {
	assert.NoError(t, ValidateAddress(genesis))
	assert.ErrorIs(t, ValidateAddress("rNotAnAddress"), ErrInvalidAddress)

	assert.NoError(t, ValidateCurrency("USD"))
	assert.NoError(t, ValidateCurrency("0158415500000000C1F76FF6ECB0BAC600000000"))
	assert.ErrorIs(t, ValidateCurrency("XRP"), ErrInvalidCurrency)
	assert.ErrorIs(t, ValidateCurrency("DOLLARS"), ErrInvalidCurrency)

	assert.NoError(t, TrustLineKey{A: genesis, B: gateway, Currency: "USD"}.Validate())
	assert.ErrorIs(t, TrustLineKey{A: genesis, B: genesis, Currency: "USD"}.Validate(), ErrInvalidAddress)
	assert.ErrorIs(t, OfferKey{Account: "x", Sequence: 1}.Validate(), ErrInvalidAddress)
}

func TestRippleStateDecode(t *testing.T) {
	data := `{
		"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "-5"},
		"Flags": 131072,
		"HighLimit": {"currency": "USD", "issuer": "` + genesis + `", "value": "100"},
		"HighNode": "0000000000000000",
		"LedgerEntryType": "RippleState",
		"LowLimit": {"currency": "USD", "issuer": "` + gateway + `", "value": "0"},
		"LowNode": "0000000000000001",
		"PreviousTxnID": "E3FE6EA3D48F0C2B639448020EA4F03D4F4F8FFDB243A852A0F59177921B4879",
		"PreviousTxnLgrSeq": 14090896,
		"index": "9CA88CDEDFF9252B3DE183CE35B038F57282BC9503CDFA1923EF9A95DF0D6F7B"
	}`

	var rs RippleState
	require.NoError(t, json.Unmarshal([]byte(data), &rs))
	assert.Equal(t, gateway, rs.Low())
	assert.Equal(t, genesis, rs.High())
	assert.Equal(t, -1, rs.Balance.Sign())
	assert.Equal(t, uint32(14090896), rs.PreviousTxnLgrSeq)
	assert.Zero(t, rs.LedgerIndex)
}
