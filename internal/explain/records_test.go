package explain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReserves = ledger.Reserves{Base: 10_000_000, Increment: 2_000_000}

func accountRoot(t *testing.T) *ledger.AccountRoot {
	t.Helper()
	var acct ledger.AccountRoot
	require.NoError(t, json.Unmarshal([]byte(`{
		"Account": "`+alice+`",
		"Balance": "100000000",
		"Flags": 8388608,
		"OwnerCount": 3,
		"Sequence": 42,
		"Domain": "6578616D706C652E636F6D",
		"EmailHash": "98B4375E1D753E5B91627516F6D70977",
		"TransferRate": 1005000000,
		"RegularKey": "`+gateway+`",
		"PreviousTxnID": "`+txHash+`",
		"PreviousTxnLgrSeq": 99,
		"index": "13F1A95D7AAB7108D5CE7EEAF504B2894B8C674E6D68499076441C4837282BF8"
	}`), &acct))
	acct.Where = ledger.Where{LedgerIndex: 100, Validated: true}
	return &acct
}

// =============================================================================
// Accounts
// =============================================================================

func TestExplainAccount(t *testing.T) {
	e, source := newTestExplainer(t)
	source.EXPECT().Reserves(gomock.Any()).Return(testReserves, nil)

	text, err := e.ExplainAccount(context.Background(), accountRoot(t), true)
	require.NoError(t, err)

	want := "Parties involved:\n" +
		"  " + alice + ": ~alice\n" +
		"  " + gateway + ": ~bitstamp\n" +
		"\n" +
		"This is the account ~alice.\n" +
		"It holds 100.000000 XRP.\n" +
		"It owns 3 objects in the ledger, so its reserve requirement is 16.000000 XRP.\n" +
		"That leaves 84.000000 XRP available to spend.\n" +
		"Its next transaction sequence number is 42.\n" +
		"It has the following flags enabled: lsfDefaultRipple.\n" +
		"It has a regular key set to ~bitstamp.\n" +
		"Its domain is 'example.com'.\n" +
		"Its avatar is https://www.gravatar.com/avatar/98b4375e1d753e5b91627516f6d70977.\n" +
		"It charges a transfer fee of 0.5% on the currencies it issues.\n" +
		"It was last modified by the transaction " + txHash + " in ledger 99.\n" +
		"Its ledger entry index is 13F1A95D7AAB7108D5CE7EEAF504B2894B8C674E6D68499076441C4837282BF8.\n" +
		"This information comes from validated ledger 100.\n"
	assert.Equal(t, want, text)
}

func TestExplainAccountBelowReserve(t *testing.T) {
	e, source := newTestExplainer(t)
	source.EXPECT().Reserves(gomock.Any()).Return(testReserves, nil)

	acct := accountRoot(t)
	acct.Balance = amount.Native(12_000_000)
	text, err := e.ExplainAccount(context.Background(), acct, false)
	require.NoError(t, err)
	assert.Contains(t, text, "It has no XRP available to spend above its reserve.\n")
	assert.NotContains(t, text, "ledger entry index")
}

func TestExplainAccountFailsWithoutReserves(t *testing.T) {
	e, source := newTestExplainer(t)
	source.EXPECT().Reserves(gomock.Any()).Return(ledger.Reserves{}, errors.New("server_state: timeout"))

	_, err := e.ExplainAccount(context.Background(), accountRoot(t), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserves")
}

// =============================================================================
// Trust lines
// =============================================================================

func TestExplainTrustLine(t *testing.T) {
	e, _ := newTestExplainer(t)

	var line ledger.RippleState
	require.NoError(t, json.Unmarshal([]byte(`{
		"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "-5"},
		"Flags": 131072,
		"HighLimit": {"currency": "USD", "issuer": "`+alice+`", "value": "100"},
		"HighNode": "0000000000000000",
		"HighQualityIn": 1010000000,
		"LowLimit": {"currency": "USD", "issuer": "`+gateway+`", "value": "0"},
		"LowNode": "0000000000000001",
		"PreviousTxnID": "`+txHash+`",
		"PreviousTxnLgrSeq": 14090896
	}`), &line))

	text, err := e.ExplainTrustLine(context.Background(), &line, false)
	require.NoError(t, err)

	want := "Parties involved:\n" +
		"  " + alice + ": ~alice\n" +
		"  " + gateway + ": ~bitstamp\n" +
		"\n" +
		"This is the USD trust line between ~alice and ~bitstamp.\n" +
		"~alice holds 5 USD issued by ~bitstamp.\n" +
		"~bitstamp does not extend any trust to ~alice.\n" +
		"~alice trusts ~bitstamp for up to 100 USD.\n" +
		"It has the following flags enabled: lsfHighReserve.\n" +
		"~alice values incoming balances at 101% of face value.\n" +
		"It is listed on page 1 of ~bitstamp's owner directory.\n" +
		"It is listed on page 0 of ~alice's owner directory.\n" +
		"It was last modified by the transaction " + txHash + " in ledger 14090896.\n"
	assert.Equal(t, want, text)
}

// =============================================================================
// Offers
// =============================================================================

func testOffer(t *testing.T, expiration string) *ledger.Offer {
	t.Helper()
	extra := ""
	if expiration != "" {
		extra = `"Expiration": ` + expiration + `,`
	}
	var offer ledger.Offer
	require.NoError(t, json.Unmarshal([]byte(`{
		"Account": "`+alice+`",
		"Sequence": 5,
		"TakerPays": {"currency": "USD", "issuer": "`+gateway+`", "value": "10"},
		"TakerGets": "5000000",
		"Flags": 131072,
		"BookDirectory": "DFA3B6DDAB58C7E8E5D944E736DA4B7046C30E4F460FD9DE4C1AA535D3D0C000",
		"BookNode": "0000000000000000",
		"OwnerNode": "0000000000000002",
		`+extra+`
		"PreviousTxnID": "`+txHash+`",
		"PreviousTxnLgrSeq": 99
	}`), &offer))
	return &offer
}

func TestExplainOffer(t *testing.T) {
	e, _ := newTestExplainer(t)

	text, err := e.ExplainOffer(context.Background(), testOffer(t, ""), false)
	require.NoError(t, err)

	want := "Parties involved:\n" +
		"  " + alice + ": ~alice\n" +
		"  " + gateway + ": ~bitstamp\n" +
		"\n" +
		"This is ~alice's Offer #5 to buy 10 USD.bitstamp for 5.000000 XRP.\n" +
		"It sells the full amount offered even if that returns more than asked for.\n" +
		"It has the following flags enabled: lsfSell.\n" +
		"It is listed in the order book directory DFA3B6DDAB58C7E8E5D944E736DA4B7046C30E4F460FD9DE4C1AA535D3D0C000, page 0.\n" +
		"It is listed on page 2 of ~alice's owner directory.\n" +
		"It does not expire.\n" +
		"It was last modified by the transaction " + txHash + " in ledger 99.\n"
	assert.Equal(t, want, text)
}

func TestExplainOfferExpiration(t *testing.T) {
	tests := []struct {
		name   string
		header *ledger.Header
		err    error
		want   string
	}{
		{
			name:   "expired",
			header: &ledger.Header{Index: 200, CloseTime: 700000000, Validated: true},
			want:   "It expired at " + amount.EpochToISO8601(600000000) + ", so it can no longer be taken.\n",
		},
		{
			name:   "live",
			header: &ledger.Header{Index: 200, CloseTime: 500000000, Validated: true},
			want:   "It expires at " + amount.EpochToISO8601(600000000) + ".\n",
		},
		{
			name: "no ledger context",
			err:  errors.New("connection refused"),
			want: "It is set to expire at " + amount.EpochToISO8601(600000000) + ".\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, source := newTestExplainer(t)
			source.EXPECT().Ledger(gomock.Any(), ledger.Validated()).Return(tc.header, tc.err)

			text, err := e.ExplainOffer(context.Background(), testOffer(t, "600000000"), false)
			require.NoError(t, err)
			assert.Contains(t, text, tc.want)
		})
	}
}

// Scenario D: an address the identity service does not know still shows up
// among the parties, without the display prefix.
func TestUnknownPartyListed(t *testing.T) {
	e, _ := newTestExplainer(t)
	offer := testOffer(t, "")
	offer.Account = genesis

	text, err := e.ExplainOffer(context.Background(), offer, false)
	require.NoError(t, err)

	unknown := alias.UnknownLabel(genesis)
	assert.Contains(t, text, "  "+genesis+": "+unknown+"\n")
	assert.Contains(t, text, "This is "+unknown+"'s Offer #5")
	assert.NotContains(t, text, alias.Prefix+genesis)
}
