package explain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/core/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNarration resolves from a cache preloaded with names and treats
// every other address as unknown.
func testNarration() *narration {
	cache := alias.NewCache()
	for address, name := range names {
		cache.Set(address, alias.Entry{Name: name, Known: true})
	}
	return &narration{
		ctx:      context.Background(),
		resolver: alias.NewResolver(cache, nil, nil),
		parties:  alias.NewParties(),
	}
}

func node(t *testing.T, data string) tx.AffectedNode {
	t.Helper()
	var n tx.AffectedNode
	require.NoError(t, json.Unmarshal([]byte(data), &n))
	return n
}

// Scenario C: the low side's higher limit picks its perspective even though
// the balance favours the high side.
func TestTrustLineChangeLowPerspective(t *testing.T) {
	n := testNarration()
	nd := node(t, `{"ModifiedNode": {
		"LedgerEntryType": "RippleState",
		"FinalFields": {
			"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "-3"},
			"LowLimit": {"currency": "USD", "issuer": "`+alice+`", "value": "100"},
			"HighLimit": {"currency": "USD", "issuer": "`+gateway+`", "value": "50"}
		},
		"PreviousFields": {
			"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "-5"}
		}
	}}`)

	assert.Equal(t, ", increasing the amount ~alice holds by 2.000000 USD", n.describeChange(nd))
}

func TestNodeAddressesSkipBalanceIssuer(t *testing.T) {
	nd := node(t, `{"ModifiedNode": {
		"LedgerEntryType": "RippleState",
		"FinalFields": {
			"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "-3"},
			"LowLimit": {"currency": "USD", "issuer": "`+alice+`", "value": "100"},
			"HighLimit": {"currency": "USD", "issuer": "`+gateway+`", "value": "50"}
		},
		"PreviousFields": {
			"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "-5"}
		}
	}}`)

	c := newCollector()
	c.fields(nd.Final)
	c.fields(nd.Previous)
	assert.Equal(t, []string{gateway, alice}, c.list)
}

func TestTrustLineChangePerspective(t *testing.T) {
	line := func(low, high, prev, final string) string {
		return `{"ModifiedNode": {
			"LedgerEntryType": "RippleState",
			"FinalFields": {
				"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "` + final + `"},
				"LowLimit": {"currency": "USD", "issuer": "` + alice + `", "value": "` + low + `"},
				"HighLimit": {"currency": "USD", "issuer": "` + gateway + `", "value": "` + high + `"}
			},
			"PreviousFields": {
				"Balance": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrBZbvji", "value": "` + prev + `"}
			}
		}}`
	}

	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "low holds and receives",
			data: line("0", "0", "1", "4.5"),
			want: ", increasing the amount ~alice holds by 3.500000 USD",
		},
		{
			name: "low holds and spends",
			data: line("0", "0", "10", "0"),
			want: ", decreasing the amount ~alice holds by 10.000000 USD",
		},
		{
			name: "high holds and receives",
			data: line("0", "10", "-1", "-3"),
			want: ", increasing the amount ~bitstamp holds by 2.000000 USD",
		},
		{
			name: "high holds and spends",
			data: line("0", "10", "-3", "-1"),
			want: ", decreasing the amount ~bitstamp holds by 2.000000 USD",
		},
		{
			name: "limits compare as decimals",
			data: line("9", "10", "-2", "-1"),
			want: ", decreasing the amount ~bitstamp holds by 1.000000 USD",
		},
		{
			name: "no change",
			data: line("0", "0", "1", "1"),
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, testNarration().describeChange(node(t, tc.data)))
		})
	}
}

func TestAccountRootChanges(t *testing.T) {
	n := testNarration()
	nd := node(t, `{"ModifiedNode": {
		"LedgerEntryType": "AccountRoot",
		"FinalFields": {"Account": "`+alice+`", "Balance": "9000000", "OwnerCount": 2},
		"PreviousFields": {"Balance": "10000000", "OwnerCount": 1}
	}}`)
	assert.Equal(t, "the account ~alice", n.describeNode(nd))
	assert.Equal(t, ", decreasing its XRP balance by 1.000000, and increasing its owner count to 2", n.describeChange(nd))
}

func TestOfferNode(t *testing.T) {
	n := testNarration()

	consumed := node(t, `{"DeletedNode": {
		"LedgerEntryType": "Offer",
		"FinalFields": {
			"Account": "`+alice+`", "Sequence": 5,
			"TakerPays": {"currency": "USD", "issuer": "`+gateway+`", "value": "0"},
			"TakerGets": "0"
		},
		"PreviousFields": {
			"TakerPays": {"currency": "USD", "issuer": "`+gateway+`", "value": "10"},
			"TakerGets": "5000000"
		}
	}}`)
	assert.Equal(t, "consumed", verb(consumed))
	assert.Equal(t, "~alice's Offer #5 to buy 10 USD.bitstamp for 5.000000 XRP", n.describeNode(consumed))

	cancelled := node(t, `{"DeletedNode": {
		"LedgerEntryType": "Offer",
		"FinalFields": {"Account": "`+alice+`"}
	}}`)
	assert.Equal(t, "deleted", verb(cancelled))
	assert.Equal(t, "~alice's Offer", n.describeNode(cancelled))

	partial := node(t, `{"ModifiedNode": {
		"LedgerEntryType": "Offer",
		"FinalFields": {
			"Account": "`+alice+`", "Sequence": 5,
			"TakerPays": {"currency": "USD", "issuer": "`+gateway+`", "value": "6"},
			"TakerGets": "3000000"
		},
		"PreviousFields": {
			"TakerPays": {"currency": "USD", "issuer": "`+gateway+`", "value": "10"},
			"TakerGets": "5000000"
		}
	}}`)
	assert.Equal(t, ", reducing the amount it offers by 2.000000 XRP, and reducing the amount it asks for by 4 USD.bitstamp", n.describeChange(partial))
}

func TestDescribeNodeFallbacks(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "offer without owner or sizes",
			data: `{"CreatedNode": {"LedgerEntryType": "Offer", "NewFields": {"Sequence": 1}}}`,
			want: "an Offer",
		},
		{
			name: "trust line without limits",
			data: `{"ModifiedNode": {"LedgerEntryType": "RippleState", "FinalFields": {"Flags": 0}}}`,
			want: "a trust line",
		},
		{
			name: "trust line from new fields",
			data: `{"CreatedNode": {"LedgerEntryType": "RippleState", "NewFields": {
				"HighLimit": {"currency": "EUR", "issuer": "` + gateway + `", "value": "0"},
				"LowLimit": {"currency": "EUR", "issuer": "` + alice + `", "value": "10"}
			}}}`,
			want: "the EUR trust line between ~bitstamp and ~alice",
		},
		{
			name: "owned directory",
			data: `{"ModifiedNode": {"LedgerEntryType": "DirectoryNode", "FinalFields": {"Owner": "` + alice + `"}}}`,
			want: "a Directory owned by ~alice",
		},
		{
			name: "offer directory",
			data: `{"CreatedNode": {"LedgerEntryType": "DirectoryNode", "NewFields": {"TakerPaysCurrency": "0000000000000000000000005553440000000000"}}}`,
			want: "an offer Directory",
		},
		{
			name: "bare directory",
			data: `{"DeletedNode": {"LedgerEntryType": "DirectoryNode", "FinalFields": {"Flags": 0}}}`,
			want: "a Directory node",
		},
		{
			name: "account without address",
			data: `{"ModifiedNode": {"LedgerEntryType": "AccountRoot", "LedgerIndex": "13F1A95D7AAB7108D5CE7EEAF504B2894B8C674E6D68499076441C4837282BF8", "FinalFields": {"Flags": 0}}}`,
			want: "the account with ledger index 13F1A95D7AAB7108D5CE7EEAF504B2894B8C674E6D68499076441C4837282BF8",
		},
		{
			name: "unknown entry type",
			data: `{"CreatedNode": {"LedgerEntryType": "Check", "NewFields": {"Account": "` + alice + `"}}}`,
			want: "a Check node",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nd := node(t, tc.data)
			n := testNarration()
			assert.NotPanics(t, func() {
				assert.Equal(t, tc.want, n.describeNode(nd))
				assert.Empty(t, n.describeChange(nd))
			})
		})
	}
}

func TestMalformedNodeFailsDecode(t *testing.T) {
	var n tx.AffectedNode
	err := json.Unmarshal([]byte(`{"ModifiedNode": {"LedgerEntryType": "AccountRoot"}}`), &n)
	assert.ErrorIs(t, err, tx.ErrMalformedNode)
}

func TestJoinClauses(t *testing.T) {
	assert.Equal(t, "", joinClauses(nil))
	assert.Equal(t, ", a", joinClauses([]string{"a"}))
	assert.Equal(t, ", a, and b", joinClauses([]string{"a", "b"}))
	assert.Equal(t, ", a, b, and c", joinClauses([]string{"a", "b", "c"}))
}

func TestDescribePaths(t *testing.T) {
	n := testNarration()
	n.describePaths([][]tx.PathStep{
		{{Currency: "USD", Issuer: gateway, Type: 0x30}, {Account: alice, Type: 0x01}},
		{{Currency: "EUR", Type: 0x10}},
	})
	assert.Equal(t,
		"It specified 2 paths other than the default one:\n"+
			"  Source - Orderbook:USD.bitstamp - ~alice - Destination\n"+
			"  Source - Orderbook:EUR - Destination\n",
		n.b.String())
}

func TestDecodeText(t *testing.T) {
	s, ok := decodeText("68656C6C6F")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = decodeText("00FF")
	assert.False(t, ok)
	_, ok = decodeText("xyz")
	assert.False(t, ok)
	_, ok = decodeText("")
	assert.False(t, ok)
}
