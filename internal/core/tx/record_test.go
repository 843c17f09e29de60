package tx

import (
	"encoding/json"
	"testing"

	"github.com/mDuo13/txsplain/internal/core/amount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn"
	bob   = "ra5nK24KXen9AHvsdFTKHSANinZseWnPcX"
	gw    = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
)

const paymentResult = `{
	"Account": "` + alice + `",
	"Amount": "1000000",
	"Destination": "` + bob + `",
	"DestinationTag": 7,
	"Fee": "12",
	"Flags": 2147483648,
	"Sequence": 4,
	"TransactionType": "Payment",
	"Memos": [{"Memo": {"MemoType": "636C69656E74", "MemoFormat": "7274"}}],
	"hash": "C53ECF838647FA5A4C780377025FEC7999AB4182590510CA461444B207AB74A9",
	"ledger_index": 56865245,
	"validated": true,
	"date": 667069050,
	"meta": {
		"TransactionIndex": 2,
		"TransactionResult": "tesSUCCESS",
		"delivered_amount": "1000000",
		"AffectedNodes": [
			{"ModifiedNode": {
				"LedgerEntryType": "AccountRoot",
				"LedgerIndex": "1ED8DDFD80F275CB1CE7F18BB9D906655DE8029805D8B95FB9020B30425821EB",
				"FinalFields": {"Account": "` + alice + `", "Balance": "98999988", "OwnerCount": 0, "Sequence": 5},
				"PreviousFields": {"Balance": "100000000", "Sequence": 4}
			}}
		]
	}
}`

func TestDecodePayment(t *testing.T) {
	rec, err := Decode([]byte(paymentResult))
	require.NoError(t, err)

	assert.Equal(t, TypePayment, rec.Type)
	assert.Equal(t, "Payment", rec.TypeName)
	assert.Equal(t, alice, rec.Account)
	assert.Equal(t, amount.Native(12), rec.Fee)
	assert.Equal(t, uint32(0x80000000), rec.FlagsValue())
	assert.Equal(t, uint32(56865245), rec.LedgerIndex)
	assert.True(t, rec.Validated)
	require.NotNil(t, rec.DestinationTag)
	assert.Equal(t, uint32(7), *rec.DestinationTag)
	require.Len(t, rec.Memos, 1)
	assert.Equal(t, "636C69656E74", rec.Memos[0].MemoType)

	payment, ok := rec.Body.(*Payment)
	require.True(t, ok)
	assert.Equal(t, bob, payment.Destination)
	assert.Equal(t, amount.Drops(1_000_000), payment.Amount.Drops)
	assert.Nil(t, payment.SendMax)

	require.NotNil(t, rec.Meta)
	assert.True(t, rec.Meta.Succeeded())
	require.NotNil(t, rec.Meta.TransactionIndex)
	assert.Equal(t, uint32(2), *rec.Meta.TransactionIndex)
	require.NotNil(t, rec.Meta.Delivered)
	assert.False(t, rec.Meta.Delivered.Unavailable)

	require.Len(t, rec.Meta.AffectedNodes, 1)
	node := rec.Meta.AffectedNodes[0]
	assert.Equal(t, ActionModified, node.Action)
	assert.Equal(t, EntryAccountRoot, node.EntryType)
	balance, ok := node.Final.Amount("Balance")
	require.True(t, ok)
	assert.Equal(t, amount.Drops(98999988), balance.Drops)
	assert.Nil(t, node.New)
}

func TestDecodeAPIv2(t *testing.T) {
	data := `{
		"hash": "AB",
		"ledger_index": 10,
		"validated": false,
		"tx_json": {
			"Account": "` + alice + `",
			"DeliverMax": {"currency": "USD", "value": "5", "issuer": "` + gw + `"},
			"Destination": "` + bob + `",
			"Fee": "10",
			"TransactionType": "Payment"
		},
		"meta": {"TransactionResult": "tecPATH_DRY", "AffectedNodes": []}
	}`

	rec, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "AB", rec.Hash)
	assert.Nil(t, rec.Flags)
	assert.Zero(t, rec.FlagsValue())
	payment := rec.Body.(*Payment)
	assert.Equal(t, "USD", payment.Amount.Currency)
	assert.False(t, rec.Meta.Succeeded())
}

func TestDecodeUnknownType(t *testing.T) {
	data := `{"TransactionType": "Foo", "Account": "` + alice + `", "Fee": "10", "Widget": 3, "ledger_index": "12"}`

	rec, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, TypeUnknown, rec.Type)
	assert.Equal(t, "Foo", rec.TypeName)
	assert.Equal(t, uint32(12), rec.LedgerIndex)
	generic, ok := rec.Body.(*Generic)
	require.True(t, ok)
	assert.Contains(t, generic.Fields, "Widget")
	assert.Nil(t, rec.Meta)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{"Account": "` + alice + `"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)

	malformed := `{"TransactionType": "Payment", "Account": "` + alice + `", "Amount": "1", "Fee": "1",
		"meta": {"TransactionResult": "tesSUCCESS", "AffectedNodes": [{"ModifiedNode": {"LedgerEntryType": "AccountRoot"}}]}}`
	_, err = Decode([]byte(malformed))
	assert.ErrorIs(t, err, ErrMalformedNode)
}

func TestAffectedNodeUnmarshal(t *testing.T) {
	var node AffectedNode
	err := json.Unmarshal([]byte(`{"DeletedNode": {"LedgerEntryType": "Offer", "PreviousFields": {"TakerPays": "1"}, "FinalFields": {"Account": "`+alice+`"}}}`), &node)
	require.NoError(t, err)
	assert.Equal(t, ActionDeleted, node.Action)
	assert.Equal(t, EntryOffer, node.EntryType)
	assert.True(t, node.Previous.Has("TakerPays"))
	assert.False(t, node.Previous.Has("TakerPays", "TakerGets"))

	err = json.Unmarshal([]byte(`{"CreatedNode": {"LedgerEntryType": "Check", "NewFields": {}}}`), &node)
	require.NoError(t, err)
	assert.Equal(t, EntryOther, node.EntryType)
	assert.Equal(t, "Check", node.EntryTypeName)

	err = json.Unmarshal([]byte(`{"Other": {}}`), &node)
	assert.ErrorIs(t, err, ErrMalformedNode)
}

func TestDeliveredUnavailable(t *testing.T) {
	var meta Meta
	require.NoError(t, json.Unmarshal([]byte(`{"TransactionResult": "tesSUCCESS", "delivered_amount": "unavailable"}`), &meta))
	require.NotNil(t, meta.Delivered)
	assert.True(t, meta.Delivered.Unavailable)

	require.NoError(t, json.Unmarshal([]byte(`{"TransactionResult": "tesSUCCESS", "DeliveredAmount": "5"}`), &meta))
	require.NotNil(t, meta.Delivered)
	assert.Equal(t, amount.Drops(5), meta.Delivered.Amount.Drops)
}

func TestSetFeeEncodings(t *testing.T) {
	legacy := `{"TransactionType": "SetFee", "Account": "rrrrrrrrrrrrrrrrrrrrrhoLvTp", "Fee": "0",
		"BaseFee": "000000000000000A", "ReferenceFeeUnits": 10, "ReserveBase": 20000000, "ReserveIncrement": 5000000}`
	rec, err := Decode([]byte(legacy))
	require.NoError(t, err)
	fee := rec.Body.(*SetFee)
	assert.Equal(t, amount.Drops(10), fee.BaseFee)
	assert.Equal(t, amount.Drops(20_000_000), fee.ReserveBase)
	assert.Equal(t, amount.Drops(5_000_000), fee.ReserveIncrement)
	assert.True(t, rec.Type.IsPseudo())

	modern := `{"TransactionType": "SetFee", "Account": "rrrrrrrrrrrrrrrrrrrrrhoLvTp", "Fee": "0",
		"BaseFeeDrops": "10", "ReserveBaseDrops": "10000000", "ReserveIncrementDrops": "2000000"}`
	rec, err = Decode([]byte(modern))
	require.NoError(t, err)
	fee = rec.Body.(*SetFee)
	assert.Equal(t, amount.Drops(10_000_000), fee.ReserveBase)
	assert.Equal(t, amount.Drops(2_000_000), fee.ReserveIncrement)
}

func TestSignerListSet(t *testing.T) {
	data := `{"TransactionType": "SignerListSet", "Account": "` + alice + `", "Fee": "10", "SignerQuorum": 2,
		"SignerEntries": [{"SignerEntry": {"Account": "` + bob + `", "SignerWeight": 1}}, {"SignerEntry": {"Account": "` + gw + `", "SignerWeight": 1}}]}`
	rec, err := Decode([]byte(data))
	require.NoError(t, err)
	list := rec.Body.(*SignerListSet)
	assert.Equal(t, uint32(2), list.SignerQuorum)
	require.Len(t, list.SignerEntries, 2)
	assert.Equal(t, gw, list.SignerEntries[1].Account)
}

func TestPathStepKind(t *testing.T) {
	assert.Equal(t, PathStepRippling, PathStep{Account: alice}.Kind())
	assert.Equal(t, PathStepOrderbook, PathStep{Currency: "XRP"}.Kind())
	assert.Equal(t, PathStepOrderbook|PathStepIssuer, PathStep{Currency: "USD", Issuer: gw}.Kind())
	assert.Equal(t, uint8(0x31), PathStep{Currency: "USD", Issuer: gw, Type: 0x31}.Kind())
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "SetRegularKey", TypeRegularKeySet.String())
	assert.Equal(t, TypeFee, TypeFromName("SetFee"))
	assert.Equal(t, TypeAmendment, TypeFromName("EnableAmendment"))
	assert.Equal(t, TypeUnknown, TypeFromName("NFTokenMint"))
	assert.Equal(t, "Unknown(65535)", TypeUnknown.String())
}

func TestFieldSetAccessors(t *testing.T) {
	fs := FieldSet{
		"OwnerNode": json.RawMessage(`"000000000000000A"`),
		"Sequence":  json.RawMessage(`7`),
		"Bad":       json.RawMessage(`{}`),
	}
	page, ok := fs.HexUint64("OwnerNode")
	assert.True(t, ok)
	assert.Equal(t, uint64(10), page)

	seq, ok := fs.Uint32("Sequence")
	assert.True(t, ok)
	assert.Equal(t, uint32(7), seq)

	_, ok = fs.Uint32("Bad")
	assert.False(t, ok)
	_, ok = fs.Amount("Bad")
	assert.False(t, ok)

	var empty FieldSet
	assert.False(t, empty.Has("anything"))
	_, ok = empty.String("x")
	assert.False(t, ok)

	set, ok := FirstWith([]FieldSet{nil, fs}, "Sequence")
	assert.True(t, ok)
	assert.Equal(t, fs, set)
}
