package flags

// Universal transaction flag.
const TfFullyCanonicalSig uint32 = 0x80000000

// OfferCreate flags.
const (
	TfPassive           uint32 = 0x00010000
	TfImmediateOrCancel uint32 = 0x00020000
	TfFillOrKill        uint32 = 0x00040000
	TfSell              uint32 = 0x00080000
)

// Payment flags.
const (
	TfNoRippleDirect uint32 = 0x00010000
	TfPartialPayment uint32 = 0x00020000
	TfLimitQuality   uint32 = 0x00040000
)

// AccountSet flags.
const (
	TfRequireDestTag  uint32 = 0x00010000
	TfOptionalDestTag uint32 = 0x00020000
	TfRequireAuth     uint32 = 0x00040000
	TfOptionalAuth    uint32 = 0x00080000
	TfDisallowXRP     uint32 = 0x00100000
	TfAllowXRP        uint32 = 0x00200000
)

// TrustSet flags.
const (
	TfSetfAuth      uint32 = 0x00010000
	TfSetNoRipple   uint32 = 0x00020000
	TfClearNoRipple uint32 = 0x00040000
	TfSetFreeze     uint32 = 0x00100000
	TfClearFreeze   uint32 = 0x00200000
)

// EnableAmendment flags.
const (
	TfGotMajority  uint32 = 0x00010000
	TfLostMajority uint32 = 0x00020000
)

// PaymentChannelClaim flags.
const (
	TfRenew uint32 = 0x00010000
	TfClose uint32 = 0x00020000
)

// NFTokenMint and NFTokenCreateOffer flags.
const (
	TfBurnable     uint32 = 0x00000001
	TfOnlyXRP      uint32 = 0x00000002
	TfTrustLine    uint32 = 0x00000004
	TfTransferable uint32 = 0x00000008
	TfSellNFToken  uint32 = 0x00000001
)

// Transactions is keyed by transaction type name.
var Transactions = NewRegistry(
	Table{{TfFullyCanonicalSig, "tfFullyCanonicalSig"}},
	map[string]Table{
		"AccountSet": {
			{TfRequireDestTag, "tfRequireDestTag"},
			{TfOptionalDestTag, "tfOptionalDestTag"},
			{TfRequireAuth, "tfRequireAuth"},
			{TfOptionalAuth, "tfOptionalAuth"},
			{TfDisallowXRP, "tfDisallowXRP"},
			{TfAllowXRP, "tfAllowXRP"},
		},
		"OfferCreate": {
			{TfPassive, "tfPassive"},
			{TfImmediateOrCancel, "tfImmediateOrCancel"},
			{TfFillOrKill, "tfFillOrKill"},
			{TfSell, "tfSell"},
		},
		"Payment": {
			{TfNoRippleDirect, "tfNoRippleDirect"},
			{TfPartialPayment, "tfPartialPayment"},
			{TfLimitQuality, "tfLimitQuality"},
		},
		"TrustSet": {
			{TfSetfAuth, "tfSetfAuth"},
			{TfSetNoRipple, "tfSetNoRipple"},
			{TfClearNoRipple, "tfClearNoRipple"},
			{TfSetFreeze, "tfSetFreeze"},
			{TfClearFreeze, "tfClearFreeze"},
		},
		"EnableAmendment": {
			{TfGotMajority, "tfGotMajority"},
			{TfLostMajority, "tfLostMajority"},
		},
		"PaymentChannelClaim": {
			{TfRenew, "tfRenew"},
			{TfClose, "tfClose"},
		},
		"NFTokenMint": {
			{TfBurnable, "tfBurnable"},
			{TfOnlyXRP, "tfOnlyXRP"},
			{TfTrustLine, "tfTrustLine"},
			{TfTransferable, "tfTransferable"},
		},
		"NFTokenCreateOffer": {
			{TfSellNFToken, "tfSellNFToken"},
		},
	},
)
