package flags

// AccountRoot ledger-entry flags.
const (
	LsfPasswordSpent                uint32 = 0x00010000
	LsfRequireDestTag               uint32 = 0x00020000
	LsfRequireAuth                  uint32 = 0x00040000
	LsfDisallowXRP                  uint32 = 0x00080000
	LsfDisableMaster                uint32 = 0x00100000
	LsfNoFreeze                     uint32 = 0x00200000
	LsfGlobalFreeze                 uint32 = 0x00400000
	LsfDefaultRipple                uint32 = 0x00800000
	LsfDepositAuth                  uint32 = 0x01000000
	LsfAMM                          uint32 = 0x02000000
	LsfDisallowIncomingNFTokenOffer uint32 = 0x04000000
	LsfDisallowIncomingCheck        uint32 = 0x08000000
	LsfDisallowIncomingPayChan      uint32 = 0x10000000
	LsfDisallowIncomingTrustline    uint32 = 0x20000000
	LsfAllowTrustLineClawback       uint32 = 0x80000000
)

// RippleState ledger-entry flags.
const (
	LsfLowReserve     uint32 = 0x00010000
	LsfHighReserve    uint32 = 0x00020000
	LsfLowAuth        uint32 = 0x00040000
	LsfHighAuth       uint32 = 0x00080000
	LsfLowNoRipple    uint32 = 0x00100000
	LsfHighNoRipple   uint32 = 0x00200000
	LsfLowFreeze      uint32 = 0x00400000
	LsfHighFreeze     uint32 = 0x00800000
	LsfLowDeepFreeze  uint32 = 0x02000000
	LsfHighDeepFreeze uint32 = 0x04000000
)

// Offer ledger-entry flags.
const (
	LsfPassive uint32 = 0x00010000
	LsfSell    uint32 = 0x00020000
)

// LedgerEntries is keyed by ledger-entry type name. Ledger entries have no
// wildcard flags.
var LedgerEntries = NewRegistry(nil, map[string]Table{
	"AccountRoot": {
		{LsfPasswordSpent, "lsfPasswordSpent"},
		{LsfRequireDestTag, "lsfRequireDestTag"},
		{LsfRequireAuth, "lsfRequireAuth"},
		{LsfDisallowXRP, "lsfDisallowXRP"},
		{LsfDisableMaster, "lsfDisableMaster"},
		{LsfNoFreeze, "lsfNoFreeze"},
		{LsfGlobalFreeze, "lsfGlobalFreeze"},
		{LsfDefaultRipple, "lsfDefaultRipple"},
		{LsfDepositAuth, "lsfDepositAuth"},
		{LsfAMM, "lsfAMM"},
		{LsfDisallowIncomingNFTokenOffer, "lsfDisallowIncomingNFTokenOffer"},
		{LsfDisallowIncomingCheck, "lsfDisallowIncomingCheck"},
		{LsfDisallowIncomingPayChan, "lsfDisallowIncomingPayChan"},
		{LsfDisallowIncomingTrustline, "lsfDisallowIncomingTrustline"},
		{LsfAllowTrustLineClawback, "lsfAllowTrustLineClawback"},
	},
	"RippleState": {
		{LsfLowReserve, "lsfLowReserve"},
		{LsfHighReserve, "lsfHighReserve"},
		{LsfLowAuth, "lsfLowAuth"},
		{LsfHighAuth, "lsfHighAuth"},
		{LsfLowNoRipple, "lsfLowNoRipple"},
		{LsfHighNoRipple, "lsfHighNoRipple"},
		{LsfLowFreeze, "lsfLowFreeze"},
		{LsfHighFreeze, "lsfHighFreeze"},
		{LsfLowDeepFreeze, "lsfLowDeepFreeze"},
		{LsfHighDeepFreeze, "lsfHighDeepFreeze"},
	},
	"Offer": {
		{LsfPassive, "lsfPassive"},
		{LsfSell, "lsfSell"},
	},
})
