package flags

// AccountSet SetFlag/ClearFlag values. These are enum values, not bits.
const (
	AsfRequireDest                  uint32 = 1
	AsfRequireAuth                  uint32 = 2
	AsfDisallowXRP                  uint32 = 3
	AsfDisableMaster                uint32 = 4
	AsfAccountTxnID                 uint32 = 5
	AsfNoFreeze                     uint32 = 6
	AsfGlobalFreeze                 uint32 = 7
	AsfDefaultRipple                uint32 = 8
	AsfDepositAuth                  uint32 = 9
	AsfAuthorizedNFTokenMinter      uint32 = 10
	AsfDisallowIncomingNFTokenOffer uint32 = 12
	AsfDisallowIncomingCheck        uint32 = 13
	AsfDisallowIncomingPayChan      uint32 = 14
	AsfDisallowIncomingTrustline    uint32 = 15
	AsfAllowTrustLineClawback       uint32 = 16
)

var accountSetNames = map[uint32]string{
	AsfRequireDest:                  "asfRequireDest",
	AsfRequireAuth:                  "asfRequireAuth",
	AsfDisallowXRP:                  "asfDisallowXRP",
	AsfDisableMaster:                "asfDisableMaster",
	AsfAccountTxnID:                 "asfAccountTxnID",
	AsfNoFreeze:                     "asfNoFreeze",
	AsfGlobalFreeze:                 "asfGlobalFreeze",
	AsfDefaultRipple:                "asfDefaultRipple",
	AsfDepositAuth:                  "asfDepositAuth",
	AsfAuthorizedNFTokenMinter:      "asfAuthorizedNFTokenMinter",
	AsfDisallowIncomingNFTokenOffer: "asfDisallowIncomingNFTokenOffer",
	AsfDisallowIncomingCheck:        "asfDisallowIncomingCheck",
	AsfDisallowIncomingPayChan:      "asfDisallowIncomingPayChan",
	AsfDisallowIncomingTrustline:    "asfDisallowIncomingTrustline",
	AsfAllowTrustLineClawback:       "asfAllowTrustLineClawback",
}

// AccountSetFlagName names a SetFlag/ClearFlag value.
func AccountSetFlagName(v uint32) (string, bool) {
	name, ok := accountSetNames[v]
	return name, ok
}
