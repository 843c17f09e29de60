package amendment

// Newest first, as in rippled's features.macro.
func init() {
	register(StatusActive,
		"fixDirectoryLimit",
		"fixPriceOracleOrder",
		"fixMPTDeliveredAmount",
		"fixAMMClawbackRounding",
		"TokenEscrow",
		"fixEnforceNFTokenTrustlineV2",
		"fixAMMv1_3",
		"PermissionedDEX",
		"Batch",
		"SingleAssetVault",
		"PermissionDelegation",
		"fixPayChanCancelAfter",
		"fixInvalidTxFlags",
		"fixFrozenLPTokenTransfer",
		"DeepFreeze",
		"PermissionedDomains",
		"DynamicNFT",
		"Credentials",
		"AMMClawback",
		"fixAMMv1_2",
		"MPTokensV1",
		"InvariantsV1_1",
		"fixNFTokenPageLinks",
		"fixInnerObjTemplate2",
		"fixEnforceNFTokenTrustline",
		"fixReducedOffersV2",
		"NFTokenMintOffer",
		"fixAMMv1_1",
		"fixPreviousTxnID",
		"fixXChainRewardRounding",
		"fixEmptyDID",
		"PriceOracle",
		"fixAMMOverflowOffer",
		"fixInnerObjTemplate",
		"fixNFTokenReserve",
		"fixFillOrKill",
		"DID",
		"fixDisallowIncomingV1",
		"XChainBridge",
		"AMM",
		"Clawback",
		"fixReducedOffersV1",
		"fixNFTokenRemint",
		"fixNonFungibleTokensV1_2",
		"fixUniversalNumber",
		"XRPFees",
		"DisallowIncoming",
		"ImmediateOfferKilled",
		"fixRemoveNFTokenAutoTrustLine",
		"fixTrustLinesToSelf",
		"NonFungibleTokensV1_1",
		"ExpandedSignerList",
		"CheckCashMakesTrustLine",
		"fixRmSmallIncreasedQOffers",
		"fixSTAmountCanonicalize",
		"FlowSortStrands",
		"TicketBatch",
		"NegativeUNL",
		"fixAmendmentMajorityCalc",
		"HardenedValidations",
		"fix1781",
		"RequireFullyCanonicalSig",
		"fixQualityUpperBound",
		"DeletableAccounts",
		"fixPayChanRecipientOwnerDir",
		"fixCheckThreading",
		"fixMasterKeyAsRegularKey",
		"fixTakerDryOfferRemoval",
		"MultiSignReserve",
		"fix1578",
		"fix1515",
		"DepositPreauth",
		"fix1623",
		"fix1543",
		"fix1571",
		"Checks",
		"DepositAuth",
		"fix1513",
		"Flow",
	)

	register(StatusObsolete,
		"fixNFTokenNegOffer",
		"fixNFTokenDirV1",
		"NonFungibleTokensV1",
		"CryptoConditionsSuite",
	)

	register(StatusRetired,
		"MultiSign",
		"TrustSetAuth",
		"FeeEscalation",
		"PayChan",
		"CryptoConditions",
		"TickSize",
		"fix1368",
		"Escrow",
		"fix1373",
		"EnforceInvariants",
		"SortedDirectories",
		"fix1201",
		"fix1512",
		"fix1523",
		"fix1528",
		"FlowCross",
	)
}
