package tx

import "fmt"

// Type is the transaction type discriminant. Values match the rippled type
// codes for the types narrated here.
type Type uint16

const (
	TypePayment              Type = 0  // ttPAYMENT
	TypeEscrowCreate         Type = 1  // ttESCROW_CREATE
	TypeEscrowFinish         Type = 2  // ttESCROW_FINISH
	TypeAccountSet           Type = 3  // ttACCOUNT_SET
	TypeEscrowCancel         Type = 4  // ttESCROW_CANCEL
	TypeRegularKeySet        Type = 5  // ttREGULAR_KEY_SET
	TypeOfferCreate          Type = 7  // ttOFFER_CREATE
	TypeOfferCancel          Type = 8  // ttOFFER_CANCEL
	TypeTicketCreate         Type = 10 // ttTICKET_CREATE
	TypeSignerListSet        Type = 12 // ttSIGNER_LIST_SET
	TypePaymentChannelCreate Type = 13 // ttPAYCHAN_CREATE
	TypePaymentChannelFund   Type = 14 // ttPAYCHAN_FUND
	TypePaymentChannelClaim  Type = 15 // ttPAYCHAN_CLAIM
	TypeCheckCreate          Type = 16 // ttCHECK_CREATE
	TypeCheckCash            Type = 17 // ttCHECK_CASH
	TypeCheckCancel          Type = 18 // ttCHECK_CANCEL
	TypeDepositPreauth       Type = 19 // ttDEPOSIT_PREAUTH
	TypeTrustSet             Type = 20 // ttTRUST_SET
	TypeAccountDelete        Type = 21 // ttACCOUNT_DELETE

	// Pseudo-transactions
	TypeAmendment Type = 100 // ttAMENDMENT
	TypeFee       Type = 101 // ttFEE

	// TypeUnknown marks any type this package has no body for. The wire
	// name is kept in Record.TypeName.
	TypeUnknown Type = 0xFFFF
)

var typeNames = map[Type]string{
	TypePayment:              "Payment",
	TypeEscrowCreate:         "EscrowCreate",
	TypeEscrowFinish:         "EscrowFinish",
	TypeAccountSet:           "AccountSet",
	TypeEscrowCancel:         "EscrowCancel",
	TypeRegularKeySet:        "SetRegularKey",
	TypeOfferCreate:          "OfferCreate",
	TypeOfferCancel:          "OfferCancel",
	TypeTicketCreate:         "TicketCreate",
	TypeSignerListSet:        "SignerListSet",
	TypePaymentChannelCreate: "PaymentChannelCreate",
	TypePaymentChannelFund:   "PaymentChannelFund",
	TypePaymentChannelClaim:  "PaymentChannelClaim",
	TypeCheckCreate:          "CheckCreate",
	TypeCheckCash:            "CheckCash",
	TypeCheckCancel:          "CheckCancel",
	TypeDepositPreauth:       "DepositPreauth",
	TypeTrustSet:             "TrustSet",
	TypeAccountDelete:        "AccountDelete",
	TypeAmendment:            "EnableAmendment",
	TypeFee:                  "SetFee",
}

var nameTypes = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, n := range typeNames {
		m[n] = t
	}
	return m
}()

// String returns the string name of the transaction type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

// TypeFromName maps a TransactionType field to its Type, or TypeUnknown.
func TypeFromName(name string) Type {
	if t, ok := nameTypes[name]; ok {
		return t
	}
	return TypeUnknown
}

// IsPseudo reports whether the type is generated by the network rather than
// sent by an account.
func (t Type) IsPseudo() bool {
	return t == TypeAmendment || t == TypeFee
}
