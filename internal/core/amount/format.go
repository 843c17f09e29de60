package amount

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RippleEpoch is January 1, 2000 00:00:00 UTC in Unix time
const RippleEpoch int64 = 946684800

// QualityScale is the fixed-point scale of quality and transfer-rate fields.
const QualityScale int64 = 10_000_000

// NameFunc maps an address to the name shown for it.
type NameFunc func(address string) string

// NativeToDisplayUnits converts drops to XRP exactly.
func NativeToDisplayUnits(d Drops) decimal.Decimal {
	return d.XRP()
}

// FormatXRP renders a display-unit quantity the way every narrative does.
func FormatXRP(v decimal.Decimal) string {
	return v.StringFixed(6)
}

// ToDisplay renders an amount. Native amounts become "1.000000 XRP".
// Issued amounts become "value currency.issuer" with the issuer name taken
// from names, or "value currency" when the issuer equals elide.
func ToDisplay(a Amount, elide string, names NameFunc) string {
	if a.IsNative() {
		return fmt.Sprintf("%s %s", FormatXRP(a.Drops.XRP()), NativeSymbol)
	}
	if a.Issuer == "" || a.Issuer == elide {
		return fmt.Sprintf("%s %s", a.Value.String(), a.Currency)
	}
	issuer := a.Issuer
	if names != nil {
		issuer = names(a.Issuer)
	}
	return fmt.Sprintf("%s %s.%s", a.Value.String(), a.Currency, issuer)
}

// QualityToPercent converts a scaled quality to a percentage of face value.
func QualityToPercent(raw int64) decimal.Decimal {
	return decimal.NewFromInt(raw).Div(decimal.NewFromInt(QualityScale))
}

// TransferFeePercent converts a TransferRate field to the fee it charges,
// so 1005000000 becomes 0.5.
func TransferFeePercent(rate uint32) decimal.Decimal {
	return QualityToPercent(int64(rate)).Sub(decimal.NewFromInt(100))
}

// EpochTime converts network seconds to a time.Time. The arithmetic is done
// in 64 bits so dates past 2068 survive.
func EpochTime(seconds int64) time.Time {
	return time.Unix(seconds+RippleEpoch, 0).UTC()
}

// EpochToISO8601 renders network seconds as an ISO-8601 timestamp.
func EpochToISO8601(seconds int64) string {
	return EpochTime(seconds).Format(time.RFC3339)
}
