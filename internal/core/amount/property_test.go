package amount

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestNativeDisplayLinearity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("display units of a+b equal the sum of display units", prop.ForAll(
		func(a, b int64) bool {
			sum := NativeToDisplayUnits(Drops(a + b))
			return sum.Equal(NativeToDisplayUnits(Drops(a)).Add(NativeToDisplayUnits(Drops(b))))
		},
		gen.Int64Range(0, 1<<52),
		gen.Int64Range(0, 1<<52),
	))

	properties.Property("display units round-trip to drops", prop.ForAll(
		func(a int64) bool {
			return NativeToDisplayUnits(Drops(a)).Shift(6).Equal(decimal.NewFromInt(a))
		},
		gen.Int64Range(0, 1<<62),
	))

	properties.TestingRun(t)
}

func TestIssuerElision(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	names := func(addr string) string { return "~" + addr }

	properties.Property("eliding the issuer never shows it", prop.ForAll(
		func(value int64, iss string) bool {
			a := Amount{Kind: KindIssued, Currency: "USD", Value: decimal.NewFromInt(value), Issuer: "r" + iss}
			return ToDisplay(a, a.Issuer, names) == decimal.NewFromInt(value).String()+" USD"
		},
		gen.Int64(),
		gen.AlphaString(),
	))

	properties.Property("any other elision shows the issuer", prop.ForAll(
		func(value int64, iss, other string) bool {
			a := Amount{Kind: KindIssued, Currency: "USD", Value: decimal.NewFromInt(value), Issuer: "r" + iss}
			elide := "x" + other
			return ToDisplay(a, elide, names) == decimal.NewFromInt(value).String()+" USD.~r"+iss
		},
		gen.Int64(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
