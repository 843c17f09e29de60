package amount

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Drops is a quantity of the native currency in its smallest unit.
// Signed so balance deltas can be expressed.
type Drops int64

// DropsPerXRP is the fixed divisor between drops and display units.
const DropsPerXRP Drops = 1_000_000

func (d Drops) Add(other Drops) Drops {
	return d + other
}

func (d Drops) Sub(other Drops) Drops {
	return d - other
}

func (d Drops) Mul(factor int64) Drops {
	return d * Drops(factor)
}

// XRP converts to display units with exact decimal division.
func (d Drops) XRP() decimal.Decimal {
	return decimal.New(int64(d), -6)
}

func (d Drops) String() string {
	return strconv.FormatInt(int64(d), 10)
}

// ParseDrops reads a drops string as sent over the wire.
func ParseDrops(s string) (Drops, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Drops(v), nil
}
