package ledger

import "github.com/mDuo13/txsplain/internal/core/amount"

// Reserves are the network's reserve constants in drops.
type Reserves struct {
	Base      amount.Drops
	Increment amount.Drops
}

// ForOwnerCount returns base + ownerCount * increment.
func (r Reserves) ForOwnerCount(ownerCount uint32) amount.Drops {
	return r.Base.Add(r.Increment.Mul(int64(ownerCount)))
}
