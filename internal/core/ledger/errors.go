package ledger

import "errors"

// ErrNotFound is returned by a data source when the requested transaction,
// ledger, account, trust line or offer does not exist.
var ErrNotFound = errors.New("not found")
