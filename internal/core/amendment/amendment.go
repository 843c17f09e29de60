// Package amendment names XRP Ledger amendments by their 256-bit IDs.
package amendment

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Status is where an amendment stands in the protocol's lifecycle.
type Status int

const (
	// StatusActive amendments are voted on or already enabled.
	StatusActive Status = iota
	// StatusObsolete amendments are no longer voted on.
	StatusObsolete
	// StatusRetired amendments have been enabled long enough that their
	// pre-amendment behavior is gone.
	StatusRetired
)

func (s Status) String() string {
	switch s {
	case StatusObsolete:
		return "obsolete"
	case StatusRetired:
		return "retired"
	}
	return "active"
}

// Feature is a known amendment.
type Feature struct {
	Name   string
	ID     [32]byte
	Status Status
}

// IDHex is the upper-case hex form used in transactions.
func (f *Feature) IDHex() string {
	return strings.ToUpper(hex.EncodeToString(f.ID[:]))
}

// SHA512Half computes the SHA-512 hash and returns the first 32 bytes.
func SHA512Half(data []byte) [32]byte {
	hash := sha512.Sum512(data)
	var result [32]byte
	copy(result[:], hash[:32])
	return result
}

// FeatureID computes the amendment ID from its name.
func FeatureID(name string) [32]byte {
	return SHA512Half([]byte(name))
}

var features = make(map[[32]byte]*Feature)

func register(status Status, names ...string) {
	for _, name := range names {
		id := FeatureID(name)
		features[id] = &Feature{Name: name, ID: id, Status: status}
	}
}

// Lookup finds the amendment with the given hex ID.
func Lookup(idHex string) (*Feature, bool) {
	raw, err := hex.DecodeString(idHex)
	if err != nil || len(raw) != 32 {
		return nil, false
	}
	var id [32]byte
	copy(id[:], raw)
	f, ok := features[id]
	return f, ok
}

// Describe renders an amendment ID for narration: "Name (ID)" when the
// amendment is known, the bare ID otherwise.
func Describe(idHex string) string {
	if f, ok := Lookup(idHex); ok {
		return f.Name + " (" + idHex + ")"
	}
	return idHex
}

// Count returns the number of known amendments.
func Count() int {
	return len(features)
}
