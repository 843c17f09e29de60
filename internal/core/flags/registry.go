// Package flags decodes flag bitmasks into the names the ledger documents.
package flags

import (
	"sort"
)

// Flag names one bit.
type Flag struct {
	Bit  uint32
	Name string
}

// Table is the set of flags for one transaction or ledger-entry type.
type Table []Flag

// Registry maps a type name to its Table. The wildcard table applies to
// every key, including keys the registry has never heard of.
type Registry struct {
	wildcard Table
	tables   map[string]Table
}

// NewRegistry copies and sorts the tables so decoding is stable.
func NewRegistry(wildcard Table, tables map[string]Table) *Registry {
	r := &Registry{
		wildcard: sortedCopy(wildcard),
		tables:   make(map[string]Table, len(tables)),
	}
	for key, table := range tables {
		r.tables[key] = sortedCopy(table)
	}
	return r
}

func sortedCopy(t Table) Table {
	out := make(Table, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Bit < out[j].Bit })
	return out
}

// Decode returns the names whose bit is set in mask, ordered by ascending
// bit value. Set bits with no name are ignored.
func (r *Registry) Decode(mask uint32, key string) []string {
	if mask == 0 {
		return nil
	}

	candidates := make(Table, 0, len(r.wildcard)+len(r.tables[key]))
	candidates = append(candidates, r.tables[key]...)
	candidates = append(candidates, r.wildcard...)
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Bit < candidates[j].Bit })

	var names []string
	for _, f := range candidates {
		if mask&f.Bit != 0 {
			names = append(names, f.Name)
		}
	}
	return names
}

// Known reports every bit the registry can name for key.
func (r *Registry) Known(key string) uint32 {
	var bits uint32
	for _, f := range r.wildcard {
		bits |= f.Bit
	}
	for _, f := range r.tables[key] {
		bits |= f.Bit
	}
	return bits
}

// Table returns the type-specific table for key, without the wildcard.
func (r *Registry) Table(key string) Table {
	return r.tables[key]
}
