// Package alias maps ledger addresses to display names. A process-wide
// Cache remembers every answer from the identity service; a Parties
// tracker records which addresses one narration mentioned.
package alias

import (
	"sort"
	"strings"
	"sync"
)

const (
	// Prefix marks a resolved name in narration text.
	Prefix = "~"
	// unknownSuffix follows the address of an account with no name.
	unknownSuffix = " (Unknown Account)"
)

// Entry is one cached answer. Transient entries record a failed lookup;
// they answer repeat lookups in this process but are never persisted.
type Entry struct {
	Name      string
	Known     bool
	Transient bool
}

// UnknownLabel is the display text for an address with no known name.
func UnknownLabel(address string) string {
	return address + unknownSuffix
}

// Display renders the entry for address. Only resolved names carry the
// prefix.
func (e Entry) Display(address string, withPrefix bool) string {
	if !e.Known {
		return UnknownLabel(address)
	}
	if withPrefix {
		return Prefix + e.Name
	}
	return e.Name
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

func (c *Cache) Get(address string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[address]
	return e, ok
}

func (c *Cache) Set(address string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[address] = e
}

// Delete removes address and reports whether it was cached.
func (c *Cache) Delete(address string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[address]
	delete(c.entries, address)
	return ok
}

// FindByName scans for a resolved name, ignoring case. When several
// addresses share a name the smallest address wins.
func (c *Cache) FindByName(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var found string
	for addr, e := range c.entries {
		if !e.Known || !strings.EqualFold(e.Name, name) {
			continue
		}
		if found == "" || addr < found {
			found = addr
		}
	}
	return found, found != ""
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot copies the persistable entries.
func (c *Cache) Snapshot() map[string]Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Entry, len(c.entries))
	for addr, e := range c.entries {
		if e.Transient {
			continue
		}
		out[addr] = e
	}
	return out
}

// Restore merges loaded entries. Entries already in the cache win.
func (c *Cache) Restore(entries map[string]Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, e := range entries {
		if _, ok := c.entries[addr]; ok {
			continue
		}
		e.Transient = false
		c.entries[addr] = e
	}
}

// Addresses lists cached addresses in sorted order.
func (c *Cache) Addresses() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for addr := range c.entries {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
