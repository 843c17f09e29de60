package rpc

import (
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/mDuo13/txsplain/internal/core/ledger"
)

// LedgerCache keeps recently fetched validated ledger headers. Validated
// ledgers never change, so entries never need invalidation.
type LedgerCache struct {
	mu sync.Mutex

	// Key: ledger index
	byIndex *lru.Cache[uint32, *ledger.Header]

	// Key: upper-case hex ledger hash
	byHash *lru.Cache[string, *ledger.Header]

	hits   uint64
	misses uint64
}

// LedgerCacheConfig holds configuration for the cache
type LedgerCacheConfig struct {
	// MaxLedgers is the number of headers to keep in memory
	MaxLedgers int
}

func NewLedgerCache(config LedgerCacheConfig) (*LedgerCache, error) {
	if config.MaxLedgers <= 0 {
		config.MaxLedgers = 256
	}

	byIndex, err := lru.New[uint32, *ledger.Header](config.MaxLedgers)
	if err != nil {
		return nil, err
	}
	byHash, err := lru.New[string, *ledger.Header](config.MaxLedgers)
	if err != nil {
		return nil, err
	}

	return &LedgerCache{byIndex: byIndex, byHash: byHash}, nil
}

// Get looks up a header for a selector. Shortcut selectors never hit
// because the ledger they name moves.
func (c *LedgerCache) Get(sel ledger.Selector) (*ledger.Header, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		h  *ledger.Header
		ok bool
	)
	switch {
	case sel.Hash != "":
		h, ok = c.byHash.Get(strings.ToUpper(sel.Hash))
	case sel.Index != 0:
		h, ok = c.byIndex.Get(sel.Index)
	}
	if ok {
		c.hits++
		return h, true
	}
	c.misses++
	return nil, false
}

// Put stores a header. Unvalidated headers are ignored.
func (c *LedgerCache) Put(h *ledger.Header) {
	if h == nil || !h.Validated {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byIndex.Add(h.Index, h)
	if h.Hash != "" {
		c.byHash.Add(strings.ToUpper(h.Hash), h)
	}
}

func (c *LedgerCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		HitRate:  hitRate,
		IndexLen: c.byIndex.Len(),
		HashLen:  c.byHash.Len(),
	}
}

// CacheStats holds cache performance metrics
type CacheStats struct {
	Hits     uint64
	Misses   uint64
	HitRate  float64
	IndexLen int
	HashLen  int
}
