// internal/cache/cache.go
package cache

import (
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/law-makers/itemscrape/pkg/models"
)

// Cache defines the interface for extracted record caching.
//
// Keys are derived from page content, so two files holding the same page
// share one entry.
type Cache interface {
	// Get retrieves the record extracted from content
	Get(content []byte) (*models.ItemRecord, bool)

	// Set stores the record extracted from content
	Set(content []byte, rec *models.ItemRecord)

	// Len returns the number of cached records
	Len() int
}

// Stats holds cache hit and miss counters
type Stats struct {
	Hits   uint64
	Misses uint64
}

// RecordCache is a fixed-size LRU of extracted records keyed by the xxhash
// of the page bytes. It is safe for concurrent use.
type RecordCache struct {
	lru    *lru.Cache[uint64, *models.ItemRecord]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRecordCache creates a cache holding at most size records
func NewRecordCache(size int) (*RecordCache, error) {
	c, err := lru.New[uint64, *models.ItemRecord](size)
	if err != nil {
		return nil, err
	}
	return &RecordCache{lru: c}, nil
}

// Key returns the cache key for page content
func Key(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// Get retrieves a cached record
func (c *RecordCache) Get(content []byte) (*models.ItemRecord, bool) {
	rec, ok := c.lru.Get(Key(content))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return rec, ok
}

// Set stores a record, evicting the least recently used entry when full
func (c *RecordCache) Set(content []byte, rec *models.ItemRecord) {
	c.lru.Add(Key(content), rec)
}

// Len returns the number of cached records
func (c *RecordCache) Len() int {
	return c.lru.Len()
}

// Stats returns the hit and miss counters
func (c *RecordCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
