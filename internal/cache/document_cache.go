package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/epeers/fundboard/internal/models"
)

// DocumentCache holds the most recently loaded Document per blob key so that
// dashboard reads do not hit the blob store on every request. Entries are
// copies; callers can mutate what they get back.
type DocumentCache struct {
	items *gocache.Cache
}

// NewDocumentCache creates a cache whose entries expire after ttl.
// A zero ttl disables caching.
func NewDocumentCache(ttl time.Duration) *DocumentCache {
	if ttl <= 0 {
		return &DocumentCache{}
	}
	return &DocumentCache{items: gocache.New(ttl, 2*ttl)}
}

// Get returns a copy of the cached Document for key
func (c *DocumentCache) Get(key string) (models.Document, bool) {
	if c.items == nil {
		return models.Document{}, false
	}
	v, ok := c.items.Get(key)
	if !ok {
		return models.Document{}, false
	}
	return v.(models.Document).Clone(), true
}

// Set caches a copy of doc under key
func (c *DocumentCache) Set(key string, doc models.Document) {
	if c.items == nil {
		return
	}
	c.items.SetDefault(key, doc.Clone())
}

// Invalidate drops the entry for key
func (c *DocumentCache) Invalidate(key string) {
	if c.items == nil {
		return
	}
	c.items.Delete(key)
}

// Clear removes all cached data
func (c *DocumentCache) Clear() {
	if c.items == nil {
		return
	}
	c.items.Flush()
}
