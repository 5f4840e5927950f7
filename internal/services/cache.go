package services

import (
	"sync"
	"time"
)

type blobEntry struct {
	data        []byte
	contentType string
	expires     time.Time
}

// BlobCache keeps recently served blob bytes in memory so repeated file
// requests skip the storage backend. Entries expire after a TTL and are
// swept by a background goroutine.
type BlobCache struct {
	entries         map[string]*blobEntry
	mu              sync.RWMutex
	ttl             time.Duration
	cleanupInterval time.Duration
}

func NewBlobCache(ttl, cleanupInterval time.Duration) *BlobCache {
	c := &BlobCache{
		entries:         make(map[string]*blobEntry),
		ttl:             ttl,
		cleanupInterval: cleanupInterval,
	}

	go c.cleanupExpired()

	return c
}

// Retrieves cached blob bytes and content type, or ok=false if absent or
// expired.
func (c *BlobCache) Get(name string) ([]byte, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[name]
	if !ok || entry.expires.Before(time.Now()) {
		return nil, "", false
	}
	return entry.data, entry.contentType, true
}

// Stores blob bytes under the given name until the TTL elapses.
func (c *BlobCache) Set(name string, data []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = &blobEntry{
		data:        data,
		contentType: contentType,
		expires:     time.Now().Add(c.ttl),
	}
}

// Invalidate drops the entry for a deleted blob.
func (c *BlobCache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, name)
}

func (c *BlobCache) cleanupExpired() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for name, entry := range c.entries {
			if entry.expires.Before(now) {
				delete(c.entries, name)
			}
		}
		c.mu.Unlock()
	}
}
