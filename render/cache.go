// ABOUTME: In-memory render cache that wraps a page rendering function with sha256-keyed caching.
// ABOUTME: Supports TTL-based expiry, concurrent access, and manual cache clearing.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/2389-research/brightpath/site"
)

// RenderFunc is the signature for a page rendering function that the cache wraps.
type RenderFunc func(ctx context.Context, doc site.Document, format Format) ([]byte, error)

// cacheEntry holds a single cached render result with its creation timestamp.
type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

// RenderCache wraps a page rendering function with an in-memory cache.
// Cache keys are derived from the sha256 hash of the document combined with the format.
// Entries expire after the configured TTL; a zero TTL never expires.
type RenderCache struct {
	renderFn RenderFunc
	ttl      time.Duration
	entries  map[string]*cacheEntry
	mu       sync.RWMutex
}

// NewRenderCache creates a RenderCache wrapping the given rendering function.
func NewRenderCache(renderFn RenderFunc, ttl time.Duration) *RenderCache {
	return &RenderCache{
		renderFn: renderFn,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry),
	}
}

// Render renders doc in the given format, returning cached results when
// available and not expired. Errors are never cached.
func (c *RenderCache) Render(ctx context.Context, doc site.Document, format Format) ([]byte, error) {
	key := cacheKey(doc, format)

	c.mu.RLock()
	if data, ok := c.lookup(key); ok {
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	// Render under the write lock so concurrent misses for one key render once.
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.lookup(key); ok {
		return data, nil
	}

	data, err := c.renderFn(ctx, doc, format)
	if err != nil {
		return nil, err
	}

	c.entries[key] = &cacheEntry{
		data:      data,
		createdAt: time.Now(),
	}
	return data, nil
}

// lookup returns a live entry for key. Callers hold c.mu.
func (c *RenderCache) lookup(key string) ([]byte, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(entry.createdAt) >= c.ttl {
		return nil, false
	}
	return entry.data, true
}

// Len returns the number of entries currently in the cache (including expired ones).
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *RenderCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// cacheKey generates a deterministic cache key from the document content and output format.
// The document holds no maps or pointers, so its Go-syntax form is stable.
func cacheKey(doc site.Document, format Format) string {
	return fmt.Sprintf("%x:%s", sha256.Sum256([]byte(fmt.Sprintf("%#v", doc))), format)
}
