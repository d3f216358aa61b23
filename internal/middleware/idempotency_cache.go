package middleware

import (
	"sync"
	"time"
)

// cachedResponse is a finished or in-flight request stored under an
// idempotency key.
type cachedResponse struct {
	Fingerprint string
	Pending     bool
	StatusCode  int
	Headers     map[string]string
	Body        []byte
	StoredAt    time.Time
}

// idempotencyCache maps household scoped idempotency keys to responses.
// Expired entries are purged lazily when the cache is full.
type idempotencyCache struct {
	mu         sync.Mutex
	items      map[string]*cachedResponse
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newIdempotencyCache(ttl time.Duration, maxEntries int) *idempotencyCache {
	return &idempotencyCache{
		items:      make(map[string]*cachedResponse),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// begin reserves key for a request with the given fingerprint. When key is
// already known, the stored entry is returned and nothing is reserved.
func (c *idempotencyCache) begin(key, fingerprint string) (*cachedResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if existing, ok := c.items[key]; ok && now.Sub(existing.StoredAt) <= c.ttl {
		snapshot := *existing
		return &snapshot, false
	}

	c.makeRoom(now)
	c.items[key] = &cachedResponse{Fingerprint: fingerprint, Pending: true, StoredAt: now}
	return nil, true
}

// complete stores the finished response for a reserved key.
func (c *idempotencyCache) complete(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp.Pending = false
	resp.StoredAt = c.now()
	c.items[key] = resp
}

// release drops a reservation whose request did not succeed, so the
// client may retry with the same key.
func (c *idempotencyCache) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok && entry.Pending {
		delete(c.items, key)
	}
}

func (c *idempotencyCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// makeRoom must be called with mu held.
func (c *idempotencyCache) makeRoom(now time.Time) {
	if c.maxEntries <= 0 || len(c.items) < c.maxEntries {
		return
	}

	for key, entry := range c.items {
		if now.Sub(entry.StoredAt) > c.ttl {
			delete(c.items, key)
		}
	}
	if len(c.items) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, entry := range c.items {
		if entry.Pending {
			continue
		}
		if oldestKey == "" || entry.StoredAt.Before(oldest) {
			oldestKey, oldest = key, entry.StoredAt
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
