package memory

import (
	"context"
	"sync"
	"time"
)

// Cache is an in-process store with a fixed expiry per entry. Expired
// entries are dropped on read and by Cleanup.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

func NewCache() *Cache {
	return NewCacheWithClock(time.Now)
}

func NewCacheWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		return nil, false, nil
	}

	return e.value, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     stored,
		expiresAt: c.now().Add(ttl),
	}

	return nil
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (c *Cache) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}
