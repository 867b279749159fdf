package cache

import (
	"sync"
	"time"

	"music-bot-go/logcolors"
	"music-bot-go/services/engine"

	log "github.com/sirupsen/logrus"
)

// SessionCache is the in-memory TTL store for search sessions. Eviction is
// purely lazy: an entry older than the TTL is removed on the next Get, there
// is no background sweeper. Sessions never survive a process restart.
type SessionCache struct {
	ttl  time.Duration
	mu   sync.Mutex
	data map[string]sessionEntry
	now  func() time.Time
}

type sessionEntry struct {
	insertedAt time.Time
	entries    []engine.TrackEntry
}

// NewSessionCache creates a session cache with the given time-to-live.
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		ttl:  ttl,
		data: make(map[string]sessionEntry),
		now:  time.Now,
	}
}

// Get returns the session stored under key, or false when the key is absent
// or its age exceeds the TTL. An expired entry is evicted as a side effect.
func (c *SessionCache) Get(key string) ([]engine.TrackEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.data[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(item.insertedAt) > c.ttl {
		delete(c.data, key)
		log.Debugf("%s Evicted expired session %s", logcolors.LogCacheExpire, key)
		return nil, false
	}
	return item.entries, true
}

// Set stores a session under key, overwriting any previous value and
// resetting its age to zero.
func (c *SessionCache) Set(key string, entries []engine.TrackEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = sessionEntry{insertedAt: c.now(), entries: entries}
}

// Delete removes a session. Deleting an absent key is a no-op.
func (c *SessionCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Len returns the number of stored sessions, expired or not.
func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
