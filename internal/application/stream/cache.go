package stream

import (
	"time"

	"debloat/internal/domain"
)

// DefaultTTL is how long a completed enumeration stays servable from cache.
const DefaultTTL = 5 * time.Minute

// Entry is the last completed non-empty result for one device
type Entry struct {
	DeviceID   string
	Packages   []domain.Package // ID-sorted snapshot
	CapturedAt time.Time
}

// Cache stores the last known-good enumeration per device with a fixed TTL.
// It is not safe for concurrent use; callers must confine access to a single
// goroutine (e.g. the Bubble Tea update loop) or synchronize externally.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]Entry
}

// NewCache creates an empty cache. A non-positive ttl falls back to DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]Entry),
	}
}

// Get returns the entry for a device if it has not expired
func (c *Cache) Get(deviceID string) (Entry, bool) {
	e, ok := c.entries[deviceID]
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(e.CapturedAt) >= c.ttl {
		return Entry{}, false
	}
	return e, true
}

// Put overwrites the entry for a device. Empty results are never cached:
// a transient enumeration failure must not read back as "no packages".
func (c *Cache) Put(deviceID string, pkgs []domain.Package) {
	if len(pkgs) == 0 {
		return
	}
	c.entries[deviceID] = Entry{
		DeviceID:   deviceID,
		Packages:   pkgs,
		CapturedAt: c.now(),
	}
}

// Invalidate clears the entry for a device, guaranteeing the next Start
// performs a fresh enumeration regardless of the TTL grace.
func (c *Cache) Invalidate(deviceID string) {
	delete(c.entries, deviceID)
}
