package stream

import (
	"testing"
	"time"

	"debloat/internal/domain"
)

func TestCacheGetPutInvalidate(t *testing.T) {
	c := NewCache(DefaultTTL)
	pkgs := []domain.Package{{ID: "com.a"}, {ID: "com.b"}}

	if _, ok := c.Get("device-a"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put("device-a", pkgs)
	entry, ok := c.Get("device-a")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(entry.Packages) != 2 {
		t.Errorf("got %d packages, want 2", len(entry.Packages))
	}

	if _, ok := c.Get("device-b"); ok {
		t.Error("entries must be keyed per device")
	}

	c.Invalidate("device-a")
	if _, ok := c.Get("device-a"); ok {
		t.Error("expected miss after Invalidate")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(5 * time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	c.Put("device-a", []domain.Package{{ID: "com.a"}})

	now = base.Add(4*time.Minute + 59*time.Second)
	if _, ok := c.Get("device-a"); !ok {
		t.Error("entry expired before TTL elapsed")
	}

	now = base.Add(5 * time.Minute)
	if _, ok := c.Get("device-a"); ok {
		t.Error("entry still served after TTL elapsed")
	}
}

func TestCacheNeverStoresEmptyResult(t *testing.T) {
	c := NewCache(DefaultTTL)

	c.Put("device-a", nil)
	if _, ok := c.Get("device-a"); ok {
		t.Error("empty result must not be cached")
	}

	// An earlier valid entry survives a later empty Put.
	c.Put("device-a", []domain.Package{{ID: "com.a"}})
	c.Put("device-a", []domain.Package{})
	entry, ok := c.Get("device-a")
	if !ok || len(entry.Packages) != 1 {
		t.Errorf("prior valid entry lost: ok=%v len=%d", ok, len(entry.Packages))
	}
}
