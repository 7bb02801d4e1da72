package mcp

import (
	"context"
	"sync"
	"testing"

	"debloat/internal/application/stream"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

// countingSource serves one full enumeration per call. The counter is
// unguarded on purpose: SharedController must serialize every Enumerate.
type countingSource struct {
	enumerations int
}

func (s *countingSource) Devices(context.Context) ([]ports.Device, error) { return nil, nil }

func (s *countingSource) Enumerate(context.Context, string) (<-chan ports.Notification, error) {
	s.enumerations++
	ch := make(chan ports.Notification, 2)
	ch <- ports.Chunk{Packages: []domain.Package{
		{ID: "com.vendor.weather", Category: domain.CategorySafe},
		{ID: "com.vendor.mail", Category: domain.CategoryCaution},
	}, TotalSoFar: 2}
	ch <- ports.Done{Total: 2}
	close(ch)
	return ch, nil
}

func (s *countingSource) Uninstall(context.Context, string, string) error { return nil }

// Tool calls arrive on separate goroutines. With overlapping list_packages
// requests the first must enumerate, fill the cache, and the rest must be
// served from it without touching the source or racing on controller state.
func TestSharedControllerSerializesOverlappingLists(t *testing.T) {
	src := &countingSource{}
	ctrl := NewSharedController(stream.NewController(src, stream.NewCache(stream.DefaultTTL)))

	const callers = 8
	states := make([]stream.State, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			states[i], errs[i] = ctrl.List(context.Background(), "device-a", false)
		}()
	}
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("List #%d: %v", i, errs[i])
		}
		if !states[i].Complete || len(states[i].Packages) != 2 {
			t.Errorf("List #%d returned an incomplete snapshot: %+v", i, states[i])
		}
	}
	if src.enumerations != 1 {
		t.Errorf("source enumerated %d times, want 1 (rest served from cache)", src.enumerations)
	}
}

func TestSharedControllerClearCacheForcesReenumeration(t *testing.T) {
	src := &countingSource{}
	ctrl := NewSharedController(stream.NewController(src, stream.NewCache(stream.DefaultTTL)))

	if _, err := ctrl.List(context.Background(), "device-a", false); err != nil {
		t.Fatalf("first List: %v", err)
	}
	ctrl.ClearCache("device-a")
	if _, err := ctrl.List(context.Background(), "device-a", false); err != nil {
		t.Fatalf("second List: %v", err)
	}
	if src.enumerations != 2 {
		t.Errorf("source enumerated %d times, want 2 after cache clear", src.enumerations)
	}
}
