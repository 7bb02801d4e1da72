package views

import (
	"context"
	"strings"
	"testing"

	"debloat/internal/application/stream"
	"debloat/internal/domain"
	"debloat/internal/ports"
)

type enumSource struct {
	chans []chan ports.Notification
}

func (s *enumSource) Devices(context.Context) ([]ports.Device, error) { return nil, nil }

func (s *enumSource) Enumerate(context.Context, string) (<-chan ports.Notification, error) {
	ch := make(chan ports.Notification, 4)
	s.chans = append(s.chans, ch)
	return ch, nil
}

func (s *enumSource) Uninstall(context.Context, string, string) error { return nil }

// A refresh supersedes the running session while its reader is still
// pending. The late reader must re-arm on its own channel so the new
// session's notifications are never consumed under the old token.
func TestNotificationPumpStaysOnItsChannel(t *testing.T) {
	src := &enumSource{}
	ctrl := stream.NewController(src, stream.NewCache(stream.DefaultTTL))
	m := NewPackagesModel(ctrl, domain.NewLedger())
	m.SetSize(80, 24)

	if cmd := m.SetDevice(ports.Device{ID: "device-a"}); cmd == nil {
		t.Fatal("expected a pump command on first enumeration")
	}
	staleToken, staleCh := m.token, m.ch

	if cmd := m.startEnumeration(true); cmd == nil {
		t.Fatal("expected a pump command on refresh")
	}
	liveToken, liveCh := m.token, m.ch
	if staleToken == liveToken {
		t.Fatal("refresh must mint a new token")
	}

	// A late chunk from the superseded session arrives.
	_, cmd := m.Update(notificationMsg{
		token: staleToken,
		ch:    staleCh,
		n:     ports.Chunk{Packages: []domain.Package{{ID: "com.old"}}, TotalSoFar: 1},
		ok:    true,
	})
	if cmd == nil {
		t.Fatal("expected the pump to re-arm")
	}
	if got := ctrl.State().Received; got != 0 {
		t.Fatalf("superseded chunk landed: Received = %d, want 0", got)
	}

	src.chans[0] <- ports.Done{Total: 1}
	rearmed, ok := cmd().(notificationMsg)
	if !ok {
		t.Fatal("re-armed command did not return a notification")
	}
	if rearmed.ch != staleCh {
		t.Error("pump re-armed on the live channel instead of its own")
	}
	if rearmed.token != staleToken {
		t.Errorf("pump re-armed with token %v, want %v", rearmed.token, staleToken)
	}

	// The live session's chunk is still on the live channel for its pump.
	src.chans[1] <- ports.Chunk{Packages: []domain.Package{{ID: "com.new"}}, TotalSoFar: 1}
	m.Update(waitForNotification(liveToken, liveCh)())
	state := ctrl.State()
	if state.Received != 1 {
		t.Fatalf("live chunk dropped: Received = %d, want 1", state.Received)
	}
	if state.Packages[0].ID != "com.new" {
		t.Errorf("Packages[0] = %s, want com.new", state.Packages[0].ID)
	}
}

func TestNextFilterCyclesAllCategories(t *testing.T) {
	seen := map[domain.Category]bool{}
	f := domain.CategoryUnknown
	for range 5 {
		f = nextFilter(f)
		seen[f] = true
	}
	if f != domain.CategoryUnknown {
		t.Errorf("expected cycle to return to unfiltered, got %v", f)
	}
	for _, c := range []domain.Category{domain.CategorySafe, domain.CategoryCaution, domain.CategoryExpert, domain.CategoryDangerous} {
		if !seen[c] {
			t.Errorf("cycle never reached %v", c)
		}
	}
}

func testPackages(n int) []domain.Package {
	pkgs := make([]domain.Package, n)
	for i := range pkgs {
		pkgs[i] = domain.Package{ID: string(rune('a' + i%26))}
	}
	return pkgs
}

func TestMoveCursorClampsToList(t *testing.T) {
	m := &PackagesModel{}
	m.Height = 20
	visible := testPackages(5)

	m.moveCursor(10, visible)
	if m.cursor != 4 {
		t.Errorf("cursor = %d, want 4", m.cursor)
	}

	m.moveCursor(-10, visible)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestMoveCursorScrollsViewport(t *testing.T) {
	m := &PackagesModel{}
	m.Height = 9 + 4 // four list rows
	visible := testPackages(20)

	m.moveCursor(10, visible)
	if m.cursor != 10 {
		t.Fatalf("cursor = %d, want 10", m.cursor)
	}
	if m.offset != 7 {
		t.Errorf("offset = %d, want 7 (cursor on last visible row)", m.offset)
	}

	m.moveCursor(-10, visible)
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0", m.offset)
	}
}

func TestRelocateCursorFollowsPackageID(t *testing.T) {
	m := &PackagesModel{}
	m.Height = 20
	visible := []domain.Package{{ID: "com.a"}, {ID: "com.b"}, {ID: "com.c"}}

	m.moveCursor(1, visible)
	if m.cursorID != "com.b" {
		t.Fatalf("cursorID = %q, want com.b", m.cursorID)
	}

	// A chunk arrives and com.b shifts position in the sorted list.
	grown := []domain.Package{{ID: "com.a"}, {ID: "com.aa"}, {ID: "com.ab"}, {ID: "com.b"}, {ID: "com.c"}}
	m.relocateCursor(grown)
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3 (still on com.b)", m.cursor)
	}
}

// The cursor row shows the same content as every other row: mark, category,
// ID, and display name, with the row style applied to the whole line.
func TestRenderRowSelectedKeepsContent(t *testing.T) {
	src := &enumSource{}
	m := NewPackagesModel(stream.NewController(src, stream.NewCache(stream.DefaultTTL)), domain.NewLedger())
	p := domain.Package{ID: "com.vendor.weather", Name: "Weather", Category: domain.CategoryDangerous}

	row := m.renderRow(p, true)
	for _, want := range []string{"com.vendor.weather", "Weather", "Dangerous", "[ ]"} {
		if !strings.Contains(row, want) {
			t.Errorf("selected row missing %q: %q", want, row)
		}
	}

	m.ledger.Toggle(p.ID)
	if !strings.Contains(m.renderRow(p, true), "[x]") {
		t.Error("selected row lost the mark")
	}
}

func TestRelocateCursorClampsWhenPackageGone(t *testing.T) {
	m := &PackagesModel{}
	m.Height = 20
	visible := []domain.Package{{ID: "com.a"}, {ID: "com.b"}, {ID: "com.c"}}
	m.moveCursor(2, visible)

	shrunk := []domain.Package{{ID: "com.a"}}
	m.relocateCursor(shrunk)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	if m.cursorID != "com.a" {
		t.Errorf("cursorID = %q, want com.a", m.cursorID)
	}
}
