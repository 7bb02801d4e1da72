package domain

import "testing"

func TestLedgerToggle(t *testing.T) {
	l := NewLedger()
	l.SetDevice("emulator-5554")

	l.Toggle("com.vendor.mail")
	if !l.Selected("com.vendor.mail") {
		t.Error("expected package selected after toggle")
	}

	l.Toggle("com.vendor.mail")
	if l.Selected("com.vendor.mail") {
		t.Error("expected package deselected after second toggle")
	}
}

// A mark must survive being hidden by a search term: the ledger is keyed by
// stable ID and is never consulted through the composed view.
func TestLedgerSurvivesFiltering(t *testing.T) {
	l := NewLedger()
	l.SetDevice("emulator-5554")
	records := testRecords()

	l.Toggle("com.vendor.weather")

	hidden := Compose(records, "mail", CategoryUnknown)
	for _, p := range hidden {
		if p.ID == "com.vendor.weather" {
			t.Fatal("expected search to hide the selected package")
		}
	}
	if !l.Selected("com.vendor.weather") {
		t.Error("selection lost while package was filtered out")
	}

	restored := Compose(records, "", CategoryUnknown)
	found := false
	for _, p := range restored {
		if p.ID == "com.vendor.weather" && l.Selected(p.ID) {
			found = true
		}
	}
	if !found {
		t.Error("expected package visible and still selected after clearing search")
	}
}

func TestLedgerClearedOnDeviceChange(t *testing.T) {
	l := NewLedger()
	l.SetDevice("device-a")
	l.Toggle("com.vendor.mail")
	l.Toggle("com.vendor.weather")

	l.SetDevice("device-a")
	if l.Count() != 2 {
		t.Fatalf("same device must not clear marks, count = %d", l.Count())
	}

	l.SetDevice("device-b")
	if l.Count() != 0 {
		t.Errorf("device switch must clear marks, count = %d", l.Count())
	}
	if l.Device() != "device-b" {
		t.Errorf("Device() = %q, want %q", l.Device(), "device-b")
	}
}

func TestLedgerIDsSorted(t *testing.T) {
	l := NewLedger()
	l.Toggle("org.z")
	l.Toggle("com.a")
	l.Toggle("com.m")

	ids := l.IDs()
	want := []string{"com.a", "com.m", "org.z"}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

// Marks referring to IDs no longer present in the records remain valid;
// selection is not pruned by visibility.
func TestLedgerKeepsUnknownIDs(t *testing.T) {
	l := NewLedger()
	l.SetDevice("device-a")
	l.Toggle("com.gone.app")

	if !l.Selected("com.gone.app") {
		t.Error("mark for absent package must remain valid")
	}
}
