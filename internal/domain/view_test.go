package domain

import "testing"

func testRecords() []Package {
	return []Package{
		{ID: "com.carrier.billing", Name: "Carrier Billing", Category: CategoryDangerous},
		{ID: "com.vendor.mail", Name: "Mail", Category: CategoryCaution},
		{ID: "com.vendor.weather", Name: "Weather", Category: CategorySafe},
		{ID: "org.chromium.webview", Name: "WebView", Category: CategoryExpert},
	}
}

func TestCompose(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name    string
		term    string
		filter  Category
		wantIDs []string
	}{
		{
			name:    "no term no filter returns everything",
			wantIDs: []string{"com.carrier.billing", "com.vendor.mail", "com.vendor.weather", "org.chromium.webview"},
		},
		{
			name:    "term matches ID substring",
			term:    "vendor",
			wantIDs: []string{"com.vendor.mail", "com.vendor.weather"},
		},
		{
			name:    "term matches name case-insensitively",
			term:    "WEATHER",
			wantIDs: []string{"com.vendor.weather"},
		},
		{
			name:    "category filter alone",
			filter:  CategoryCaution,
			wantIDs: []string{"com.vendor.mail"},
		},
		{
			name:    "term and filter combine with AND",
			term:    "vendor",
			filter:  CategorySafe,
			wantIDs: []string{"com.vendor.weather"},
		},
		{
			name:    "no matches",
			term:    "facebook",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(records, tt.term, tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("result[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestComposePreservesOrder(t *testing.T) {
	records := testRecords()
	got := Compose(records, "com", CategoryUnknown)

	prev := ""
	for _, p := range got {
		if p.ID < prev {
			t.Fatalf("order not preserved: %q after %q", p.ID, prev)
		}
		prev = p.ID
	}
}

func TestComposerMemoizesOnUnchangedInputs(t *testing.T) {
	var c Composer
	records := testRecords()

	first := c.Compose(records, "vendor", CategoryUnknown)
	second := c.Compose(records, "vendor", CategoryUnknown)

	if len(first) == 0 {
		t.Fatal("expected matches")
	}
	if &first[0] != &second[0] {
		t.Error("expected identical slice for unchanged inputs")
	}
}

func TestComposerRecomputesOnChange(t *testing.T) {
	var c Composer
	records := testRecords()

	all := c.Compose(records, "", CategoryUnknown)
	if len(all) != len(records) {
		t.Fatalf("got %d records, want %d", len(all), len(records))
	}

	filtered := c.Compose(records, "mail", CategoryUnknown)
	if len(filtered) != 1 || filtered[0].ID != "com.vendor.mail" {
		t.Fatalf("unexpected filtered result: %+v", filtered)
	}

	// New backing slice simulates a fresh snapshot from a chunk arrival.
	grown := append(append([]Package{}, records...), Package{ID: "zz.new", Name: "New"})
	regrown := c.Compose(grown, "mail", CategoryUnknown)
	if len(regrown) != 1 {
		t.Fatalf("expected recompute on new snapshot, got %d records", len(regrown))
	}
}
