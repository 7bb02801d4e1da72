package adb

import "testing"

func TestParsePackageList(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{
			name: "typical output",
			out:  "package:com.vendor.mail\npackage:com.vendor.weather\npackage:org.chromium.webview\n",
			want: []string{"com.vendor.mail", "com.vendor.weather", "org.chromium.webview"},
		},
		{
			name: "daemon banner and blank lines skipped",
			out:  "* daemon not running; starting now\n* daemon started successfully\n\npackage:com.vendor.mail\n\n",
			want: []string{"com.vendor.mail"},
		},
		{
			name: "windows line endings",
			out:  "package:com.a\r\npackage:com.b\r\n",
			want: []string{"com.a", "com.b"},
		},
		{
			name: "empty output",
			out:  "",
			want: nil,
		},
		{
			name: "prefix without id skipped",
			out:  "package:\npackage:com.a\n",
			want: []string{"com.a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePackageList(tt.out)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d ids %v, want %d", len(got), got, len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ids[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseDevices(t *testing.T) {
	out := `List of devices attached
emulator-5554          device product:sdk_gphone64 model:sdk_gphone64_x86_64 device:emu64x transport_id:1
R58M123ABC             unauthorized transport_id:2
192.168.1.42:5555      offline
`
	devices := parseDevices(out)
	if len(devices) != 3 {
		t.Fatalf("got %d devices, want 3", len(devices))
	}

	if devices[0].ID != "emulator-5554" || devices[0].State != "device" {
		t.Errorf("devices[0] = %+v", devices[0])
	}
	if devices[0].Model != "sdk gphone64 x86 64" {
		t.Errorf("devices[0].Model = %q", devices[0].Model)
	}
	if devices[1].ID != "R58M123ABC" || devices[1].State != "unauthorized" {
		t.Errorf("devices[1] = %+v", devices[1])
	}
	if devices[2].ID != "192.168.1.42:5555" || devices[2].State != "offline" {
		t.Errorf("devices[2] = %+v", devices[2])
	}
}

func TestParseDevicesEmpty(t *testing.T) {
	if got := parseDevices("List of devices attached\n\n"); len(got) != 0 {
		t.Errorf("got %d devices, want 0", len(got))
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"com.vendor.weather", "Weather"},
		{"com.google.android.youtube", "Youtube"},
		{"com.samsung.android.bixby.agent", "Agent"},
		{"com.vendor.mail.app", "Mail"},
		{"android", "android"},
	}

	for _, tt := range tests {
		if got := displayName(tt.id); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
