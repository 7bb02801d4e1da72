package config

import (
	"testing"
	"time"
)

func TestAdbPath(t *testing.T) {
	t.Setenv("DEBLOAT_ADB", "")
	if got := AdbPath(); got != "adb" {
		t.Errorf("AdbPath() = %q, want %q", got, "adb")
	}

	t.Setenv("DEBLOAT_ADB", "/opt/platform-tools/adb")
	if got := AdbPath(); got != "/opt/platform-tools/adb" {
		t.Errorf("AdbPath() = %q, want env override", got)
	}
}

func TestCacheTTL(t *testing.T) {
	tests := []struct {
		env  string
		want time.Duration
	}{
		{"", 5 * time.Minute},
		{"90s", 90 * time.Second},
		{"10m", 10 * time.Minute},
		{"not-a-duration", 5 * time.Minute},
		{"-1m", 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Setenv("DEBLOAT_CACHE_TTL", tt.env)
		if got := CacheTTL(); got != tt.want {
			t.Errorf("CacheTTL() with %q = %v, want %v", tt.env, got, tt.want)
		}
	}
}
