package config

import (
	"os"
	"time"
)

const (
	defaultAdbPath = "adb"
	defaultModel   = "haiku"
	defaultTTL     = 5 * time.Minute
)

// AdbPath returns the adb binary from DEBLOAT_ADB, falling back to "adb"
// resolved via PATH.
func AdbPath() string {
	if env := os.Getenv("DEBLOAT_ADB"); env != "" {
		return env
	}
	return defaultAdbPath
}

// Model returns the Claude model for the advisor from DEBLOAT_MODEL,
// falling back to haiku for speed.
func Model() string {
	if env := os.Getenv("DEBLOAT_MODEL"); env != "" {
		return env
	}
	return defaultModel
}

// CacheTTL returns the enumeration cache lifetime from DEBLOAT_CACHE_TTL
// (a Go duration string), falling back to five minutes. Malformed values
// fall back silently.
func CacheTTL() time.Duration {
	if env := os.Getenv("DEBLOAT_CACHE_TTL"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			return d
		}
	}
	return defaultTTL
}
