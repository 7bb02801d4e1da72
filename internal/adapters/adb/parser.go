package adb

import (
	"strings"

	"debloat/internal/ports"
)

// parsePackageList extracts package IDs from `pm list packages` output.
// Each line has the form "package:com.vendor.app"; anything else is noise
// (blank lines, daemon startup banners) and is skipped.
func parsePackageList(out string) []string {
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		id, ok := strings.CutPrefix(line, "package:")
		if !ok || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// parseDevices extracts devices from `adb devices -l` output. The first
// line is the "List of devices attached" header; each following line is
// "<serial> <state> [key:value ...]".
func parseDevices(out string) []ports.Device {
	var devices []ports.Device
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		d := ports.Device{ID: fields[0], State: fields[1]}
		for _, f := range fields[2:] {
			if model, ok := strings.CutPrefix(f, "model:"); ok {
				d.Model = strings.ReplaceAll(model, "_", " ")
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// displayName derives a human-readable fallback label from a reverse-domain
// package ID: the last meaningful segment, capitalized.
func displayName(id string) string {
	segments := strings.Split(id, ".")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" || seg == "android" || seg == "app" {
			continue
		}
		return strings.ToUpper(seg[:1]) + seg[1:]
	}
	return id
}
