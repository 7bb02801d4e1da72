package domain

import "strings"

// Category classifies how risky it is to remove a package from a device.
type Category int

const (
	CategoryUnknown Category = iota
	CategorySafe
	CategoryCaution
	CategoryExpert
	CategoryDangerous
)

// String returns the display name for the category
func (c Category) String() string {
	switch c {
	case CategorySafe:
		return "Safe"
	case CategoryCaution:
		return "Caution"
	case CategoryExpert:
		return "Expert"
	case CategoryDangerous:
		return "Dangerous"
	default:
		return "Unknown"
	}
}

// ParseCategory parses a category name (case-insensitive).
// Unrecognized input yields CategoryUnknown.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return CategorySafe
	case "caution":
		return CategoryCaution
	case "expert":
		return CategoryExpert
	case "dangerous":
		return CategoryDangerous
	default:
		return CategoryUnknown
	}
}

// Categories lists all assignable categories in display order
var Categories = []Category{
	CategorySafe,
	CategoryCaution,
	CategoryExpert,
	CategoryDangerous,
}

// Package represents one installed package enumerated from a device.
// A package is immutable once received; when a later chunk re-delivers
// the same ID, the newer copy replaces the older one wholesale.
type Package struct {
	ID       string // reverse-domain identifier, e.g. "com.vendor.weather"
	Name     string // human-readable label; derived from ID when unknown
	Category Category
}

// DisplayName returns the label to render for the package,
// falling back to the ID when no name is known.
func (p Package) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
