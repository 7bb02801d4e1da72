package ports

import "debloat/internal/domain"

// CatalogEntry is a known-package classification record
type CatalogEntry struct {
	PackageID   string
	Name        string
	Category    domain.Category
	Description string
}

// PackageCatalog provides persistent classification of known packages.
// Lookups run on every enumerated record and should be O(1) or O(log n)
// via database indexes.
type PackageCatalog interface {
	// Lifecycle
	Open(dataDir string) error
	Close() error

	// Lookup returns the entry for a package ID, or nil when unknown
	Lookup(packageID string) (*CatalogEntry, error)

	// BulkUpsert inserts or replaces entries atomically
	BulkUpsert(entries []CatalogEntry) error
}
