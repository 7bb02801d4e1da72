package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"debloat/internal/domain"
	"debloat/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Catalog implements ports.PackageCatalog using SQLite
type Catalog struct {
	db     *sql.DB
	dbPath string
}

// Ensure Catalog implements PackageCatalog
var _ ports.PackageCatalog = (*Catalog)(nil)

// NewCatalog creates a new SQLite catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Open initializes the catalog database. An empty dataDir uses the XDG data
// directory. The builtin seed entries are applied when the table is empty.
func (c *Catalog) Open(dataDir string) error {
	if dataDir == "" {
		dataDir = defaultDataDir()
	}
	c.dbPath = filepath.Join(dataDir, "catalog.db")

	if err := os.MkdirAll(filepath.Dir(c.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", c.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open catalog database: %w", err)
	}
	c.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS packages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup catalog database: %w", err)
	}

	if _, err := db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`,
		schemaVersion,
	); err != nil {
		db.Close()
		return fmt.Errorf("failed to update catalog metadata: %w", err)
	}

	if err := c.seedIfEmpty(); err != nil {
		db.Close()
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// defaultDataDir returns the debloat-specific XDG data directory
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "debloat")
}

// Lookup retrieves the entry for a package ID, or nil when unknown
func (c *Catalog) Lookup(packageID string) (*ports.CatalogEntry, error) {
	var entry ports.CatalogEntry
	var category string

	err := c.db.QueryRow(`
		SELECT id, name, category, description
		FROM packages WHERE id = ?
	`, packageID).Scan(&entry.PackageID, &entry.Name, &category, &entry.Description)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entry.Category = domain.ParseCategory(category)
	return &entry, nil
}

// BulkUpsert inserts or replaces entries in a single transaction
func (c *Catalog) BulkUpsert(entries []ports.CatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO packages (id, name, category, description, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, e := range entries {
		if e.PackageID == "" {
			continue
		}
		if _, err := stmt.Exec(e.PackageID, e.Name, e.Category.String(), e.Description, now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// seedIfEmpty applies the builtin classifications on first open
func (c *Catalog) seedIfEmpty() error {
	var count int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM packages`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return c.BulkUpsert(seedEntries)
}
