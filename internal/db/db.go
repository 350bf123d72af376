package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultName is the database file name inside the app files directory
const DefaultName = "rashr.db"

// ErrNotFound is returned when a scan id is unknown
var ErrNotFound = errors.New("scan not found")

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// New opens or creates the SQLite database at the given path
func New(path string) (*DB, error) {
	if path == "" {
		path = DefaultName
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Pragmas are per connection
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	db := &DB{conn: conn, path: path}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Path returns the database file path
func (d *DB) Path() string {
	return d.path
}

// migrations are applied in order, each exactly once
var migrations = []string{
	migrationV1,
	migrationV2,
}

// migrate runs the database schema migrations
func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	version, err := d.SchemaVersion()
	if err != nil {
		return err
	}

	for i, migration := range migrations {
		v := i + 1
		if v <= version {
			continue
		}

		tx, err := d.conn.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration v%d failed: %w", v, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration
func (d *DB) SchemaVersion() (int, error) {
	var version int
	err := d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	return version, err
}

// migrationV1 creates the scan history
const migrationV1 = `
-- One row per resolved profile
CREATE TABLE IF NOT EXISTS scans (
    id TEXT PRIMARY KEY,
    device TEXT NOT NULL,
    raw_device TEXT,
    manufacturer TEXT,

    recovery_kind TEXT NOT NULL,
    recovery_path TEXT,
    recovery_ext TEXT,
    kernel_kind TEXT NOT NULL,
    kernel_path TEXT,
    kernel_ext TEXT,
    fota INTEGER DEFAULT 0,

    recovery_version TEXT,
    kernel_version TEXT,

    -- Full profile as rendered by the JSON output
    profile_json TEXT,

    scanned_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scans_device ON scans(device);
CREATE INDEX IF NOT EXISTS idx_scans_time ON scans(scanned_at);
`

// migrationV2 keeps the diagnostics of each scan
const migrationV2 = `
CREATE TABLE IF NOT EXISTS scan_diagnostics (
    id INTEGER PRIMARY KEY,
    scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    message TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_diagnostics_scan ON scan_diagnostics(scan_id);
`

// ScanRecord is a scan as stored in the history
type ScanRecord struct {
	ID              string
	Device          string
	RawDevice       string
	Manufacturer    string
	RecoveryKind    string
	RecoveryPath    string
	RecoveryExt     string
	KernelKind      string
	KernelPath      string
	KernelExt       string
	FOTA            bool
	RecoveryVersion string
	KernelVersion   string
	ProfileJSON     string
	Diagnostics     int
	ScannedAt       time.Time
}
