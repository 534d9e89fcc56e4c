// Package store persists one scan's symbol list to SQLite so search and
// external consumers can read it without re-scanning. The layout is a
// symbols table, an FTS5 mirror for pattern search, and a key/value
// metadata table describing the scan.
package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is bumped when the table layout changes. Readers refuse
// databases written by a different version.
const SchemaVersion = "1"

// Metadata keys.
const (
	MetaSchemaVersion = "schema_version"
	MetaScanID        = "scan_id"
	MetaRoot          = "root"
	MetaScannedAt     = "scanned_at"
	MetaFileCount     = "file_count"
	MetaSymbolCount   = "symbol_count"
)

const createSymbolsTable = `
CREATE TABLE IF NOT EXISTS symbols (
    id          TEXT PRIMARY KEY,
    scan_id     TEXT NOT NULL,
    kind        TEXT NOT NULL,
    vis         TEXT NOT NULL,
    name        TEXT NOT NULL,
    file        TEXT NOT NULL,
    line_start  INTEGER NOT NULL,
    line_end    INTEGER NOT NULL,
    snippet     TEXT NOT NULL,
    signature   TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL
)`

const createMetadataTable = `
CREATE TABLE IF NOT EXISTS scan_metadata (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

// symbols_fts mirrors the searchable columns; symbol_id links a hit back to
// its row. Kept in sync by ReplaceScan with delete-then-insert.
const createSymbolsFTS = `
CREATE VIRTUAL TABLE IF NOT EXISTS symbols_fts USING fts5(
    symbol_id UNINDEXED,
    name,
    snippet,
    tokenize = 'unicode61'
)`

var symbolIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name)`,
	`CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file)`,
}

// CreateSchema creates the tables and indexes. The FTS5 virtual table is
// created outside the transaction.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := tx.Exec(createSymbolsTable); err != nil {
		return fmt.Errorf("failed to create symbols table: %w", err)
	}
	if _, err := tx.Exec(createMetadataTable); err != nil {
		return fmt.Errorf("failed to create scan_metadata table: %w", err)
	}
	for i, idx := range symbolIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO scan_metadata (key, value, updated_at) VALUES (?, ?, ?)`,
		MetaSchemaVersion, SchemaVersion, now,
	); err != nil {
		return fmt.Errorf("failed to bootstrap scan_metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	if _, err := db.Exec(createSymbolsFTS); err != nil {
		return fmt.Errorf("failed to create symbols_fts table: %w", err)
	}
	return nil
}

// GetSchemaVersion returns the stored schema version, or "0" for a database
// without one (new file).
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='scan_metadata'`,
	).Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check scan_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow(
		`SELECT value FROM scan_metadata WHERE key = ?`, MetaSchemaVersion,
	).Scan(&version)
	if err == sql.ErrNoRows {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
