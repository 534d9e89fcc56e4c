package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Writer persists scans to a SQLite symbol database.
type Writer struct {
	db *sql.DB
}

// NewWriter opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewWriter(dbPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	version, err := GetSchemaVersion(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}
	switch version {
	case "0":
		if err := CreateSchema(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version %s (want %s)", version, SchemaVersion)
	}

	return &Writer{db: db}, nil
}

// ReplaceScan atomically replaces the stored scan with syms: all previous
// rows are deleted, the new symbols inserted in order, the FTS mirror
// rebuilt, and the scan metadata updated. Returns the new scan id.
func (w *Writer) ReplaceScan(root string, fileCount int, syms []symbols.Symbol) (string, error) {
	scanID := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := w.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := sq.Delete("symbols").RunWith(tx).Exec(); err != nil {
		return "", fmt.Errorf("failed to clear symbols: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM symbols_fts`); err != nil {
		return "", fmt.Errorf("failed to clear symbols_fts: %w", err)
	}

	for i := range syms {
		s := &syms[i]
		id := uuid.New().String()

		_, err := sq.Insert("symbols").
			Columns("id", "scan_id", "kind", "vis", "name", "file", "line_start", "line_end", "snippet", "signature", "created_at").
			Values(id, scanID, string(s.Kind), string(s.Visibility), s.Name, s.File, s.LineStart, s.LineEnd, s.Snippet, s.Signature, now).
			RunWith(tx).
			Exec()
		if err != nil {
			return "", fmt.Errorf("failed to insert symbol %s: %w", s.Name, err)
		}

		_, err = sq.Insert("symbols_fts").
			Columns("symbol_id", "name", "snippet").
			Values(id, s.Name, s.Snippet).
			RunWith(tx).
			Exec()
		if err != nil {
			return "", fmt.Errorf("failed to index symbol %s: %w", s.Name, err)
		}
	}

	meta := map[string]string{
		MetaScanID:      scanID,
		MetaRoot:        root,
		MetaScannedAt:   now,
		MetaFileCount:   strconv.Itoa(fileCount),
		MetaSymbolCount: strconv.Itoa(len(syms)),
	}
	for key, value := range meta {
		if _, err := tx.Exec(
			`INSERT INTO scan_metadata (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, now,
		); err != nil {
			return "", fmt.Errorf("failed to update metadata %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return scanID, nil
}

// Close closes the database.
func (w *Writer) Close() error {
	return w.db.Close()
}
