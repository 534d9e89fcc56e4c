package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Row is one stored symbol together with its database identity.
type Row struct {
	ID     string
	ScanID string
	Symbol symbols.Symbol
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Kind string // exact kind string, or "fn"/"struct" family filters
	Name string // exact symbol name
	File string // exact root-relative file path
}

// Reader reads a symbol database written by Writer.
type Reader struct {
	db *sql.DB
}

// NewReader opens the database at dbPath read-only and verifies its schema
// version.
func NewReader(dbPath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	version, err := GetSchemaVersion(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}
	if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported schema version %s (want %s)", version, SchemaVersion)
	}

	return &Reader{db: db}, nil
}

const symbolColumns = "id, scan_id, kind, vis, name, file, line_start, line_end, snippet, signature"

// List returns stored symbols matching filter in insertion order. The
// kind family filters ("fn", "struct") are applied in SQL as IN clauses.
func (r *Reader) List(filter Filter) ([]Row, error) {
	q := sq.Select(symbolColumns).From("symbols").OrderBy("rowid")

	switch filter.Kind {
	case "":
	case "fn":
		q = q.Where(sq.Eq{"kind": []string{string(symbols.KindFnProto), string(symbols.KindFnDef)}})
	case "struct":
		q = q.Where(sq.Eq{"kind": []string{string(symbols.KindStruct), string(symbols.KindTypedefStruct)}})
	default:
		q = q.Where(sq.Eq{"kind": filter.Kind})
	}
	if filter.Name != "" {
		q = q.Where(sq.Eq{"name": filter.Name})
	}
	if filter.File != "" {
		q = q.Where(sq.Eq{"file": filter.File})
	}

	rows, err := q.RunWith(r.db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Search runs an FTS5 MATCH over symbol names and snippets and returns the
// matching rows ordered by bm25 rank. ftsQuery is a raw FTS5 query string.
func (r *Reader) Search(ftsQuery string) ([]Row, error) {
	rows, err := r.db.Query(
		`SELECT `+prefixed("s", symbolColumns)+`
		 FROM symbols_fts f
		 JOIN symbols s ON s.id = f.symbol_id
		 WHERE symbols_fts MATCH ?
		 ORDER BY bm25(symbols_fts)`,
		ftsQuery,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run FTS query: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Metadata returns the scan_metadata table as a map.
func (r *Reader) Metadata() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM scan_metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

// Close closes the database.
func (r *Reader) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var row Row
		var kind, vis string
		if err := rows.Scan(
			&row.ID, &row.ScanID, &kind, &vis,
			&row.Symbol.Name, &row.Symbol.File,
			&row.Symbol.LineStart, &row.Symbol.LineEnd,
			&row.Symbol.Snippet, &row.Symbol.Signature,
		); err != nil {
			return nil, fmt.Errorf("failed to scan symbol row: %w", err)
		}
		row.Symbol.Kind = symbols.Kind(kind)
		row.Symbol.Visibility = symbols.Visibility(vis)
		out = append(out, row)
	}
	return out, rows.Err()
}

// prefixed qualifies each column in a comma-separated list with a table
// alias for use in joins.
func prefixed(alias, columns string) string {
	out := ""
	start := 0
	for i := 0; i <= len(columns); i++ {
		if i == len(columns) || columns[i] == ',' {
			if out != "" {
				out += ", "
			}
			col := columns[start:i]
			for len(col) > 0 && col[0] == ' ' {
				col = col[1:]
			}
			out += alias + "." + col
			start = i + 1
		}
	}
	return out
}
