package releasestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed release store.
// Use ":memory:" for an in-memory store in tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create release store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS releases (
		id TEXT PRIMARY KEY,
		package TEXT NOT NULL,
		version TEXT,
		revision TEXT NOT NULL,
		message TEXT,
		variants TEXT,
		at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_releases_package ON releases(package);
	CREATE INDEX IF NOT EXISTS idx_releases_at ON releases(at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a release record. A missing id or timestamp is filled in.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}

	variants, err := json.Marshal(rec.Variants)
	if err != nil {
		return fmt.Errorf("encode variants: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO releases (id, package, version, revision, message, variants, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Package, rec.Version, rec.Revision, rec.Message,
		string(variants), rec.At.UnixNano())
	if err != nil {
		return fmt.Errorf("append release record: %w", err)
	}
	return nil
}

// ByPackage retrieves all records for a package, oldest first.
func (s *SQLiteStore) ByPackage(ctx context.Context, name string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, package, version, revision, message, variants, at
		 FROM releases WHERE package = ? ORDER BY at ASC`, name)
	if err != nil {
		return nil, fmt.Errorf("query release records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var variants string
		var at int64
		if err := rows.Scan(&rec.ID, &rec.Package, &rec.Version, &rec.Revision,
			&rec.Message, &variants, &at); err != nil {
			return nil, fmt.Errorf("scan release record: %w", err)
		}
		if variants != "" {
			if err := json.Unmarshal([]byte(variants), &rec.Variants); err != nil {
				return nil, fmt.Errorf("decode variants: %w", err)
			}
		}
		rec.At = time.Unix(0, at).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
