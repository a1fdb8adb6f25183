// Package store persists splice results in an embedded database.
// DuckDB is the default backend; SQLite (pure Go) serves hosts without cgo.
// Encodings are not stored: they are rebuilt from the exon intervals and the
// unspliced length on lookup.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// Store manages a database connection holding splice results.
type Store struct {
	db     *sql.DB
	driver string
	path   string
}

// Open opens or creates a result database at the given path.
// Use an empty string for an in-memory database.
func Open(driver, path string) (*Store, error) {
	switch driver {
	case DriverDuckDB, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}

	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	dsn := path
	if driver == DriverSQLite && path == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// An in-memory SQLite database lives and dies with its connection.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: driver, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// DriverForPath picks a driver from the file extension: .sqlite, .sqlite3
// and .db select SQLite, anything else DuckDB.
func DriverForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".sqlite3", ".db":
		return DriverSQLite
	}
	return DriverDuckDB
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the database driver name.
func (s *Store) Driver() string {
	return s.driver
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS splice_results (
		transcript_id VARCHAR PRIMARY KEY,
		gene_id VARCHAR,
		species VARCHAR,
		chrom VARCHAR,
		unspliced_len BIGINT,
		coding_seq_len BIGINT,
		exon_count INTEGER,
		intron_count INTEGER,
		exon_bases BIGINT,
		spliced_fraction DOUBLE,
		consistent BOOLEAN,
		flags VARCHAR,
		exons VARCHAR,
		introns VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS exclusions (
		transcript_id VARCHAR PRIMARY KEY,
		reason VARCHAR
	)`)
	return err
}

// Clear removes all stored results and exclusions. A run is a full
// recomputation, so callers clear the store before writing a new one.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM splice_results"); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM exclusions"); err != nil {
		return fmt.Errorf("clear exclusions: %w", err)
	}
	return nil
}
