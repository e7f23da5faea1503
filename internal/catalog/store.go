// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog stages extracted product records in a SQLite database for
// the downstream database import. Every run replaces the staged product
// set; import runs are kept as history.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

const (
	// DefaultFile is the database file name under the output directory.
	DefaultFile = "catalog.db"

	defaultMaxResults = 50
)

// ErrNoRuns is returned by LastRun when nothing has been imported.
var ErrNoRuns = errors.New("no import runs recorded")

// Run describes one import into the catalog.
type Run struct {
	ID           string    `json:"id" yaml:"id"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	ProductCount int       `json:"product_count" yaml:"product_count"`
}

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	now        func() time.Time
}

// Path resolves the database path for cfg, defaulting to
// <outputDir>/catalog.db.
func Path(cfg types.CatalogConfig, outputDir string) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return filepath.Join(outputDir, DefaultFile)
}

// NewStore opens or creates the catalog database at dbPath and creates the
// schema if it does not exist.
func NewStore(dbPath string, maxResults int) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        dir,
		maxResults: maxResults,
		now:        time.Now,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database; exports land here.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS import_runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			product_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			position INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES import_runs(id),
			category TEXT NOT NULL,
			supplier TEXT NOT NULL,
			brand TEXT NOT NULL,
			description TEXT NOT NULL,
			specification TEXT,
			part_number TEXT,
			price REAL NOT NULL,
			page INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace stages records as the catalog's product set, removing whatever
// the previous run left, and records the import run. It all happens in one
// transaction.
func (s *Store) Replace(ctx context.Context, records []types.ProductRecord) (Run, error) {
	run := Run{
		ID:           uuid.NewString(),
		StartedAt:    s.now().UTC().Truncate(time.Second),
		ProductCount: len(records),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return Run{}, fmt.Errorf("clearing products: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_runs (id, started_at, product_count) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339), run.ProductCount,
	)
	if err != nil {
		return Run{}, fmt.Errorf("recording import run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (position, run_id, category, supplier, brand, description, specification, part_number, price, page)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			i, run.ID, string(r.Category), r.Supplier, r.Brand, r.Description,
			r.Specification, r.PartNumber, r.Price, r.Page,
		)
		if err != nil {
			return Run{}, fmt.Errorf("inserting product %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing import: %w", err)
	}
	return run, nil
}

// LastRun returns the most recent import run.
func (s *Store) LastRun(ctx context.Context) (Run, error) {
	var (
		run       Run
		startedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, product_count FROM import_runs ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&run.ID, &startedAt, &run.ProductCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("looking up last run: %w", err)
	}
	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run time %q: %w", startedAt, err)
	}
	return run, nil
}
