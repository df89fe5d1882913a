package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"companypicker/internal/domain"
)

// one row per array element; body is the element's JSON exactly as received
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS catalog_items (
	position INTEGER PRIMARY KEY,
	body     TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS selection_items (
	position INTEGER PRIMARY KEY,
	body     TEXT    NOT NULL
);`

// SQLiteStore keeps each collection in its own table, ordered by position.
// Rows are stored as given, so duplicate ids survive a save like they do in
// the file backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadCatalog(ctx context.Context) ([]domain.Company, error) {
	return s.load(ctx, Catalog)
}

func (s *SQLiteStore) LoadSelection(ctx context.Context) ([]domain.Company, error) {
	return s.load(ctx, Selection)
}

func (s *SQLiteStore) SaveSelection(ctx context.Context, companies []domain.Company) error {
	return s.save(ctx, Selection, companies)
}

// ReplaceCatalog overwrites the catalog table
func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, companies []domain.Company) error {
	return s.save(ctx, Catalog, companies)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func sqliteTable(c Collection) (string, error) {
	switch c {
	case Catalog:
		return "catalog_items", nil
	case Selection:
		return "selection_items", nil
	}
	return "", fmt.Errorf("unknown collection %q", c)
}

// ReadDocument joins the stored elements back into one array
func (s *SQLiteStore) ReadDocument(ctx context.Context, c Collection) (json.RawMessage, error) {
	table, err := sqliteTable(c)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT body FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var buf bytes.Buffer
	buf.WriteByte('[')
	for n := 0; rows.Next(); n++ {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(body)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// WriteDocument replaces every row of the collection in one transaction
func (s *SQLiteStore) WriteDocument(ctx context.Context, c Collection, doc json.RawMessage) error {
	table, err := sqliteTable(c)
	if err != nil {
		return err
	}
	items, err := ParseArray(doc)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+table+" (position, body) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.ExecContext(ctx, i, string(item)); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}

func (s *SQLiteStore) load(ctx context.Context, c Collection) ([]domain.Company, error) {
	doc, err := s.ReadDocument(ctx, c)
	if err != nil {
		return nil, err
	}
	return decodeCompanies(doc, "sqlite table "+string(c))
}

func (s *SQLiteStore) save(ctx context.Context, c Collection, companies []domain.Company) error {
	doc, err := encodeCompanies(companies)
	if err != nil {
		return err
	}
	return s.WriteDocument(ctx, c, doc)
}
