// Package storage is a SQLite-backed tabular store: the same sheet/row/cell
// shape as the remote spreadsheet, mirrored into a local database. It backs
// the offline `sqlite` data backend; rows keep their positional order and
// cells stay raw text, so the normalization pipeline sees no difference.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ports "financehq/internal/sheets"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

// Ensure interface conformance
var _ ports.Database = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) PrimarySheet(ctx context.Context) (ports.Sheet, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sheets ORDER BY position LIMIT 1`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("store has no sheets")
	}
	if err != nil {
		return nil, fmt.Errorf("query primary sheet: %w", err)
	}
	return &sheet{store: s, name: name}, nil
}

func (s *SQLiteStore) Sheet(ctx context.Context, name string) (ports.Sheet, error) {
	var found string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sheets WHERE name = ?`, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ports.ErrSheetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query sheet %s: %w", name, err)
	}
	return &sheet{store: s, name: found}, nil
}

func (s *SQLiteStore) SheetNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sheets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query sheet names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan sheet name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) CreateSheet(ctx context.Context, name string, header []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create sheet: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sheets (name, position)
		 VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM sheets))`, name)
	if err != nil {
		return fmt.Errorf("insert sheet %s: %w", name, err)
	}
	if len(header) > 0 {
		cells, err := json.Marshal(header)
		if err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet, position, cells) VALUES (?, 0, ?)`,
			name, string(cells))
		if err != nil {
			return fmt.Errorf("insert header for %s: %w", name, err)
		}
	}
	return tx.Commit()
}

type sheet struct {
	store *SQLiteStore
	name  string
}

func (sh *sheet) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := sh.store.db.QueryContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY position`, sh.name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sh.name, err)
	}
	defer rows.Close()

	var grid [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("decode row cells: %w", err)
		}
		grid = append(grid, cells)
	}
	return grid, rows.Err()
}

func (sh *sheet) AppendRow(ctx context.Context, row []string) error {
	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	_, err = sh.store.db.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, position, cells)
		 VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM sheet_rows WHERE sheet = ?), ?)`,
		sh.name, sh.name, string(cells))
	if err != nil {
		return fmt.Errorf("append to %s: %w", sh.name, err)
	}
	return nil
}
