// Package sqlite backs the tabular.Store port with a local SQLite file.
// It keeps the same loose cell typing and full-table overwrite semantics
// as the spreadsheet, which makes it a drop-in primary store with the
// sheet acting as an asynchronous mirror.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beom0515/beom-jyeon-book/internal/tabular"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ tabular.Store = (*Store)(nil)

func Open(dbPath string) (*Store, error) {
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

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Read returns the table rows in their stored order. The canonical
// header is implied by the column layout.
func (s *Store) Read(ctx context.Context, tableID string) (tabular.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, kind, category, memo, amount
		   FROM ledger_rows
		  WHERE table_id = ?
		  ORDER BY position`, tableID)
	if err != nil {
		return tabular.Table{}, fmt.Errorf("select rows for %s: %w", tableID, err)
	}
	defer rows.Close()

	t := tabular.Table{Header: append([]string(nil), tabular.CanonicalHeader...)}
	for rows.Next() {
		var date, kind, category, memo, amount string
		if err := rows.Scan(&date, &kind, &category, &memo, &amount); err != nil {
			return tabular.Table{}, fmt.Errorf("scan row for %s: %w", tableID, err)
		}
		t.Rows = append(t.Rows, []string{date, kind, category, memo, amount})
	}
	if err := rows.Err(); err != nil {
		return tabular.Table{}, fmt.Errorf("iterate rows for %s: %w", tableID, err)
	}
	return t, nil
}

// Write replaces the full table contents in one transaction.
func (s *Store) Write(ctx context.Context, tableID string, t tabular.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_rows WHERE table_id = ?`, tableID); err != nil {
		return fmt.Errorf("clear %s: %w", tableID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ledger_rows (table_id, position, date, kind, category, memo, amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		cell := func(idx int) string {
			if idx < len(row) {
				return row[idx]
			}
			return ""
		}
		if _, err := stmt.ExecContext(ctx, tableID, i, cell(0), cell(1), cell(2), cell(3), cell(4)); err != nil {
			return fmt.Errorf("insert row %d into %s: %w", i, tableID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", tableID, err)
	}
	return nil
}
