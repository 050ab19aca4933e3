// Package sqlite persists expense records in a local SQLite database. It
// serves as an alternate backend and as the mirror target for the worker.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %v", store.ErrStorage, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %v", store.ErrStorage, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", store.ErrStorage, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: run migrations: %v", store.ErrStorage, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append inserts one record and returns its row id as the reference.
func (s *Store) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (name, amount_cents, category, spent_on) VALUES (?, ?, ?, ?)`,
		e.Name, e.Amount.Cents, string(e.Category), e.Date.Format("2006-01-02"))
	if err != nil {
		return "", fmt.Errorf("%w: insert expense: %v", store.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("%w: last insert id: %v", store.ErrStorage, err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"name", e.Name,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return strconv.FormatInt(id, 10), nil
}

// LoadAll returns all records in insertion order. Rows that no longer parse
// as valid records are skipped and logged, matching the flat-file policy.
func (s *Store) LoadAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, category, spent_on FROM expenses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: query expenses: %v", store.ErrStorage, err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			id      int64
			name    string
			cents   int64
			cat     string
			spentOn string
		)
		if err := rows.Scan(&id, &name, &cents, &cat, &spentOn); err != nil {
			return nil, fmt.Errorf("%w: scan expense: %v", store.ErrStorage, err)
		}
		date, err := time.Parse("2006-01-02", spentOn)
		if err != nil {
			slog.WarnContext(ctx, "Skipping expense with malformed date", "id", id, "spent_on", spentOn)
			continue
		}
		category, err := core.ParseCategory(cat)
		if err != nil {
			slog.WarnContext(ctx, "Skipping expense with unknown category", "id", id, "category", cat)
			continue
		}
		out = append(out, core.Expense{
			Name:     name,
			Amount:   core.Money{Cents: cents},
			Category: category,
			Date:     date,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate expenses: %v", store.ErrStorage, err)
	}
	return out, nil
}
