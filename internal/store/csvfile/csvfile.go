// Package csvfile persists expense records in a flat delimited file, one
// record per line in append order. It is the default backend and mirrors
// the layout a human would keep in a spreadsheet export: a header row, then
// Name,Amount,Category,Date.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/store"
)

const dateLayout = "2006-01-02"

var header = []string{"Name", "Amount", "Category", "Date"}

// Store appends and reads records from a single CSV file. Appends are
// serialized through a mutex so concurrent requests within one process
// cannot interleave writes; cross-process writers remain unguarded.
type Store struct {
	mu   sync.Mutex
	path string
}

// New opens (or creates) the CSV file at path, writing the header row when
// the file is new.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data directory: %v", store.ErrStorage, err)
		}
	}
	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.writeHeader(); err != nil {
			return nil, err
		}
		slog.Info("Created expense file", "path", path)
	} else if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", store.ErrStorage, path, err)
	}
	return s, nil
}

func (s *Store) writeHeader() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", store.ErrStorage, s.path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("%w: write header: %v", store.ErrStorage, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: write header: %v", store.ErrStorage, err)
	}
	return nil
}

// Append writes one record to the end of the file and syncs it. The
// returned ref is the 1-based position of the record.
func (s *Store) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: open %s for append: %v", store.ErrStorage, s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := []string{e.Name, e.Amount.String(), string(e.Category), e.Date.Format(dateLayout)}
	if err := w.Write(row); err != nil {
		return "", fmt.Errorf("%w: append record: %v", store.ErrStorage, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: append record: %v", store.ErrStorage, err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("%w: sync %s: %v", store.ErrStorage, s.path, err)
	}

	n, err := s.countLocked()
	if err != nil {
		// The record is on disk; the ref is cosmetic.
		slog.WarnContext(ctx, "Could not count records after append", "error", err)
		return "csv:?", nil
	}
	return "csv:" + strconv.Itoa(n), nil
}

// LoadAll reads every record in file order. Malformed rows are skipped and
// logged at Warn with their line number; only an unreadable file fails the
// load.
func (s *Store) LoadAll(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, _, err := s.loadLocked(ctx)
	return records, err
}

func (s *Store) countLocked() (int, error) {
	records, _, err := s.loadLocked(context.Background())
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *Store) loadLocked(ctx context.Context) ([]core.Expense, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open %s: %v", store.ErrStorage, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row length is validated per row so bad rows can be skipped

	var out []core.Expense
	skipped := 0
	line := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed expense row", "path", s.path, "line", line, "error", err)
			skipped++
			continue
		}
		if line == 1 && isHeader(row) {
			continue
		}
		e, err := parseRow(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed expense row", "path", s.path, "line", line, "error", err)
			skipped++
			continue
		}
		out = append(out, e)
	}
	return out, skipped, nil
}

func isHeader(row []string) bool {
	return len(row) == len(header) && row[0] == header[0] && row[1] == header[1]
}

func parseRow(row []string) (core.Expense, error) {
	if len(row) != 4 {
		return core.Expense{}, fmt.Errorf("expected 4 columns, got %d", len(row))
	}
	cents, err := core.ParseDecimalToCents(row[1])
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", row[1], err)
	}
	cat, err := core.ParseCategory(row[2])
	if err != nil {
		return core.Expense{}, fmt.Errorf("category %q: %w", row[2], err)
	}
	date, err := time.Parse(dateLayout, row[3])
	if err != nil {
		return core.Expense{}, fmt.Errorf("date %q: %w", row[3], core.ErrInvalidDate)
	}
	e := core.Expense{
		Name:     row[0],
		Amount:   core.Money{Cents: cents},
		Category: cat,
		Date:     date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}
