package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "expenses.csv"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func expense(name string, cents int64, cat core.Category, day int) core.Expense {
	return core.Expense{
		Name:     name,
		Amount:   core.Money{Cents: cents},
		Category: cat,
		Date:     time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := []core.Expense{
		expense("Rent", 150000, core.Home, 1),
		expense("Groceries", 8342, core.Food, 3),
		expense("Coffee", 450, core.Food, 5),
	}
	for i, e := range want {
		prior, err := s.LoadAll(ctx)
		if err != nil {
			t.Fatalf("load before append %d: %v", i, err)
		}
		if _, err := s.Append(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		got, err := s.LoadAll(ctx)
		if err != nil {
			t.Fatalf("load after append %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, append(prior, e)) {
			t.Fatalf("after append %d: got %v", i, got)
		}
	}
}

func TestLoadAllIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Append(ctx, expense("Lunch", 1200, core.Food, 2)); err != nil {
		t.Fatalf("append: %v", err)
	}
	first, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("loads differ: %v vs %v", first, second)
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bad := expense("Bad", -500, core.Food, 2)
	if _, err := s.Append(ctx, bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("storage mutated by rejected append: %v", got)
	}
}

func TestLoadAllSkipsCorruptRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Append(ctx, expense("Coffee", 450, core.Food, 5)); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Simulate an external edit that leaves broken rows behind.
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open for corruption: %v", err)
	}
	if _, err := f.WriteString("only-two,columns\nSnacks,notanumber,Food,2026-08-06\nCinema,12.00,Fun,2026-08-07\n"); err != nil {
		t.Fatalf("write corrupt rows: %v", err)
	}
	f.Close()

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 readable records, got %d: %v", len(got), got)
	}
	if got[0].Name != "Coffee" || got[1].Name != "Cinema" {
		t.Fatalf("unexpected survivors: %v", got)
	}
}

func TestLoadAllMissingFileIsStorageError(t *testing.T) {
	s := newTestStore(t)
	if err := os.Remove(s.path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.LoadAll(context.Background()); !errors.Is(err, store.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestHeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.csv")
	if _, err := New(path); err != nil {
		t.Fatalf("first open: %v", err)
	}
	s, err := New(path) // reopen existing file
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if _, err := s.Append(context.Background(), expense("Tea", 300, core.Food, 9)); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(data); got != "Name,Amount,Category,Date\nTea,3.00,Food,2026-08-09\n" {
		t.Fatalf("unexpected file contents:\n%s", got)
	}
}
