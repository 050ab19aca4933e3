package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"spendlog/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "spendlog.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndLoadAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := []core.Expense{
		{Name: "Rent", Amount: core.Money{Cents: 150000}, Category: core.Home, Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "Coffee", Amount: core.Money{Cents: 450}, Category: core.Food, Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, e := range want {
		if _, err := s.Append(ctx, e); err != nil {
			t.Fatalf("append %q: %v", e.Name, err)
		}
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	bad := core.Expense{Name: "", Amount: core.Money{Cents: 100}, Category: core.Food, Date: time.Now()}
	if _, err := s.Append(ctx, bad); err == nil {
		t.Fatal("expected validation error")
	}
	if got, _ := s.LoadAll(ctx); len(got) != 0 {
		t.Fatalf("storage mutated by rejected append: %v", got)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spendlog.db")
	first, err := New(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()
	second, err := New(path) // reruns migrations against an up-to-date schema
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	second.Close()
}
