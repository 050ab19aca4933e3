package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"spendlog/internal/core"
)

func TestAppendAndLoadAll(t *testing.T) {
	s := New()
	ctx := context.Background()

	e := core.Expense{
		Name:     "Coffee",
		Amount:   core.Money{Cents: 450},
		Category: core.Food,
		Date:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}
	ref, err := s.Append(ctx, e)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("ref = %q", ref)
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, []core.Expense{e}) {
		t.Fatalf("got %v", got)
	}

	// Mutating the returned slice must not affect the store.
	got[0].Name = "Tampered"
	again, _ := s.LoadAll(ctx)
	if again[0].Name != "Coffee" {
		t.Fatalf("store mutated through returned slice")
	}
}

func TestAppendValidates(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.Expense{Name: "x", Category: "Nope", Date: time.Now(), Amount: core.Money{Cents: 1}})
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if items, _ := s.LoadAll(context.Background()); len(items) != 0 {
		t.Fatalf("storage mutated by rejected append")
	}
}
