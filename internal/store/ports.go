// Package store defines the record store port shared by all persistence
// backends.
package store

import (
	"context"
	"errors"

	"spendlog/internal/core"
)

// ErrStorage marks failures of the persistence medium. Backends wrap it so
// callers can test with errors.Is without knowing the backend.
var ErrStorage = errors.New("storage error")

// RecordStore is the sole source of truth for expense records.
//
// Append writes one record durably, preserving all prior records and their
// order. LoadAll returns every persisted record in append order, oldest
// first. Malformed rows encountered on load are skipped and logged; LoadAll
// fails only when the medium itself is unreadable.
type RecordStore interface {
	Append(ctx context.Context, e core.Expense) (ref string, err error)
	LoadAll(ctx context.Context) ([]core.Expense, error)
}
