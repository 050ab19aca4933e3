// Package worker mirrors logged expenses into secondary stores. Mirrors
// are diagnostics; the flat file (or whichever backend the server owns)
// stays the source of truth.
package worker

import (
	"context"
	"fmt"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/log"
)

// Target is where mirrored records land. Both the SQLite store and the
// Google Sheets client satisfy it.
type Target interface {
	Append(ctx context.Context, e core.Expense) (string, error)
}

// MirrorWorker consumes expense-logged events and appends each record to
// every configured target. Delivery is at-least-once, so targets may see
// duplicates after a requeue.
type MirrorWorker struct {
	targets []Target
	names   []string
	logger  *log.Logger
}

func NewMirrorWorker(logger *log.Logger) *MirrorWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &MirrorWorker{logger: logger.WithComponent("mirror-worker")}
}

// AddTarget registers a named mirror target.
func (w *MirrorWorker) AddTarget(name string, t Target) {
	w.targets = append(w.targets, t)
	w.names = append(w.names, name)
}

// Targets returns the number of registered targets.
func (w *MirrorWorker) Targets() int {
	return len(w.targets)
}

// HandleExpenseLogged processes one event. A failure on any target returns
// an error so the delivery is requeued; targets that already succeeded will
// see the record again on redelivery.
func (w *MirrorWorker) HandleExpenseLogged(ctx context.Context, msg *amqp.ExpenseLoggedMessage) error {
	e, err := msg.Expense()
	if err != nil {
		// Malformed payloads cannot succeed on retry; drop with a log.
		w.logger.WarnContext(ctx, "Dropping unparseable expense event",
			log.FieldError, err,
			log.FieldExpenseName, msg.Name)
		return nil
	}

	for i, t := range w.targets {
		ref, err := t.Append(ctx, e)
		if err != nil {
			return fmt.Errorf("mirror to %s: %w", w.names[i], err)
		}
		w.logger.InfoContext(ctx, "Mirrored expense",
			"target", w.names[i],
			log.FieldStoreRef, ref,
			log.FieldExpenseName, e.Name,
			log.FieldAmountCents, e.Amount.Cents)
	}
	return nil
}
