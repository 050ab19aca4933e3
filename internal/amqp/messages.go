package amqp

import (
	"encoding/json"
	"time"

	"spendlog/internal/core"
)

// ExpenseLoggedMessage carries a full expense record to the mirror worker.
// Records have no identifier, so the message is self-contained.
type ExpenseLoggedMessage struct {
	Name        string    `json:"name"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Date        string    `json:"date"` // 2006-01-02
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseLoggedMessage builds a message from a validated record.
func NewExpenseLoggedMessage(e core.Expense) *ExpenseLoggedMessage {
	return &ExpenseLoggedMessage{
		Name:        e.Name,
		AmountCents: e.Amount.Cents,
		Category:    string(e.Category),
		Date:        e.Date.Format("2006-01-02"),
		Timestamp:   time.Now(),
	}
}

// Expense reconstructs the record carried by the message.
func (m *ExpenseLoggedMessage) Expense() (core.Expense, error) {
	cat, err := core.ParseCategory(m.Category)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return core.Expense{}, core.ErrInvalidDate
	}
	e := core.Expense{
		Name:     m.Name,
		Amount:   core.Money{Cents: m.AmountCents},
		Category: cat,
		Date:     date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseLoggedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseLoggedMessageFromJSON creates a message from JSON bytes
func ExpenseLoggedMessageFromJSON(data []byte) (*ExpenseLoggedMessage, error) {
	var msg ExpenseLoggedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
