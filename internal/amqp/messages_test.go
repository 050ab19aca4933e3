package amqp

import (
	"errors"
	"testing"
	"time"

	"spendlog/internal/core"
)

func TestExpenseLoggedMessageRoundTrip(t *testing.T) {
	e := core.Expense{
		Name:     "Coffee",
		Amount:   core.Money{Cents: 450},
		Category: core.Food,
		Date:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}

	data, err := NewExpenseLoggedMessage(e).ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	msg, err := ExpenseLoggedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := msg.Expense()
	if err != nil {
		t.Fatalf("expense: %v", err)
	}
	if got != e {
		t.Fatalf("got %+v, want %+v", got, e)
	}
}

func TestExpenseRejectsBadPayload(t *testing.T) {
	cases := []struct {
		name string
		msg  ExpenseLoggedMessage
		want error
	}{
		{"bad category", ExpenseLoggedMessage{Name: "x", AmountCents: 1, Category: "Travel", Date: "2026-08-30"}, core.ErrUnknownCategory},
		{"bad date", ExpenseLoggedMessage{Name: "x", AmountCents: 1, Category: "Food", Date: "30/08/2026"}, core.ErrInvalidDate},
		{"negative amount", ExpenseLoggedMessage{Name: "x", AmountCents: -1, Category: "Food", Date: "2026-08-30"}, core.ErrInvalidAmount},
	}
	for _, tc := range cases {
		if _, err := tc.msg.Expense(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestExpenseLoggedMessageFromJSONMalformed(t *testing.T) {
	if _, err := ExpenseLoggedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
