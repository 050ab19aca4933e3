package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "Food"
	Home          Category = "Home"
	Work          Category = "Work"
	Fun           Category = "Fun"
	Miscellaneous Category = "Miscellaneous"
)

type (
	// Category is one of the fixed spending buckets.
	Category string

	Money struct {
		Cents int64
	}

	// Expense is a single logged entry. Records carry no identifier;
	// ordering is the position in the store.
	Expense struct {
		Name     string
		Amount   Money
		Category Category
		Date     time.Time
	}
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidDate     = errors.New("invalid date")
)

// categoryLabels maps each category to the decorated label shown in the UI.
var categoryLabels = map[Category]string{
	Food:          "🍔 Food",
	Home:          "🏠 Home",
	Work:          "💼 Work",
	Fun:           "🎉 Fun",
	Miscellaneous: "✨ Miscellaneous",
}

// Categories returns the fixed enumeration in display order.
func Categories() []Category {
	return []Category{Food, Home, Work, Fun, Miscellaneous}
}

// ParseCategory resolves raw input to a known category. It tolerates
// surrounding whitespace, case differences, and the emoji-decorated labels.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) || s == categoryLabels[c] {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Label returns the decorated display label for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
