package core

import "time"

// CategoryAmount is a per-category subtotal.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// Summary is the set of aggregates derived from the full record set.
// Computing it is pure: no error conditions, no side effects.
type Summary struct {
	Budget     Money
	TotalSpent Money
	// Remaining is budget minus total; it goes negative when overspent.
	Remaining Money
	// DailyAverage is total spent divided by the elapsed days of the
	// current month. Zero when no days have elapsed.
	DailyAverage Money
	// DailyBudget is the remaining budget spread over the days left in
	// the month; equals Remaining when the month is over.
	DailyBudget Money
	// ByCategory covers the whole fixed enumeration, zero entries included.
	ByCategory []CategoryAmount
}

// Summarize computes aggregates over records as of now. The budget is an
// explicit argument so callers decide the limit per evaluation rather than
// reading a process-wide constant.
func Summarize(records []Expense, budget Money, now time.Time) Summary {
	s := Summary{Budget: budget}

	byCat := make(map[Category]int64, len(categoryLabels))
	for _, e := range records {
		s.TotalSpent.Cents += e.Amount.Cents
		byCat[e.Category] += e.Amount.Cents
	}
	s.Remaining = Money{Cents: budget.Cents - s.TotalSpent.Cents}

	elapsed := now.Day()
	if elapsed > 0 {
		s.DailyAverage = Money{Cents: divRound(s.TotalSpent.Cents, int64(elapsed))}
	}

	remainingDays := daysInMonth(now) - now.Day()
	if remainingDays > 0 {
		s.DailyBudget = Money{Cents: divRound(s.Remaining.Cents, int64(remainingDays))}
	} else {
		s.DailyBudget = s.Remaining
	}

	for _, c := range Categories() {
		s.ByCategory = append(s.ByCategory, CategoryAmount{Category: c, Amount: Money{Cents: byCat[c]}})
	}
	return s
}

// Recent returns the last n records in store order, oldest of the window
// first. It returns the input slice's tail without copying.
func Recent(records []Expense, n int) []Expense {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// divRound divides cents by n with half-up rounding on the magnitude.
func divRound(cents, n int64) int64 {
	if n == 0 {
		return 0
	}
	if cents < 0 {
		return -divRound(-cents, n)
	}
	return (cents + n/2) / n
}
