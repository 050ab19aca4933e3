package http

import (
	"testing"
	"time"

	"spendlog/internal/core"
)

func TestFormatDollars(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{450, "$4.50"},
		{200000, "$2000.00"},
		{-50000, "-$500.00"},
		{5, "$0.05"},
	}
	for _, tc := range cases {
		if got := formatDollars(tc.cents); got != tc.want {
			t.Fatalf("%d: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestBuildSummaryViewBarWidths(t *testing.T) {
	now := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []core.Expense{
		{Name: "Rent", Amount: core.Money{Cents: 100000}, Category: core.Home, Date: now},
		{Name: "Coffee", Amount: core.Money{Cents: 500}, Category: core.Food, Date: now},
	}
	v := buildSummaryView(records, core.Money{Cents: 200000}, now)

	if len(v.Rows) != len(core.Categories()) {
		t.Fatalf("expected %d rows, got %d", len(core.Categories()), len(v.Rows))
	}
	widths := map[string]int{}
	for _, r := range v.Rows {
		widths[r.Label] = r.Width
	}
	if widths[core.Home.Label()] != 100 {
		t.Fatalf("largest category width = %d, expected 100", widths[core.Home.Label()])
	}
	// Tiny but non-zero categories stay visible.
	if w := widths[core.Food.Label()]; w < 2 {
		t.Fatalf("small category width = %d, expected >= 2", w)
	}
	// Zero categories render as empty bars, not missing rows.
	if w := widths[core.Work.Label()]; w != 0 {
		t.Fatalf("zero category width = %d, expected 0", w)
	}
}

func TestBuildSummaryViewEmpty(t *testing.T) {
	now := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	v := buildSummaryView(nil, core.Money{Cents: 200000}, now)

	if v.Total != "$0.00" {
		t.Fatalf("total = %s", v.Total)
	}
	if v.Remaining != "$2000.00" {
		t.Fatalf("remaining = %s", v.Remaining)
	}
	if v.DailyAverage != "$0.00" {
		t.Fatalf("daily average = %s", v.DailyAverage)
	}
	if v.Overspent {
		t.Fatal("empty set flagged as overspent")
	}
	if len(v.Recent) != 0 {
		t.Fatalf("recent = %v", v.Recent)
	}
}

func TestBuildSummaryViewRecentLimit(t *testing.T) {
	now := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	var records []core.Expense
	for i := 0; i < 8; i++ {
		records = append(records, core.Expense{
			Name: "e", Amount: core.Money{Cents: int64(i + 1)}, Category: core.Food, Date: now,
		})
	}
	v := buildSummaryView(records, core.Money{Cents: 200000}, now)
	if len(v.Recent) != recentCount {
		t.Fatalf("recent rows = %d, expected %d", len(v.Recent), recentCount)
	}
	if v.Recent[len(v.Recent)-1].Amount != "$0.08" {
		t.Fatalf("last row = %s, expected newest record", v.Recent[len(v.Recent)-1].Amount)
	}
}
