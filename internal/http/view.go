package http

import (
	"fmt"
	"strconv"
	"time"

	"spendlog/internal/core"
)

// recentCount is how many of the newest records the table shows.
const recentCount = 5

type chartRow struct {
	Label  string
	Amount string
	// Width is the bar width as a percent of the largest category.
	Width int
}

type recentRow struct {
	Name     string
	Amount   string
	Category string
	Date     string
}

type summaryView struct {
	Budget       string
	Total        string
	Remaining    string
	DailyAverage string
	DailyBudget  string
	Overspent    bool
	Rows         []chartRow
	Recent       []recentRow
}

// buildSummaryView turns the raw aggregates into render-ready strings.
// Bars are scaled to the largest category; zero categories keep a row with
// an empty bar.
func buildSummaryView(records []core.Expense, budget core.Money, now time.Time) summaryView {
	sum := core.Summarize(records, budget, now)

	v := summaryView{
		Budget:       formatDollars(sum.Budget.Cents),
		Total:        formatDollars(sum.TotalSpent.Cents),
		Remaining:    formatDollars(sum.Remaining.Cents),
		DailyAverage: formatDollars(sum.DailyAverage.Cents),
		DailyBudget:  formatDollars(sum.DailyBudget.Cents),
		Overspent:    sum.Remaining.Cents < 0,
	}

	var maxCents int64
	for _, ca := range sum.ByCategory {
		if ca.Amount.Cents > maxCents {
			maxCents = ca.Amount.Cents
		}
	}
	for _, ca := range sum.ByCategory {
		width := 0
		if maxCents > 0 && ca.Amount.Cents > 0 {
			width = int((ca.Amount.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width < 2 { // ensure visibility for very small values
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		v.Rows = append(v.Rows, chartRow{
			Label:  ca.Category.Label(),
			Amount: formatDollars(ca.Amount.Cents),
			Width:  width,
		})
	}

	for _, e := range core.Recent(records, recentCount) {
		v.Recent = append(v.Recent, recentRow{
			Name:     e.Name,
			Amount:   formatDollars(e.Amount.Cents),
			Category: e.Category.Label(),
			Date:     e.Date.Format(dateLayout),
		})
	}
	return v
}

func formatDollars(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-$" + s
	}
	return "$" + s
}
