// Package stats computes temporal aggregates over the ledger store: spend
// totals in a date range and household salary resolution against history.
package stats

import (
	"context"
	"fmt"
	"time"

	"familypay/internal/period"
	"familypay/internal/storage"
)

type Aggregator struct {
	store *storage.Store
}

func NewAggregator(store *storage.Store) *Aggregator {
	return &Aggregator{store: store}
}

// StatsInRange sums expense amounts across all users within [start, end),
// both overall and per category. Categories without expenses in range are
// absent from the map.
func (a *Aggregator) StatsInRange(ctx context.Context, start, end time.Time) (int64, map[string]int64, error) {
	total, err := a.store.SumExpenses(ctx, start, end)
	if err != nil {
		return 0, nil, fmt.Errorf("total in range: %w", err)
	}

	byCategory, err := a.store.SumExpensesByCategory(ctx, start, end)
	if err != nil {
		return 0, nil, fmt.Errorf("category totals in range: %w", err)
	}

	return total, byCategory, nil
}

// TotalSalaryForMonth resolves each known user's salary as of the given
// month and sums the results. The household budget is shared, so every user
// contributes, not just the one asking.
//
// Per user the most recent history entry effective before the start of the
// following month wins; users without any applicable history fall back to
// their current salary; users known to neither table contribute zero.
func (a *Aggregator) TotalSalaryForMonth(ctx context.Context, year, month int) (int64, error) {
	nextYear, nextMonth := period.AdvanceMonth(year, month)
	threshold := time.Date(nextYear, time.Month(nextMonth), 1, 0, 0, 0, 0, time.UTC)

	salaries, err := a.store.LatestSalariesBefore(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("salary history for month: %w", err)
	}

	current, err := a.store.CurrentSalaries(ctx)
	if err != nil {
		return 0, fmt.Errorf("current salaries: %w", err)
	}
	for userID, amount := range current {
		if _, ok := salaries[userID]; !ok {
			salaries[userID] = amount
		}
	}

	var total int64
	for _, amount := range salaries {
		total += amount
	}
	return total, nil
}

// SalarySumForMonths sums the resolved household salary over the given
// months of one year.
func (a *Aggregator) SalarySumForMonths(ctx context.Context, year int, months []int) (int64, error) {
	var sum int64
	for _, month := range months {
		amount, err := a.TotalSalaryForMonth(ctx, year, month)
		if err != nil {
			return 0, err
		}
		sum += amount
	}
	return sum, nil
}

// YearWindow returns the [start, end) bounds covering the elapsed months of
// the given year: the whole year when it is past, January through the end of
// the current month for the current year. ok is false for a future year,
// which has no elapsed months.
func YearWindow(year int, now time.Time) (start, end time.Time, ok bool) {
	months := period.MonthsElapsed(year, now)
	if len(months) == 0 {
		return time.Time{}, time.Time{}, false
	}

	start = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	if year < now.Year() {
		end = time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		_, end = period.MonthRange(now.Year(), int(now.Month()))
	}
	return start, end, true
}
