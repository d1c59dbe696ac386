// Package report renders aggregated ledger figures into the chat replies the
// household sees: monthly and yearly summaries, per-category detail and the
// curated limit breakdown.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"familypay/internal/core"
	"familypay/internal/period"
	"familypay/internal/stats"
	"familypay/internal/storage"
)

type Builder struct {
	store *storage.Store
	agg   *stats.Aggregator
}

func NewBuilder(store *storage.Store) *Builder {
	return &Builder{
		store: store,
		agg:   stats.NewAggregator(store),
	}
}

// Monthly builds the spend summary for the month containing target: total,
// salary and remainder when the salary is resolvable, then every vocabulary
// category in declaration order with limit status, then any out-of-vocabulary
// categories that nonetheless carry spend.
func (b *Builder) Monthly(ctx context.Context, target time.Time) (string, error) {
	year, month := target.Year(), int(target.Month())
	start, end := period.MonthRange(year, month)

	total, byCategory, err := b.agg.StatsInRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("month stats: %w", err)
	}
	limits, err := b.store.CategoryLimits(ctx)
	if err != nil {
		return "", fmt.Errorf("category limits: %w", err)
	}
	salary, err := b.agg.TotalSalaryForMonth(ctx, year, month)
	if err != nil {
		return "", fmt.Errorf("salary for month: %w", err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Статистика за %s:\n\n", core.FormatMonthYear(year, month))
	fmt.Fprintf(&msg, "Всего потрачено: %d ₽\n", total)

	if salary > 0 {
		fmt.Fprintf(&msg, "Заработная плата: %d ₽\n", salary)
		fmt.Fprintf(&msg, "Остаток: %d ₽\n\n", salary-total)
	} else {
		fmt.Fprintf(&msg, "Заработная плата не установлена для этого периода. Используйте кнопку \"%s\".\n\n", core.BtnSalary)
	}

	msg.WriteString("По категориям:\n")
	writeCategoryLines(&msg, byCategory, limits)

	return msg.String(), nil
}

// Yearly builds the year-to-date summary: months counted, salary sum over
// elapsed months, total spend and remainder, then the same per-category
// presentation as the monthly report. Limits are monthly-only, so whenever
// any limit exists a footnote warns that the yearly comparison ignores them.
func (b *Builder) Yearly(ctx context.Context, year int, now time.Time) (string, error) {
	months := period.MonthsElapsed(year, now)
	start, end, ok := stats.YearWindow(year, now)
	if !ok {
		return "Для указанного года статистика недоступна.", nil
	}

	total, byCategory, err := b.agg.StatsInRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("year stats: %w", err)
	}
	limits, err := b.store.CategoryLimits(ctx)
	if err != nil {
		return "", fmt.Errorf("category limits: %w", err)
	}
	salarySum, err := b.agg.SalarySumForMonths(ctx, year, months)
	if err != nil {
		return "", fmt.Errorf("salary sum for year: %w", err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Годовая статистика за %d год:\n\n", year)
	fmt.Fprintf(&msg, "Месяцев в расчёте: %d\n", len(months))
	fmt.Fprintf(&msg, "Сумма зарплаты: %d ₽\n", salarySum)
	fmt.Fprintf(&msg, "Сумма расходов: %d ₽\n", total)
	fmt.Fprintf(&msg, "Остаток: %d ₽\n\n", salarySum-total)
	msg.WriteString("По категориям:\n")
	writeCategoryLines(&msg, byCategory, limits)

	if len(limits) > 0 {
		msg.WriteString("\nНапоминаем: лимиты задаются помесячно и не учитываются в годовом сравнении.")
	}

	return msg.String(), nil
}

// CategoryDetails builds the chronological expense listing for one category
// in the month containing target, headed by the total and limit status.
func (b *Builder) CategoryDetails(ctx context.Context, category string, target time.Time) (string, error) {
	year, month := target.Year(), int(target.Month())
	start, end := period.MonthRange(year, month)

	details, err := b.store.ExpenseDetails(ctx, category, start, end)
	if err != nil {
		return "", fmt.Errorf("category details: %w", err)
	}
	limits, err := b.store.CategoryLimits(ctx)
	if err != nil {
		return "", fmt.Errorf("category limits: %w", err)
	}

	var totalSpent int64
	for _, d := range details {
		totalSpent += d.Amount
	}

	lines := []string{
		fmt.Sprintf("Детализация категории '%s' за %s", category, core.FormatMonthYear(year, month)),
		"",
		fmt.Sprintf("Потрачено: %d ₽", totalSpent),
	}

	if limit, ok := limits[category]; ok {
		diff := limit - totalSpent
		if diff >= 0 {
			lines = append(lines, fmt.Sprintf("Лимит: %d ₽\nОстаток: 🟢 %d ₽", limit, diff))
		} else {
			lines = append(lines, fmt.Sprintf("Лимит: %d ₽\nПревышение: 🔴 %d ₽", limit, -diff))
		}
	} else {
		lines = append(lines, "Лимит не задан.")
	}

	lines = append(lines, "")

	if len(details) > 0 {
		lines = append(lines, "Расходы:")
		for _, d := range details {
			desc := d.Description
			if desc == "" {
				desc = "Без описания"
			}
			lines = append(lines, fmt.Sprintf("  • %s — %d ₽ — %s",
				d.Timestamp.Format("02.01.2006 15:04"), d.Amount, desc))
		}
	} else {
		lines = append(lines, "Расходов в этой категории за период нет.")
	}

	return strings.Join(lines, "\n"), nil
}

// writeCategoryLines writes one line per vocabulary category in declaration
// order, with limit-vs-spend status where a limit exists, then appends
// out-of-vocabulary categories carrying spend, limit-less and sorted for
// stable output.
func writeCategoryLines(msg *strings.Builder, byCategory, limits map[string]int64) {
	for _, category := range core.Categories {
		spent := byCategory[category]
		if limit, ok := limits[category]; ok {
			diff := limit - spent
			if diff >= 0 {
				fmt.Fprintf(msg, "  %s: %d ₽ / лимит %d ₽ / 🟢 Остаток: %d ₽\n", category, spent, limit, diff)
			} else {
				fmt.Fprintf(msg, "  %s: %d ₽ / лимит %d ₽ / 🔴 Превышение: %d ₽\n", category, spent, limit, -diff)
			}
		} else {
			fmt.Fprintf(msg, "  %s: %d ₽\n", category, spent)
		}
	}

	var extra []string
	for category := range byCategory {
		if !core.IsValidCategory(category) {
			extra = append(extra, category)
		}
	}
	sort.Strings(extra)
	for _, category := range extra {
		fmt.Fprintf(msg, "  %s: %d ₽\n", category, byCategory[category])
	}
}
