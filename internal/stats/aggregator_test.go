package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"familypay/internal/core"
	"familypay/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T) (*Aggregator, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewAggregator(store), store
}

func TestStatsInRange(t *testing.T) {
	agg, store := newTestAggregator(t)
	ctx := context.Background()

	august := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range []core.Expense{
		{UserID: 1, Amount: 150, Category: "Еда", Timestamp: august.AddDate(0, 0, 1)},
		{UserID: 2, Amount: 250, Category: "Еда", Timestamp: august.AddDate(0, 0, 5)},
		{UserID: 1, Amount: 600, Category: "ЖКХ", Timestamp: august.AddDate(0, 0, 9)},
		{UserID: 1, Amount: 777, Category: "Еда", Timestamp: august.AddDate(0, 1, 0)}, // September
	} {
		_, err := store.InsertExpense(ctx, e)
		require.NoError(t, err)
	}

	total, byCategory, err := agg.StatsInRange(ctx, august, august.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), total)
	assert.Equal(t, map[string]int64{"Еда": 400, "ЖКХ": 600}, byCategory)

	// Per-category figures reconstruct the total.
	var sum int64
	for _, v := range byCategory {
		sum += v
	}
	assert.Equal(t, total, sum)
}

func TestTotalSalaryForMonthHistoryResolution(t *testing.T) {
	agg, store := newTestAggregator(t)
	ctx := context.Background()

	// History at June (40000) and August (55000), nothing in July: July
	// resolves to the June entry, August to its own.
	require.NoError(t, store.UpsertSalaryHistory(ctx, 1, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), 40000))
	require.NoError(t, store.UpsertSalaryHistory(ctx, 1, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), 55000))

	july, err := agg.TotalSalaryForMonth(ctx, 2026, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), july)

	august, err := agg.TotalSalaryForMonth(ctx, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(55000), august)
}

func TestTotalSalaryForMonthSumsAllUsers(t *testing.T) {
	agg, store := newTestAggregator(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertSalaryHistory(ctx, 1, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 50000))
	require.NoError(t, store.UpsertSalaryHistory(ctx, 2, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 30000))

	total, err := agg.TotalSalaryForMonth(ctx, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(80000), total)
}

func TestTotalSalaryForMonthFallsBackToCurrent(t *testing.T) {
	agg, store := newTestAggregator(t)
	ctx := context.Background()

	// User 1 has history only from September; user 2 has only a current
	// salary. For August user 1 contributes via the snapshot fallback too.
	require.NoError(t, store.UpsertSalaryHistory(ctx, 1, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 70000))
	require.NoError(t, store.UpsertSalary(ctx, 1, 70000))
	require.NoError(t, store.UpsertSalary(ctx, 2, 25000))

	total, err := agg.TotalSalaryForMonth(ctx, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(95000), total)
}

func TestTotalSalaryForMonthNoData(t *testing.T) {
	agg, _ := newTestAggregator(t)

	total, err := agg.TotalSalaryForMonth(context.Background(), 2026, 8)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSalarySumForMonths(t *testing.T) {
	agg, store := newTestAggregator(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertSalaryHistory(ctx, 1, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 10000))
	require.NoError(t, store.UpsertSalaryHistory(ctx, 1, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 20000))

	// Jan 10000, Feb 10000, Mar 20000.
	sum, err := agg.SalarySumForMonths(ctx, 2026, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(40000), sum)
}

func TestYearWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	start, end, ok := YearWindow(2025, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)

	start, end, ok = YearWindow(2026, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, ok = YearWindow(2027, now)
	assert.False(t, ok)
}
