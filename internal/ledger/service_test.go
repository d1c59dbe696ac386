package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"familypay/internal/core"
	"familypay/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	// No publisher: writes must work without a broker.
	return NewService(store, nil), store
}

func TestAddExpense(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddExpense(ctx, core.Expense{
		UserID:   1,
		Amount:   150,
		Category: "Еда",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	total, err := store.SumExpenses(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)
}

func TestAddExpenseRejectsInvalid(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, core.Expense{UserID: 1, Amount: 0, Category: "Еда"})
	assert.True(t, errors.Is(err, core.ErrNotPositive))

	// Nothing was written.
	total, err := store.SumExpenses(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSetSalaryWritesSnapshotAndHistory(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetSalary(ctx, 1, 50000))

	current, err := store.CurrentSalaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 50000}, current)

	nextMonth := time.Now().AddDate(0, 1, 0)
	history, err := store.LatestSalariesBefore(ctx,
		time.Date(nextMonth.Year(), nextMonth.Month(), 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 50000}, history)
}

func TestSetSalaryRejectsNonPositive(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SetSalary(context.Background(), 1, 0)
	assert.True(t, errors.Is(err, core.ErrNotPositive))
}

func TestSetCategoryLimitZeroRemoves(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCategoryLimit(ctx, 1, "Еда", 10000))
	require.NoError(t, svc.SetCategoryLimit(ctx, 1, "Еда", 0))

	limits, err := store.CategoryLimits(ctx)
	require.NoError(t, err)
	assert.NotContains(t, limits, "Еда")
}

func TestClearExpenses(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, core.Expense{UserID: 1, Amount: 100, Category: "Еда"})
	require.NoError(t, err)
	require.NoError(t, svc.ClearExpenses(ctx, 1))

	total, err := store.SumExpenses(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, total)
}
