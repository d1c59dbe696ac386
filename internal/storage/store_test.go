package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"familypay/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite exercises the ledger store against a throwaway SQLite file.
type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	dbPath := filepath.Join(suite.T().TempDir(), "familypay.db")
	store, err := NewStore(dbPath)
	require.NoError(suite.T(), err, "failed to create test store")
	suite.store = store
	suite.ctx = context.Background()
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func (suite *StoreTestSuite) addExpense(userID, amount int64, category string, ts time.Time) {
	_, err := suite.store.InsertExpense(suite.ctx, core.Expense{
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		Timestamp: ts,
	})
	require.NoError(suite.T(), err)
}

func (suite *StoreTestSuite) TestSumExpensesInRange() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.addExpense(1, 150, "Еда", start.Add(2*time.Hour))
	suite.addExpense(2, 300, "Еда", start.AddDate(0, 0, 10))
	suite.addExpense(1, 500, "Транспорт", start.AddDate(0, 0, 20))
	// Outside the range on both sides.
	suite.addExpense(1, 999, "Еда", start.Add(-time.Second))
	suite.addExpense(1, 999, "Еда", end)

	total, err := suite.store.SumExpenses(suite.ctx, start, end)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(950), total)

	byCategory, err := suite.store.SumExpensesByCategory(suite.ctx, start, end)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]int64{"Еда": 450, "Транспорт": 500}, byCategory)

	// The per-category totals must add up to the overall total.
	var sum int64
	for _, v := range byCategory {
		sum += v
	}
	assert.Equal(suite.T(), total, sum)
}

func (suite *StoreTestSuite) TestSumExpensesEmptyRange() {
	total, err := suite.store.SumExpenses(suite.ctx,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), total)

	byCategory, err := suite.store.SumExpensesByCategory(suite.ctx, time.Time{}, time.Time{})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), byCategory)
}

func (suite *StoreTestSuite) TestClearExpensesIsScopedToUser() {
	now := time.Now()
	suite.addExpense(1, 100, "Еда", now)
	suite.addExpense(2, 200, "Еда", now)

	require.NoError(suite.T(), suite.store.ClearExpenses(suite.ctx, 1))

	total, err := suite.store.SumExpenses(suite.ctx, time.Time{}, time.Time{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(200), total, "only user 1's expenses should be gone")
}

func (suite *StoreTestSuite) TestExpenseDetailsOrderedByDate() {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	suite.addExpense(1, 30, "Еда", base.Add(2*time.Hour))
	suite.addExpense(1, 10, "Еда", base)
	suite.addExpense(1, 20, "Еда", base.Add(time.Hour))
	suite.addExpense(1, 40, "Транспорт", base)

	details, err := suite.store.ExpenseDetails(suite.ctx, "Еда",
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), err)
	require.Len(suite.T(), details, 3)
	assert.Equal(suite.T(), int64(10), details[0].Amount)
	assert.Equal(suite.T(), int64(20), details[1].Amount)
	assert.Equal(suite.T(), int64(30), details[2].Amount)
}

func (suite *StoreTestSuite) TestSalaryHistoryUpsertSameMonth() {
	effective := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(suite.T(), suite.store.UpsertSalaryHistory(suite.ctx, 1, effective, 50000))
	require.NoError(suite.T(), suite.store.UpsertSalaryHistory(suite.ctx, 1, effective.AddDate(0, 0, 3), 60000))

	// One row for the month, holding the latest value.
	salaries, err := suite.store.LatestSalariesBefore(suite.ctx, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[int64]int64{1: 60000}, salaries)
}

func (suite *StoreTestSuite) TestLatestSalariesBeforeThreshold() {
	require.NoError(suite.T(), suite.store.UpsertSalaryHistory(suite.ctx, 1,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 40000))
	require.NoError(suite.T(), suite.store.UpsertSalaryHistory(suite.ctx, 1,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 55000))

	// As of July the June entry applies; as of August the August entry wins.
	july, err := suite.store.LatestSalariesBefore(suite.ctx, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[int64]int64{1: 40000}, july)

	august, err := suite.store.LatestSalariesBefore(suite.ctx, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[int64]int64{1: 55000}, august)

	// Before any entry nothing resolves.
	none, err := suite.store.LatestSalariesBefore(suite.ctx, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), none)
}

func (suite *StoreTestSuite) TestCurrentSalaries() {
	require.NoError(suite.T(), suite.store.UpsertSalary(suite.ctx, 1, 50000))
	require.NoError(suite.T(), suite.store.UpsertSalary(suite.ctx, 2, 30000))
	require.NoError(suite.T(), suite.store.UpsertSalary(suite.ctx, 1, 52000))

	salaries, err := suite.store.CurrentSalaries(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[int64]int64{1: 52000, 2: 30000}, salaries)
}

func (suite *StoreTestSuite) TestCategoryLimitsSummedAcrossUsers() {
	require.NoError(suite.T(), suite.store.SetCategoryLimit(suite.ctx, 1, "Еда", 10000))
	require.NoError(suite.T(), suite.store.SetCategoryLimit(suite.ctx, 2, "Еда", 5000))
	require.NoError(suite.T(), suite.store.SetCategoryLimit(suite.ctx, 1, "Аптека", 3000))

	limits, err := suite.store.CategoryLimits(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]int64{"Еда": 15000, "Аптека": 3000}, limits)
}

func (suite *StoreTestSuite) TestSetCategoryLimitZeroDeletes() {
	require.NoError(suite.T(), suite.store.SetCategoryLimit(suite.ctx, 1, "Еда", 10000))
	require.NoError(suite.T(), suite.store.SetCategoryLimit(suite.ctx, 1, "Еда", 0))

	limits, err := suite.store.CategoryLimits(suite.ctx)
	require.NoError(suite.T(), err)
	assert.NotContains(suite.T(), limits, "Еда")
}

func (suite *StoreTestSuite) TestExpenseDetailsEmptyDescription() {
	suite.addExpense(1, 100, "Еда", time.Now())

	details, err := suite.store.ExpenseDetails(suite.ctx, "Еда", time.Time{}, time.Time{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), details, 1)
	assert.Equal(suite.T(), "", details[0].Description)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
