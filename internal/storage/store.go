// Package storage is the ledger store: durable expenses, salary snapshots,
// salary history and category limits in SQLite, keyed by chat user identity.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"familypay/internal/core"

	_ "modernc.org/sqlite"
)

// Monetary columns are plain integers; expense timestamps are stored as
// ISO-8601 strings so lexicographic range comparisons match chronological
// order. Salary history keys on the first day of the effective month.
const (
	timestampLayout = time.RFC3339
	monthKeyLayout  = "2006-01-02"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// expenseFilter builds the WHERE clause shared by the sum, grouped-sum and
// detail queries: an optional category and optional half-open [start, end)
// bounds, compiled once and reused across the monthly, yearly and
// category-detail call sites.
type expenseFilter struct {
	category string
	start    time.Time
	end      time.Time
}

func (f expenseFilter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.category)
	}
	if !f.start.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, encodeTimestamp(f.start))
	}
	if !f.end.IsZero() {
		clauses = append(clauses, "date < ?")
		args = append(args, encodeTimestamp(f.end))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// InsertExpense appends one expense row and returns its id.
func (s *Store) InsertExpense(ctx context.Context, e core.Expense) (int64, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount, category, description, date) VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.Amount, e.Category, e.Description, encodeTimestamp(e.Timestamp))
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"user_id", e.UserID,
		"amount", e.Amount,
		"category", e.Category)

	return id, nil
}

// ClearExpenses removes every expense recorded by one user.
func (s *Store) ClearExpenses(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	slog.InfoContext(ctx, "Expense history cleared", "user_id", userID)
	return nil
}

// SumExpenses returns the total spend across all users within [start, end).
func (s *Store) SumExpenses(ctx context.Context, start, end time.Time) (int64, error) {
	clause, args := expenseFilter{start: start, end: end}.where()

	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT SUM(amount) FROM expenses`+clause, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total.Int64, nil
}

// SumExpensesByCategory returns per-category totals across all users within
// [start, end). Categories with no matching expenses are absent from the map.
func (s *Store) SumExpensesByCategory(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	clause, args := expenseFilter{start: start, end: end}.where()

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount) FROM expenses`+clause+` GROUP BY category`, args...)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var (
			category string
			amount   int64
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		totals[category] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return totals, nil
}

// ExpenseDetails lists the individual expenses of one category within
// [start, end), in chronological order.
func (s *Store) ExpenseDetails(ctx context.Context, category string, start, end time.Time) ([]core.ExpenseDetail, error) {
	clause, args := expenseFilter{category: category, start: start, end: end}.where()

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, amount, COALESCE(description, '') FROM expenses`+clause+` ORDER BY date`, args...)
	if err != nil {
		return nil, fmt.Errorf("list expense details: %w", err)
	}
	defer rows.Close()

	var details []core.ExpenseDetail
	for rows.Next() {
		var (
			rawDate     string
			amount      int64
			description string
		)
		if err := rows.Scan(&rawDate, &amount, &description); err != nil {
			return nil, fmt.Errorf("scan expense detail: %w", err)
		}
		ts, err := decodeTimestamp(rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", rawDate, err)
		}
		details = append(details, core.ExpenseDetail{
			Timestamp:   ts,
			Amount:      amount,
			Description: strings.TrimSpace(description),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense details: %w", err)
	}
	return details, nil
}

// UpsertSalary stores the latest known salary for a user, independent of
// history.
func (s *Store) UpsertSalary(ctx context.Context, userID, amount int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO salaries (user_id, amount) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET amount = excluded.amount`,
		userID, amount)
	if err != nil {
		return fmt.Errorf("upsert salary: %w", err)
	}
	return nil
}

// UpsertSalaryHistory records the salary effective from the first day of the
// month containing effective. Setting salary twice in the same month
// overwrites the row rather than appending.
func (s *Store) UpsertSalaryHistory(ctx context.Context, userID int64, effective time.Time, amount int64) error {
	firstOfMonth := time.Date(effective.Year(), effective.Month(), 1, 0, 0, 0, 0, time.UTC)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO salary_history (user_id, effective_date, amount) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, effective_date) DO UPDATE SET amount = excluded.amount`,
		userID, firstOfMonth.Format(monthKeyLayout), amount)
	if err != nil {
		return fmt.Errorf("upsert salary history: %w", err)
	}
	return nil
}

// LatestSalariesBefore resolves, per user, the most recent salary-history
// entry strictly before the threshold date.
func (s *Store) LatestSalariesBefore(ctx context.Context, threshold time.Time) (map[int64]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sh.user_id, sh.amount
		 FROM salary_history sh
		 JOIN (
		     SELECT user_id, MAX(effective_date) AS last_date
		     FROM salary_history
		     WHERE effective_date < ?
		     GROUP BY user_id
		 ) latest
		 ON latest.user_id = sh.user_id AND latest.last_date = sh.effective_date`,
		threshold.Format(monthKeyLayout))
	if err != nil {
		return nil, fmt.Errorf("resolve salary history: %w", err)
	}
	defer rows.Close()

	salaries := make(map[int64]int64)
	for rows.Next() {
		var userID, amount int64
		if err := rows.Scan(&userID, &amount); err != nil {
			return nil, fmt.Errorf("scan salary history: %w", err)
		}
		salaries[userID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate salary history: %w", err)
	}
	return salaries, nil
}

// CurrentSalaries returns the latest known salary per user.
func (s *Store) CurrentSalaries(ctx context.Context) (map[int64]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, amount FROM salaries`)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	defer rows.Close()

	salaries := make(map[int64]int64)
	for rows.Next() {
		var userID, amount int64
		if err := rows.Scan(&userID, &amount); err != nil {
			return nil, fmt.Errorf("scan salary: %w", err)
		}
		salaries[userID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate salaries: %w", err)
	}
	return salaries, nil
}

// CategoryLimits returns the household limit per category: per-user limits
// summed across all users sharing a category.
func (s *Store) CategoryLimits(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount) FROM category_limits GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("list category limits: %w", err)
	}
	defer rows.Close()

	limits := make(map[string]int64)
	for rows.Next() {
		var (
			category string
			amount   int64
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("scan category limit: %w", err)
		}
		limits[category] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category limits: %w", err)
	}
	return limits, nil
}

// SetCategoryLimit upserts a user's monthly limit for a category. A value of
// zero or less deletes the row; absence means no limit.
func (s *Store) SetCategoryLimit(ctx context.Context, userID int64, category string, amount int64) error {
	if amount <= 0 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM category_limits WHERE user_id = ? AND category = ?`, userID, category); err != nil {
			return fmt.Errorf("delete category limit: %w", err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO category_limits (user_id, category, amount) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, category) DO UPDATE SET amount = excluded.amount`,
		userID, category, amount)
	if err != nil {
		return fmt.Errorf("upsert category limit: %w", err)
	}
	return nil
}

func encodeTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func decodeTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, raw); err == nil {
		return t, nil
	}
	// Legacy rows may use a space separator and no zone.
	return time.Parse("2006-01-02 15:04:05", raw)
}
