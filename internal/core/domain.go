package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Expense is a single recorded spend. Expenses are append-only; the only
	// destructive operation is a per-user bulk clear.
	Expense struct {
		ID          int64
		UserID      int64
		Amount      int64 // whole currency units, always positive
		Category    string
		Description string
		Timestamp   time.Time
	}

	// SalaryEntry is one salary-history row: the salary that became effective
	// on the first day of a month.
	SalaryEntry struct {
		UserID         int64
		EffectiveMonth time.Time // first day of month, UTC
		Amount         int64
	}

	// ExpenseDetail is the per-entry view used by the category detail report.
	ExpenseDetail struct {
		Timestamp   time.Time
		Amount      int64
		Description string
	}
)

var (
	ErrNotInteger      = errors.New("sum is not an integer")
	ErrNotPositive     = errors.New("sum must be positive")
	ErrNegativeLimit   = errors.New("limit cannot be negative")
	ErrUnknownCategory = errors.New("unknown category")
)

func (e Expense) Validate() error {
	if e.UserID == 0 {
		return errors.New("missing user id")
	}
	if e.Amount <= 0 {
		return ErrNotPositive
	}
	if strings.TrimSpace(e.Category) == "" {
		return errors.New("empty category")
	}
	return nil
}
