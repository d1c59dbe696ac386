// Package ledger is the write side of the system: it persists completed
// conversation flows to the store and announces them on the event stream.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"familypay/internal/core"
	"familypay/internal/events"
	"familypay/internal/storage"
)

// Service orchestrates ledger writes across SQLite and AMQP. The publisher
// may be nil; writes then proceed without events.
type Service struct {
	store     *storage.Store
	publisher *events.Publisher
}

func NewService(store *storage.Store, publisher *events.Publisher) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
	}
}

// AddExpense persists a validated expense and publishes its event. Event
// failures are logged, never surfaced: the expense is already durable.
func (s *Service) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, fmt.Errorf("validate expense: %w", err)
	}

	id, err := s.store.InsertExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, events.NewExpenseRecorded(id, e.UserID, e.Amount, e.Category))
	return id, nil
}

// SetSalary upserts the user's current salary and records a history entry
// effective from the current month.
func (s *Service) SetSalary(ctx context.Context, userID, amount int64) error {
	if amount <= 0 {
		return core.ErrNotPositive
	}

	if err := s.store.UpsertSalary(ctx, userID, amount); err != nil {
		return fmt.Errorf("set salary: %w", err)
	}
	if err := s.store.UpsertSalaryHistory(ctx, userID, time.Now(), amount); err != nil {
		return fmt.Errorf("record salary history: %w", err)
	}

	s.publish(ctx, events.NewSalarySet(userID, amount))
	return nil
}

// SetCategoryLimit stores or, at zero, removes the user's monthly limit for
// a category.
func (s *Service) SetCategoryLimit(ctx context.Context, userID int64, category string, amount int64) error {
	if amount < 0 {
		return core.ErrNegativeLimit
	}

	if err := s.store.SetCategoryLimit(ctx, userID, category, amount); err != nil {
		return fmt.Errorf("set category limit: %w", err)
	}

	s.publish(ctx, events.NewLimitChanged(userID, category, amount))
	return nil
}

// ClearExpenses deletes the user's whole expense history.
func (s *Service) ClearExpenses(ctx context.Context, userID int64) error {
	if err := s.store.ClearExpenses(ctx, userID); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	s.publish(ctx, events.NewExpensesCleared(userID))
	return nil
}

func (s *Service) publish(ctx context.Context, ev *events.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", ev.Kind,
			"user_id", ev.UserID,
			"error", err)
	}
}

// Close closes the store and, when present, the publisher.
func (s *Service) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
