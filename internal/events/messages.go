package events

import (
	"encoding/json"
	"time"
)

// Event kinds published on the ledger stream.
const (
	KindExpenseRecorded = "expense_recorded"
	KindSalarySet       = "salary_set"
	KindLimitChanged    = "limit_changed"
	KindExpensesCleared = "expenses_cleared"
)

// LedgerEvent is the wire form of a completed ledger write. Downstream
// consumers re-read the store for anything beyond these identifying fields.
type LedgerEvent struct {
	Kind      string    `json:"kind"`
	UserID    int64     `json:"user_id"`
	ExpenseID int64     `json:"expense_id,omitempty"`
	Amount    int64     `json:"amount,omitempty"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseRecorded(expenseID, userID, amount int64, category string) *LedgerEvent {
	return &LedgerEvent{
		Kind:      KindExpenseRecorded,
		UserID:    userID,
		ExpenseID: expenseID,
		Amount:    amount,
		Category:  category,
		Timestamp: time.Now(),
	}
}

func NewSalarySet(userID, amount int64) *LedgerEvent {
	return &LedgerEvent{
		Kind:      KindSalarySet,
		UserID:    userID,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

func NewLimitChanged(userID int64, category string, amount int64) *LedgerEvent {
	return &LedgerEvent{
		Kind:      KindLimitChanged,
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		Timestamp: time.Now(),
	}
}

func NewExpensesCleared(userID int64) *LedgerEvent {
	return &LedgerEvent{
		Kind:      KindExpensesCleared,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON parses an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
