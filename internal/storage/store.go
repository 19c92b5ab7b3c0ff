package storage

import (
	"context"

	"github.com/jaganathg/expence-tracker/internal/core"
)

// ExpenseStore is the contract every backing store implements. The store
// is the sole reader and writer of the expenses table.
type ExpenseStore interface {
	// InsertExpense writes one record. Failures are wrapped in
	// core.StorageError and never retried.
	InsertExpense(ctx context.Context, e core.Expense) error

	// ListExpenses returns every record ordered by date descending.
	// An empty store yields an empty slice, not an error.
	ListExpenses(ctx context.Context) ([]core.Expense, error)

	// HighestExpense returns the record with the greatest amount, or nil
	// when the store is empty. When several records share the maximum
	// the engine's first match wins; no secondary sort is applied.
	HighestExpense(ctx context.Context) (*core.Expense, error)

	Close() error
}
