package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jaganathg/expence-tracker/internal/amqp"
	"github.com/jaganathg/expence-tracker/internal/core"
	"github.com/jaganathg/expence-tracker/internal/storage"
)

// ExpenseService enforces the business rules in front of the record
// store and owns record construction (id and timestamp assignment).
type ExpenseService struct {
	store  storage.ExpenseStore
	events *amqp.Client
}

// NewExpenseService wires the service to its store. The AMQP client is
// optional; pass nil to disable creation events.
func NewExpenseService(store storage.ExpenseStore, events *amqp.Client) *ExpenseService {
	return &ExpenseService{
		store:  store,
		events: events,
	}
}

// AddExpense validates the request, persists a new record and returns
// it. Validation failures produce no side effects; storage failures
// propagate unchanged.
func (s *ExpenseService) AddExpense(ctx context.Context, req core.CreateExpenseRequest) (core.Expense, error) {
	if err := req.Validate(); err != nil {
		slog.WarnContext(ctx, "Expense request rejected",
			"error", err,
			"amount", req.Amount,
			"category_length", len(req.Category))
		return core.Expense{}, err
	}

	expense := core.NewExpense(req.Amount, req.Category)
	if err := s.store.InsertExpense(ctx, expense); err != nil {
		return core.Expense{}, err
	}

	// Creation events are best-effort: the record is durable, a lost
	// event is not worth failing the request over.
	if s.events != nil {
		if err := s.events.PublishExpenseCreated(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to publish expense created event",
				"id", expense.ID, "error", err)
		}
	}

	slog.InfoContext(ctx, "Expense created",
		"id", expense.ID,
		"amount", expense.Amount,
		"category", expense.Category)

	return expense, nil
}

// GetAllExpenses returns every record, most recent first.
func (s *ExpenseService) GetAllExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// GetHighestExpense returns the record with the greatest amount, or nil
// when no records exist. Absence is not an error.
func (s *ExpenseService) GetHighestExpense(ctx context.Context) (*core.Expense, error) {
	return s.store.HighestExpense(ctx)
}

// Close releases the store and event connections.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}
