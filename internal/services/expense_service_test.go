package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jaganathg/expence-tracker/internal/core"
)

// Mocks
type mockStore struct {
	inserted  []core.Expense
	insertErr error
	listErr   error
	highest   *core.Expense
	higherr   error
}

func (m *mockStore) InsertExpense(ctx context.Context, e core.Expense) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, e)
	return nil
}

func (m *mockStore) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]core.Expense, len(m.inserted))
	copy(out, m.inserted)
	return out, nil
}

func (m *mockStore) HighestExpense(ctx context.Context) (*core.Expense, error) {
	return m.highest, m.higherr
}

func (m *mockStore) Close() error { return nil }

func TestAddExpenseSuccess(t *testing.T) {
	store := &mockStore{}
	svc := NewExpenseService(store, nil)

	before := time.Now().UTC()
	got, err := svc.AddExpense(context.Background(), core.CreateExpenseRequest{Amount: 25.50, Category: "Groceries"})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if got.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if got.Amount != 25.50 || got.Category != "Groceries" {
		t.Fatalf("amount/category not copied verbatim: %+v", got)
	}
	if got.Date.Before(before) || got.Date.After(time.Now().UTC()) {
		t.Fatalf("timestamp %v outside execution window", got.Date)
	}
	if len(store.inserted) != 1 || store.inserted[0].ID != got.ID {
		t.Fatalf("expected exactly the returned record persisted, got %+v", store.inserted)
	}
}

func TestAddExpenseValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		req  core.CreateExpenseRequest
	}{
		{"zero amount", core.CreateExpenseRequest{Amount: 0, Category: "Groceries"}},
		{"negative amount", core.CreateExpenseRequest{Amount: -5, Category: "Groceries"}},
		{"below minimum", core.CreateExpenseRequest{Amount: 0.005, Category: "Groceries"}},
		{"empty category", core.CreateExpenseRequest{Amount: 10, Category: ""}},
		{"category too long", core.CreateExpenseRequest{Amount: 10, Category: strings.Repeat("x", 51)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{}
			svc := NewExpenseService(store, nil)

			_, err := svc.AddExpense(context.Background(), tc.req)
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(store.inserted) != 0 {
				t.Fatalf("validation failure must not persist anything, got %d rows", len(store.inserted))
			}
		})
	}
}

func TestAddExpensePropagatesStorageError(t *testing.T) {
	storeErr := &core.StorageError{Op: "insert expense", Err: errors.New("disk full")}
	svc := NewExpenseService(&mockStore{insertErr: storeErr}, nil)

	_, err := svc.AddExpense(context.Background(), core.CreateExpenseRequest{Amount: 10, Category: "Groceries"})
	var serr *core.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestGetAllExpensesDelegates(t *testing.T) {
	store := &mockStore{}
	svc := NewExpenseService(store, nil)

	got, err := svc.GetAllExpenses(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty slice from empty store, got %d", len(got))
	}
}

func TestGetHighestExpenseEmptyIsNotError(t *testing.T) {
	svc := NewExpenseService(&mockStore{}, nil)

	got, err := svc.GetHighestExpense(context.Background())
	if err != nil {
		t.Fatalf("expected success-with-none, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil record, got %+v", got)
	}
}

func TestCloseNilComponents(t *testing.T) {
	svc := &ExpenseService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close should not return error with nil components: %v", err)
	}
}
