package core

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MinAmount is the smallest accepted expense amount.
	MinAmount = 0.01
	// MaxCategoryLen is the longest accepted category label, counted
	// in characters, not bytes.
	MaxCategoryLen = 50
)

type (
	// Expense is a persisted expense record. Records are append-only:
	// once stored they are never mutated or deleted.
	Expense struct {
		ID       string    `json:"id"`
		Amount   float64   `json:"amount"`
		Category string    `json:"category"`
		Date     time.Time `json:"date"`
	}

	// CreateExpenseRequest carries a candidate amount and category prior
	// to validation. It is never persisted as-is.
	CreateExpenseRequest struct {
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
	}
)

// NewExpense builds a record from validated input, assigning a fresh
// unique id and the current UTC time.
func NewExpense(amount float64, category string) Expense {
	return Expense{
		ID:       uuid.New().String(),
		Amount:   amount,
		Category: category,
		Date:     time.Now().UTC(),
	}
}

// Validate checks the business rules for expense creation. The category
// is validated raw: surrounding whitespace counts toward its length and
// an all-whitespace category of length >= 1 is accepted.
func (r CreateExpenseRequest) Validate() error {
	if r.Amount < MinAmount {
		return &ValidationError{
			Field:   "amount",
			Message: "amount must be at least 0.01",
		}
	}
	if n := utf8.RuneCountInString(r.Category); n < 1 || n > MaxCategoryLen {
		return &ValidationError{
			Field:   "category",
			Message: "category must be between 1 and 50 characters",
		}
	}
	return nil
}
