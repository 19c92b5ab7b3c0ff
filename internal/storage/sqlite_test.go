package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jaganathg/expence-tracker/internal/core"
	"golang.org/x/sync/errgroup"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func insert(t *testing.T, repo *SQLiteRepository, amount float64, category string, date time.Time) core.Expense {
	t.Helper()
	e := core.NewExpense(amount, category)
	e.Date = date
	if err := repo.InsertExpense(context.Background(), e); err != nil {
		t.Fatalf("insert expense: %v", err)
	}
	return e
}

func TestMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "expenses.db")
	for i := 0; i < 2; i++ {
		repo, err := NewSQLiteRepository(dbPath)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		repo.Close()
	}
}

func TestListExpensesEmpty(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %d records", len(got))
	}
}

func TestHighestExpenseEmpty(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.HighestExpense(context.Background())
	if err != nil {
		t.Fatalf("highest: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on empty store, got %+v", got)
	}
}

func TestListExpensesOrderedByDateDescending(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of chronological order.
	insert(t, repo, 5, "b", base.Add(time.Hour))
	insert(t, repo, 5, "c", base.Add(2*time.Hour))
	insert(t, repo, 5, "a", base)

	got, err := repo.ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	want := []string{"c", "b", "a"}
	for i, cat := range want {
		if got[i].Category != cat {
			t.Fatalf("position %d: expected %q, got %q", i, cat, got[i].Category)
		}
	}
}

func TestHighestExpense(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().UTC()

	insert(t, repo, 15.50, "Transport", now)
	insert(t, repo, 25.50, "Groceries", now.Add(time.Second))
	insert(t, repo, 5.50, "Coffee", now.Add(2*time.Second))

	got, err := repo.HighestExpense(context.Background())
	if err != nil {
		t.Fatalf("highest: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a record")
	}
	if got.Amount != 25.50 || got.Category != "Groceries" {
		t.Fatalf("expected 25.50/Groceries, got %v/%s", got.Amount, got.Category)
	}
}

func TestRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	e := insert(t, repo, 10.05, "Books", time.Now().UTC())

	list, err := repo.ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}
	if list[0].ID != e.ID || list[0].Amount != 10.05 || list[0].Category != "Books" {
		t.Fatalf("list round-trip mismatch: %+v", list[0])
	}
	if !list[0].Date.Equal(e.Date) {
		t.Fatalf("date round-trip mismatch: stored %v, got %v", e.Date, list[0].Date)
	}

	highest, err := repo.HighestExpense(context.Background())
	if err != nil {
		t.Fatalf("highest: %v", err)
	}
	if highest == nil || highest.Amount != 10.05 || highest.Category != "Books" {
		t.Fatalf("highest round-trip mismatch: %+v", highest)
	}
}

func TestConcurrentInserts(t *testing.T) {
	repo := newTestRepo(t)

	const n = 20
	var g errgroup.Group
	for i := 0; i < n; i++ {
		amount := float64(i + 1)
		g.Go(func() error {
			return repo.InsertExpense(context.Background(), core.NewExpense(amount, "Concurrent"))
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent insert: %v", err)
	}

	list, err := repo.ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != n {
		t.Fatalf("expected %d records, got %d", n, len(list))
	}
	seen := make(map[string]bool, n)
	for _, e := range list {
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestMalformedRowDegradesRequest(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.db.Exec(
		`INSERT INTO expenses (id, amount, category, date) VALUES ('not-a-uuid', 1.0, 'Broken', 'not-a-date')`)
	if err != nil {
		t.Fatalf("seed corrupted row: %v", err)
	}

	if _, err := repo.ListExpenses(context.Background()); err == nil {
		t.Fatalf("expected storage error for corrupted row")
	}
}
