package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jaganathg/expence-tracker/internal/core"

	_ "modernc.org/sqlite"
)

// dateLayout is RFC3339 with fixed-width fractional seconds so stored
// timestamps sort lexicographically in chronological order.
const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository stores expense records in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite allows a single writer at a time; route every statement
	// through one pooled connection so concurrent inserts queue instead
	// of failing with a busy error.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) InsertExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, category, date) VALUES (?, ?, ?, ?)`,
		e.ID, e.Amount, e.Category, e.Date.UTC().Format(dateLayout))
	if err != nil {
		return &core.StorageError{Op: "insert expense", Err: err}
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"amount", e.Amount,
		"category", e.Category)

	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, category, date FROM expenses ORDER BY date DESC`)
	if err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, &core.StorageError{Op: "list expenses", Err: err}
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}

	return expenses, nil
}

func (r *SQLiteRepository) HighestExpense(ctx context.Context) (*core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount, category, date FROM expenses ORDER BY amount DESC LIMIT 1`)

	e, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &core.StorageError{Op: "highest expense", Err: err}
	}

	return &e, nil
}

// scanExpense maps one row onto a record. A row with an unparsable id or
// timestamp is reported as an error so a corrupted row degrades a single
// request instead of crashing the process.
func scanExpense(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e       core.Expense
		rawDate string
	)
	if err := scan(&e.ID, &e.Amount, &e.Category, &rawDate); err != nil {
		return core.Expense{}, err
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		return core.Expense{}, fmt.Errorf("malformed id %q: %w", e.ID, err)
	}
	date, err := time.Parse(time.RFC3339Nano, rawDate)
	if err != nil {
		return core.Expense{}, fmt.Errorf("malformed date %q: %w", rawDate, err)
	}
	e.Date = date.UTC()
	return e, nil
}
