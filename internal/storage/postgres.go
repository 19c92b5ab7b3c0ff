package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaganathg/expence-tracker/internal/core"

	_ "github.com/lib/pq"
)

// PostgresRepository stores expense records in PostgreSQL. The schema is
// ensured with CREATE TABLE IF NOT EXISTS on construction, so it is safe
// to start against a fresh database.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := ensureExpensesTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresRepository{db: db}, nil
}

func ensureExpensesTable(db *sql.DB) error {
	_, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS expenses (
        id TEXT PRIMARY KEY,
        amount DOUBLE PRECISION NOT NULL,
        category TEXT NOT NULL,
        date TIMESTAMPTZ NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("create expenses table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *PostgresRepository) InsertExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, category, date) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Amount, e.Category, e.Date.UTC())
	if err != nil {
		return &core.StorageError{Op: "insert expense", Err: err}
	}

	slog.InfoContext(ctx, "Expense saved to Postgres",
		"id", e.ID,
		"amount", e.Amount,
		"category", e.Category)

	return nil
}

func (r *PostgresRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, category, date FROM expenses ORDER BY date DESC`)
	if err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var (
			e    core.Expense
			date time.Time
		)
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &date); err != nil {
			return nil, &core.StorageError{Op: "list expenses", Err: err}
		}
		e.Date = date.UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}

	return expenses, nil
}

func (r *PostgresRepository) HighestExpense(ctx context.Context) (*core.Expense, error) {
	var (
		e    core.Expense
		date time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, amount, category, date FROM expenses ORDER BY amount DESC LIMIT 1`).
		Scan(&e.ID, &e.Amount, &e.Category, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &core.StorageError{Op: "highest expense", Err: err}
	}
	e.Date = date.UTC()

	return &e, nil
}
