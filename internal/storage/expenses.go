package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"spendlog/internal/models"

	"github.com/shopspring/decimal"
)

// CreateExpense inserts a new expense for the given user and returns its ID.
func (db *DB) CreateExpense(ctx context.Context, userID int64, title string, amount decimal.Decimal, category, note string) (int64, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, title, amount, category, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userID, title, amount, category, note, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetExpense retrieves a single expense by ID.
func (db *DB) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, amount, category, note, created_at
		 FROM expenses WHERE id = $1`,
		id,
	)

	var e models.Expense
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.Note, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListExpenses retrieves all expenses owned by userID in insertion order.
func (db *DB) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, title, amount, category, note, created_at
		 FROM expenses WHERE user_id = $1 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// DeleteExpense removes an expense by ID. Returns ErrNotFound if no row matched.
func (db *DB) DeleteExpense(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
