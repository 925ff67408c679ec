package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spendlog/internal/models"
	"spendlog/internal/storage"

	"github.com/shopspring/decimal"
)

// Expenses handles expense operations scoped to their owning user.
type Expenses struct {
	db *storage.DB
}

// NewExpenses creates an Expenses service backed by db.
func NewExpenses(db *storage.DB) *Expenses {
	return &Expenses{db: db}
}

// List returns all expenses owned by userID in insertion order.
func (e *Expenses) List(ctx context.Context, userID int64) ([]models.Expense, error) {
	expenses, err := e.db.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Total returns the exact decimal sum of all expenses owned by userID.
func (e *Expenses) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	expenses, err := e.db.ListExpenses(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list expenses: %w", err)
	}

	total := decimal.Zero
	for _, exp := range expenses {
		total = total.Add(exp.Amount)
	}
	return total, nil
}

// Add validates and persists a new expense for userID. The amount must be a
// non-negative decimal with at most two fractional digits.
func (e *Expenses) Add(ctx context.Context, userID int64, title, amount, category, note string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, invalidInput("title is required")
	}

	amt, err := parseAmount(amount)
	if err != nil {
		return 0, err
	}

	id, err := e.db.CreateExpense(ctx, userID, title, amt, strings.TrimSpace(category), strings.TrimSpace(note))
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	return id, nil
}

// Delete removes an expense after verifying it belongs to userID.
func (e *Expenses) Delete(ctx context.Context, userID, expenseID int64) error {
	expense, err := e.db.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get expense: %w", err)
	}

	if expense.UserID != userID {
		return ErrForbidden
	}

	if err := e.db.DeleteExpense(ctx, expenseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, invalidInput("amount must be a number like 12.50")
	}
	if amt.IsNegative() {
		return decimal.Zero, invalidInput("amount must not be negative")
	}
	if !amt.Equal(amt.Round(2)) {
		return decimal.Zero, invalidInput("amount must have at most two decimal places")
	}
	return amt.Round(2), nil
}
