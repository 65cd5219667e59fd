package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finzap/finzap/internal/model"
)

// CreateExpense persists a new expense, filling in ID and CreatedAt.
// Amounts are stored as decimal strings so report sums never go through
// binary floating point.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	expense.CreatedAt = time.Now()

	query := `
		INSERT INTO expenses (id, amount, description, date, original_message, contact_id, category_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		expense.ID, expense.Amount.String(), expense.Description, expense.Date,
		expense.OriginalMessage, expense.ContactID, expense.CategoryID, expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Debug("created expense",
		"id", expense.ID,
		"contact_id", expense.ContactID,
		"amount", expense.Amount)
	return nil
}

// ListExpenses returns a contact's expenses with date in [start, end],
// oldest first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, contactID string, start, end time.Time) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(contactID, "contactID"); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, start, end)
	}

	query := `
		SELECT id, amount, description, date, original_message, contact_id, category_id, created_at
		FROM expenses
		WHERE contact_id = ? AND date BETWEEN ? AND ?
		ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, contactID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var expense model.Expense
		var amount string
		var originalMessage sql.NullString
		if err := rows.Scan(&expense.ID, &amount, &expense.Description, &expense.Date,
			&originalMessage, &expense.ContactID, &expense.CategoryID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.OriginalMessage = originalMessage.String

		expense.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// SumExpenses returns the decimal sum of a contact's expense amounts with
// date in [start, end].
func (s *SQLiteStorage) SumExpenses(ctx context.Context, contactID string, start, end time.Time) (decimal.Decimal, error) {
	expenses, err := s.ListExpenses(ctx, contactID, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total, nil
}
