package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finzap/finzap/internal/model"
)

// GetContactByPhone returns the contact for a phone number, or nil when absent.
func (s *SQLiteStorage) GetContactByPhone(ctx context.Context, phoneNumber string) (*model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(phoneNumber, "phoneNumber"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, phone_number, name, last_interaction, active, monthly_budget, created_at
		FROM contacts
		WHERE phone_number = ?`

	contact, err := scanContact(s.db.QueryRowContext(ctx, query, phoneNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// FindOrCreateContact returns the contact for the sender, creating it on
// first sight. The unique phone_number index plus ON CONFLICT DO NOTHING
// keeps concurrent first messages from the same sender to one row. The
// stored last_interaction advances to lastSeen when that is newer.
func (s *SQLiteStorage) FindOrCreateContact(ctx context.Context, phoneNumber, name string, lastSeen time.Time) (*model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(phoneNumber, "phoneNumber"); err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO contacts (id, phone_number, name, last_interaction, active, monthly_budget, created_at)
		VALUES (?, ?, ?, ?, 1, '0', ?)
		ON CONFLICT(phone_number) DO NOTHING`

	_, err := s.db.ExecContext(ctx, insertQuery, uuid.NewString(), phoneNumber, name, lastSeen, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	contact, err := s.GetContactByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("contact %q vanished after insert", phoneNumber)
	}

	if contact.LastInteraction.Before(lastSeen) {
		updateQuery := `UPDATE contacts SET last_interaction = ? WHERE id = ?`
		if _, err := s.db.ExecContext(ctx, updateQuery, lastSeen, contact.ID); err != nil {
			return nil, fmt.Errorf("failed to update last interaction: %w", err)
		}
		contact.LastInteraction = lastSeen
	}

	return contact, nil
}

// SetMonthlyBudget records a monthly limit for a contact, both as the
// contact's current budget and as a per-month row for the dashboard.
func (s *SQLiteStorage) SetMonthlyBudget(ctx context.Context, budget model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := budget.Validate(); err != nil {
		return err
	}
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}

	upsertQuery := `
		INSERT INTO budgets (id, contact_id, amount, month, year)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(contact_id, month, year) DO UPDATE SET amount = excluded.amount`

	if _, err := s.db.ExecContext(ctx, upsertQuery,
		budget.ID, budget.ContactID, budget.Amount.String(), budget.Month, budget.Year); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}

	updateQuery := `UPDATE contacts SET monthly_budget = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, updateQuery, budget.Amount.String(), budget.ContactID); err != nil {
		return fmt.Errorf("failed to update contact budget: %w", err)
	}

	return nil
}

// GetBudget returns a contact's budget for a month, or nil when unset.
func (s *SQLiteStorage) GetBudget(ctx context.Context, contactID string, month, year int) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(contactID, "contactID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, contact_id, amount, month, year
		FROM budgets
		WHERE contact_id = ? AND month = ? AND year = ?`

	var budget model.Budget
	var amount string
	err := s.db.QueryRowContext(ctx, query, contactID, month, year).Scan(
		&budget.ID, &budget.ContactID, &amount, &budget.Month, &budget.Year,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	budget.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse budget amount %q: %w", amount, err)
	}
	return &budget, nil
}

func scanContact(row scanner) (*model.Contact, error) {
	var contact model.Contact
	var name sql.NullString
	var budget string
	err := row.Scan(&contact.ID, &contact.PhoneNumber, &name,
		&contact.LastInteraction, &contact.Active, &budget, &contact.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}
	contact.Name = name.String

	contact.MonthlyBudget, err = decimal.NewFromString(budget)
	if err != nil {
		return nil, fmt.Errorf("failed to parse monthly budget %q: %w", budget, err)
	}
	return &contact, nil
}
