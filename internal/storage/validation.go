// Package storage provides the data persistence layer for the finzap application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finzap/finzap/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrInvalidMessage   = errors.New("invalid message")
	ErrInvalidCategory  = errors.New("invalid category")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExpense validates a single expense.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalidExpense)
	}
	if expense.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidExpense)
	}
	if expense.ContactID == "" {
		return fmt.Errorf("%w: missing contact ID", ErrInvalidExpense)
	}
	if expense.CategoryID == "" {
		return fmt.Errorf("%w: missing category ID", ErrInvalidExpense)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	return nil
}

// validateMessage validates a conversation message.
func validateMessage(msg *model.Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message", ErrNilParameter)
	}
	if msg.Content == "" {
		return fmt.Errorf("%w: missing content", ErrInvalidMessage)
	}
	if msg.ContactID == "" {
		return fmt.Errorf("%w: missing contact ID", ErrInvalidMessage)
	}
	switch msg.Direction {
	case model.DirectionIncoming, model.DirectionOutgoing:
	default:
		return fmt.Errorf("%w: invalid direction %q", ErrInvalidMessage, msg.Direction)
	}
	return nil
}

// validateCategory validates category defaults before insertion.
func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	return nil
}
