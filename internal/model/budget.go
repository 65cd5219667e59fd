package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for a contact, kept per calendar
// month so the dashboard can show history.
type Budget struct {
	ID        string
	ContactID string
	Amount    decimal.Decimal
	Month     int
	Year      int
}

// Validate checks the budget fields are usable.
func (b *Budget) Validate() error {
	if b.ContactID == "" {
		return fmt.Errorf("budget missing contact")
	}
	if b.Month < 1 || b.Month > 12 {
		return fmt.Errorf("invalid budget month: %d", b.Month)
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("budget amount cannot be negative")
	}
	return nil
}
