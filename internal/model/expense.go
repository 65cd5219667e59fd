package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spend recorded for a contact. OriginalMessage keeps
// the raw inbound text for auditing.
type Expense struct {
	Date            time.Time
	CreatedAt       time.Time
	ID              string
	Description     string
	OriginalMessage string
	ContactID       string
	CategoryID      string
	Amount          decimal.Decimal
}
