package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contact is one WhatsApp sender, created lazily on their first message.
// MonthlyBudget is zero when the contact never set one.
type Contact struct {
	LastInteraction time.Time
	CreatedAt       time.Time
	ID              string
	PhoneNumber     string
	Name            string
	MonthlyBudget   decimal.Decimal
	Active          bool
}
