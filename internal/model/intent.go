package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntentKind is the classified purpose of an inbound message.
type IntentKind string

// Intent kinds.
const (
	IntentExpense IntentKind = "expense"
	IntentQuery   IntentKind = "query"
	IntentUnknown IntentKind = "unknown"
)

// QueryType is the specific report a query intent asks for.
type QueryType string

// Query types, in sub-classification priority order.
const (
	QueryLastDays   QueryType = "last_days"
	QueryThisWeek   QueryType = "this_week"
	QueryThisMonth  QueryType = "this_month"
	QueryCategories QueryType = "categories"
	QueryHelp       QueryType = "help"
	QueryGeneral    QueryType = "general"
)

// ExpenseIntent carries the structured fields extracted from an expense
// message after categorization.
type ExpenseIntent struct {
	Date            time.Time
	CategoryID      string
	CategoryName    string
	Description     string
	OriginalMessage string
	Amount          decimal.Decimal
}

// Classification is the outcome of running an inbound message through the
// understanding pipeline. Exactly one of Expense/Query is meaningful,
// selected by Kind; OriginalMessage is set for unknown messages.
type Classification struct {
	Expense         *ExpenseIntent
	Kind            IntentKind
	Query           QueryType
	OriginalMessage string
}
