package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyReport holds day-bucketed totals over a date range plus the trend
// against the immediately preceding period of equal length.
type WeeklyReport struct {
	RangeStart   time.Time
	RangeEnd     time.Time
	DayLabels    []string
	DailyTotals  []decimal.Decimal
	Total        decimal.Decimal
	TrendPercent int
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	Name       string
	Color      string
	Total      decimal.Decimal
	Percentage decimal.Decimal
}

// MonthlyReport aggregates a contact's expenses from the first of the
// month, grouped by category and sorted by descending total.
type MonthlyReport struct {
	RangeStart time.Time
	RangeEnd   time.Time
	MonthLabel string
	Categories []CategoryTotal
	Total      decimal.Decimal
}

// CategoriesReport lists the known category names.
type CategoriesReport struct {
	Names []string
}
