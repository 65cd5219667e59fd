// Package report computes aggregate spending statistics for a contact:
// day-bucketed ranges with trend, monthly category breakdowns and the
// category listing.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finzap/finzap/internal/model"
)

// weekdayLabels are the pt-BR weekday abbreviations, indexed by time.Weekday.
var weekdayLabels = [7]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}

// monthLabels are the lower-case pt-BR month names, indexed by time.Month.
var monthLabels = [13]string{
	"",
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// lastDaysWindow is the range of the "últimos dias" report.
const lastDaysWindow = 7

// Store is the persistence surface the report generator reads from.
type Store interface {
	ListExpenses(ctx context.Context, contactID string, start, end time.Time) ([]model.Expense, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
}

// Generator computes reports. It holds no state beyond its dependencies;
// every report is a fresh scan of the contact's expenses.
type Generator struct {
	store Store
	now   func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator(store Store) *Generator {
	return &Generator{
		store: store,
		now:   time.Now,
	}
}

// LastDays computes the fixed 7-day report ending now.
func (g *Generator) LastDays(ctx context.Context, contactID string) (*model.WeeklyReport, error) {
	now := g.now()
	start := startOfDay(now.AddDate(0, 0, -(lastDaysWindow - 1)))
	return g.Weekly(ctx, contactID, start, now)
}

// ThisWeek computes the day-bucketed report from the week's Sunday to now.
func (g *Generator) ThisWeek(ctx context.Context, contactID string) (*model.WeeklyReport, error) {
	now := g.now()
	start := startOfDay(now.AddDate(0, 0, -int(now.Weekday())))
	return g.Weekly(ctx, contactID, start, now)
}

// Weekly buckets a contact's expenses per calendar day over [start, end]
// and computes the trend against the immediately preceding period of the
// same length. A previous period with no spend yields trend 0.
func (g *Generator) Weekly(ctx context.Context, contactID string, start, end time.Time) (*model.WeeklyReport, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid report range: %v after %v", start, end)
	}

	expenses, err := g.store.ListExpenses(ctx, contactID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	firstDay := startOfDay(start)
	days := daysBetween(firstDay, end) + 1

	dailyTotals := make([]decimal.Decimal, days)
	dayLabels := make([]string, days)
	for i := range dailyTotals {
		day := firstDay.AddDate(0, 0, i)
		dailyTotals[i] = decimal.Zero
		dayLabels[i] = weekdayLabels[day.Weekday()]
	}

	total := decimal.Zero
	for _, expense := range expenses {
		idx := daysBetween(firstDay, expense.Date)
		if idx < 0 || idx >= days {
			continue
		}
		dailyTotals[idx] = dailyTotals[idx].Add(expense.Amount)
		total = total.Add(expense.Amount)
	}

	trend, err := g.trend(ctx, contactID, total, firstDay, days)
	if err != nil {
		return nil, err
	}

	return &model.WeeklyReport{
		RangeStart:   start,
		RangeEnd:     end,
		DayLabels:    dayLabels,
		DailyTotals:  dailyTotals,
		Total:        total,
		TrendPercent: trend,
	}, nil
}

// trend is the rounded percentage change of total against the preceding
// period of days length.
func (g *Generator) trend(ctx context.Context, contactID string, total decimal.Decimal, firstDay time.Time, days int) (int, error) {
	prevStart := firstDay.AddDate(0, 0, -days)
	prevEnd := endOfDay(firstDay.AddDate(0, 0, -1))

	previous, err := g.store.ListExpenses(ctx, contactID, prevStart, prevEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to load previous period: %w", err)
	}

	prevTotal := decimal.Zero
	for _, expense := range previous {
		prevTotal = prevTotal.Add(expense.Amount)
	}

	if !prevTotal.IsPositive() {
		return 0, nil
	}

	change := total.Sub(prevTotal).Div(prevTotal).Mul(decimal.NewFromInt(100))
	// Half values round toward positive infinity: -12.5% reads as -12.
	return int(change.Add(decimal.New(5, -1)).Floor().IntPart()), nil
}

// Monthly aggregates a contact's expenses from the first of the current
// month, grouped by category and sorted by descending total.
func (g *Generator) Monthly(ctx context.Context, contactID string) (*model.MonthlyReport, error) {
	now := g.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return g.MonthlyRange(ctx, contactID, start, now)
}

// MonthlyRange is the category breakdown over an arbitrary range, labeled
// with the range start's month.
func (g *Generator) MonthlyRange(ctx context.Context, contactID string, start, end time.Time) (*model.MonthlyReport, error) {
	expenses, err := g.store.ListExpenses(ctx, contactID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	categories, err := g.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	type categoryInfo struct {
		name  string
		color string
	}
	byID := make(map[string]categoryInfo, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = categoryInfo{name: cat.Name, color: cat.Color}
	}

	total := decimal.Zero
	totals := make(map[string]decimal.Decimal)
	colors := make(map[string]string)
	for _, expense := range expenses {
		info, ok := byID[expense.CategoryID]
		if !ok {
			info = categoryInfo{name: "Outros", color: "#95a5a6"}
		}
		totals[info.name] = totals[info.name].Add(expense.Amount)
		colors[info.name] = info.color
		total = total.Add(expense.Amount)
	}

	hundred := decimal.NewFromInt(100)
	rows := make([]model.CategoryTotal, 0, len(totals))
	for name, catTotal := range totals {
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = catTotal.Div(total).Mul(hundred)
		}
		rows = append(rows, model.CategoryTotal{
			Name:       name,
			Color:      colors[name],
			Total:      catTotal,
			Percentage: percentage,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Total.GreaterThan(rows[j].Total)
	})

	return &model.MonthlyReport{
		RangeStart: start,
		RangeEnd:   end,
		MonthLabel: monthLabels[start.Month()],
		Categories: rows,
		Total:      total,
	}, nil
}

// Categories lists the known category names in their stable order.
func (g *Generator) Categories(ctx context.Context) (*model.CategoriesReport, error) {
	categories, err := g.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}
	return &model.CategoriesReport{Names: names}, nil
}

// daysBetween counts calendar days from a to b. Comparing dates instead
// of elapsed hours keeps bucketing correct across zone offset changes,
// where a calendar day is not 24 hours long.
func daysBetween(a, b time.Time) int {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	first := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	last := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(last.Sub(first).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
