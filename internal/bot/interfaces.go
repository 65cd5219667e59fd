package bot

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finzap/finzap/internal/model"
)

// Storage is the persistence surface the pipeline needs.
type Storage interface {
	FindOrCreateContact(ctx context.Context, phoneNumber, name string, lastSeen time.Time) (*model.Contact, error)
	CreateExpense(ctx context.Context, expense *model.Expense) error
	SaveMessage(ctx context.Context, msg *model.Message) error
	SumExpenses(ctx context.Context, contactID string, start, end time.Time) (decimal.Decimal, error)
}

// Classifier turns inbound text into a structured intent.
type Classifier interface {
	Classify(ctx context.Context, text string) (model.Classification, error)
}

// Reporter computes the report shapes the queries ask for.
type Reporter interface {
	LastDays(ctx context.Context, contactID string) (*model.WeeklyReport, error)
	ThisWeek(ctx context.Context, contactID string) (*model.WeeklyReport, error)
	Monthly(ctx context.Context, contactID string) (*model.MonthlyReport, error)
	Categories(ctx context.Context) (*model.CategoriesReport, error)
}

// Notifier sends outbound messages over the WhatsApp provider.
type Notifier interface {
	SendText(ctx context.Context, recipient, text string) error
	SendImage(ctx context.Context, recipient, imageURL, caption string) error
}

// ChartRenderer renders report data to an image file and returns its path.
type ChartRenderer interface {
	WeeklyChart(report *model.WeeklyReport) (string, error)
	MonthlyChart(report *model.MonthlyReport) (string, error)
}
