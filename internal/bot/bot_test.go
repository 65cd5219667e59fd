package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finzap/finzap/internal/model"
	"github.com/finzap/finzap/internal/reply"
)

type fakeStorage struct {
	contact     *model.Contact
	contactErr  error
	expenses    []*model.Expense
	expenseErr  error
	messages    []*model.Message
	monthTotal  decimal.Decimal
	monthSumErr error
}

func (f *fakeStorage) FindOrCreateContact(_ context.Context, phoneNumber, name string, _ time.Time) (*model.Contact, error) {
	if f.contactErr != nil {
		return nil, f.contactErr
	}
	if f.contact == nil {
		f.contact = &model.Contact{ID: "contact-1", PhoneNumber: phoneNumber, Name: name, Active: true}
	}
	return f.contact, nil
}

func (f *fakeStorage) CreateExpense(_ context.Context, expense *model.Expense) error {
	if f.expenseErr != nil {
		return f.expenseErr
	}
	f.expenses = append(f.expenses, expense)
	return nil
}

func (f *fakeStorage) SaveMessage(_ context.Context, msg *model.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeStorage) SumExpenses(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return f.monthTotal, f.monthSumErr
}

type fakeClassifier struct {
	result model.Classification
	err    error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (model.Classification, error) {
	return f.result, f.err
}

type fakeReporter struct {
	weekly  *model.WeeklyReport
	monthly *model.MonthlyReport
	err     error
}

func (f *fakeReporter) LastDays(_ context.Context, _ string) (*model.WeeklyReport, error) {
	return f.weekly, f.err
}

func (f *fakeReporter) ThisWeek(_ context.Context, _ string) (*model.WeeklyReport, error) {
	return f.weekly, f.err
}

func (f *fakeReporter) Monthly(_ context.Context, _ string) (*model.MonthlyReport, error) {
	return f.monthly, f.err
}

func (f *fakeReporter) Categories(_ context.Context) (*model.CategoriesReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.CategoriesReport{Names: []string{"Alimentação"}}, nil
}

type sentMessage struct {
	recipient string
	text      string
}

type fakeNotifier struct {
	texts  []sentMessage
	images []sentMessage
}

func (f *fakeNotifier) SendText(_ context.Context, recipient, text string) error {
	f.texts = append(f.texts, sentMessage{recipient: recipient, text: text})
	return nil
}

func (f *fakeNotifier) SendImage(_ context.Context, recipient, imageURL, _ string) error {
	f.images = append(f.images, sentMessage{recipient: recipient, text: imageURL})
	return nil
}

func expenseClassification(amountStr string) model.Classification {
	return model.Classification{
		Kind: model.IntentExpense,
		Expense: &model.ExpenseIntent{
			Amount:       decimal.RequireFromString(amountStr),
			CategoryID:   "cat-1",
			CategoryName: "Vestuário",
			Description:  "Camisa",
			Date:         time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		},
	}
}

func inbound(text string) model.InboundMessage {
	return model.InboundMessage{
		SenderID:  "5511999990000",
		Text:      text,
		Timestamp: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandleExpense(t *testing.T) {
	storage := &fakeStorage{}
	notifier := &fakeNotifier{}
	b := New(storage, &fakeClassifier{result: expenseClassification("110")}, &fakeReporter{}, notifier, nil)

	err := b.HandleMessage(context.Background(), inbound("camisa 110"))
	require.NoError(t, err)

	require.Len(t, storage.expenses, 1)
	assert.Equal(t, "contact-1", storage.expenses[0].ContactID)
	assert.Equal(t, "cat-1", storage.expenses[0].CategoryID)

	require.Len(t, notifier.texts, 1)
	assert.Equal(t, "5511999990000", notifier.texts[0].recipient)
	assert.Contains(t, notifier.texts[0].text, "Gasto adicionado")
	assert.Contains(t, notifier.texts[0].text, "CAMISA (Vestuário)")
	assert.NotContains(t, notifier.texts[0].text, "orçamento")

	// Incoming text and outgoing confirmation are both audited.
	require.Len(t, storage.messages, 2)
	assert.Equal(t, model.DirectionIncoming, storage.messages[0].Direction)
	assert.Equal(t, model.DirectionOutgoing, storage.messages[1].Direction)
	assert.Equal(t, model.MessageTypeExpense, storage.messages[1].Type)
}

func TestHandleExpenseBudgetWarning(t *testing.T) {
	storage := &fakeStorage{
		contact: &model.Contact{
			ID:            "contact-1",
			MonthlyBudget: decimal.NewFromInt(500),
			Active:        true,
		},
		monthTotal: decimal.NewFromInt(620),
	}
	notifier := &fakeNotifier{}
	b := New(storage, &fakeClassifier{result: expenseClassification("110")}, &fakeReporter{}, notifier, nil)

	err := b.HandleMessage(context.Background(), inbound("camisa 110"))
	require.NoError(t, err)

	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0].text, "Você ultrapassou seu orçamento mensal de R$ 500.00")
}

func TestHandleExpenseSaveFailure(t *testing.T) {
	storage := &fakeStorage{expenseErr: errors.New("disk full")}
	notifier := &fakeNotifier{}
	b := New(storage, &fakeClassifier{result: expenseClassification("110")}, &fakeReporter{}, notifier, nil)

	err := b.HandleMessage(context.Background(), inbound("camisa 110"))
	require.Error(t, err)

	// Apology instead of a confirmation.
	require.Len(t, notifier.texts, 1)
	assert.Equal(t, reply.ProcessingError, notifier.texts[0].text)
}

func TestHandleQuery(t *testing.T) {
	weekly := &model.WeeklyReport{
		DayLabels:   []string{"dom"},
		DailyTotals: []decimal.Decimal{decimal.NewFromInt(10)},
		Total:       decimal.NewFromInt(10),
	}
	monthly := &model.MonthlyReport{MonthLabel: "março", Total: decimal.NewFromInt(10)}

	tests := []struct {
		name     string
		query    model.QueryType
		contains string
	}{
		{name: "last days", query: model.QueryLastDays, contains: "Últimos 7 dias"},
		{name: "this week", query: model.QueryThisWeek, contains: "Essa semana"},
		{name: "this month", query: model.QueryThisMonth, contains: "Relatório de março"},
		{name: "categories", query: model.QueryCategories, contains: "Categorias disponíveis"},
		{name: "help", query: model.QueryHelp, contains: "Comandos disponíveis"},
		{name: "general falls back to monthly", query: model.QueryGeneral, contains: "Relatório de março"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &fakeStorage{}
			notifier := &fakeNotifier{}
			b := New(storage,
				&fakeClassifier{result: model.Classification{Kind: model.IntentQuery, Query: tt.query}},
				&fakeReporter{weekly: weekly, monthly: monthly},
				notifier, nil)

			err := b.HandleMessage(context.Background(), inbound("quanto gastei?"))
			require.NoError(t, err)

			require.Len(t, notifier.texts, 1)
			assert.Contains(t, notifier.texts[0].text, tt.contains)
		})
	}
}

func TestHandleQueryReportFailure(t *testing.T) {
	storage := &fakeStorage{}
	notifier := &fakeNotifier{}
	b := New(storage,
		&fakeClassifier{result: model.Classification{Kind: model.IntentQuery, Query: model.QueryThisMonth}},
		&fakeReporter{err: errors.New("db gone")},
		notifier, nil)

	err := b.HandleMessage(context.Background(), inbound("quanto gastei esse mês?"))
	require.Error(t, err)

	require.Len(t, notifier.texts, 1)
	assert.Equal(t, reply.ProcessingError, notifier.texts[0].text)
}

func TestHandleUnknown(t *testing.T) {
	storage := &fakeStorage{}
	notifier := &fakeNotifier{}
	b := New(storage,
		&fakeClassifier{result: model.Classification{Kind: model.IntentUnknown, OriginalMessage: "xyzabc"}},
		&fakeReporter{}, notifier, nil)

	err := b.HandleMessage(context.Background(), inbound("xyzabc"))
	require.NoError(t, err)

	require.Len(t, notifier.texts, 1)
	assert.Equal(t, reply.Unknown, notifier.texts[0].text)
}

func TestHandleMessageContactFailure(t *testing.T) {
	storage := &fakeStorage{contactErr: errors.New("locked")}
	notifier := &fakeNotifier{}
	b := New(storage, &fakeClassifier{}, &fakeReporter{}, notifier, nil)

	err := b.HandleMessage(context.Background(), inbound("camisa 110"))
	require.Error(t, err)
	require.Len(t, notifier.texts, 1)
	assert.Equal(t, reply.ProcessingError, notifier.texts[0].text)
}

func TestDefaultContactName(t *testing.T) {
	assert.Equal(t, "Usuário 0000", defaultContactName("5511999990000"))
	assert.Equal(t, "Usuário 123", defaultContactName("123"))
}
