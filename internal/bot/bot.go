// Package bot orchestrates the message pipeline: classify an inbound
// message, persist the expense or compute the report, format the reply
// and hand it to the transport. Every message is handled independently;
// a failure never blocks the next message.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/finzap/finzap/internal/model"
	"github.com/finzap/finzap/internal/reply"
)

// Bot drives the understanding pipeline for inbound messages.
type Bot struct {
	storage    Storage
	classifier Classifier
	reports    Reporter
	notifier   Notifier
	charts     ChartRenderer
	now        func() time.Time
}

// New creates a bot. charts may be nil, in which case report replies are
// sent without images.
func New(storage Storage, classifier Classifier, reports Reporter, notifier Notifier, charts ChartRenderer) *Bot {
	return &Bot{
		storage:    storage,
		classifier: classifier,
		reports:    reports,
		notifier:   notifier,
		charts:     charts,
		now:        time.Now,
	}
}

// HandleMessage processes one inbound message end to end. The returned
// error reports pipeline failures to the caller; the user has already
// received the apology reply by then. Transport failures on the reply are
// only logged: the persisted data stands regardless.
func (b *Bot) HandleMessage(ctx context.Context, in model.InboundMessage) error {
	name := in.SenderName
	if name == "" {
		name = defaultContactName(in.SenderID)
	}
	contact, err := b.storage.FindOrCreateContact(ctx, in.SenderID, name, in.Timestamp)
	if err != nil {
		b.sendApology(ctx, in.SenderID)
		return fmt.Errorf("failed to resolve contact: %w", err)
	}

	b.audit(ctx, contact.ID, in.Text, model.DirectionIncoming, model.MessageTypeText, in.Timestamp)

	classification, err := b.classifier.Classify(ctx, in.Text)
	if err != nil {
		b.sendApology(ctx, in.SenderID)
		return fmt.Errorf("failed to classify message: %w", err)
	}

	switch classification.Kind {
	case model.IntentExpense:
		return b.handleExpense(ctx, contact, in.SenderID, classification.Expense)
	case model.IntentQuery:
		return b.handleQuery(ctx, contact, in.SenderID, classification.Query)
	default:
		slog.Info("unrecognized message", "contact_id", contact.ID, "text", classification.OriginalMessage)
		b.respond(ctx, contact.ID, in.SenderID, reply.Unknown, model.MessageTypeText)
		return nil
	}
}

// handleExpense persists the expense and confirms it. A failed save means
// no confirmation: the user gets the apology instead and the error goes
// up to the caller.
func (b *Bot) handleExpense(ctx context.Context, contact *model.Contact, recipient string, intent *model.ExpenseIntent) error {
	expense := &model.Expense{
		Amount:          intent.Amount,
		Description:     intent.Description,
		Date:            intent.Date,
		OriginalMessage: intent.OriginalMessage,
		ContactID:       contact.ID,
		CategoryID:      intent.CategoryID,
	}

	if err := b.storage.CreateExpense(ctx, expense); err != nil {
		b.sendApology(ctx, recipient)
		return fmt.Errorf("failed to save expense: %w", err)
	}

	response := reply.ExpenseConfirmation(expense.Description, intent.CategoryName, expense.Amount, expense.Date, b.now())
	if warning := b.budgetWarning(ctx, contact); warning != "" {
		response += "\n\n" + warning
	}

	b.respond(ctx, contact.ID, recipient, response, model.MessageTypeExpense)
	return nil
}

// budgetWarning returns the over-budget line when this month's spend has
// passed the contact's limit, and "" otherwise. Lookup failures only cost
// the warning, never the confirmation.
func (b *Bot) budgetWarning(ctx context.Context, contact *model.Contact) string {
	if !contact.MonthlyBudget.IsPositive() {
		return ""
	}

	now := b.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	total, err := b.storage.SumExpenses(ctx, contact.ID, monthStart, now)
	if err != nil {
		slog.Warn("failed to compute month total for budget warning",
			"contact_id", contact.ID,
			"error", err)
		return ""
	}

	if total.GreaterThan(contact.MonthlyBudget) {
		return reply.BudgetWarning(contact.MonthlyBudget)
	}
	return ""
}

func (b *Bot) handleQuery(ctx context.Context, contact *model.Contact, recipient string, query model.QueryType) error {
	var (
		response      string
		weeklyReport  *model.WeeklyReport
		monthlyReport *model.MonthlyReport
	)

	var err error
	switch query {
	case model.QueryLastDays:
		weeklyReport, err = b.reports.LastDays(ctx, contact.ID)
		if err == nil {
			response = reply.LastDaysReport(weeklyReport, b.now())
		}
	case model.QueryThisWeek:
		var r *model.WeeklyReport
		r, err = b.reports.ThisWeek(ctx, contact.ID)
		if err == nil {
			response = reply.ThisWeekReport(r, b.now())
		}
	case model.QueryThisMonth:
		monthlyReport, err = b.reports.Monthly(ctx, contact.ID)
		if err == nil {
			response = reply.MonthlyReport(monthlyReport)
		}
	case model.QueryCategories:
		var r *model.CategoriesReport
		r, err = b.reports.Categories(ctx)
		if err == nil {
			response = reply.CategoriesReport(r)
		}
	case model.QueryHelp:
		response = reply.Help
	default:
		var r *model.MonthlyReport
		r, err = b.reports.Monthly(ctx, contact.ID)
		if err == nil {
			response = reply.MonthlyReport(r)
		}
	}
	if err != nil {
		b.sendApology(ctx, recipient)
		return fmt.Errorf("failed to generate %s report: %w", query, err)
	}

	b.respond(ctx, contact.ID, recipient, response, model.MessageTypeReport)

	if weeklyReport != nil {
		b.sendChart(ctx, recipient,
			func() (string, error) { return b.charts.WeeklyChart(weeklyReport) },
			"Gráfico dos seus gastos dos últimos 7 dias")
	}
	if monthlyReport != nil {
		b.sendChart(ctx, recipient,
			func() (string, error) { return b.charts.MonthlyChart(monthlyReport) },
			"Gráfico dos seus gastos por categoria este mês")
	}
	return nil
}

// sendChart renders and sends a report image. Chart problems are logged
// and swallowed; the text reply already went out.
func (b *Bot) sendChart(ctx context.Context, recipient string, render func() (string, error), caption string) {
	if b.charts == nil {
		return
	}

	path, err := render()
	if err != nil {
		slog.Error("failed to render chart", "recipient", recipient, "error", err)
		return
	}
	defer func() {
		if removeErr := os.Remove(path); removeErr != nil {
			slog.Warn("failed to remove chart file", "path", path, "error", removeErr)
		}
	}()

	if err := b.notifier.SendImage(ctx, recipient, "file://"+path, caption); err != nil {
		slog.Error("failed to send chart image", "recipient", recipient, "error", err)
	}
}

// respond persists the outbound message and sends it. Neither failure
// rolls anything back; both are logged.
func (b *Bot) respond(ctx context.Context, contactID, recipient, text string, msgType model.MessageType) {
	b.audit(ctx, contactID, text, model.DirectionOutgoing, msgType, b.now())

	if err := b.notifier.SendText(ctx, recipient, text); err != nil {
		slog.Error("failed to send reply", "recipient", recipient, "error", err)
	}
}

func (b *Bot) audit(ctx context.Context, contactID, content string, direction model.MessageDirection, msgType model.MessageType, ts time.Time) {
	err := b.storage.SaveMessage(ctx, &model.Message{
		Content:   content,
		Direction: direction,
		Timestamp: ts,
		Type:      msgType,
		ContactID: contactID,
	})
	if err != nil {
		slog.Warn("failed to record message", "contact_id", contactID, "error", err)
	}
}

func (b *Bot) sendApology(ctx context.Context, recipient string) {
	if err := b.notifier.SendText(ctx, recipient, reply.ProcessingError); err != nil {
		slog.Error("failed to send error reply", "recipient", recipient, "error", err)
	}
}

// defaultContactName derives the placeholder name for a new contact from
// the last four digits of their number.
func defaultContactName(senderID string) string {
	suffix := senderID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "Usuário " + suffix
}
