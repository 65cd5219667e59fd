// Package message turns free-text inbound messages into structured
// intents: an expense to record, a report query, or unknown.
package message

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finzap/finzap/internal/model"
)

// amountPattern matches the first integer-or-decimal token in a message.
// The decimal separator may be '.' or ','.
var amountPattern = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\b`)

// queryKeywords mark a message as a report query. Any hit wins over
// expense detection, so "quanto gastei com 2 compras?" never becomes an
// expense of 2.
var queryKeywords = []string{
	"quanto",
	"gastei",
	"gasto",
	"gastos",
	"despesas",
	"relatório",
	"relatorio",
	"resumo",
	"balanço",
	"balanco",
	"últimos dias",
	"ultimos dias",
	"esta semana",
	"esse mês",
	"esse mes",
	"categoria",
	"categorias",
	"ajuda",
	"help",
}

// Categorizer resolves an expense description to a category.
type Categorizer interface {
	Categorize(ctx context.Context, description string) (*model.Category, string, error)
}

// Classifier drives intent classification for inbound messages.
type Classifier struct {
	categorizer Categorizer
	now         func() time.Time
}

// NewClassifier creates a classifier using the given categorizer.
func NewClassifier(categorizer Categorizer) *Classifier {
	return &Classifier{
		categorizer: categorizer,
		now:         time.Now,
	}
}

// Classify determines the intent of an inbound message. Query keyword
// detection runs first; a numeric token then marks an expense; anything
// else is unknown. Classification errors only arise from the categorizer's
// persistence layer.
func (c *Classifier) Classify(ctx context.Context, text string) (model.Classification, error) {
	clean := strings.ToLower(strings.TrimSpace(text))

	if isQuery(clean) {
		return model.Classification{
			Kind:  model.IntentQuery,
			Query: extractQueryType(clean),
		}, nil
	}

	amount, remainder, ok := ExtractAmount(clean)
	if !ok {
		return model.Classification{
			Kind:            model.IntentUnknown,
			OriginalMessage: text,
		}, nil
	}

	cat, description, err := c.categorizer.Categorize(ctx, remainder)
	if err != nil {
		return model.Classification{}, err
	}
	if description == "" {
		description = remainder
	}
	if description == "" {
		// A bare number carries no description; fall back to the
		// category name so the record stays presentable.
		description = cat.Name
	}

	return model.Classification{
		Kind: model.IntentExpense,
		Expense: &model.ExpenseIntent{
			Amount:          amount,
			CategoryID:      cat.ID,
			CategoryName:    cat.Name,
			Description:     description,
			Date:            c.now(),
			OriginalMessage: clean,
		},
	}, nil
}

// ExtractAmount finds the first monetary token in text, normalizes the
// separator and parses it. The remainder is the text with that token
// removed and trimmed. ok is false when no parsable token exists; that is
// a classification outcome, not an error.
func ExtractAmount(text string) (decimal.Decimal, string, bool) {
	loc := amountPattern.FindStringIndex(text)
	if loc == nil {
		return decimal.Zero, "", false
	}

	token := strings.ReplaceAll(text[loc[0]:loc[1]], ",", ".")
	amount, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, "", false
	}

	remainder := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	return amount, remainder, true
}

func isQuery(text string) bool {
	for _, keyword := range queryKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// extractQueryType sub-classifies a query, checking the specific phrases
// in priority order.
func extractQueryType(text string) model.QueryType {
	switch {
	case strings.Contains(text, "últimos dias") || strings.Contains(text, "ultimos dias"):
		return model.QueryLastDays
	case strings.Contains(text, "esta semana") || strings.Contains(text, "essa semana"):
		return model.QueryThisWeek
	case strings.Contains(text, "esse mês") || strings.Contains(text, "esse mes") || strings.Contains(text, "este mês"):
		return model.QueryThisMonth
	case strings.Contains(text, "categoria") || strings.Contains(text, "categorias"):
		return model.QueryCategories
	case strings.Contains(text, "ajuda") || strings.Contains(text, "help"):
		return model.QueryHelp
	default:
		return model.QueryGeneral
	}
}
