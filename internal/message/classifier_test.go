package message

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finzap/finzap/internal/model"
)

// fakeCategorizer resolves a few known keywords and falls back to Outros,
// mirroring the real categorizer's contract.
type fakeCategorizer struct {
	known map[string]string
}

func (f *fakeCategorizer) Categorize(_ context.Context, description string) (*model.Category, string, error) {
	for keyword, name := range f.known {
		if strings.Contains(description, keyword) {
			return &model.Category{ID: "cat-" + name, Name: name}, description, nil
		}
	}
	return &model.Category{ID: "cat-new", Name: "Outros"}, description, nil
}

func newTestClassifier() *Classifier {
	return NewClassifier(&fakeCategorizer{known: map[string]string{
		"restaurante": "Alimentação",
		"camisa":      "Vestuário",
	}})
}

func TestClassifyExpense(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantAmount   string
		wantCategory string
	}{
		{name: "currency with comma decimal", text: "R$ 45,90 restaurante hoje", wantAmount: "45.9", wantCategory: "Alimentação"},
		{name: "bare integer amount", text: "camisa 110", wantAmount: "110", wantCategory: "Vestuário"},
		{name: "dot decimal", text: "12.50 lanche", wantAmount: "12.5", wantCategory: "Outros"},
		{name: "unknown description creates category", text: "widget 42", wantAmount: "42", wantCategory: "Outros"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier()

			got, err := c.Classify(context.Background(), tt.text)
			require.NoError(t, err)
			require.Equal(t, model.IntentExpense, got.Kind)
			require.NotNil(t, got.Expense)

			want := decimal.RequireFromString(tt.wantAmount)
			assert.True(t, got.Expense.Amount.Equal(want), "amount %s", got.Expense.Amount)
			assert.Equal(t, tt.wantCategory, got.Expense.CategoryName)
			assert.False(t, got.Expense.Date.IsZero())
		})
	}
}

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantQuery model.QueryType
	}{
		{name: "this month", text: "quanto gastei esse mês?", wantQuery: model.QueryThisMonth},
		{name: "last days", text: "gastos dos últimos dias", wantQuery: model.QueryLastDays},
		{name: "this week", text: "resumo desta semana", wantQuery: model.QueryThisWeek},
		{name: "categories", text: "quais categorias existem?", wantQuery: model.QueryCategories},
		{name: "help", text: "ajuda", wantQuery: model.QueryHelp},
		{name: "general report", text: "me manda um relatório", wantQuery: model.QueryGeneral},
		{name: "query wins over amount", text: "quanto gastei com 2 compras?", wantQuery: model.QueryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier()

			got, err := c.Classify(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, model.IntentQuery, got.Kind)
			assert.Equal(t, tt.wantQuery, got.Query)
			assert.Nil(t, got.Expense)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	c := newTestClassifier()

	got, err := c.Classify(context.Background(), "xyzabc")
	require.NoError(t, err)
	assert.Equal(t, model.IntentUnknown, got.Kind)
	assert.Equal(t, "xyzabc", got.OriginalMessage)
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantAmount    string
		wantRemainder string
		wantOK        bool
	}{
		{name: "comma separator", text: "r$ 45,90 restaurante", wantAmount: "45.9", wantRemainder: "r$  restaurante", wantOK: true},
		{name: "dot separator", text: "12.50 lanche", wantAmount: "12.5", wantRemainder: "lanche", wantOK: true},
		{name: "integer", text: "camisa 110", wantAmount: "110", wantRemainder: "camisa", wantOK: true},
		{name: "first number wins", text: "3 camisas por 90", wantAmount: "3", wantRemainder: "camisas por 90", wantOK: true},
		{name: "no number", text: "nada aqui", wantOK: false},
		{name: "empty", text: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, remainder, ok := ExtractAmount(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.wantAmount)), "amount %s", amount)
			assert.Equal(t, tt.wantRemainder, remainder)
		})
	}
}
