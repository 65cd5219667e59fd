package reply

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finzap/finzap/internal/model"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExpenseConfirmation(t *testing.T) {
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 12, 14, 35, 0, 0, time.UTC)

	got := ExpenseConfirmation("Camisa", "Vestuário", amount("110"), date, now)
	want := "Gasto adicionado\n📌 CAMISA (Vestuário)\nR$ 110.00\n\n12/03/2025\n\n14:35"
	assert.Equal(t, want, got)
}

func TestBudgetWarning(t *testing.T) {
	got := BudgetWarning(amount("1500"))
	assert.Equal(t, "⚠️ Você ultrapassou seu orçamento mensal de R$ 1500.00", got)
}

func weeklyFixture(trend int) *model.WeeklyReport {
	return &model.WeeklyReport{
		RangeStart:   time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
		RangeEnd:     time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC),
		DayLabels:    []string{"qui", "sex", "sáb", "dom", "seg", "ter", "qua"},
		DailyTotals:  []decimal.Decimal{amount("56"), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, amount("30")},
		Total:        amount("86"),
		TrendPercent: trend,
	}
}

func TestLastDaysReport(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 4, 0, 0, time.UTC)

	got := LastDaysReport(weeklyFixture(25), now)

	assert.True(t, strings.HasPrefix(got, "✅\nÚltimos 7 dias\nR$ 86.00 - 06/03 á 12/03\n"), "got %q", got)
	assert.Contains(t, got, "qui\nsex\nsáb\ndom\nseg\nter\nqua\n")
	assert.Contains(t, got, "56\n0\n0\n0\n0\n0\n30\n")
	assert.Contains(t, got, "15:04\n")
	assert.Contains(t, got, "Seus gastos aumentaram em 25% essa semana")
	assert.True(t, strings.HasSuffix(got, "Segue gráfico dos seus gastos dos últimos 7 dias 👆"))
}

func TestThisWeekReport(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 4, 0, 0, time.UTC)

	t.Run("negative trend", func(t *testing.T) {
		got := ThisWeekReport(weeklyFixture(-30), now)
		assert.True(t, strings.HasPrefix(got, "✅\nEssa semana\n"), "got %q", got)
		assert.True(t, strings.HasSuffix(got, "Seus gastos diminuíram em 30% essa semana"))
	})

	t.Run("flat trend", func(t *testing.T) {
		got := ThisWeekReport(weeklyFixture(0), now)
		assert.True(t, strings.HasSuffix(got, "Seus gastos se mantiveram estáveis essa semana"))
	})
}

func TestMonthlyReport(t *testing.T) {
	got := MonthlyReport(&model.MonthlyReport{
		MonthLabel: "março",
		Total:      amount("110"),
		Categories: []model.CategoryTotal{
			{Name: "Alimentação", Total: amount("75"), Percentage: amount("68.18")},
			{Name: "Transporte", Total: amount("25"), Percentage: amount("22.73")},
			{Name: "Outros", Total: amount("10"), Percentage: amount("9.09")},
		},
	})

	want := "📊 Relatório de março\n\n" +
		"Total gasto: R$ 110.00\n\n" +
		"Principais categorias:\n" +
		"- Alimentação: R$ 75.00 (68%)\n" +
		"- Transporte: R$ 25.00 (23%)\n" +
		"- Outros: R$ 10.00 (9%)\n"
	assert.Equal(t, want, got)
}

func TestCategoriesReport(t *testing.T) {
	got := CategoriesReport(&model.CategoriesReport{Names: []string{"Alimentação", "Transporte"}})

	want := "📋 Categorias disponíveis:\n\n" +
		"- Alimentação\n" +
		"- Transporte\n" +
		"\nPara registrar um gasto, envie o valor e a descrição. Exemplo: \"camisa 110\""
	assert.Equal(t, want, got)
}
