// Package reply renders computed results into the fixed bot reply texts.
// Everything here is string interpolation; the numbers arrive already
// computed.
package reply

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finzap/finzap/internal/model"
)

// Fixed replies.
const (
	// Unknown is sent when a message is neither an expense nor a query.
	Unknown = "Desculpe, não entendi. Tente enviar um gasto como 'camisa 110' ou uma pergunta como 'quanto gastei nos últimos dias?'. Digite 'ajuda' para ver os comandos disponíveis."

	// ProcessingError is the apology sent when handling a message fails.
	ProcessingError = "Desculpe, ocorreu um erro ao processar sua mensagem. Por favor, tente novamente."

	// Help is the command reference.
	Help = "🤖 *FinZap - Assistente Financeiro*\n\n" +
		"Comandos disponíveis:\n\n" +
		"📝 *Registrar gasto:*\n" +
		"Envie o item e valor. Ex: \"camisa 110\"\n\n" +
		"📊 *Relatórios:*\n" +
		"- \"quanto gastei nos últimos dias?\"\n" +
		"- \"quanto gastei esse mês?\"\n" +
		"- \"quanto gastei essa semana?\"\n\n" +
		"📋 *Categorias:*\n" +
		"- \"mostrar categorias\"\n\n" +
		"❓ *Ajuda:*\n" +
		"- \"ajuda\" ou \"help\""
)

// ExpenseConfirmation renders the reply for a freshly saved expense.
func ExpenseConfirmation(description, categoryName string, amount decimal.Decimal, date, now time.Time) string {
	return fmt.Sprintf("Gasto adicionado\n📌 %s (%s)\nR$ %s\n\n%s\n\n%s",
		strings.ToUpper(description),
		categoryName,
		amount.StringFixed(2),
		date.Format("02/01/2006"),
		now.Format("15:04"))
}

// BudgetWarning is appended to a confirmation when the month's spend
// passed the contact's budget.
func BudgetWarning(budget decimal.Decimal) string {
	return fmt.Sprintf("⚠️ Você ultrapassou seu orçamento mensal de R$ %s", budget.StringFixed(2))
}

// LastDaysReport renders the 7-day report including the chart trailer.
func LastDaysReport(r *model.WeeklyReport, now time.Time) string {
	var b strings.Builder
	writeWeekly(&b, "Últimos 7 dias", r, now)
	b.WriteString("Segue gráfico dos seus gastos dos últimos 7 dias 👆")
	return b.String()
}

// ThisWeekReport renders the current week's day-bucketed report.
func ThisWeekReport(r *model.WeeklyReport, now time.Time) string {
	var b strings.Builder
	writeWeekly(&b, "Essa semana", r, now)
	return strings.TrimRight(b.String(), "\n")
}

func writeWeekly(b *strings.Builder, title string, r *model.WeeklyReport, now time.Time) {
	fmt.Fprintf(b, "✅\n%s\nR$ %s - %s á %s\n",
		title,
		r.Total.StringFixed(2),
		r.RangeStart.Format("02/01"),
		r.RangeEnd.Format("02/01"))

	b.WriteString(strings.Join(r.DayLabels, "\n"))
	b.WriteString("\n")

	values := make([]string, len(r.DailyTotals))
	for i, total := range r.DailyTotals {
		values[i] = total.StringFixed(0)
	}
	b.WriteString(strings.Join(values, "\n"))
	b.WriteString("\n")

	fmt.Fprintf(b, "%s\n", now.Format("15:04"))

	switch {
	case r.TrendPercent > 0:
		fmt.Fprintf(b, "Seus gastos aumentaram em %d%% essa semana\n", r.TrendPercent)
	case r.TrendPercent < 0:
		fmt.Fprintf(b, "Seus gastos diminuíram em %d%% essa semana\n", -r.TrendPercent)
	default:
		b.WriteString("Seus gastos se mantiveram estáveis essa semana\n")
	}
}

// MonthlyReport renders the per-category month summary.
func MonthlyReport(r *model.MonthlyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Relatório de %s\n\n", r.MonthLabel)
	fmt.Fprintf(&b, "Total gasto: R$ %s\n\n", r.Total.StringFixed(2))
	b.WriteString("Principais categorias:\n")

	for _, cat := range r.Categories {
		fmt.Fprintf(&b, "- %s: R$ %s (%s%%)\n", cat.Name, cat.Total.StringFixed(2), cat.Percentage.StringFixed(0))
	}
	return b.String()
}

// CategoriesReport renders the category listing.
func CategoriesReport(r *model.CategoriesReport) string {
	var b strings.Builder
	b.WriteString("📋 Categorias disponíveis:\n\n")
	for _, name := range r.Names {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\nPara registrar um gasto, envie o valor e a descrição. Exemplo: \"camisa 110\"")
	return b.String()
}
