// Package report renders aggregated ledger data as the chat replies the
// bot sends back. Rendering is a pure function of state, window and the
// current day, which makes it the snapshot-testing seam of the system.
package report

import (
	"fmt"
	"strings"

	"financeiro/internal/core"
	"financeiro/internal/ledger"
)

const noExpenses = "Sem gastos registrados."

// Render produces the report for the given window. Solo profiles get the
// singular phrasing; Casal and Família get per-participant lines under the
// group nickname plus a grand total footer.
func Render(st core.State, w ledger.Window, today core.Date) string {
	if w == ledger.Daily {
		return daily(st, today)
	}
	return ranged(st, w, today)
}

func daily(st core.State, today core.Date) string {
	days := []core.Date{today}

	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Relatório do dia – %s\n\n", today)

	if !st.IsGroup() {
		name := soloName(st)
		total := ledger.TotalFor(st, days, name)
		fmt.Fprintf(&b, "Você gastou %s hoje.\n", total.Reais())
		b.WriteString("Aqui está o resumo detalhado:\n")
		b.WriteString(breakdownLines(st, days, name))
		return b.String()
	}

	fmt.Fprintf(&b, "📛 Grupo: %s\n\n", st.Nickname)
	var group core.Money
	for _, name := range st.Participants {
		total := ledger.TotalFor(st, days, name)
		group = group.Add(total)
		fmt.Fprintf(&b, "👤 %s gastou %s hoje:\n%s\n\n", name, total.Reais(), breakdownLines(st, days, name))
	}
	fmt.Fprintf(&b, "📊 Total do grupo: %s", group.Reais())
	return b.String()
}

func ranged(st core.State, w ledger.Window, today core.Date) string {
	days := w.Days(today)
	start := w.Start(today)

	header := "📈 Relatório Semanal"
	phrase := "Nesta semana"
	caption := "Gastos da semana por pessoa:"
	if w == ledger.Monthly {
		header = "📊 Relatório Mensal"
		phrase = "Neste mês"
		caption = "Gastos do mês por pessoa:"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s – %s a %s\n", header, start.Format("02/01"), today.Format("02/01"))

	if !st.IsGroup() {
		name := soloName(st)
		total := ledger.TotalFor(st, days, name)
		fmt.Fprintf(&b, "%s, você gastou um total de %s.\n", phrase, total.Reais())
		return b.String()
	}

	fmt.Fprintf(&b, "📛 Grupo: %s\n\n", st.Nickname)
	b.WriteString(caption + "\n\n")
	var group core.Money
	for _, name := range st.Participants {
		total := ledger.TotalFor(st, days, name)
		group = group.Add(total)
		fmt.Fprintf(&b, "👤 %s: %s\n", name, total.Reais())
	}
	fmt.Fprintf(&b, "\n💵 Total: %s", group.Reais())
	return b.String()
}

// breakdownLines renders the per-category summary for one participant,
// one "- Categoria: R$ X" line per category in first-seen order.
func breakdownLines(st core.State, days []core.Date, name string) string {
	breakdown := ledger.BreakdownFor(st, days, name)
	if len(breakdown) == 0 {
		return noExpenses
	}
	lines := make([]string, len(breakdown))
	for i, c := range breakdown {
		label := c.Name
		if label == "" {
			label = "Sem categoria"
		}
		lines[i] = fmt.Sprintf("- %s: %s", label, c.Amount.Reais())
	}
	return strings.Join(lines, "\n")
}

func soloName(st core.State) string {
	if len(st.Participants) == 0 {
		return ""
	}
	return st.Participants[0]
}
