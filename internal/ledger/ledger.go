// Package ledger records expenses into the in-memory state and aggregates
// them over daily, weekly and monthly windows.
package ledger

import (
	"financeiro/internal/core"
)

// Record validates and appends an expense for participant on day. The
// amount text follows the same rules as everywhere else ("10,50", "R$ 5");
// the category is capitalized for display but otherwise free text, empty
// included. The appended entry is returned.
func Record(st *core.State, participant, amountText, category string, day core.Date) (core.Entry, error) {
	if !st.HasParticipant(participant) {
		return core.Entry{}, core.ErrUnknownParticipant
	}
	cents, err := core.ParseAmountToCents(amountText)
	if err != nil {
		return core.Entry{}, err
	}
	entry := core.Entry{
		Category: core.Capitalize(category),
		Amount:   core.Money{Cents: cents},
	}
	if st.Expenses == nil {
		st.Expenses = make(core.Ledger)
	}
	if st.Expenses[day] == nil {
		st.Expenses[day] = make(map[string][]core.Entry)
	}
	st.Expenses[day][participant] = append(st.Expenses[day][participant], entry)
	return entry, nil
}

// EntriesFor returns the entries recorded for participant on day, in
// recording order. Missing days or participants yield an empty slice.
func EntriesFor(st core.State, day core.Date, participant string) []core.Entry {
	return st.Expenses[day][participant]
}

// TotalFor sums the participant's entries across the given days. Days with
// no entries contribute zero; the result is never an error.
func TotalFor(st core.State, days []core.Date, participant string) core.Money {
	var total core.Money
	for _, day := range days {
		for _, e := range st.Expenses[day][participant] {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// BreakdownFor groups the participant's entries across the given days by
// category, in first-seen order. An empty result means no expenses.
func BreakdownFor(st core.State, days []core.Date, participant string) []core.CategoryAmount {
	var out []core.CategoryAmount
	index := make(map[string]int)
	for _, day := range days {
		for _, e := range st.Expenses[day][participant] {
			i, ok := index[e.Category]
			if !ok {
				i = len(out)
				index[e.Category] = i
				out = append(out, core.CategoryAmount{Name: e.Category})
			}
			out[i].Amount = out[i].Amount.Add(e.Amount)
		}
	}
	return out
}
