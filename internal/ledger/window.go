package ledger

import "financeiro/internal/core"

// Window is the aggregation range of a report.
type Window int

const (
	// Daily covers today only.
	Daily Window = iota
	// Weekly covers the most recent Monday through today, inclusive.
	Weekly
	// Monthly covers the first day of the month through today, inclusive.
	Monthly
)

// Days expands the window relative to today into its inclusive sequence
// of calendar days.
func (w Window) Days(today core.Date) []core.Date {
	switch w {
	case Weekly:
		return today.StartOfWeek().DaysUntil(today)
	case Monthly:
		return today.StartOfMonth().DaysUntil(today)
	default:
		return []core.Date{today}
	}
}

// Start returns the first day of the window relative to today.
func (w Window) Start(today core.Date) core.Date {
	switch w {
	case Weekly:
		return today.StartOfWeek()
	case Monthly:
		return today.StartOfMonth()
	default:
		return today
	}
}
