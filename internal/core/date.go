package core

import "time"

// Date is a calendar day with no time component. It is comparable and is
// used directly as the ledger map key; the YYYY-MM-DD wire form exists
// only at the persistence boundary.
type Date struct {
	time.Time
}

const dateWire = "2006-01-02"

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses the YYYY-MM-DD wire form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateWire, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String renders the YYYY-MM-DD wire form.
func (d Date) String() string {
	return d.Format(dateWire)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}

// StartOfWeek returns the most recent Monday, possibly d itself.
func (d Date) StartOfWeek() Date {
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDays(-offset)
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	return NewDate(d.Year(), int(d.Month()), 1)
}

// DaysUntil returns the inclusive sequence of days from d through end.
// It is empty when end precedes d.
func (d Date) DaysUntil(end Date) []Date {
	var days []Date
	for cur := d; !cur.After(end.Time); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}
