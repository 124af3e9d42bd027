package schedule

import (
	"time"

	"github.com/mfiguera/credimutual/internal/domain"
)

// DueDates computes count due dates for the configured day under the given
// rule, starting from today.
//
// First installment: if today is on or before this month's candidate date,
// it is due this month, otherwise the same configured day one month later.
// Subsequent installments advance a (year, month) anchor one calendar month
// at a time and reapply the rule fresh against the ORIGINAL configured day.
// Chaining from an already-clamped date would let day 31, once clamped to
// Feb 28, degrade to day 28 for every later month.
func DueDates(today time.Time, dueDay int, rule domain.DueDateRule, count int) []time.Time {
	year, month, day := today.Date()
	candidate := dueDateIn(year, month, dueDay, rule)

	// Anchor holds the unclamped month the first installment falls in.
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	todayDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if todayDate.After(candidate) {
		anchor = anchor.AddDate(0, 1, 0)
	}

	dates := make([]time.Time, 0, count)
	for k := 0; k < count; k++ {
		m := anchor.AddDate(0, k, 0)
		dates = append(dates, dueDateIn(m.Year(), m.Month(), dueDay, rule))
	}
	return dates
}

func dueDateIn(year int, month time.Month, day int, rule domain.DueDateRule) time.Time {
	if rule == domain.DueDateClampToLastDay {
		if last := daysInMonth(year, month); day > last {
			day = last
		}
	}
	// Under the strict rule an invalid day normalizes forward (Feb 31 ends
	// up in early March); choosing a day valid for every month is the
	// caller's responsibility.
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
