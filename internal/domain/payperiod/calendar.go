package payperiod

import (
	"time"
)

// workdayOffsets are the Mon-Fri offsets of both weeks, skipping the weekend.
var workdayOffsets = []int{0, 1, 2, 3, 4, 7, 8, 9, 10, 11}

// Calendar is the derived shape of a pay period before it is persisted.
type Calendar struct {
	StartDate time.Time
	EndDate   time.Time
	Days      []Day
}

// GenerateCalendar derives the end date and the ten working days of the pay
// period starting on start. The weekday is evaluated in UTC; start must be a
// Monday.
func GenerateCalendar(start time.Time) (Calendar, error) {
	start = NormalizeDate(start)
	if start.Weekday() != time.Monday {
		return Calendar{}, ErrStartDateNotMonday
	}

	days := make([]Day, 0, len(workdayOffsets))
	for _, offset := range workdayOffsets {
		date := start.AddDate(0, 0, offset)
		days = append(days, Day{
			DayName: date.Weekday().String(),
			Date:    date,
		})
	}

	return Calendar{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, SpanDays),
		Days:      days,
	}, nil
}

// MondayOf returns the Monday (UTC) of the week containing t.
func MondayOf(t time.Time) time.Time {
	t = NormalizeDate(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// NextStartCovering returns the first biweekly start after current whose period
// ends on or after day. Periods are laid end to end every 14 days.
func NextStartCovering(current PayPeriod, day time.Time) time.Time {
	day = NormalizeDate(day)
	next := NormalizeDate(current.StartDate).AddDate(0, 0, 14)
	for next.AddDate(0, 0, SpanDays).Before(day) {
		next = next.AddDate(0, 0, 14)
	}
	return next
}
