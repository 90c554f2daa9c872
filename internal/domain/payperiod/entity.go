package payperiod

import "time"

// DateKeyLayout is the layout of the string keys that identify a working day.
const DateKeyLayout = "2006-01-02"

// SpanDays is the calendar distance between a pay period's start and end.
const SpanDays = 11

type PayPeriod struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether day falls within the period, inclusive.
func (p PayPeriod) Contains(day time.Time) bool {
	day = NormalizeDate(day)
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// Day is one working day of a pay period.
type Day struct {
	ID          string
	PayPeriodID string
	DayName     string
	Date        time.Time
}

// Key returns the "YYYY-MM-DD" key of the day.
func (d Day) Key() string {
	return DateKey(d.Date)
}

// Globals is the singleton holding the current pay period pointer.
type Globals struct {
	CurrentPayPeriodID *string
	AutoCreate         bool
	UpdatedAt          time.Time
}

// HasCurrent reports whether a current pay period is designated.
func (g Globals) HasCurrent() bool {
	return g.CurrentPayPeriodID != nil && *g.CurrentPayPeriodID != ""
}

// NormalizeDate truncates t to midnight UTC of its UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats t as a "YYYY-MM-DD" UTC key.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}
