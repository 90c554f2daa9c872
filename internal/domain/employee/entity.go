package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Positions with pairing semantics. Any other position is free text.
const (
	PositionDriver = "Driver"
	PositionAid    = "Aid"
)

// Shift identifies one of the four tracked work sessions of a day.
type Shift string

const (
	ShiftAM  Shift = "am"
	ShiftMid Shift = "mid"
	ShiftPM  Shift = "pm"
	ShiftLT  Shift = "lt"
)

// Shifts lists every shift slot in display order.
var Shifts = []Shift{ShiftAM, ShiftMid, ShiftPM, ShiftLT}

// IsValid reports whether s names a known shift slot.
func (s Shift) IsValid() bool {
	switch s {
	case ShiftAM, ShiftMid, ShiftPM, ShiftLT:
		return true
	}
	return false
}

type Employee struct {
	ID                string
	EmployeeName      string
	Position          string
	AMRate            decimal.Decimal
	MidRate           decimal.Decimal
	PMRate            decimal.Decimal
	LTRate            decimal.Decimal
	CashSplitPercent  decimal.Decimal
	DayIncrementValue decimal.Decimal
	AidID             *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Rate returns the employee's rate for a shift slot.
func (e Employee) Rate(s Shift) decimal.Decimal {
	switch s {
	case ShiftAM:
		return e.AMRate
	case ShiftMid:
		return e.MidRate
	case ShiftPM:
		return e.PMRate
	case ShiftLT:
		return e.LTRate
	}
	return decimal.Zero
}

// Rates returns the four shift rates in slot order.
func (e Employee) Rates() []decimal.Decimal {
	return []decimal.Decimal{e.AMRate, e.MidRate, e.PMRate, e.LTRate}
}

// PayRate is the sum of the four shift rates.
func (e Employee) PayRate() decimal.Decimal {
	return decimal.Sum(decimal.Zero, e.Rates()...)
}

// CashSplit returns the cash share of amount.
func (e Employee) CashSplit(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(e.CashSplitPercent).Div(decimal.NewFromInt(100))
}

func (e Employee) IsDriver() bool { return e.Position == PositionDriver }

func (e Employee) IsAid() bool { return e.Position == PositionAid }

// RefreshDayIncrement recomputes DayIncrementValue from the current rates.
// It must run on every rate change.
func (e *Employee) RefreshDayIncrement() {
	e.DayIncrementValue = DayIncrementValue(e.Rates()...)
}

// DayIncrementValue is the day credit earned per worked shift: 1/n rounded to
// two places, where n is the number of strictly positive rates. Zero when no
// rate is positive.
func DayIncrementValue(rates ...decimal.Decimal) decimal.Decimal {
	var active int64
	for _, r := range rates {
		if r.IsPositive() {
			active++
		}
	}
	if active == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).DivRound(decimal.NewFromInt(active), 2)
}
