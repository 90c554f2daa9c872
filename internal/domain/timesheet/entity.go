package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/shopspring/decimal"
)

// snapThreshold is the fractional remainder above which totalDays is rounded
// to one decimal place.
var snapThreshold = decimal.RequireFromString("0.70")

type Entry struct {
	ID               string
	PayPeriodID      string
	EmployeeID       string
	EmployeeName     string
	EmployeePosition string
	PayrollData      Grid
	TotalDays        decimal.Decimal
	TotalShifts      int
	PayRate          decimal.Decimal
	Cash             decimal.Decimal
	Payroll          decimal.Decimal
	Total            decimal.Decimal
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewEntry materializes an empty attendance grid for emp over the given days.
func NewEntry(payPeriodID string, days []payperiod.Day, emp employee.Employee) Entry {
	grid := NewGrid()
	for _, d := range days {
		date := payperiod.NormalizeDate(d.Date)
		grid.Put(payperiod.DateKey(date), DayCell{DayName: d.DayName, Date: date})
	}

	payRate := emp.PayRate()
	cash := emp.CashSplit(payRate)

	return Entry{
		PayPeriodID:      payPeriodID,
		EmployeeID:       emp.ID,
		EmployeeName:     emp.EmployeeName,
		EmployeePosition: emp.Position,
		PayrollData:      grid,
		TotalDays:        decimal.Zero,
		PayRate:          payRate,
		Cash:             cash,
		Payroll:          payRate.Sub(cash),
		Total:            decimal.Zero,
	}
}

// ApplyEdit sets one shift slot of one day and recomputes the totals from the
// whole grid. On error the entry is left untouched.
func (e *Entry) ApplyEdit(emp employee.Employee, dayKey string, slot employee.Shift, code Code) error {
	if !slot.IsValid() {
		return ErrInvalidFieldName
	}
	if !code.IsValid() {
		return ErrInvalidFieldValue
	}
	if !emp.Rate(slot).IsPositive() {
		return ErrShiftNotApplicable
	}
	cell, ok := e.PayrollData.Get(dayKey)
	if !ok {
		return ErrDayNotFound
	}

	cell.Set(slot, code)
	e.PayrollData.Put(dayKey, cell)
	e.Recompute(emp)
	return nil
}

// Recompute derives totalDays, totalShifts and the monetary fields from the
// grid and the employee's current increment and cash split.
func (e *Entry) Recompute(emp employee.Employee) {
	totalUnits := decimal.Zero
	totalShifts := 0
	for _, key := range e.PayrollData.Keys() {
		cell, _ := e.PayrollData.Get(key)
		matches := cell.Matches()
		totalUnits = totalUnits.Add(emp.DayIncrementValue.Mul(decimal.NewFromInt(int64(matches))))
		totalShifts += matches
	}

	e.TotalDays = SnapDays(totalUnits)
	e.TotalShifts = totalShifts
	e.RefreshTotals(emp)
}

// RefreshTotals recomputes total, cash and payroll from totalDays and payRate.
func (e *Entry) RefreshTotals(emp employee.Employee) {
	e.Total = e.TotalDays.Mul(e.PayRate)
	e.Cash = emp.CashSplit(e.Total)
	e.Payroll = e.Total.Sub(e.Cash)
}

// SnapDays rounds units to one decimal place when its fractional part is
// greater than 0.70, and returns it unchanged otherwise.
func SnapDays(units decimal.Decimal) decimal.Decimal {
	frac := units.Sub(units.Floor())
	if frac.GreaterThan(snapThreshold) {
		return units.Round(1)
	}
	return units
}

// PatchEmployee refreshes the snapshotted employee fields and the monetary
// totals after an employee update without rebuilding the grid.
func (e *Entry) PatchEmployee(emp employee.Employee) {
	e.EmployeeName = emp.EmployeeName
	e.EmployeePosition = emp.Position
	e.PayRate = emp.PayRate()
	e.RefreshTotals(emp)
}

// Clone returns a copy of the entry that shares no state with e.
func (e Entry) Clone() Entry {
	out := e
	out.PayrollData = e.PayrollData.Clone()
	if e.Notes != nil {
		notes := *e.Notes
		out.Notes = &notes
	}
	return out
}
