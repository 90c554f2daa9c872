package timesheet

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func testDays(t *testing.T) []payperiod.Day {
	t.Helper()
	cal, err := payperiod.GenerateCalendar(time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return cal.Days
}

func newEmployee(am, mid, pm, lt, pct string) employee.Employee {
	e := employee.Employee{
		ID:               "0190f0a8-0000-7000-8000-000000000001",
		EmployeeName:     "Jane Doe",
		Position:         "Driver",
		AMRate:           decimal.RequireFromString(am),
		MidRate:          decimal.RequireFromString(mid),
		PMRate:           decimal.RequireFromString(pm),
		LTRate:           decimal.RequireFromString(lt),
		CashSplitPercent: decimal.RequireFromString(pct),
		IsActive:         true,
	}
	e.RefreshDayIncrement()
	return e
}

func TestNewEntry(t *testing.T) {
	days := testDays(t)
	emp := newEmployee("10", "10", "0", "0", "20")

	entry := NewEntry("period-1", days, emp)

	assert.Equal(t, "period-1", entry.PayPeriodID)
	assert.Equal(t, emp.ID, entry.EmployeeID)
	assert.Equal(t, "Jane Doe", entry.EmployeeName)
	assert.Equal(t, "Driver", entry.EmployeePosition)
	require.Equal(t, 10, entry.PayrollData.Len())
	for i, key := range entry.PayrollData.Keys() {
		assert.Equal(t, days[i].Key(), key)
		cell, ok := entry.PayrollData.Get(key)
		require.True(t, ok)
		assert.Equal(t, days[i].DayName, cell.DayName)
		for _, s := range employee.Shifts {
			assert.Equal(t, CodeEmpty, cell.Get(s))
		}
	}
	assertDecimal(t, "20", entry.PayRate)
	assertDecimal(t, "4", entry.Cash)
	assertDecimal(t, "16", entry.Payroll)
	assertDecimal(t, "0", entry.TotalDays)
	assertDecimal(t, "0", entry.Total)
}

func TestApplyEdit_Scenario(t *testing.T) {
	emp := newEmployee("10", "10", "0", "0", "20")
	entry := NewEntry("period-1", testDays(t), emp)

	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftAM, CodePresent))

	cell, _ := entry.PayrollData.Get("2025-01-06")
	assert.Equal(t, CodePresent, cell.AM)
	assertDecimal(t, "0.5", entry.TotalDays)
	assert.Equal(t, 1, entry.TotalShifts)
	assertDecimal(t, "10", entry.Total)
	assertDecimal(t, "2", entry.Cash)
	assertDecimal(t, "8", entry.Payroll)
}

func TestApplyEdit_Errors(t *testing.T) {
	emp := newEmployee("10", "0", "0", "0", "20")

	tests := []struct {
		name    string
		dayKey  string
		slot    employee.Shift
		code    Code
		wantErr error
	}{
		{"unknown slot", "2025-01-06", employee.Shift("night"), CodePresent, ErrInvalidFieldName},
		{"unknown code", "2025-01-06", employee.ShiftAM, Code("X"), ErrInvalidFieldValue},
		{"empty code", "2025-01-06", employee.ShiftAM, CodeEmpty, ErrInvalidFieldValue},
		{"zero rate slot", "2025-01-06", employee.ShiftMid, CodePresent, ErrShiftNotApplicable},
		{"weekend day", "2025-01-11", employee.ShiftAM, CodePresent, ErrDayNotFound},
		{"outside period", "2025-02-03", employee.ShiftAM, CodePresent, ErrDayNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewEntry("period-1", testDays(t), emp)
			before := entry.Clone()

			err := entry.ApplyEdit(emp, tt.dayKey, tt.slot, tt.code)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, before.PayrollData, entry.PayrollData)
			assert.True(t, before.TotalDays.Equal(entry.TotalDays))
			assert.True(t, before.Cash.Equal(entry.Cash))
		})
	}
}

func TestApplyEdit_OnlyPresentEarnsCredit(t *testing.T) {
	emp := newEmployee("10", "10", "10", "10", "0")
	entry := NewEntry("period-1", testDays(t), emp)

	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftAM, CodeAbsent))
	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftMid, CodeExcused))
	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftPM, CodeSick))
	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftLT, CodeVacation))

	assertDecimal(t, "0", entry.TotalDays)
	assert.Equal(t, 0, entry.TotalShifts)

	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftLT, CodePresent))
	assertDecimal(t, "0.25", entry.TotalDays)
	assert.Equal(t, 1, entry.TotalShifts)
}

func TestApplyEdit_Idempotent(t *testing.T) {
	emp := newEmployee("10", "10", "0", "0", "20")
	entry := NewEntry("period-1", testDays(t), emp)

	require.NoError(t, entry.ApplyEdit(emp, "2025-01-07", employee.ShiftMid, CodePresent))
	first := entry.Clone()
	require.NoError(t, entry.ApplyEdit(emp, "2025-01-07", employee.ShiftMid, CodePresent))

	assert.Equal(t, first.PayrollData, entry.PayrollData)
	assert.True(t, first.TotalDays.Equal(entry.TotalDays))
	assert.True(t, first.Total.Equal(entry.Total))
	assert.True(t, first.Cash.Equal(entry.Cash))
	assert.True(t, first.Payroll.Equal(entry.Payroll))
}

func TestApplyEdit_OrderIndependent(t *testing.T) {
	emp := newEmployee("10", "10", "10", "0", "35")
	edits := []struct {
		day  string
		slot employee.Shift
		code Code
	}{
		{"2025-01-06", employee.ShiftAM, CodePresent},
		{"2025-01-08", employee.ShiftPM, CodePresent},
		{"2025-01-13", employee.ShiftMid, CodePresent},
		{"2025-01-17", employee.ShiftAM, CodeAbsent},
		{"2025-01-10", employee.ShiftPM, CodePresent},
	}

	forward := NewEntry("period-1", testDays(t), emp)
	for _, e := range edits {
		require.NoError(t, forward.ApplyEdit(emp, e.day, e.slot, e.code))
	}
	backward := NewEntry("period-1", testDays(t), emp)
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		require.NoError(t, backward.ApplyEdit(emp, e.day, e.slot, e.code))
	}

	assert.Equal(t, forward.PayrollData, backward.PayrollData)
	assert.True(t, forward.TotalDays.Equal(backward.TotalDays))
	assert.True(t, forward.Total.Equal(backward.Total))
	assert.True(t, forward.Cash.Equal(backward.Cash))
	assert.True(t, forward.Payroll.Equal(backward.Payroll))
	assert.Equal(t, forward.TotalShifts, backward.TotalShifts)
}

func TestRecompute_Snapping(t *testing.T) {
	quarter := newEmployee("10", "10", "10", "10", "0")
	third := newEmployee("10", "10", "10", "0", "0")

	mark := func(t *testing.T, e *Entry, emp employee.Employee, n int) {
		t.Helper()
		keys := e.PayrollData.Keys()
		marked := 0
		for _, key := range keys {
			for _, s := range employee.Shifts {
				if marked == n {
					return
				}
				if !emp.Rate(s).IsPositive() {
					continue
				}
				require.NoError(t, e.ApplyEdit(emp, key, s, CodePresent))
				marked++
			}
		}
	}

	tests := []struct {
		name   string
		emp    employee.Employee
		shifts int
		want   string
	}{
		{"2.75 snaps to 2.8", quarter, 11, "2.8"},
		{"2.5 is kept", quarter, 10, "2.5"},
		{"0.75 snaps to 0.8", quarter, 3, "0.8"},
		{"0.99 snaps to 1.0", third, 3, "1"},
		{"0.66 is kept", third, 2, "0.66"},
		{"whole days are kept", quarter, 8, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewEntry("period-1", testDays(t), tt.emp)
			mark(t, &entry, tt.emp, tt.shifts)
			assertDecimal(t, tt.want, entry.TotalDays)
			assert.Equal(t, tt.shifts, entry.TotalShifts)
		})
	}
}

func TestSnapDays(t *testing.T) {
	assertDecimal(t, "2.8", SnapDays(decimal.RequireFromString("2.75")))
	assertDecimal(t, "2.7", SnapDays(decimal.RequireFromString("2.70")))
	assertDecimal(t, "3", SnapDays(decimal.RequireFromString("2.96")))
	assertDecimal(t, "1.5", SnapDays(decimal.RequireFromString("1.5")))
}

func TestPatchEmployee(t *testing.T) {
	emp := newEmployee("10", "10", "0", "0", "20")
	entry := NewEntry("period-1", testDays(t), emp)

	emp.AMRate = decimal.NewFromInt(30)
	emp.EmployeeName = "Jane Roe"
	emp.RefreshDayIncrement()
	entry.PatchEmployee(emp)

	assert.Equal(t, "Jane Roe", entry.EmployeeName)
	assertDecimal(t, "40", entry.PayRate)
	assertDecimal(t, "0", entry.Total)
	assertDecimal(t, "0", entry.Cash)
	assertDecimal(t, "0", entry.Payroll)

	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftAM, CodePresent))
	emp.CashSplitPercent = decimal.NewFromInt(50)
	entry.PatchEmployee(emp)

	assertDecimal(t, "0.5", entry.TotalDays)
	assertDecimal(t, "20", entry.Total)
	assertDecimal(t, "10", entry.Cash)
	assertDecimal(t, "10", entry.Payroll)
}

func TestGrid_JSONKeepsDateOrder(t *testing.T) {
	entry := NewEntry("period-1", testDays(t), newEmployee("10", "0", "0", "0", "0"))

	data, err := json.Marshal(entry.PayrollData)
	require.NoError(t, err)

	var decoded Grid
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry.PayrollData.Keys(), decoded.Keys())

	first := string(data[2:12])
	assert.Equal(t, "2025-01-06", first)

	cell, ok := decoded.Get("2025-01-13")
	require.True(t, ok)
	assert.Equal(t, "Monday", cell.DayName)
	assert.True(t, cell.Date.Equal(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)))
}

func TestEntryClone_DoesNotShareGrid(t *testing.T) {
	emp := newEmployee("10", "0", "0", "0", "0")
	entry := NewEntry("period-1", testDays(t), emp)
	clone := entry.Clone()

	require.NoError(t, clone.ApplyEdit(emp, "2025-01-06", employee.ShiftAM, CodePresent))

	cell, _ := entry.PayrollData.Get("2025-01-06")
	assert.Equal(t, CodeEmpty, cell.AM)
}
