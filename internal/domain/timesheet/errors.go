package timesheet

import "errors"

var (
	ErrInvalidFieldName    = errors.New("invalid fieldName: must be one of am, mid, pm, lt")
	ErrInvalidFieldValue   = errors.New("invalid fieldValue: must be one of A, P, E, S, V")
	ErrShiftNotApplicable  = errors.New("this shift is not applicable to the employee")
	ErrDayNotFound         = errors.New("payrollDataKey is not a day of this pay period")
	ErrEntryNotFound       = errors.New("timesheet entry not found")
	ErrEntryExists         = errors.New("timesheet entry already exists for this employee and pay period")
	ErrInvalidExportFormat = errors.New("invalid export format: must be xlsx or pdf")
)
