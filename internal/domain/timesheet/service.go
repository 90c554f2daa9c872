package timesheet

import "context"

type TimesheetService interface {
	GetCurrentTimesheet(ctx context.Context) (TimesheetResponse, error)
	GetTimesheet(ctx context.Context, payPeriodID string) (TimesheetResponse, error)
	// UpdateAttendance applies one attendance edit to the employee's entry in
	// the current pay period and records it in the audit trail.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (EntryResponse, error)
	UpdateNotes(ctx context.Context, req UpdateNotesRequest) (EntryResponse, error)
	ExportTimesheet(ctx context.Context, req ExportRequest) (ExportFile, error)
}
