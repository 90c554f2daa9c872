package timesheet

import "context"

type TimesheetRepository interface {
	GetByEmployeeAndPayPeriod(ctx context.Context, employeeID, payPeriodID string) (Entry, error)
	// GetByEmployeeAndPayPeriodForUpdate locks the entry until the surrounding
	// transaction ends.
	GetByEmployeeAndPayPeriodForUpdate(ctx context.Context, employeeID, payPeriodID string) (Entry, error)
	// ListByPayPeriod returns entries in insertion order.
	ListByPayPeriod(ctx context.Context, payPeriodID string) ([]Entry, error)
	Create(ctx context.Context, e Entry) (Entry, error)
	CreateBatch(ctx context.Context, entries []Entry) ([]Entry, error)
	Update(ctx context.Context, e Entry) (Entry, error)
	DeleteByEmployeeIDs(ctx context.Context, employeeIDs []string) (int64, error)
}
