package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is an immutable record of one applied attendance edit with the
// entry's totals as they were right after it.
type Entry struct {
	ID               string
	TimesheetEntryID string
	PayPeriodID      string
	EmployeeID       string
	EmployeeName     string
	FieldName        string
	FieldValue       string
	TotalDays        decimal.Decimal
	Total            decimal.Decimal
	CreatedAt        time.Time
}
