package timesheet

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateAttendanceRequest struct {
	EmployeeID     string `json:"employeeId"`
	PayrollDataKey string `json:"payrollDataKey"`
	FieldName      string `json:"fieldName"`
	FieldValue     string `json:"fieldValue"`
}

// Validate checks the request shape and normalizes PayrollDataKey to a
// "YYYY-MM-DD" key. Field name and value are checked when the edit is applied.
func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "must be a valid UUID"})
	}

	if validator.IsEmpty(r.PayrollDataKey) {
		errs = append(errs, validator.ValidationError{Field: "payrollDataKey", Message: "is required"})
	} else if day, ok := validator.ParseDay(r.PayrollDataKey); !ok {
		errs = append(errs, validator.ValidationError{Field: "payrollDataKey", Message: "must be a date (YYYY-MM-DD)"})
	} else {
		r.PayrollDataKey = payperiod.DateKey(day)
	}

	r.FieldName = strings.TrimSpace(r.FieldName)
	r.FieldValue = strings.TrimSpace(r.FieldValue)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateNotesRequest struct {
	EmployeeID  string `json:"employeeId"`
	PayPeriodID string `json:"payPeriodId,omitempty"`
	Notes       string `json:"notes"`
}

func (r *UpdateNotesRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "must be a valid UUID"})
	}
	if r.PayPeriodID != "" && !validator.IsValidUUID(r.PayPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "payPeriodId", Message: "must be a valid UUID"})
	}
	if validator.ExceedsLength(r.Notes, 2000) {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "must not exceed 2000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Export formats.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

type ExportRequest struct {
	PayPeriodID string
	Format      string
}

func (r *ExportRequest) Validate() error {
	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = ExportFormatXLSX
	}
	if r.Format != ExportFormatXLSX && r.Format != ExportFormatPDF {
		return ErrInvalidExportFormat
	}
	if !validator.IsValidUUID(r.PayPeriodID) {
		return payperiod.ErrInvalidPayPeriodID
	}
	return nil
}

// ExportFile is a rendered timesheet document.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type EntryResponse struct {
	ID               string          `json:"id"`
	PayPeriodID      string          `json:"payPeriodId"`
	EmployeeID       string          `json:"employeeId"`
	EmployeeName     string          `json:"employeeName"`
	EmployeePosition string          `json:"employeePosition"`
	Aid              *string         `json:"aid"`
	PayrollData      Grid            `json:"payrollData"`
	TotalDays        decimal.Decimal `json:"totalDays"`
	TotalShifts      int             `json:"totalShifts"`
	PayRate          decimal.Decimal `json:"payRate"`
	Cash             decimal.Decimal `json:"cash"`
	Payroll          decimal.Decimal `json:"payroll"`
	Total            decimal.Decimal `json:"total"`
	Notes            *string         `json:"notes"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

type TimesheetResponse struct {
	PayPeriod payperiod.PayPeriodResponse `json:"payPeriod"`
	Days      []payperiod.DayResponse     `json:"days"`
	Entries   []EntryResponse             `json:"entries"`
}
