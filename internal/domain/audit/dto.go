package audit

import (
	"math"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*Limit within int.
	MaxPage = math.MaxInt / MaxLimit

	SortAsc  = "asc"
	SortDesc = "desc"
)

// RecordRequest describes the edit being recorded and the totals it produced.
type RecordRequest struct {
	TimesheetEntryID string
	PayPeriodID      string
	EmployeeID       string
	EmployeeName     string
	FieldName        string
	FieldValue       string
	TotalDays        decimal.Decimal
	Total            decimal.Decimal
}

func (r RecordRequest) Validate() error {
	if r.TimesheetEntryID == "" || r.PayPeriodID == "" {
		return ErrMissingReference
	}
	if r.FieldName == "" {
		return ErrInvalidFieldName
	}
	if r.FieldValue == "" {
		return ErrInvalidFieldValue
	}
	return nil
}

type Filter struct {
	PayPeriodID      *string
	EmployeeID       *string
	TimesheetEntryID *string

	Page  int
	Limit int

	// Sort orders by created_at then id: asc or desc.
	Sort string
}

// Validate applies defaults. Limit is clamped to MaxLimit.
func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.Page > MaxPage {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page is too large"})
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}

	for field, id := range map[string]*string{
		"payPeriod":        f.PayPeriodID,
		"employeeId":       f.EmployeeID,
		"timesheetEntryId": f.TimesheetEntryID,
	} {
		if id != nil && !validator.IsValidUUID(*id) {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be a valid UUID"})
		}
	}

	f.Sort = strings.ToLower(strings.TrimSpace(f.Sort))
	switch f.Sort {
	case "":
		f.Sort = SortDesc
	case SortAsc, SortDesc:
	default:
		errs = append(errs, validator.ValidationError{Field: "sort", Message: "sort must be one of: asc, desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Offset is the number of records skipped before the current page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type EntryResponse struct {
	ID               string          `json:"id"`
	TimesheetEntryID string          `json:"timesheetEntryId"`
	PayPeriodID      string          `json:"payPeriod"`
	EmployeeID       string          `json:"employeeId"`
	EmployeeName     string          `json:"employeeName"`
	FieldName        string          `json:"fieldName"`
	FieldValue       string          `json:"fieldValue"`
	TotalDays        decimal.Decimal `json:"totalDays"`
	Total            decimal.Decimal `json:"total"`
	CreatedAt        string          `json:"createdAt"`
}

type ListResponse struct {
	TotalCount int64           `json:"totalCount"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	HasPrev    bool            `json:"hasPrev"`
	HasNext    bool            `json:"hasNext"`
	Entries    []EntryResponse `json:"entries"`
}
