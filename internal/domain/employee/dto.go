package employee

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	maxNameLength     = 255
	maxPositionLength = 100
)

type CreateEmployeeRequest struct {
	EmployeeName     string           `json:"employeeName"`
	Position         string           `json:"position"`
	AMRate           *decimal.Decimal `json:"amRate,omitempty"`
	MidRate          *decimal.Decimal `json:"midRate,omitempty"`
	PMRate           *decimal.Decimal `json:"pmRate,omitempty"`
	LTRate           *decimal.Decimal `json:"ltRate,omitempty"`
	CashSplitPercent *decimal.Decimal `json:"cashSplitPercent,omitempty"`
	IsActive         *bool            `json:"isActive,omitempty"`
	Aid              *string          `json:"aid,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeName = strings.TrimSpace(r.EmployeeName)
	r.Position = strings.TrimSpace(r.Position)

	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{Field: "employeeName", Message: "is required"})
	} else if validator.ExceedsLength(r.EmployeeName, maxNameLength) {
		errs = append(errs, validator.ValidationError{Field: "employeeName", Message: "must be at most 255 characters"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "is required"})
	} else if validator.ExceedsLength(r.Position, maxPositionLength) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "must be at most 100 characters"})
	}

	errs = append(errs, validateRates(r.AMRate, r.MidRate, r.PMRate, r.LTRate)...)

	if r.CashSplitPercent == nil || !validator.IsPercent(*r.CashSplitPercent) {
		errs = append(errs, validator.ValidationError{Field: "cashSplitPercent", Message: "must be between 0 and 100"})
	}
	if r.Aid != nil && *r.Aid != "" && !validator.IsValidUUID(*r.Aid) {
		errs = append(errs, validator.ValidationError{Field: "aid", Message: "must be a valid employee id"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEmployee builds the employee described by r with defaults applied and the
// day increment derived.
func (r CreateEmployeeRequest) ToEmployee() Employee {
	e := Employee{
		EmployeeName:     r.EmployeeName,
		Position:         r.Position,
		AMRate:           valueOrZero(r.AMRate),
		MidRate:          valueOrZero(r.MidRate),
		PMRate:           valueOrZero(r.PMRate),
		LTRate:           valueOrZero(r.LTRate),
		CashSplitPercent: valueOrZero(r.CashSplitPercent),
		IsActive:         true,
	}
	if r.IsActive != nil {
		e.IsActive = *r.IsActive
	}
	if r.Aid != nil && *r.Aid != "" {
		aid := *r.Aid
		e.AidID = &aid
	}
	e.RefreshDayIncrement()
	return e
}

// UpdateEmployeeRequest carries a partial update. An empty Aid clears the link.
type UpdateEmployeeRequest struct {
	ID               string           `json:"-"`
	EmployeeName     *string          `json:"employeeName,omitempty"`
	Position         *string          `json:"position,omitempty"`
	AMRate           *decimal.Decimal `json:"amRate,omitempty"`
	MidRate          *decimal.Decimal `json:"midRate,omitempty"`
	PMRate           *decimal.Decimal `json:"pmRate,omitempty"`
	LTRate           *decimal.Decimal `json:"ltRate,omitempty"`
	CashSplitPercent *decimal.Decimal `json:"cashSplitPercent,omitempty"`
	IsActive         *bool            `json:"isActive,omitempty"`
	Aid              *string          `json:"aid,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid employee id"})
	}
	if r.EmployeeName != nil {
		name := strings.TrimSpace(*r.EmployeeName)
		r.EmployeeName = &name
		if validator.IsEmpty(name) {
			errs = append(errs, validator.ValidationError{Field: "employeeName", Message: "is required"})
		} else if validator.ExceedsLength(name, maxNameLength) {
			errs = append(errs, validator.ValidationError{Field: "employeeName", Message: "must be at most 255 characters"})
		}
	}
	if r.Position != nil {
		position := strings.TrimSpace(*r.Position)
		r.Position = &position
		if validator.IsEmpty(position) {
			errs = append(errs, validator.ValidationError{Field: "position", Message: "is required"})
		} else if validator.ExceedsLength(position, maxPositionLength) {
			errs = append(errs, validator.ValidationError{Field: "position", Message: "must be at most 100 characters"})
		}
	}

	errs = append(errs, validateRates(r.AMRate, r.MidRate, r.PMRate, r.LTRate)...)

	if r.CashSplitPercent != nil && !validator.IsPercent(*r.CashSplitPercent) {
		errs = append(errs, validator.ValidationError{Field: "cashSplitPercent", Message: "must be between 0 and 100"})
	}
	if r.Aid != nil && *r.Aid != "" && !validator.IsValidUUID(*r.Aid) {
		errs = append(errs, validator.ValidationError{Field: "aid", Message: "must be a valid employee id"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply returns e with the request's fields merged in and the day increment
// recomputed.
func (r UpdateEmployeeRequest) Apply(e Employee) Employee {
	if r.EmployeeName != nil {
		e.EmployeeName = *r.EmployeeName
	}
	if r.Position != nil {
		e.Position = *r.Position
	}
	if r.AMRate != nil {
		e.AMRate = *r.AMRate
	}
	if r.MidRate != nil {
		e.MidRate = *r.MidRate
	}
	if r.PMRate != nil {
		e.PMRate = *r.PMRate
	}
	if r.LTRate != nil {
		e.LTRate = *r.LTRate
	}
	if r.CashSplitPercent != nil {
		e.CashSplitPercent = *r.CashSplitPercent
	}
	if r.IsActive != nil {
		e.IsActive = *r.IsActive
	}
	if r.Aid != nil {
		if *r.Aid == "" {
			e.AidID = nil
		} else {
			aid := *r.Aid
			e.AidID = &aid
		}
	}
	e.RefreshDayIncrement()
	return e
}

func validateRates(rates ...*decimal.Decimal) validator.ValidationErrors {
	fields := []string{"amRate", "midRate", "pmRate", "ltRate"}
	var errs validator.ValidationErrors
	for i, rate := range rates {
		if validator.IsNegative(rate) {
			errs = append(errs, validator.ValidationError{Field: fields[i], Message: "rates cannot be negative"})
		}
	}
	return errs
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

type BulkCreateEmployeeRequest struct {
	Employees []CreateEmployeeRequest `json:"employees"`
}

type BulkDeleteEmployeeRequest struct {
	IDs []string `json:"ids"`
}

type AidSummary struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position"`
}

type EmployeeResponse struct {
	ID                string          `json:"id"`
	EmployeeName      string          `json:"employeeName"`
	Position          string          `json:"position"`
	AMRate            decimal.Decimal `json:"amRate"`
	MidRate           decimal.Decimal `json:"midRate"`
	PMRate            decimal.Decimal `json:"pmRate"`
	LTRate            decimal.Decimal `json:"ltRate"`
	CashSplitPercent  decimal.Decimal `json:"cashSplitPercent"`
	DayIncrementValue decimal.Decimal `json:"dayIncrementValue"`
	IsActive          bool            `json:"isActive"`
	Aid               *AidSummary     `json:"aid,omitempty"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
}

// BulkCreateFailure reports one rejected item of a bulk create by its index in
// the request.
type BulkCreateFailure struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type BulkCreateEmployeeResponse struct {
	InsertedCount int                 `json:"insertedCount"`
	FailedCount   int                 `json:"failedCount"`
	Failed        []BulkCreateFailure `json:"failed"`
	Inserted      []EmployeeResponse  `json:"inserted"`
}

type BulkDeleteEmployeeResponse struct {
	DeletedCount          int64 `json:"deletedCount"`
	TimesheetDeletedCount int64 `json:"timesheetDeletedCount"`
}
