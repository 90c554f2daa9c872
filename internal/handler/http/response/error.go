package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var aidConflict *employee.AidConflictError
	if errors.As(err, &aidConflict) {
		Conflict(w, aidConflict.Error())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrAidNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeNameExists),
		errors.Is(err, employee.ErrAidAlreadyLinked):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInvalidEmployeeID),
		errors.Is(err, employee.ErrAidIsSelf),
		errors.Is(err, employee.ErrAidNotAnAid),
		errors.Is(err, employee.ErrNoEmployees),
		errors.Is(err, employee.ErrNoEmployeeIDs):
		BadRequest(w, err.Error(), nil)

	// Pay period domain errors
	case errors.Is(err, payperiod.ErrPayPeriodNotFound),
		errors.Is(err, payperiod.ErrNoCurrentPayPeriod):
		NotFound(w, err.Error())
	case errors.Is(err, payperiod.ErrPayPeriodExists):
		Conflict(w, err.Error())
	case errors.Is(err, payperiod.ErrStartDateRequired),
		errors.Is(err, payperiod.ErrInvalidStartDate),
		errors.Is(err, payperiod.ErrStartDateNotMonday),
		errors.Is(err, payperiod.ErrInvalidPayPeriodID):
		BadRequest(w, err.Error(), nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEntryNotFound),
		errors.Is(err, timesheet.ErrDayNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, timesheet.ErrEntryExists):
		Conflict(w, err.Error())
	case errors.Is(err, timesheet.ErrShiftNotApplicable):
		NotApplicable(w, err.Error())
	case errors.Is(err, timesheet.ErrInvalidFieldName),
		errors.Is(err, timesheet.ErrInvalidFieldValue),
		errors.Is(err, timesheet.ErrInvalidExportFormat):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
