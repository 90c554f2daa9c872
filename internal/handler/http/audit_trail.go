package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type AuditTrailHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditTrailHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditTrailHandler(auditService audit.AuditService) AuditTrailHandler {
	return &auditTrailHandlerImpl{
		auditService: auditService,
	}
}

// List implements AuditTrailHandler
func (h *auditTrailHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := audit.Filter{Sort: query.Get("sort")}

	var errs validator.ValidationErrors
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"page", &filter.Page},
		{"limit", &filter.Limit},
	} {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: p.name, Message: p.name + " must be a number"})
			continue
		}
		*p.dst = n
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	if v := query.Get("payPeriod"); v != "" {
		filter.PayPeriodID = &v
	}
	if v := query.Get("employeeId"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("timesheetEntryId"); v != "" {
		filter.TimesheetEntryID = &v
	}

	result, err := h.auditService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Entries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
		HasPrev:    result.HasPrev,
		HasNext:    result.HasNext,
	})
}
