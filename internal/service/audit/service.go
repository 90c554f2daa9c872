package audit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	auditRepo audit.AuditRepository
}

func NewAuditService(auditRepo audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// Record implements audit.AuditService.
func (s *AuditServiceImpl) Record(ctx context.Context, req audit.RecordRequest) (audit.Entry, error) {
	if err := req.Validate(); err != nil {
		return audit.Entry{}, err
	}

	entry, err := s.auditRepo.Create(ctx, audit.Entry{
		TimesheetEntryID: req.TimesheetEntryID,
		PayPeriodID:      req.PayPeriodID,
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		FieldName:        req.FieldName,
		FieldValue:       req.FieldValue,
		TotalDays:        req.TotalDays,
		Total:            req.Total,
	})
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to record audit trail entry: %w", err)
	}
	return entry, nil
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, filter audit.Filter) (audit.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return audit.ListResponse{}, err
	}

	entries, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return audit.ListResponse{}, fmt.Errorf("failed to list audit trail entries: %w", err)
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapAuditEntryToResponse(e))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return audit.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		HasPrev:    filter.Page > 1,
		HasNext:    filter.Page < totalPages,
		Entries:    responses,
	}, nil
}

func mapAuditEntryToResponse(e audit.Entry) audit.EntryResponse {
	return audit.EntryResponse{
		ID:               e.ID,
		TimesheetEntryID: e.TimesheetEntryID,
		PayPeriodID:      e.PayPeriodID,
		EmployeeID:       e.EmployeeID,
		EmployeeName:     e.EmployeeName,
		FieldName:        e.FieldName,
		FieldValue:       e.FieldValue,
		TotalDays:        e.TotalDays,
		Total:            e.Total,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339Nano),
	}
}
