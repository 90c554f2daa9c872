package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	tx            database.Transactor
	timesheetRepo timesheet.TimesheetRepository
	employeeRepo  employee.EmployeeRepository
	payPeriodRepo payperiod.PayPeriodRepository
	globalsRepo   payperiod.GlobalsRepository
	auditService  audit.AuditService
}

func NewTimesheetService(
	tx database.Transactor,
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	payPeriodRepo payperiod.PayPeriodRepository,
	globalsRepo payperiod.GlobalsRepository,
	auditService audit.AuditService,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		tx:            tx,
		timesheetRepo: timesheetRepo,
		employeeRepo:  employeeRepo,
		payPeriodRepo: payPeriodRepo,
		globalsRepo:   globalsRepo,
		auditService:  auditService,
	}
}

func (s *TimesheetServiceImpl) currentPayPeriodID(ctx context.Context) (string, error) {
	globals, err := s.globalsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if !globals.HasCurrent() {
		return "", payperiod.ErrNoCurrentPayPeriod
	}
	return *globals.CurrentPayPeriodID, nil
}

// GetCurrentTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetCurrentTimesheet(ctx context.Context) (timesheet.TimesheetResponse, error) {
	periodID, err := s.currentPayPeriodID(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return s.GetTimesheet(ctx, periodID)
}

// GetTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, payPeriodID string) (timesheet.TimesheetResponse, error) {
	if !validator.IsValidUUID(payPeriodID) {
		return timesheet.TimesheetResponse{}, payperiod.ErrInvalidPayPeriodID
	}

	period, days, entries, employees, err := s.loadTimesheet(ctx, payPeriodID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	responses := make([]timesheet.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapEntryToResponse(e, employees[e.EmployeeID].AidID))
	}

	return timesheet.TimesheetResponse{
		PayPeriod: payperiod.NewPayPeriodResponse(period),
		Days:      payperiod.NewDayResponses(days),
		Entries:   responses,
	}, nil
}

// loadTimesheet returns a pay period with its days, its entries in display
// order and the owning employees keyed by ID.
func (s *TimesheetServiceImpl) loadTimesheet(ctx context.Context, payPeriodID string) (
	payperiod.PayPeriod, []payperiod.Day, []timesheet.Entry, map[string]employee.Employee, error,
) {
	period, err := s.payPeriodRepo.GetByID(ctx, payPeriodID)
	if err != nil {
		return payperiod.PayPeriod{}, nil, nil, nil, err
	}
	days, err := s.payPeriodRepo.GetDays(ctx, payPeriodID)
	if err != nil {
		return payperiod.PayPeriod{}, nil, nil, nil, err
	}
	entries, err := s.timesheetRepo.ListByPayPeriod(ctx, payPeriodID)
	if err != nil {
		return payperiod.PayPeriod{}, nil, nil, nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EmployeeID)
	}
	list, err := s.employeeRepo.ListByIDs(ctx, ids)
	if err != nil {
		return payperiod.PayPeriod{}, nil, nil, nil, fmt.Errorf("failed to load timesheet employees: %w", err)
	}
	employees := make(map[string]employee.Employee, len(list))
	for _, emp := range list {
		employees[emp.ID] = emp
	}

	return period, days, timesheet.OrderForDisplay(entries, employees), employees, nil
}

// UpdateAttendance implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) UpdateAttendance(ctx context.Context, req timesheet.UpdateAttendanceRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}
	slot := employee.Shift(req.FieldName)
	code := timesheet.Code(req.FieldValue)
	if !slot.IsValid() {
		return timesheet.EntryResponse{}, timesheet.ErrInvalidFieldName
	}
	if !code.IsValid() {
		return timesheet.EntryResponse{}, timesheet.ErrInvalidFieldValue
	}

	var (
		updated timesheet.Entry
		aidID   *string
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		periodID, err := s.currentPayPeriodID(ctx)
		if err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		aidID = emp.AidID

		entry, err := s.timesheetRepo.GetByEmployeeAndPayPeriodForUpdate(ctx, emp.ID, periodID)
		if err != nil {
			return err
		}

		if err := entry.ApplyEdit(emp, req.PayrollDataKey, slot, code); err != nil {
			return err
		}

		if _, err := s.auditService.Record(ctx, audit.RecordRequest{
			TimesheetEntryID: entry.ID,
			PayPeriodID:      entry.PayPeriodID,
			EmployeeID:       emp.ID,
			EmployeeName:     emp.EmployeeName,
			FieldName:        string(slot),
			FieldValue:       string(code),
			TotalDays:        entry.TotalDays,
			Total:            entry.Total,
		}); err != nil {
			return err
		}

		updated, err = s.timesheetRepo.Update(ctx, entry)
		return err
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	slog.Debug("attendance updated",
		"employee_id", updated.EmployeeID,
		"pay_period_id", updated.PayPeriodID,
		"day", req.PayrollDataKey,
		"field", req.FieldName,
		"value", req.FieldValue,
	)
	return mapEntryToResponse(updated, aidID), nil
}

// UpdateNotes implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) UpdateNotes(ctx context.Context, req timesheet.UpdateNotesRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	var (
		updated timesheet.Entry
		aidID   *string
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		periodID := req.PayPeriodID
		if periodID == "" {
			var err error
			if periodID, err = s.currentPayPeriodID(ctx); err != nil {
				return err
			}
		}

		entry, err := s.timesheetRepo.GetByEmployeeAndPayPeriodForUpdate(ctx, req.EmployeeID, periodID)
		if err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
		if err != nil {
			return err
		}
		aidID = emp.AidID

		notes := strings.TrimSpace(req.Notes)
		if notes == "" {
			entry.Notes = nil
		} else {
			entry.Notes = &notes
		}

		updated, err = s.timesheetRepo.Update(ctx, entry)
		return err
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	return mapEntryToResponse(updated, aidID), nil
}

// ExportTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ExportTimesheet(ctx context.Context, req timesheet.ExportRequest) (timesheet.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ExportFile{}, err
	}

	period, days, entries, _, err := s.loadTimesheet(ctx, req.PayPeriodID)
	if err != nil {
		return timesheet.ExportFile{}, err
	}

	sheet := buildSheet(period, days, entries)
	name := fmt.Sprintf("timesheet-%s.%s", payperiod.DateKey(period.StartDate), req.Format)

	switch req.Format {
	case timesheet.ExportFormatPDF:
		data, err := export.PDF(sheet)
		if err != nil {
			return timesheet.ExportFile{}, err
		}
		return timesheet.ExportFile{FileName: name, ContentType: export.ContentTypePDF, Data: data}, nil
	default:
		data, err := export.XLSX(sheet)
		if err != nil {
			return timesheet.ExportFile{}, err
		}
		return timesheet.ExportFile{FileName: name, ContentType: export.ContentTypeXLSX, Data: data}, nil
	}
}

// buildSheet lays out one row per entry: identity, one column per day holding
// the am/mid/pm/lt codes, then the totals.
func buildSheet(period payperiod.PayPeriod, days []payperiod.Day, entries []timesheet.Entry) export.Sheet {
	headers := []string{"Employee", "Position"}
	for _, d := range days {
		headers = append(headers, d.Date.Format("Mon 01/02"))
	}
	headers = append(headers, "Total Days", "Shifts", "Pay Rate", "Total", "Cash", "Payroll", "Notes")

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{e.EmployeeName, e.EmployeePosition}
		for _, d := range days {
			row = append(row, formatCell(e.PayrollData, d.Key()))
		}
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		row = append(row,
			e.TotalDays.String(),
			fmt.Sprintf("%d", e.TotalShifts),
			e.PayRate.StringFixed(2),
			e.Total.StringFixed(2),
			e.Cash.StringFixed(2),
			e.Payroll.StringFixed(2),
			notes,
		)
		rows = append(rows, row)
	}

	return export.Sheet{
		Name:     "Timesheet",
		Title:    fmt.Sprintf("Timesheet %s to %s", payperiod.DateKey(period.StartDate), payperiod.DateKey(period.EndDate)),
		Subtitle: "Codes per day: am/mid/pm/lt (A absent, P present, E excused, S sick, V vacation)",
		Headers:  headers,
		Rows:     rows,
	}
}

func formatCell(grid timesheet.Grid, key string) string {
	cell, ok := grid.Get(key)
	if !ok {
		return ""
	}
	codes := make([]string, 0, len(employee.Shifts))
	for _, s := range employee.Shifts {
		code := string(cell.Get(s))
		if code == "" {
			code = "-"
		}
		codes = append(codes, code)
	}
	return strings.Join(codes, "/")
}

func mapEntryToResponse(e timesheet.Entry, aidID *string) timesheet.EntryResponse {
	return timesheet.EntryResponse{
		ID:               e.ID,
		PayPeriodID:      e.PayPeriodID,
		EmployeeID:       e.EmployeeID,
		EmployeeName:     e.EmployeeName,
		EmployeePosition: e.EmployeePosition,
		Aid:              aidID,
		PayrollData:      e.PayrollData,
		TotalDays:        e.TotalDays,
		TotalShifts:      e.TotalShifts,
		PayRate:          e.PayRate,
		Cash:             e.Cash,
		Payroll:          e.Payroll,
		Total:            e.Total,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
}
