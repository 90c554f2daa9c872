package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx            database.Transactor
	employeeRepo  employee.EmployeeRepository
	payPeriodRepo payperiod.PayPeriodRepository
	globalsRepo   payperiod.GlobalsRepository
	timesheetRepo timesheet.TimesheetRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	payPeriodRepo payperiod.PayPeriodRepository,
	globalsRepo payperiod.GlobalsRepository,
	timesheetRepo timesheet.TimesheetRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:            tx,
		employeeRepo:  employeeRepo,
		payPeriodRepo: payPeriodRepo,
		globalsRepo:   globalsRepo,
		timesheetRepo: timesheetRepo,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		var aid *employee.Employee
		if e.AidID != nil {
			if a, ok := byID[*e.AidID]; ok {
				aid = &a
			}
		}
		responses = append(responses, mapEmployeeToResponse(e, aid))
	}
	return responses, nil
}

// ListAids implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListAids(ctx context.Context) ([]employee.EmployeeResponse, error) {
	aids, err := s.employeeRepo.ListByPosition(ctx, employee.PositionAid)
	if err != nil {
		return nil, fmt.Errorf("failed to list aids: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(aids))
	for _, a := range aids {
		responses = append(responses, mapEmployeeToResponse(a, nil))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrInvalidEmployeeID
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(ctx, emp)
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.create(ctx, req.ToEmployee())
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "position", created.Position)
	return s.toResponse(ctx, created)
}

// create inserts emp and materializes its entry in the current pay period.
// It must run inside a transaction.
func (s *EmployeeServiceImpl) create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	if !emp.IsDriver() {
		emp.AidID = nil
	}
	if err := s.checkAid(ctx, emp); err != nil {
		return employee.Employee{}, err
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.Employee{}, err
	}

	if created.IsActive {
		if err := s.materializeCurrent(ctx, created); err != nil {
			return employee.Employee{}, err
		}
	}
	return created, nil
}

// CreateEmployeesBulk implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployeesBulk(ctx context.Context, req employee.BulkCreateEmployeeRequest) (employee.BulkCreateEmployeeResponse, error) {
	if len(req.Employees) == 0 {
		return employee.BulkCreateEmployeeResponse{}, employee.ErrNoEmployees
	}

	resp := employee.BulkCreateEmployeeResponse{
		Failed:   make([]employee.BulkCreateFailure, 0),
		Inserted: make([]employee.EmployeeResponse, 0, len(req.Employees)),
	}

	for i := range req.Employees {
		item := req.Employees[i]
		if err := item.Validate(); err != nil {
			resp.Failed = append(resp.Failed, employee.BulkCreateFailure{Index: i, Message: err.Error()})
			continue
		}

		var created employee.Employee
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			created, err = s.create(ctx, item.ToEmployee())
			return err
		})
		if err != nil {
			if !isExpected(err) {
				return employee.BulkCreateEmployeeResponse{}, fmt.Errorf("failed to create employee at index %d: %w", i, err)
			}
			resp.Failed = append(resp.Failed, employee.BulkCreateFailure{Index: i, Message: err.Error()})
			continue
		}
		resp.Inserted = append(resp.Inserted, mapEmployeeToResponse(created, nil))
	}

	resp.InsertedCount = len(resp.Inserted)
	resp.FailedCount = len(resp.Failed)

	slog.Info("bulk employee create finished", "inserted", resp.InsertedCount, "failed", resp.FailedCount)
	return resp, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		next := req.Apply(existing)
		if req.Aid != nil && next.AidID != nil && *next.AidID == next.ID {
			return employee.ErrAidIsSelf
		}
		if !next.IsDriver() {
			next.AidID = nil
		}
		if existing.IsAid() && !next.IsAid() {
			cleared, err := s.employeeRepo.ClearAidReferences(ctx, []string{existing.ID})
			if err != nil {
				return fmt.Errorf("failed to unlink drivers: %w", err)
			}
			if cleared > 0 {
				slog.Info("drivers unlinked from former aid", "employee_id", existing.ID, "drivers", cleared)
			}
		}
		if err := s.checkAid(ctx, next); err != nil {
			return err
		}

		updated, err = s.employeeRepo.Update(ctx, next)
		if err != nil {
			return err
		}

		if updated.IsActive {
			return s.patchCurrent(ctx, updated, !existing.IsActive)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.toResponse(ctx, updated)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrInvalidEmployeeID
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := s.employeeRepo.ClearAidReferences(ctx, []string{id}); err != nil {
			return fmt.Errorf("failed to unlink drivers: %w", err)
		}
		sheets, err := s.timesheetRepo.DeleteByEmployeeIDs(ctx, []string{id})
		if err != nil {
			return err
		}
		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			return err
		}
		slog.Info("employee deleted", "employee_id", id, "timesheet_entries", sheets)
		return nil
	})
}

// DeleteEmployeesBulk implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployeesBulk(ctx context.Context, req employee.BulkDeleteEmployeeRequest) (employee.BulkDeleteEmployeeResponse, error) {
	if len(req.IDs) == 0 {
		return employee.BulkDeleteEmployeeResponse{}, employee.ErrNoEmployeeIDs
	}
	var errs validator.ValidationErrors
	for i, id := range req.IDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("ids[%d]", i), Message: "must be a valid employee id"})
		}
	}
	if len(errs) > 0 {
		return employee.BulkDeleteEmployeeResponse{}, errs
	}

	var resp employee.BulkDeleteEmployeeResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.ClearAidReferences(ctx, req.IDs); err != nil {
			return fmt.Errorf("failed to unlink drivers: %w", err)
		}
		sheets, err := s.timesheetRepo.DeleteByEmployeeIDs(ctx, req.IDs)
		if err != nil {
			return err
		}
		deleted, err := s.employeeRepo.DeleteMany(ctx, req.IDs)
		if err != nil {
			return err
		}
		resp = employee.BulkDeleteEmployeeResponse{DeletedCount: deleted, TimesheetDeletedCount: sheets}
		return nil
	})
	if err != nil {
		return employee.BulkDeleteEmployeeResponse{}, err
	}

	slog.Info("bulk employee delete finished", "deleted", resp.DeletedCount, "timesheet_entries", resp.TimesheetDeletedCount)
	return resp, nil
}

// checkAid rejects an aid reference that does not exist, is not an Aid, or
// already belongs to another driver.
func (s *EmployeeServiceImpl) checkAid(ctx context.Context, emp employee.Employee) error {
	if emp.AidID == nil {
		return nil
	}
	target, err := s.employeeRepo.GetByID(ctx, *emp.AidID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrAidNotFound
		}
		return err
	}
	if !target.IsAid() {
		return employee.ErrAidNotAnAid
	}

	driver, err := s.employeeRepo.GetDriverByAid(ctx, *emp.AidID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return err
	}
	if driver.ID != emp.ID {
		return &employee.AidConflictError{DriverID: driver.ID, DriverName: driver.EmployeeName}
	}
	return nil
}

// currentPayPeriod returns the designated pay period, or ok=false when none is set.
func (s *EmployeeServiceImpl) currentPayPeriod(ctx context.Context) (string, bool, error) {
	globals, err := s.globalsRepo.Get(ctx)
	if err != nil {
		return "", false, err
	}
	if !globals.HasCurrent() {
		return "", false, nil
	}
	return *globals.CurrentPayPeriodID, true, nil
}

func (s *EmployeeServiceImpl) materializeCurrent(ctx context.Context, emp employee.Employee) error {
	periodID, ok, err := s.currentPayPeriod(ctx)
	if err != nil {
		return err
	}
	if !ok {
		slog.Info("no current pay period, timesheet entry not created", "employee_id", emp.ID, "reason", "no_current_pay_period")
		return nil
	}

	days, err := s.payPeriodRepo.GetDays(ctx, periodID)
	if err != nil {
		return err
	}
	if _, err := s.timesheetRepo.Create(ctx, timesheet.NewEntry(periodID, days, emp)); err != nil {
		return fmt.Errorf("failed to create timesheet entry: %w", err)
	}
	return nil
}

// patchCurrent refreshes the employee's entry in the current pay period. A
// reactivated employee without an entry gets one.
func (s *EmployeeServiceImpl) patchCurrent(ctx context.Context, emp employee.Employee, reactivated bool) error {
	periodID, ok, err := s.currentPayPeriod(ctx)
	if err != nil {
		return err
	}
	if !ok {
		slog.Info("no current pay period, timesheet entry not patched", "employee_id", emp.ID, "reason", "no_current_pay_period")
		return nil
	}

	entry, err := s.timesheetRepo.GetByEmployeeAndPayPeriodForUpdate(ctx, emp.ID, periodID)
	if errors.Is(err, timesheet.ErrEntryNotFound) {
		if reactivated {
			return s.materializeCurrent(ctx, emp)
		}
		slog.Warn("timesheet entry missing, patch skipped", "employee_id", emp.ID, "pay_period_id", periodID, "reason", "entry_not_found")
		return nil
	}
	if err != nil {
		return err
	}

	entry.PatchEmployee(emp)
	if _, err := s.timesheetRepo.Update(ctx, entry); err != nil {
		return fmt.Errorf("failed to patch timesheet entry: %w", err)
	}
	return nil
}

func (s *EmployeeServiceImpl) toResponse(ctx context.Context, emp employee.Employee) (employee.EmployeeResponse, error) {
	if emp.AidID == nil {
		return mapEmployeeToResponse(emp, nil), nil
	}
	aid, err := s.employeeRepo.GetByID(ctx, *emp.AidID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return mapEmployeeToResponse(emp, nil), nil
	}
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp, &aid), nil
}

// isExpected reports whether err is a domain failure that bulk create reports per item.
func isExpected(err error) bool {
	var (
		verrs    validator.ValidationErrors
		conflict *employee.AidConflictError
	)
	return errors.As(err, &verrs) ||
		errors.As(err, &conflict) ||
		errors.Is(err, employee.ErrEmployeeNameExists) ||
		errors.Is(err, employee.ErrAidAlreadyLinked) ||
		errors.Is(err, employee.ErrAidNotFound) ||
		errors.Is(err, employee.ErrAidNotAnAid)
}

func mapEmployeeToResponse(emp employee.Employee, aid *employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:                emp.ID,
		EmployeeName:      emp.EmployeeName,
		Position:          emp.Position,
		AMRate:            emp.AMRate,
		MidRate:           emp.MidRate,
		PMRate:            emp.PMRate,
		LTRate:            emp.LTRate,
		CashSplitPercent:  emp.CashSplitPercent,
		DayIncrementValue: emp.DayIncrementValue,
		IsActive:          emp.IsActive,
		CreatedAt:         emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         emp.UpdatedAt.Format(time.RFC3339),
	}
	if aid != nil {
		resp.Aid = &employee.AidSummary{ID: aid.ID, EmployeeName: aid.EmployeeName, Position: aid.Position}
	} else if emp.AidID != nil {
		resp.Aid = &employee.AidSummary{ID: *emp.AidID}
	}
	return resp
}
