package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const timesheetColumns = `
	id, pay_period_id, employee_id, employee_name, employee_position, payroll_data,
	total_days, total_shifts, pay_rate, cash, payroll, total, notes, created_at, updated_at
`

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

func scanEntry(row pgx.Row) (timesheet.Entry, error) {
	var (
		e    timesheet.Entry
		grid []byte
	)
	err := row.Scan(
		&e.ID, &e.PayPeriodID, &e.EmployeeID, &e.EmployeeName, &e.EmployeePosition, &grid,
		&e.TotalDays, &e.TotalShifts, &e.PayRate, &e.Cash, &e.Payroll, &e.Total, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return timesheet.Entry{}, err
	}
	if err := json.Unmarshal(grid, &e.PayrollData); err != nil {
		return timesheet.Entry{}, fmt.Errorf("failed to decode payroll data of entry %s: %w", e.ID, err)
	}
	return e, nil
}

func (r *timesheetRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	entry, err := scanEntry(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, fmt.Errorf("failed to get timesheet entry: %w", err)
	}
	return entry, nil
}

// GetByEmployeeAndPayPeriod implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByEmployeeAndPayPeriod(ctx context.Context, employeeID, payPeriodID string) (timesheet.Entry, error) {
	return r.getOne(ctx,
		`SELECT `+timesheetColumns+` FROM timesheet_entries WHERE employee_id = $1 AND pay_period_id = $2`,
		employeeID, payPeriodID)
}

// GetByEmployeeAndPayPeriodForUpdate implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByEmployeeAndPayPeriodForUpdate(ctx context.Context, employeeID, payPeriodID string) (timesheet.Entry, error) {
	return r.getOne(ctx,
		`SELECT `+timesheetColumns+` FROM timesheet_entries WHERE employee_id = $1 AND pay_period_id = $2 FOR UPDATE`,
		employeeID, payPeriodID)
}

// ListByPayPeriod implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListByPayPeriod(ctx context.Context, payPeriodID string) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timesheetColumns + ` FROM timesheet_entries WHERE pay_period_id = $1 ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, payPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timesheet.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

const insertEntryQuery = `
	INSERT INTO timesheet_entries (
		id, pay_period_id, employee_id, employee_name, employee_position, payroll_data,
		total_days, total_shifts, pay_rate, cash, payroll, total, notes
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING ` + timesheetColumns

func insertEntryArgs(e *timesheet.Entry) ([]interface{}, error) {
	if e.ID == "" {
		e.ID = newID()
	}
	grid, err := json.Marshal(e.PayrollData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payroll data: %w", err)
	}
	return []interface{}{
		e.ID, e.PayPeriodID, e.EmployeeID, e.EmployeeName, e.EmployeePosition, grid,
		e.TotalDays, e.TotalShifts, e.PayRate, e.Cash, e.Payroll, e.Total, e.Notes,
	}, nil
}

func mapEntryWriteError(err error) error {
	if isUniqueViolation(err, "uk_timesheet_employee_period") {
		return timesheet.ErrEntryExists
	}
	return fmt.Errorf("failed to create timesheet entry: %w", err)
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, e timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	args, err := insertEntryArgs(&e)
	if err != nil {
		return timesheet.Entry{}, err
	}

	created, err := scanEntry(q.QueryRow(ctx, insertEntryQuery, args...))
	if err != nil {
		return timesheet.Entry{}, mapEntryWriteError(err)
	}
	return created, nil
}

// CreateBatch implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) CreateBatch(ctx context.Context, entries []timesheet.Entry) ([]timesheet.Entry, error) {
	if len(entries) == 0 {
		return []timesheet.Entry{}, nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for i := range entries {
		args, err := insertEntryArgs(&entries[i])
		if err != nil {
			return nil, err
		}
		batch.Queue(insertEntryQuery, args...)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	created := make([]timesheet.Entry, 0, len(entries))
	for range entries {
		e, err := scanEntry(results.QueryRow())
		if err != nil {
			return nil, mapEntryWriteError(err)
		}
		created = append(created, e)
	}
	return created, nil
}

// Update implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Update(ctx context.Context, e timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	grid, err := json.Marshal(e.PayrollData)
	if err != nil {
		return timesheet.Entry{}, fmt.Errorf("failed to encode payroll data: %w", err)
	}

	query := `
		UPDATE timesheet_entries
		SET employee_name = $2, employee_position = $3, payroll_data = $4,
			total_days = $5, total_shifts = $6, pay_rate = $7, cash = $8, payroll = $9, total = $10,
			notes = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + timesheetColumns

	updated, err := scanEntry(q.QueryRow(ctx, query,
		e.ID, e.EmployeeName, e.EmployeePosition, grid,
		e.TotalDays, e.TotalShifts, e.PayRate, e.Cash, e.Payroll, e.Total, e.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, fmt.Errorf("failed to update timesheet entry: %w", err)
	}
	return updated, nil
}

// DeleteByEmployeeIDs implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) DeleteByEmployeeIDs(ctx context.Context, employeeIDs []string) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timesheet_entries WHERE employee_id = ANY($1::uuid[])`, employeeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete timesheet entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
