package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, employee_name, position, am_rate, mid_rate, pm_rate, lt_rate,
	cash_split_percent, day_increment_value, aid_id, is_active, created_at, updated_at
`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeName, &emp.Position,
		&emp.AMRate, &emp.MidRate, &emp.PMRate, &emp.LTRate,
		&emp.CashSplitPercent, &emp.DayIncrementValue, &emp.AidID, &emp.IsActive,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (e *employeeRepositoryImpl) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// mapEmployeeWriteError translates constraint violations raised by insert and update.
func mapEmployeeWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "uk_employee_name"):
		return employee.ErrEmployeeNameExists
	case isUniqueViolation(err, "uk_employee_aid"):
		return employee.ErrAidAlreadyLinked
	case isForeignKeyViolation(err, "fk_employee_aid"):
		return employee.ErrAidNotFound
	}
	return err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetDriverByAid implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetDriverByAid(ctx context.Context, aidID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE aid_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, aidID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get driver by aid: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	return e.queryEmployees(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at, id`)
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return e.queryEmployees(ctx, `SELECT `+employeeColumns+` FROM employees WHERE is_active ORDER BY created_at, id`)
}

// ListByPosition implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByPosition(ctx context.Context, position string) ([]employee.Employee, error) {
	return e.queryEmployees(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE position = $1 ORDER BY created_at, id`, position)
}

// ListByIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return []employee.Employee{}, nil
	}
	return e.queryEmployees(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ANY($1::uuid[]) ORDER BY created_at, id`, ids)
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if newEmployee.ID == "" {
		newEmployee.ID = newID()
	}

	query := `
		INSERT INTO employees (
			id, employee_name, position, am_rate, mid_rate, pm_rate, lt_rate,
			cash_split_percent, day_increment_value, aid_id, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.EmployeeName, newEmployee.Position,
		newEmployee.AMRate, newEmployee.MidRate, newEmployee.PMRate, newEmployee.LTRate,
		newEmployee.CashSplitPercent, newEmployee.DayIncrementValue, newEmployee.AidID, newEmployee.IsActive,
	))
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET employee_name = $2, position = $3, am_rate = $4, mid_rate = $5, pm_rate = $6, lt_rate = $7,
			cash_split_percent = $8, day_increment_value = $9, aid_id = $10, is_active = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.EmployeeName, emp.Position,
		emp.AMRate, emp.MidRate, emp.PMRate, emp.LTRate,
		emp.CashSplitPercent, emp.DayIncrementValue, emp.AidID, emp.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// ClearAidReferences implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ClearAidReferences(ctx context.Context, aidIDs []string) (int64, error) {
	if len(aidIDs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, e.db)

	query := `UPDATE employees SET aid_id = NULL, updated_at = NOW() WHERE aid_id = ANY($1::uuid[])`

	tag, err := q.Exec(ctx, query, aidIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to clear aid references: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// DeleteMany implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete employees: %w", err)
	}
	return tag.RowsAffected(), nil
}
