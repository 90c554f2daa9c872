package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Create implements audit.AuditRepository.
func (r *auditRepositoryImpl) Create(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = newID()
	}

	query := `
		INSERT INTO audit_trail_entries (
			id, timesheet_entry_id, pay_period_id, employee_id, employee_name,
			field_name, field_value, total_days, total
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.TimesheetEntryID, e.PayPeriodID, e.EmployeeID, e.EmployeeName,
		e.FieldName, e.FieldValue, e.TotalDays, e.Total,
	).Scan(&e.CreatedAt)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to create audit trail entry: %w", err)
	}
	return e, nil
}

// List implements audit.AuditRepository.
func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.PayPeriodID != nil {
		where += fmt.Sprintf(" AND pay_period_id = $%d", argIdx)
		args = append(args, *filter.PayPeriodID)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.TimesheetEntryID != nil {
		where += fmt.Sprintf(" AND timesheet_entry_id = $%d", argIdx)
		args = append(args, *filter.TimesheetEntryID)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_trail_entries WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit trail entries: %w", err)
	}

	sortOrder := "DESC"
	if filter.Sort == audit.SortAsc {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, timesheet_entry_id, pay_period_id, employee_id, employee_name,
			field_name, field_value, total_days, total, created_at
		FROM audit_trail_entries
		WHERE %s
		ORDER BY created_at %s, id %s
		LIMIT $%d OFFSET $%d
	`, where, sortOrder, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit trail entries: %w", err)
	}
	defer rows.Close()

	entries := make([]audit.Entry, 0, filter.Limit)
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID, &e.TimesheetEntryID, &e.PayPeriodID, &e.EmployeeID, &e.EmployeeName,
			&e.FieldName, &e.FieldValue, &e.TotalDays, &e.Total, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit trail entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
