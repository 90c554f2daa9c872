package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payPeriodRepositoryImpl struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) payperiod.PayPeriodRepository {
	return &payPeriodRepositoryImpl{db: db}
}

// Create implements payperiod.PayPeriodRepository.
func (r *payPeriodRepositoryImpl) Create(ctx context.Context, p payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = newID()
	}

	query := `
		INSERT INTO pay_periods (id, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id, start_date, end_date, created_at, updated_at
	`

	var created payperiod.PayPeriod
	err := q.QueryRow(ctx, query, p.ID, p.StartDate, p.EndDate).Scan(
		&created.ID, &created.StartDate, &created.EndDate, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "uk_pay_period_start") {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodExists
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}
	return created, nil
}

// CreateDays implements payperiod.PayPeriodRepository.
func (r *payPeriodRepositoryImpl) CreateDays(ctx context.Context, days []payperiod.Day) ([]payperiod.Day, error) {
	if len(days) == 0 {
		return []payperiod.Day{}, nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	for i := range days {
		if days[i].ID == "" {
			days[i].ID = newID()
		}
		batch.Queue(
			`INSERT INTO pay_period_days (id, pay_period_id, day_name, date) VALUES ($1, $2, $3, $4)`,
			days[i].ID, days[i].PayPeriodID, days[i].DayName, days[i].Date,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range days {
		if _, err := results.Exec(); err != nil {
			return nil, fmt.Errorf("failed to create pay period days: %w", err)
		}
	}

	return days, nil
}

// GetByID implements payperiod.PayPeriodRepository.
func (r *payPeriodRepositoryImpl) GetByID(ctx context.Context, id string) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, start_date, end_date, created_at, updated_at FROM pay_periods WHERE id = $1`

	var p payperiod.PayPeriod
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}
	return p, nil
}

// List implements payperiod.PayPeriodRepository. Newest first.
func (r *payPeriodRepositoryImpl) List(ctx context.Context) ([]payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, start_date, end_date, created_at, updated_at FROM pay_periods ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	periods := make([]payperiod.PayPeriod, 0)
	for rows.Next() {
		var p payperiod.PayPeriod
		if err := rows.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return periods, nil
}

// GetDays implements payperiod.PayPeriodRepository.
func (r *payPeriodRepositoryImpl) GetDays(ctx context.Context, payPeriodID string) ([]payperiod.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, pay_period_id, day_name, date
		FROM pay_period_days
		WHERE pay_period_id = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, payPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pay period days: %w", err)
	}
	defer rows.Close()

	days := make([]payperiod.Day, 0, 10)
	for rows.Next() {
		var d payperiod.Day
		if err := rows.Scan(&d.ID, &d.PayPeriodID, &d.DayName, &d.Date); err != nil {
			return nil, fmt.Errorf("failed to scan pay period day: %w", err)
		}
		days = append(days, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}
