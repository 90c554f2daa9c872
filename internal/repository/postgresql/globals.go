package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type globalsRepositoryImpl struct {
	db *database.DB
}

func NewGlobalsRepository(db *database.DB) payperiod.GlobalsRepository {
	return &globalsRepositoryImpl{db: db}
}

// Get implements payperiod.GlobalsRepository.
func (r *globalsRepositoryImpl) Get(ctx context.Context) (payperiod.Globals, error) {
	return r.get(ctx, `SELECT current_pay_period_id, auto_create_pay_period, updated_at FROM globals WHERE id = 1`)
}

// GetForUpdate implements payperiod.GlobalsRepository.
func (r *globalsRepositoryImpl) GetForUpdate(ctx context.Context) (payperiod.Globals, error) {
	return r.get(ctx, `SELECT current_pay_period_id, auto_create_pay_period, updated_at FROM globals WHERE id = 1 FOR UPDATE`)
}

func (r *globalsRepositoryImpl) get(ctx context.Context, query string) (payperiod.Globals, error) {
	q := GetQuerier(ctx, r.db)

	var g payperiod.Globals
	err := q.QueryRow(ctx, query).Scan(&g.CurrentPayPeriodID, &g.AutoCreate, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payperiod.Globals{}, nil
		}
		return payperiod.Globals{}, fmt.Errorf("failed to get globals: %w", err)
	}
	return g, nil
}

// SetCurrentPayPeriod implements payperiod.GlobalsRepository.
func (r *globalsRepositoryImpl) SetCurrentPayPeriod(ctx context.Context, payPeriodID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO globals (id, current_pay_period_id, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET current_pay_period_id = EXCLUDED.current_pay_period_id, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, payPeriodID); err != nil {
		return fmt.Errorf("failed to set current pay period: %w", err)
	}
	return nil
}

// SetAutoCreate implements payperiod.GlobalsRepository.
func (r *globalsRepositoryImpl) SetAutoCreate(ctx context.Context, enabled bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO globals (id, auto_create_pay_period, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET auto_create_pay_period = EXCLUDED.auto_create_pay_period, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, enabled); err != nil {
		return fmt.Errorf("failed to set pay period auto-creation: %w", err)
	}
	return nil
}
