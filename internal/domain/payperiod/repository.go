package payperiod

import "context"

type PayPeriodRepository interface {
	Create(ctx context.Context, p PayPeriod) (PayPeriod, error)
	CreateDays(ctx context.Context, days []Day) ([]Day, error)
	GetByID(ctx context.Context, id string) (PayPeriod, error)
	List(ctx context.Context) ([]PayPeriod, error)
	// GetDays returns the working days of a pay period ordered by date.
	GetDays(ctx context.Context, payPeriodID string) ([]Day, error)
}

// GlobalsRepository stores the singleton Globals record.
type GlobalsRepository interface {
	// Get returns the zero Globals when the record does not exist yet.
	Get(ctx context.Context) (Globals, error)
	// GetForUpdate is Get holding the record's lock until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context) (Globals, error)
	SetCurrentPayPeriod(ctx context.Context, payPeriodID string) error
	SetAutoCreate(ctx context.Context, enabled bool) error
}
