package payperiod

import "context"

type PayPeriodService interface {
	// CreatePayPeriod creates the period, its days and one timesheet entry per
	// active employee, then makes it current. All or nothing.
	CreatePayPeriod(ctx context.Context, req CreatePayPeriodRequest) (PayPeriodResponse, error)
	ListPayPeriods(ctx context.Context) ([]PayPeriodResponse, error)
	GetPayPeriod(ctx context.Context, id string) (PayPeriodResponse, error)
	GetPayPeriodDays(ctx context.Context, id string) ([]DayResponse, error)
	GetCurrentPayPeriodID(ctx context.Context) (CurrentPayPeriodResponse, error)
	GetAutoCreation(ctx context.Context) (AutoCreationResponse, error)
	SetAutoCreation(ctx context.Context, req SetAutoCreationRequest) (AutoCreationResponse, error)
	// EnsureCurrentPayPeriod makes sure a pay period covering today exists and is current.
	EnsureCurrentPayPeriod(ctx context.Context) (EnsureResponse, error)
	// AutoEnsure runs EnsureCurrentPayPeriod only while auto-creation is enabled.
	AutoEnsure(ctx context.Context) error
}
