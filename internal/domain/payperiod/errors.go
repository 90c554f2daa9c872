package payperiod

import "errors"

var (
	ErrStartDateRequired  = errors.New("startDate is required")
	ErrInvalidStartDate   = errors.New("invalid startDate")
	ErrStartDateNotMonday = errors.New("startDate must be a Monday")
	ErrPayPeriodNotFound  = errors.New("pay period not found")
	ErrPayPeriodExists    = errors.New("a pay period with this start date already exists")
	ErrNoCurrentPayPeriod = errors.New("nothing set as current pay period")
	ErrInvalidPayPeriodID = errors.New("invalid pay period id")
)
