package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
)

// DefaultPayPeriodCheckInterval is used when no interval is configured.
const DefaultPayPeriodCheckInterval = time.Hour

// PayPeriodJobs contains pay period cron jobs
type PayPeriodJobs struct {
	payPeriodService payperiod.PayPeriodService
	interval         time.Duration
}

func NewPayPeriodJobs(payPeriodService payperiod.PayPeriodService, interval time.Duration) *PayPeriodJobs {
	if interval <= 0 {
		interval = DefaultPayPeriodCheckInterval
	}
	return &PayPeriodJobs{
		payPeriodService: payPeriodService,
		interval:         interval,
	}
}

func (j *PayPeriodJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("ensure_current_pay_period", j.interval, j.EnsureCurrentPayPeriod)
}

// EnsureCurrentPayPeriod creates the pay period covering today when auto-creation is enabled.
func (j *PayPeriodJobs) EnsureCurrentPayPeriod(ctx context.Context) error {
	return j.payPeriodService.AutoEnsure(ctx)
}
