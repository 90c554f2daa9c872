package payperiod

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type PayPeriodServiceImpl struct {
	tx            database.Transactor
	payPeriodRepo payperiod.PayPeriodRepository
	globalsRepo   payperiod.GlobalsRepository
	employeeRepo  employee.EmployeeRepository
	timesheetRepo timesheet.TimesheetRepository
	now           func() time.Time
}

type Option func(*PayPeriodServiceImpl)

// WithClock sets the clock that decides which pay period covers "today".
func WithClock(now func() time.Time) Option {
	return func(s *PayPeriodServiceImpl) {
		s.now = now
	}
}

func NewPayPeriodService(
	tx database.Transactor,
	payPeriodRepo payperiod.PayPeriodRepository,
	globalsRepo payperiod.GlobalsRepository,
	employeeRepo employee.EmployeeRepository,
	timesheetRepo timesheet.TimesheetRepository,
	opts ...Option,
) payperiod.PayPeriodService {
	s := &PayPeriodServiceImpl{
		tx:            tx,
		payPeriodRepo: payPeriodRepo,
		globalsRepo:   globalsRepo,
		employeeRepo:  employeeRepo,
		timesheetRepo: timesheetRepo,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePayPeriod implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) CreatePayPeriod(ctx context.Context, req payperiod.CreatePayPeriodRequest) (payperiod.PayPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	start, _ := validator.ParseDay(req.StartDate)

	created, err := s.create(ctx, start)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	return payperiod.NewPayPeriodResponse(created), nil
}

// create generates the calendar, persists the period with its days and one
// entry per active employee, and makes it current. The pointer flip is the
// last write of the transaction.
func (s *PayPeriodServiceImpl) create(ctx context.Context, start time.Time) (payperiod.PayPeriod, error) {
	cal, err := payperiod.GenerateCalendar(start)
	if err != nil {
		return payperiod.PayPeriod{}, err
	}

	var (
		created payperiod.PayPeriod
		entries int
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.payPeriodRepo.Create(ctx, payperiod.PayPeriod{
			StartDate: cal.StartDate,
			EndDate:   cal.EndDate,
		})
		if err != nil {
			return err
		}

		for i := range cal.Days {
			cal.Days[i].PayPeriodID = created.ID
		}
		days, err := s.payPeriodRepo.CreateDays(ctx, cal.Days)
		if err != nil {
			return err
		}

		employees, err := s.employeeRepo.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active employees: %w", err)
		}
		batch := make([]timesheet.Entry, 0, len(employees))
		for _, emp := range employees {
			batch = append(batch, timesheet.NewEntry(created.ID, days, emp))
		}
		if _, err := s.timesheetRepo.CreateBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to materialize timesheet entries: %w", err)
		}
		entries = len(batch)

		return s.globalsRepo.SetCurrentPayPeriod(ctx, created.ID)
	})
	if err != nil {
		return payperiod.PayPeriod{}, err
	}

	slog.Info("pay period created",
		"pay_period_id", created.ID,
		"start_date", payperiod.DateKey(created.StartDate),
		"timesheet_entries", entries,
	)
	return created, nil
}

// ListPayPeriods implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) ListPayPeriods(ctx context.Context) ([]payperiod.PayPeriodResponse, error) {
	periods, err := s.payPeriodRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payperiod.PayPeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, payperiod.NewPayPeriodResponse(p))
	}
	return responses, nil
}

// GetPayPeriod implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) GetPayPeriod(ctx context.Context, id string) (payperiod.PayPeriodResponse, error) {
	if !validator.IsValidUUID(id) {
		return payperiod.PayPeriodResponse{}, payperiod.ErrInvalidPayPeriodID
	}
	p, err := s.payPeriodRepo.GetByID(ctx, id)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	return payperiod.NewPayPeriodResponse(p), nil
}

// GetPayPeriodDays implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) GetPayPeriodDays(ctx context.Context, id string) ([]payperiod.DayResponse, error) {
	if !validator.IsValidUUID(id) {
		return nil, payperiod.ErrInvalidPayPeriodID
	}
	if _, err := s.payPeriodRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	days, err := s.payPeriodRepo.GetDays(ctx, id)
	if err != nil {
		return nil, err
	}
	return payperiod.NewDayResponses(days), nil
}

// GetCurrentPayPeriodID implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) GetCurrentPayPeriodID(ctx context.Context) (payperiod.CurrentPayPeriodResponse, error) {
	globals, err := s.globalsRepo.Get(ctx)
	if err != nil {
		return payperiod.CurrentPayPeriodResponse{}, err
	}
	if !globals.HasCurrent() {
		return payperiod.CurrentPayPeriodResponse{}, payperiod.ErrNoCurrentPayPeriod
	}
	return payperiod.CurrentPayPeriodResponse{CurrentPayPeriodID: *globals.CurrentPayPeriodID}, nil
}

// GetAutoCreation implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) GetAutoCreation(ctx context.Context) (payperiod.AutoCreationResponse, error) {
	globals, err := s.globalsRepo.Get(ctx)
	if err != nil {
		return payperiod.AutoCreationResponse{}, err
	}
	return payperiod.AutoCreationResponse{Enabled: globals.AutoCreate}, nil
}

// SetAutoCreation implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) SetAutoCreation(ctx context.Context, req payperiod.SetAutoCreationRequest) (payperiod.AutoCreationResponse, error) {
	if err := req.Validate(); err != nil {
		return payperiod.AutoCreationResponse{}, err
	}
	if err := s.globalsRepo.SetAutoCreate(ctx, *req.Enabled); err != nil {
		return payperiod.AutoCreationResponse{}, err
	}
	slog.Info("pay period auto-creation changed", "enabled", *req.Enabled)
	return payperiod.AutoCreationResponse{Enabled: *req.Enabled}, nil
}

// EnsureCurrentPayPeriod implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) EnsureCurrentPayPeriod(ctx context.Context) (payperiod.EnsureResponse, error) {
	today := payperiod.NormalizeDate(s.now())

	var resp payperiod.EnsureResponse
	// The globals lock serializes concurrent ensures, so a later caller sees
	// the period created by an earlier one.
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		globals, err := s.globalsRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}

		start := payperiod.MondayOf(today)
		if globals.HasCurrent() {
			current, err := s.payPeriodRepo.GetByID(ctx, *globals.CurrentPayPeriodID)
			if err != nil {
				return fmt.Errorf("failed to load current pay period: %w", err)
			}
			if !current.EndDate.Before(today) {
				resp = payperiod.EnsureResponse{PayPeriod: payperiod.NewPayPeriodResponse(current)}
				return nil
			}
			start = payperiod.NextStartCovering(current, today)
		}

		created, err := s.create(ctx, start)
		if err != nil {
			return err
		}
		resp = payperiod.EnsureResponse{PayPeriod: payperiod.NewPayPeriodResponse(created), Created: true}
		return nil
	})
	if err != nil {
		return payperiod.EnsureResponse{}, err
	}
	return resp, nil
}

// AutoEnsure implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) AutoEnsure(ctx context.Context) error {
	globals, err := s.globalsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if !globals.AutoCreate {
		slog.Debug("pay period auto-creation disabled, skipping", "reason", "auto_creation_disabled")
		return nil
	}

	resp, err := s.EnsureCurrentPayPeriod(ctx)
	if err != nil {
		return err
	}
	if resp.Created {
		slog.Info("pay period auto-created", "pay_period_id", resp.PayPeriod.ID, "start_date", resp.PayPeriod.StartDate)
	}
	return nil
}
