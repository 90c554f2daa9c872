// Package app assembles repositories and services for the configured storage
// backend. It is shared by the API server and the operator CLI.
package app

import (
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	auditService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/audit"
	employeeService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/employee"
	payPeriodService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/payperiod"
	timesheetService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
)

type Repositories struct {
	Tx         database.Transactor
	Employees  employee.EmployeeRepository
	PayPeriods payperiod.PayPeriodRepository
	Globals    payperiod.GlobalsRepository
	Timesheets timesheet.TimesheetRepository
	AuditTrail audit.AuditRepository
}

func PostgresRepositories(db *database.DB) Repositories {
	return Repositories{
		Tx:         postgresql.NewTransactor(db),
		Employees:  postgresql.NewEmployeeRepository(db),
		PayPeriods: postgresql.NewPayPeriodRepository(db),
		Globals:    postgresql.NewGlobalsRepository(db),
		Timesheets: postgresql.NewTimesheetRepository(db),
		AuditTrail: postgresql.NewAuditRepository(db),
	}
}

func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Tx:         store,
		Employees:  store.Employees(),
		PayPeriods: store.PayPeriods(),
		Globals:    store.Globals(),
		Timesheets: store.Timesheets(),
		AuditTrail: store.AuditTrail(),
	}
}

// Open connects the configured storage backend. For postgres it runs pending
// migrations when enabled. The returned func releases the backend.
func Open(cfg *config.Config) (Repositories, func(), error) {
	switch cfg.App.Storage {
	case config.StorageMemory:
		slog.Warn("using in-memory storage, data is lost on exit")
		return MemoryRepositories(memory.NewStore()), func() {}, nil
	case config.StoragePostgres:
		dsn := cfg.DatabaseURL()
		if cfg.Database.RunMigrations {
			if err := database.MigrateUp(dsn); err != nil {
				return Repositories{}, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
			slog.Info("database migrations applied")
		}

		db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns)
		if err != nil {
			return Repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return PostgresRepositories(db), db.Close, nil
	default:
		return Repositories{}, nil, fmt.Errorf("unsupported storage: %q", cfg.App.Storage)
	}
}

type Services struct {
	Employee  employee.EmployeeService
	PayPeriod payperiod.PayPeriodService
	Timesheet timesheet.TimesheetService
	Audit     audit.AuditService
}

func NewServices(repos Repositories, opts ...payPeriodService.Option) Services {
	audits := auditService.NewAuditService(repos.AuditTrail)
	return Services{
		Employee: employeeService.NewEmployeeService(
			repos.Tx, repos.Employees, repos.PayPeriods, repos.Globals, repos.Timesheets,
		),
		PayPeriod: payPeriodService.NewPayPeriodService(
			repos.Tx, repos.PayPeriods, repos.Globals, repos.Employees, repos.Timesheets, opts...,
		),
		Timesheet: timesheetService.NewTimesheetService(
			repos.Tx, repos.Timesheets, repos.Employees, repos.PayPeriods, repos.Globals, audits,
		),
		Audit: audits,
	}
}
