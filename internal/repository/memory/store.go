// Package memory keeps every repository in process memory. A transaction
// holds the store exclusively and restores the previous state when it fails.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type txKey struct{}

type state struct {
	employees  []employee.Employee
	payPeriods []payperiod.PayPeriod
	days       []payperiod.Day
	globals    payperiod.Globals
	entries    []timesheet.Entry
	audits     []audit.Entry
}

func (s state) clone() state {
	out := state{
		employees:  make([]employee.Employee, len(s.employees)),
		payPeriods: append([]payperiod.PayPeriod(nil), s.payPeriods...),
		days:       append([]payperiod.Day(nil), s.days...),
		globals:    cloneGlobals(s.globals),
		entries:    make([]timesheet.Entry, len(s.entries)),
		audits:     append([]audit.Entry(nil), s.audits...),
	}
	for i, e := range s.employees {
		out.employees[i] = cloneEmployee(e)
	}
	for i, e := range s.entries {
		out.entries[i] = e.Clone()
	}
	return out
}

type Store struct {
	// lock serializes transactions and standalone calls.
	lock  sync.Mutex
	state state
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the clock used for created_at and updated_at.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// run executes fn against the state, joining the caller's transaction when
// there is one.
func (s *Store) run(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx(ctx) {
		return fn(&s.state)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return fn(&s.state)
}

func (s *Store) Employees() employee.EmployeeRepository { return &employeeRepository{s: s} }

func (s *Store) PayPeriods() payperiod.PayPeriodRepository { return &payPeriodRepository{s: s} }

func (s *Store) Globals() payperiod.GlobalsRepository { return &globalsRepository{s: s} }

func (s *Store) Timesheets() timesheet.TimesheetRepository { return &timesheetRepository{s: s} }

func (s *Store) AuditTrail() audit.AuditRepository { return &auditRepository{s: s} }

var _ database.Transactor = (*Store)(nil)

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func cloneEmployee(e employee.Employee) employee.Employee {
	if e.AidID != nil {
		aid := *e.AidID
		e.AidID = &aid
	}
	return e
}

func cloneGlobals(g payperiod.Globals) payperiod.Globals {
	if g.CurrentPayPeriodID != nil {
		id := *g.CurrentPayPeriodID
		g.CurrentPayPeriodID = &id
	}
	return g
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
