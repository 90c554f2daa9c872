package memory

import (
	"context"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

type timesheetRepository struct {
	s *Store
}

func (r *timesheetRepository) GetByEmployeeAndPayPeriod(ctx context.Context, employeeID, payPeriodID string) (timesheet.Entry, error) {
	var out timesheet.Entry
	err := r.s.run(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.EmployeeID == employeeID && e.PayPeriodID == payPeriodID {
				out = e.Clone()
				return nil
			}
		}
		return timesheet.ErrEntryNotFound
	})
	return out, err
}

// GetByEmployeeAndPayPeriodForUpdate needs no row lock: a transaction already
// holds the whole store.
func (r *timesheetRepository) GetByEmployeeAndPayPeriodForUpdate(ctx context.Context, employeeID, payPeriodID string) (timesheet.Entry, error) {
	return r.GetByEmployeeAndPayPeriod(ctx, employeeID, payPeriodID)
}

func (r *timesheetRepository) ListByPayPeriod(ctx context.Context, payPeriodID string) ([]timesheet.Entry, error) {
	out := make([]timesheet.Entry, 0)
	err := r.s.run(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.PayPeriodID == payPeriodID {
				out = append(out, e.Clone())
			}
		}
		return nil
	})
	return out, err
}

func (r *timesheetRepository) insert(st *state, e timesheet.Entry) (timesheet.Entry, error) {
	for _, existing := range st.entries {
		if existing.EmployeeID == e.EmployeeID && existing.PayPeriodID == e.PayPeriodID {
			return timesheet.Entry{}, timesheet.ErrEntryExists
		}
	}
	if e.ID == "" {
		e.ID = newID()
	}
	now := r.s.now()
	e.CreatedAt = now
	e.UpdatedAt = now
	st.entries = append(st.entries, e.Clone())
	return e, nil
}

func (r *timesheetRepository) Create(ctx context.Context, e timesheet.Entry) (timesheet.Entry, error) {
	var out timesheet.Entry
	err := r.s.run(ctx, func(st *state) error {
		created, err := r.insert(st, e)
		out = created
		return err
	})
	return out, err
}

// CreateBatch inserts every entry or none of them.
func (r *timesheetRepository) CreateBatch(ctx context.Context, entries []timesheet.Entry) ([]timesheet.Entry, error) {
	out := make([]timesheet.Entry, 0, len(entries))
	err := r.s.run(ctx, func(st *state) error {
		before := len(st.entries)
		for _, e := range entries {
			created, err := r.insert(st, e)
			if err != nil {
				st.entries = st.entries[:before]
				return err
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *timesheetRepository) Update(ctx context.Context, e timesheet.Entry) (timesheet.Entry, error) {
	err := r.s.run(ctx, func(st *state) error {
		for i, existing := range st.entries {
			if existing.ID != e.ID {
				continue
			}
			e.PayPeriodID = existing.PayPeriodID
			e.EmployeeID = existing.EmployeeID
			e.CreatedAt = existing.CreatedAt
			e.UpdatedAt = r.s.now()
			st.entries[i] = e.Clone()
			return nil
		}
		return timesheet.ErrEntryNotFound
	})
	if err != nil {
		return timesheet.Entry{}, err
	}
	return e, nil
}

func (r *timesheetRepository) DeleteByEmployeeIDs(ctx context.Context, employeeIDs []string) (int64, error) {
	var deleted int64
	err := r.s.run(ctx, func(st *state) error {
		kept := st.entries[:0]
		for _, e := range st.entries {
			if contains(employeeIDs, e.EmployeeID) {
				deleted++
				continue
			}
			kept = append(kept, e)
		}
		st.entries = kept
		return nil
	})
	return deleted, err
}
