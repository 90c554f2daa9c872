package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
)

type payPeriodRepository struct {
	s *Store
}

func (r *payPeriodRepository) Create(ctx context.Context, p payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	err := r.s.run(ctx, func(st *state) error {
		for _, existing := range st.payPeriods {
			if existing.StartDate.Equal(p.StartDate) {
				return payperiod.ErrPayPeriodExists
			}
		}
		if p.ID == "" {
			p.ID = newID()
		}
		now := r.s.now()
		p.CreatedAt = now
		p.UpdatedAt = now
		st.payPeriods = append(st.payPeriods, p)
		return nil
	})
	if err != nil {
		return payperiod.PayPeriod{}, err
	}
	return p, nil
}

func (r *payPeriodRepository) CreateDays(ctx context.Context, days []payperiod.Day) ([]payperiod.Day, error) {
	out := make([]payperiod.Day, len(days))
	copy(out, days)
	err := r.s.run(ctx, func(st *state) error {
		for i := range out {
			if out[i].ID == "" {
				out[i].ID = newID()
			}
		}
		st.days = append(st.days, out...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *payPeriodRepository) GetByID(ctx context.Context, id string) (payperiod.PayPeriod, error) {
	var out payperiod.PayPeriod
	err := r.s.run(ctx, func(st *state) error {
		for _, p := range st.payPeriods {
			if p.ID == id {
				out = p
				return nil
			}
		}
		return payperiod.ErrPayPeriodNotFound
	})
	return out, err
}

func (r *payPeriodRepository) List(ctx context.Context) ([]payperiod.PayPeriod, error) {
	var out []payperiod.PayPeriod
	err := r.s.run(ctx, func(st *state) error {
		out = append([]payperiod.PayPeriod{}, st.payPeriods...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, err
}

func (r *payPeriodRepository) GetDays(ctx context.Context, payPeriodID string) ([]payperiod.Day, error) {
	out := make([]payperiod.Day, 0, 10)
	err := r.s.run(ctx, func(st *state) error {
		for _, d := range st.days {
			if d.PayPeriodID == payPeriodID {
				out = append(out, d)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, err
}

type globalsRepository struct {
	s *Store
}

func (r *globalsRepository) Get(ctx context.Context) (payperiod.Globals, error) {
	var out payperiod.Globals
	err := r.s.run(ctx, func(st *state) error {
		out = cloneGlobals(st.globals)
		return nil
	})
	return out, err
}

// GetForUpdate relies on the store lock held by the transaction.
func (r *globalsRepository) GetForUpdate(ctx context.Context) (payperiod.Globals, error) {
	return r.Get(ctx)
}

func (r *globalsRepository) SetCurrentPayPeriod(ctx context.Context, payPeriodID string) error {
	return r.s.run(ctx, func(st *state) error {
		found := false
		for _, p := range st.payPeriods {
			if p.ID == payPeriodID {
				found = true
				break
			}
		}
		if !found {
			return payperiod.ErrPayPeriodNotFound
		}
		id := payPeriodID
		st.globals.CurrentPayPeriodID = &id
		st.globals.UpdatedAt = r.s.now()
		return nil
	})
}

func (r *globalsRepository) SetAutoCreate(ctx context.Context, enabled bool) error {
	return r.s.run(ctx, func(st *state) error {
		st.globals.AutoCreate = enabled
		st.globals.UpdatedAt = r.s.now()
		return nil
	})
}
