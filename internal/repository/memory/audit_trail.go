package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
)

type auditRepository struct {
	s *Store
}

func (r *auditRepository) Create(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	err := r.s.run(ctx, func(st *state) error {
		if e.ID == "" {
			e.ID = newID()
		}
		e.CreatedAt = r.s.now()
		st.audits = append(st.audits, e)
		return nil
	})
	if err != nil {
		return audit.Entry{}, err
	}
	return e, nil
}

func (r *auditRepository) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	var matched []audit.Entry
	err := r.s.run(ctx, func(st *state) error {
		for _, e := range st.audits {
			if filter.PayPeriodID != nil && e.PayPeriodID != *filter.PayPeriodID {
				continue
			}
			if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
				continue
			}
			if filter.TimesheetEntryID != nil && e.TimesheetEntryID != *filter.TimesheetEntryID {
				continue
			}
			matched = append(matched, e)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if filter.Sort == audit.SortAsc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if filter.Sort == audit.SortAsc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	total := int64(len(matched))
	start := filter.Offset()
	if start < 0 || start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end < start || end > len(matched) {
		end = len(matched)
	}

	page := make([]audit.Entry, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}
