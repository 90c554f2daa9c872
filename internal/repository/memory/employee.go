package memory

import (
	"context"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func (r *employeeRepository) find(st *state, pred func(employee.Employee) bool) (employee.Employee, bool) {
	for _, e := range st.employees {
		if pred(e) {
			return cloneEmployee(e), true
		}
	}
	return employee.Employee{}, false
}

func (r *employeeRepository) filter(ctx context.Context, pred func(employee.Employee) bool) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	err := r.s.run(ctx, func(st *state) error {
		for _, e := range st.employees {
			if pred(e) {
				out = append(out, cloneEmployee(e))
			}
		}
		return nil
	})
	return out, err
}

// checkEmployeeConstraints mirrors the unique and foreign key constraints of the employees table.
func checkEmployeeConstraints(st *state, e employee.Employee) error {
	for _, other := range st.employees {
		if other.ID == e.ID {
			continue
		}
		if other.EmployeeName == e.EmployeeName {
			return employee.ErrEmployeeNameExists
		}
		if e.AidID != nil && other.AidID != nil && *other.AidID == *e.AidID {
			return employee.ErrAidAlreadyLinked
		}
	}
	if e.AidID != nil {
		found := false
		for _, other := range st.employees {
			if other.ID == *e.AidID {
				found = true
				break
			}
		}
		if !found {
			return employee.ErrAidNotFound
		}
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var out employee.Employee
	err := r.s.run(ctx, func(st *state) error {
		e, ok := r.find(st, func(e employee.Employee) bool { return e.ID == id })
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		out = e
		return nil
	})
	return out, err
}

func (r *employeeRepository) GetDriverByAid(ctx context.Context, aidID string) (employee.Employee, error) {
	var out employee.Employee
	err := r.s.run(ctx, func(st *state) error {
		e, ok := r.find(st, func(e employee.Employee) bool { return e.AidID != nil && *e.AidID == aidID })
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		out = e
		return nil
	})
	return out, err
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return r.filter(ctx, func(employee.Employee) bool { return true })
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.filter(ctx, func(e employee.Employee) bool { return e.IsActive })
}

func (r *employeeRepository) ListByPosition(ctx context.Context, position string) ([]employee.Employee, error) {
	return r.filter(ctx, func(e employee.Employee) bool { return e.Position == position })
}

func (r *employeeRepository) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	return r.filter(ctx, func(e employee.Employee) bool { return contains(ids, e.ID) })
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.s.run(ctx, func(st *state) error {
		if newEmployee.ID == "" {
			newEmployee.ID = newID()
		}
		if err := checkEmployeeConstraints(st, newEmployee); err != nil {
			return err
		}
		now := r.s.now()
		newEmployee.CreatedAt = now
		newEmployee.UpdatedAt = now
		st.employees = append(st.employees, cloneEmployee(newEmployee))
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return newEmployee, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	err := r.s.run(ctx, func(st *state) error {
		for i, existing := range st.employees {
			if existing.ID != e.ID {
				continue
			}
			if err := checkEmployeeConstraints(st, e); err != nil {
				return err
			}
			e.CreatedAt = existing.CreatedAt
			e.UpdatedAt = r.s.now()
			st.employees[i] = cloneEmployee(e)
			return nil
		}
		return employee.ErrEmployeeNotFound
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepository) ClearAidReferences(ctx context.Context, aidIDs []string) (int64, error) {
	var cleared int64
	err := r.s.run(ctx, func(st *state) error {
		now := r.s.now()
		for i, e := range st.employees {
			if e.AidID != nil && contains(aidIDs, *e.AidID) {
				st.employees[i].AidID = nil
				st.employees[i].UpdatedAt = now
				cleared++
			}
		}
		return nil
	})
	return cleared, err
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.s.run(ctx, func(st *state) error {
		if deleteEmployees(st, []string{id}) == 0 {
			return employee.ErrEmployeeNotFound
		}
		return nil
	})
}

func (r *employeeRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	err := r.s.run(ctx, func(st *state) error {
		deleted = deleteEmployees(st, ids)
		return nil
	})
	return deleted, err
}

// deleteEmployees removes the employees, nulls aid references to them and
// drops their timesheet entries, like the table's ON DELETE rules.
func deleteEmployees(st *state, ids []string) int64 {
	var deleted int64
	kept := st.employees[:0]
	for _, e := range st.employees {
		if contains(ids, e.ID) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	st.employees = kept

	for i, e := range st.employees {
		if e.AidID != nil && contains(ids, *e.AidID) {
			st.employees[i].AidID = nil
		}
	}

	entries := st.entries[:0]
	for _, e := range st.entries {
		if !contains(ids, e.EmployeeID) {
			entries = append(entries, e)
		}
	}
	st.entries = entries
	return deleted
}
