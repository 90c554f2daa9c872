package timesheet

import "github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"

// OrderForDisplay orders the entries of a pay period so that every Driver is
// immediately followed by the entry of its linked Aid. Entries not placed by
// a pairing keep their relative order at the end. employees is keyed by ID;
// an entry whose employee is missing falls back to its position snapshot.
func OrderForDisplay(entries []Entry, employees map[string]employee.Employee) []Entry {
	byEmployee := make(map[string]int, len(entries))
	for i, e := range entries {
		byEmployee[e.EmployeeID] = i
	}

	visited := make([]bool, len(entries))
	out := make([]Entry, 0, len(entries))

	for i, e := range entries {
		if visited[i] {
			continue
		}
		emp, known := employees[e.EmployeeID]
		isDriver := e.EmployeePosition == employee.PositionDriver
		if known {
			isDriver = emp.IsDriver()
		}
		if !isDriver {
			continue
		}

		out = append(out, e)
		visited[i] = true

		if !known || emp.AidID == nil {
			continue
		}
		if j, ok := byEmployee[*emp.AidID]; ok && !visited[j] {
			out = append(out, entries[j])
			visited[j] = true
		}
	}

	for i, e := range entries {
		if !visited[i] {
			out = append(out, e)
		}
	}
	return out
}
