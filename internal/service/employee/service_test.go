package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	payperiodsvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/payperiod"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store   *memory.Store
	svc     employee.EmployeeService
	periods payperiod.PayPeriodService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	return testEnv{
		store: store,
		svc:   NewEmployeeService(store, store.Employees(), store.PayPeriods(), store.Globals(), store.Timesheets()),
		periods: payperiodsvc.NewPayPeriodService(
			store, store.PayPeriods(), store.Globals(), store.Employees(), store.Timesheets(),
		),
	}
}

// withCurrentPeriod creates the period starting Monday 2025-01-06 and returns its id.
func (e testEnv) withCurrentPeriod(t *testing.T) string {
	t.Helper()
	resp, err := e.periods.CreatePayPeriod(context.Background(), payperiod.CreatePayPeriodRequest{StartDate: "2025-01-06"})
	require.NoError(t, err)
	return resp.ID
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func newRequest(name, position string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeName:     name,
		Position:         position,
		AMRate:           dec("10"),
		CashSplitPercent: dec("50"),
	}
}

func TestEmployeeService_CreateEmployee_NoCurrentPayPeriod(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// Act
	created, err := env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		EmployeeName:     "Ann",
		Position:         "Driver",
		AMRate:           dec("10"),
		MidRate:          dec("10"),
		PMRate:           dec("10"),
		LTRate:           dec("10"),
		CashSplitPercent: dec("25"),
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.True(t, decimal.RequireFromString("0.25").Equal(created.DayIncrementValue))
	assert.Nil(t, created.Aid)
}

func TestEmployeeService_CreateEmployee_MaterializesEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	periodID := env.withCurrentPeriod(t)

	// Act
	created, err := env.svc.CreateEmployee(ctx, newRequest("Ann", "Driver"))
	require.NoError(t, err)

	// Assert
	entry, err := env.store.Timesheets().GetByEmployeeAndPayPeriod(ctx, created.ID, periodID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", entry.EmployeeName)
	assert.Equal(t, 10, entry.PayrollData.Len())
	assert.True(t, decimal.NewFromInt(10).Equal(entry.PayRate))
	assert.True(t, entry.TotalDays.IsZero())
}

func TestEmployeeService_CreateEmployee_InactiveHasNoEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	periodID := env.withCurrentPeriod(t)

	req := newRequest("Ann", "Driver")
	req.IsActive = boolPtr(false)
	created, err := env.svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	_, err = env.store.Timesheets().GetByEmployeeAndPayPeriod(ctx, created.ID, periodID)
	assert.ErrorIs(t, err, timesheet.ErrEntryNotFound)
}

func TestEmployeeService_CreateEmployee_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Position: "Driver"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employeeName")
	assert.Contains(t, verrs.ToMap(), "cashSplitPercent")
}

func TestEmployeeService_CreateEmployee_DuplicateName(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.svc.CreateEmployee(ctx, newRequest("Ann", "Driver"))
	require.NoError(t, err)

	_, err = env.svc.CreateEmployee(ctx, newRequest("Ann", "Aid"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)
}

func TestEmployeeService_CreateEmployee_AidPairing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	aid, err := env.svc.CreateEmployee(ctx, newRequest("Bob", "Aid"))
	require.NoError(t, err)

	first := newRequest("Ann", "Driver")
	first.Aid = strPtr(aid.ID)
	driver, err := env.svc.CreateEmployee(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, driver.Aid)
	assert.Equal(t, "Bob", driver.Aid.EmployeeName)

	t.Run("aid held by another driver", func(t *testing.T) {
		second := newRequest("Cid", "Driver")
		second.Aid = strPtr(aid.ID)
		_, err := env.svc.CreateEmployee(ctx, second)

		var conflict *employee.AidConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "Ann", conflict.DriverName)
	})

	t.Run("unknown aid", func(t *testing.T) {
		req := newRequest("Dee", "Driver")
		req.Aid = strPtr("0190a7e4-0000-7000-8000-000000000000")
		_, err := env.svc.CreateEmployee(ctx, req)
		assert.ErrorIs(t, err, employee.ErrAidNotFound)
	})

	t.Run("target is a driver", func(t *testing.T) {
		req := newRequest("Fay", "Driver")
		req.Aid = strPtr(driver.ID)
		_, err := env.svc.CreateEmployee(ctx, req)
		assert.ErrorIs(t, err, employee.ErrAidNotAnAid)
	})

	t.Run("non driver drops aid", func(t *testing.T) {
		req := newRequest("Eve", "Helper")
		req.Aid = strPtr(aid.ID)
		created, err := env.svc.CreateEmployee(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, created.Aid)
	})
}

func TestEmployeeService_CreateEmployeesBulk_PartialSuccess(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.CreateEmployeesBulk(ctx, employee.BulkCreateEmployeeRequest{
		Employees: []employee.CreateEmployeeRequest{
			newRequest("Ann", "Driver"),
			{Position: "Driver", CashSplitPercent: dec("10")},
			newRequest("Ann", "Aid"),
			newRequest("Bob", "Aid"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.InsertedCount)
	assert.Equal(t, 2, resp.FailedCount)
	require.Len(t, resp.Failed, 2)
	assert.Equal(t, 1, resp.Failed[0].Index)
	assert.Equal(t, 2, resp.Failed[1].Index)
	assert.Equal(t, employee.ErrEmployeeNameExists.Error(), resp.Failed[1].Message)

	list, err := env.svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestEmployeeService_CreateEmployeesBulk_Empty(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.CreateEmployeesBulk(context.Background(), employee.BulkCreateEmployeeRequest{})
	assert.ErrorIs(t, err, employee.ErrNoEmployees)
}

func TestEmployeeService_ListAids(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	for _, r := range []employee.CreateEmployeeRequest{
		newRequest("Ann", "Driver"),
		newRequest("Bob", "Aid"),
		newRequest("Cid", "Aid"),
	} {
		_, err := env.svc.CreateEmployee(ctx, r)
		require.NoError(t, err)
	}

	aids, err := env.svc.ListAids(ctx)

	require.NoError(t, err)
	require.Len(t, aids, 2)
	for _, a := range aids {
		assert.Equal(t, employee.PositionAid, a.Position)
	}
}

func TestEmployeeService_UpdateEmployee_PatchesEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	periodID := env.withCurrentPeriod(t)

	created, err := env.svc.CreateEmployee(ctx, newRequest("Ann", "Driver"))
	require.NoError(t, err)

	emp, err := env.store.Employees().GetByID(ctx, created.ID)
	require.NoError(t, err)
	entry, err := env.store.Timesheets().GetByEmployeeAndPayPeriod(ctx, created.ID, periodID)
	require.NoError(t, err)
	require.NoError(t, entry.ApplyEdit(emp, "2025-01-06", employee.ShiftAM, "P"))
	_, err = env.store.Timesheets().Update(ctx, entry)
	require.NoError(t, err)

	// Act
	updated, err := env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:           created.ID,
		EmployeeName: strPtr("Ann Lee"),
		AMRate:       dec("20"),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", updated.EmployeeName)

	entry, err = env.store.Timesheets().GetByEmployeeAndPayPeriod(ctx, created.ID, periodID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", entry.EmployeeName)
	assert.True(t, decimal.NewFromInt(20).Equal(entry.PayRate))
	assert.True(t, decimal.NewFromInt(1).Equal(entry.TotalDays))
	assert.True(t, decimal.NewFromInt(20).Equal(entry.Total))
	assert.True(t, decimal.NewFromInt(10).Equal(entry.Cash))
	assert.True(t, decimal.NewFromInt(10).Equal(entry.Payroll))
}

func TestEmployeeService_UpdateEmployee_ReactivationMaterializesEntry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	periodID := env.withCurrentPeriod(t)

	req := newRequest("Ann", "Driver")
	req.IsActive = boolPtr(false)
	created, err := env.svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	_, err = env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, IsActive: boolPtr(true)})
	require.NoError(t, err)

	entry, err := env.store.Timesheets().GetByEmployeeAndPayPeriod(ctx, created.ID, periodID)
	require.NoError(t, err)
	assert.Equal(t, 10, entry.PayrollData.Len())
}

func TestEmployeeService_UpdateEmployee_PositionChangeUnlinks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	aid, err := env.svc.CreateEmployee(ctx, newRequest("Bob", "Aid"))
	require.NoError(t, err)
	req := newRequest("Ann", "Driver")
	req.Aid = strPtr(aid.ID)
	driver, err := env.svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	t.Run("driver stops driving", func(t *testing.T) {
		updated, err := env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: driver.ID, Position: strPtr("Helper")})
		require.NoError(t, err)
		assert.Nil(t, updated.Aid)

		_, err = env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
			ID:       driver.ID,
			Position: strPtr("Driver"),
			Aid:      strPtr(aid.ID),
		})
		require.NoError(t, err)
	})

	t.Run("aid stops being an aid", func(t *testing.T) {
		_, err := env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: aid.ID, Position: strPtr("Helper")})
		require.NoError(t, err)

		got, err := env.svc.GetEmployee(ctx, driver.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Aid)
	})
}

func TestEmployeeService_UpdateEmployee_AidMustBeAnAid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	helper, err := env.svc.CreateEmployee(ctx, newRequest("Bob", "Helper"))
	require.NoError(t, err)
	other, err := env.svc.CreateEmployee(ctx, newRequest("Cid", "Driver"))
	require.NoError(t, err)
	driver, err := env.svc.CreateEmployee(ctx, newRequest("Ann", "Driver"))
	require.NoError(t, err)

	for name, target := range map[string]string{"helper": helper.ID, "driver": other.ID} {
		t.Run(name, func(t *testing.T) {
			_, err := env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: driver.ID, Aid: strPtr(target)})
			assert.ErrorIs(t, err, employee.ErrAidNotAnAid)

			got, err := env.svc.GetEmployee(ctx, driver.ID)
			require.NoError(t, err)
			assert.Nil(t, got.Aid)
		})
	}
}

func TestEmployeeService_UpdateEmployee_AidIsSelf(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	driver, err := env.svc.CreateEmployee(ctx, newRequest("Ann", "Driver"))
	require.NoError(t, err)

	_, err = env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: driver.ID, Aid: strPtr(driver.ID)})
	assert.ErrorIs(t, err, employee.ErrAidIsSelf)
}

func TestEmployeeService_UpdateEmployee_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{
		ID:           "0190a7e4-0000-7000-8000-000000000000",
		EmployeeName: strPtr("Nobody"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_DeleteEmployee_Cascades(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	periodID := env.withCurrentPeriod(t)

	aid, err := env.svc.CreateEmployee(ctx, newRequest("Bob", "Aid"))
	require.NoError(t, err)
	req := newRequest("Ann", "Driver")
	req.Aid = strPtr(aid.ID)
	driver, err := env.svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	// Act
	require.NoError(t, env.svc.DeleteEmployee(ctx, aid.ID))

	// Assert
	_, err = env.svc.GetEmployee(ctx, aid.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	got, err := env.svc.GetEmployee(ctx, driver.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Aid)

	entries, err := env.store.Timesheets().ListByPayPeriod(ctx, periodID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, driver.ID, entries[0].EmployeeID)
}

func TestEmployeeService_DeleteEmployee_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	assert.ErrorIs(t, env.svc.DeleteEmployee(context.Background(), "nope"), employee.ErrInvalidEmployeeID)
}

func TestEmployeeService_DeleteEmployeesBulk(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCurrentPeriod(t)

	var ids []string
	for _, name := range []string{"Ann", "Bob", "Cid"} {
		created, err := env.svc.CreateEmployee(ctx, newRequest(name, "Driver"))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	t.Run("invalid id rejects the batch", func(t *testing.T) {
		_, err := env.svc.DeleteEmployeesBulk(ctx, employee.BulkDeleteEmployeeRequest{IDs: []string{ids[0], "bad"}})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "ids[1]")
	})

	t.Run("deletes employees and entries", func(t *testing.T) {
		resp, err := env.svc.DeleteEmployeesBulk(ctx, employee.BulkDeleteEmployeeRequest{IDs: ids[:2]})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.DeletedCount)
		assert.Equal(t, int64(2), resp.TimesheetDeletedCount)

		list, err := env.svc.ListEmployees(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Cid", list[0].EmployeeName)
	})

	t.Run("empty request", func(t *testing.T) {
		_, err := env.svc.DeleteEmployeesBulk(ctx, employee.BulkDeleteEmployeeRequest{})
		assert.ErrorIs(t, err, employee.ErrNoEmployeeIDs)
	})
}
