package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/memory"
	auditsvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/audit"
	employeesvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/employee"
	payperiodsvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/payperiod"
	timesheetsvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	admin   string
	viewer  string
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	store := memory.NewStore()
	clock := payperiodsvc.WithClock(func() time.Time { return time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC) })

	audits := auditsvc.NewAuditService(store.AuditTrail())
	employees := employeesvc.NewEmployeeService(store, store.Employees(), store.PayPeriods(), store.Globals(), store.Timesheets())
	periods := payperiodsvc.NewPayPeriodService(store, store.PayPeriods(), store.Globals(), store.Employees(), store.Timesheets(), clock)
	sheets := timesheetsvc.NewTimesheetService(store, store.Timesheets(), store.Employees(), store.PayPeriods(), store.Globals(), audits)

	jwtService := jwt.NewJWTService("test-secret", "15m")
	admin, _, err := jwtService.GenerateAccessToken("admin-1", true)
	require.NoError(t, err)
	viewer, _, err := jwtService.GenerateAccessToken("viewer-1", false)
	require.NoError(t, err)

	router := NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}, Env: "test", LogLevel: slog.LevelError},
		jwtService,
		NewEmployeeHandler(employees),
		NewPayPeriodHandler(periods),
		NewTimesheetHandler(sheets),
		NewAuditTrailHandler(audits),
	)
	return testServer{handler: router, admin: admin, viewer: viewer}
}

func (s testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func employeeBody(name, position string) map[string]interface{} {
	return map[string]interface{}{
		"employeeName":     name,
		"position":         position,
		"amRate":           "10",
		"pmRate":           "10",
		"cashSplitPercent": "50",
	}
}

func TestRouter_Authentication(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/employee", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/employee", "abc.def.ghi", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("viewer can read", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/employee", srv.viewer, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("viewer cannot mutate", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/employee/add", srv.viewer, employeeBody("Ann", "Driver"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		env := decode(t, rec, nil)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}

func TestRouter_TimesheetFlow(t *testing.T) {
	srv := newTestServer(t)

	// No current pay period yet.
	rec := srv.do(t, http.MethodGet, "/api/v1/timesheet", srv.viewer, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/employee/add", srv.admin, employeeBody("Ann", "Driver"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ann employee.EmployeeResponse
	decode(t, rec, &ann)

	rec = srv.do(t, http.MethodPost, "/api/v1/pay-period", srv.admin, map[string]string{"startDate": "2025-01-06"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var period payperiod.PayPeriodResponse
	decode(t, rec, &period)
	assert.Equal(t, "2025-01-17", period.EndDate)

	rec = srv.do(t, http.MethodPost, "/api/v1/pay-period", srv.admin, map[string]string{"startDate": "2025-01-06"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/pay-period", srv.admin, map[string]string{"startDate": "2025-01-07"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Act
	rec = srv.do(t, http.MethodPut, "/api/v1/timesheet", srv.admin, map[string]string{
		"employeeId":     ann.ID,
		"payrollDataKey": "2025-01-06",
		"fieldName":      "am",
		"fieldValue":     "P",
	})

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var entry timesheet.EntryResponse
	decode(t, rec, &entry)
	assert.Equal(t, "0.5", entry.TotalDays.String())
	assert.Equal(t, "10", entry.Total.String())

	rec = srv.do(t, http.MethodPut, "/api/v1/timesheet", srv.admin, map[string]string{
		"employeeId":     ann.ID,
		"payrollDataKey": "2025-01-06",
		"fieldName":      "mid",
		"fieldValue":     "P",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "NOT_APPLICABLE", decode(t, rec, nil).Error.Code)

	rec = srv.do(t, http.MethodPut, "/api/v1/timesheet", srv.admin, map[string]string{
		"employeeId":     ann.ID,
		"payrollDataKey": "2025-01-06",
		"fieldName":      "night",
		"fieldValue":     "P",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPut, "/api/v1/timesheet", srv.admin, map[string]string{
		"employeeId":     ann.ID,
		"payrollDataKey": "2025-01-11",
		"fieldName":      "am",
		"fieldValue":     "P",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPut, "/api/v1/timesheet", srv.admin, map[string]string{"employeeId": "nope"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "employeeId")

	rec = srv.do(t, http.MethodGet, "/api/v1/timesheet", srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sheet timesheet.TimesheetResponse
	decode(t, rec, &sheet)
	require.Len(t, sheet.Entries, 1)
	assert.Equal(t, "0.5", sheet.Entries[0].TotalDays.String())
	assert.Len(t, sheet.Days, 10)

	rec = srv.do(t, http.MethodGet, "/api/v1/audit-trail?limit=5", srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trail []audit.EntryResponse
	env = decode(t, rec, &trail)
	require.Len(t, trail, 1)
	assert.Equal(t, "am", trail[0].FieldName)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.TotalItems)
	assert.Equal(t, 5, env.Meta.Limit)

	rec = srv.do(t, http.MethodGet, "/api/v1/audit-trail?page=x", srv.viewer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/timesheet/"+period.ID+"/export?format=xlsx", srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="timesheet-2025-01-06.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func TestRouter_BulkCreateStatus(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/employee/bulk", srv.admin, map[string]interface{}{
		"employees": []interface{}{employeeBody("Ann", "Driver"), employeeBody("Bob", "Aid")},
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/v1/employee/bulk", srv.admin, map[string]interface{}{
		"employees": []interface{}{employeeBody("Ann", "Driver"), employeeBody("Cid", "Aid")},
	})
	require.Equal(t, http.StatusMultiStatus, rec.Code, rec.Body.String())
	var partial employee.BulkCreateEmployeeResponse
	decode(t, rec, &partial)
	assert.Equal(t, 1, partial.InsertedCount)
	require.Len(t, partial.Failed, 1)
	assert.Equal(t, 0, partial.Failed[0].Index)

	rec = srv.do(t, http.MethodPost, "/api/v1/employee/bulk", srv.admin, map[string]interface{}{
		"employees": []interface{}{employeeBody("Ann", "Driver")},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec, nil).Error.Details, "employees[0]")
}

func TestRouter_EmployeeLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/employee/add", srv.admin, employeeBody("Bob", "Aid"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var bob employee.EmployeeResponse
	decode(t, rec, &bob)

	driver := employeeBody("Ann", "Driver")
	driver["aid"] = bob.ID
	rec = srv.do(t, http.MethodPost, "/api/v1/employee/add", srv.admin, driver)
	require.Equal(t, http.StatusCreated, rec.Code)
	var ann employee.EmployeeResponse
	decode(t, rec, &ann)
	require.NotNil(t, ann.Aid)

	other := employeeBody("Cid", "Driver")
	other["aid"] = bob.ID
	rec = srv.do(t, http.MethodPost, "/api/v1/employee/add", srv.admin, other)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode(t, rec, nil).Error.Message, "Ann")

	paired := employeeBody("Dee", "Driver")
	paired["aid"] = ann.ID
	rec = srv.do(t, http.MethodPost, "/api/v1/employee/add", srv.admin, paired)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/employee/aids", srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var aids []employee.EmployeeResponse
	decode(t, rec, &aids)
	require.Len(t, aids, 1)

	rec = srv.do(t, http.MethodPut, "/api/v1/employee/"+ann.ID, srv.admin, map[string]string{"employeeName": "Ann Lee"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/v1/employee/"+bob.ID, srv.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/employee/"+ann.ID, srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got employee.EmployeeResponse
	decode(t, rec, &got)
	assert.Equal(t, "Ann Lee", got.EmployeeName)
	assert.Nil(t, got.Aid)

	rec = srv.do(t, http.MethodGet, "/api/v1/employee/"+bob.ID, srv.viewer, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/employee/bulk-delete", srv.admin, map[string][]string{"ids": {ann.ID}})
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted employee.BulkDeleteEmployeeResponse
	decode(t, rec, &deleted)
	assert.Equal(t, int64(1), deleted.DeletedCount)
}

func TestRouter_PayPeriodAutoCreation(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/pay-period/auto-creation", srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var auto payperiod.AutoCreationResponse
	decode(t, rec, &auto)
	assert.False(t, auto.Enabled)

	rec = srv.do(t, http.MethodPut, "/api/v1/pay-period/auto-creation", srv.admin, map[string]bool{"enabled": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/pay-period/ensure", srv.admin, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ensured payperiod.EnsureResponse
	decode(t, rec, &ensured)
	assert.True(t, ensured.Created)
	assert.Equal(t, "2025-01-06", ensured.PayPeriod.StartDate)

	rec = srv.do(t, http.MethodPost, "/api/v1/pay-period/ensure", srv.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/pay-period/current-id", srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var current payperiod.CurrentPayPeriodResponse
	decode(t, rec, &current)
	assert.Equal(t, ensured.PayPeriod.ID, current.CurrentPayPeriodID)

	rec = srv.do(t, http.MethodGet, "/api/v1/pay-period/days/"+current.CurrentPayPeriodID, srv.viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []payperiod.DayResponse
	decode(t, rec, &days)
	assert.Len(t, days, 10)

	rec = srv.do(t, http.MethodGet, "/api/v1/pay-period/details/not-a-uuid", srv.viewer, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
