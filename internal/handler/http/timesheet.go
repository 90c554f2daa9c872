package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	GetCurrentTimesheet(w http.ResponseWriter, r *http.Request)
	GetTimesheet(w http.ResponseWriter, r *http.Request)
	UpdateAttendance(w http.ResponseWriter, r *http.Request)
	UpdateNotes(w http.ResponseWriter, r *http.Request)
	ExportTimesheet(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

func (h *timesheetHandlerImpl) GetCurrentTimesheet(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetCurrentTimesheet(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetTimesheet(r.Context(), chi.URLParam(r, "payPeriodId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet updated successfully", result)
}

func (h *timesheetHandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.UpdateNotes(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notes updated successfully", result)
}

func (h *timesheetHandlerImpl) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	req := timesheet.ExportRequest{
		PayPeriodID: chi.URLParam(r, "payPeriodId"),
		Format:      r.URL.Query().Get("format"),
	}

	file, err := h.timesheetService.ExportTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.FileName, file.ContentType, file.Data)
}
