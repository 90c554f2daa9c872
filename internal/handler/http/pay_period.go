package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayPeriodHandler interface {
	ListPayPeriods(w http.ResponseWriter, r *http.Request)
	CreatePayPeriod(w http.ResponseWriter, r *http.Request)
	GetCurrentPayPeriodID(w http.ResponseWriter, r *http.Request)
	GetPayPeriod(w http.ResponseWriter, r *http.Request)
	GetPayPeriodDays(w http.ResponseWriter, r *http.Request)
	GetAutoCreation(w http.ResponseWriter, r *http.Request)
	SetAutoCreation(w http.ResponseWriter, r *http.Request)
	EnsureCurrentPayPeriod(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	payPeriodService payperiod.PayPeriodService
}

func NewPayPeriodHandler(payPeriodService payperiod.PayPeriodService) PayPeriodHandler {
	return &payPeriodHandlerImpl{
		payPeriodService: payPeriodService,
	}
}

func (h *payPeriodHandlerImpl) ListPayPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.ListPayPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payPeriodHandlerImpl) CreatePayPeriod(w http.ResponseWriter, r *http.Request) {
	var req payperiod.CreatePayPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payPeriodService.CreatePayPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay period created successfully", result)
}

func (h *payPeriodHandlerImpl) GetCurrentPayPeriodID(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.GetCurrentPayPeriodID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payPeriodHandlerImpl) GetPayPeriod(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.GetPayPeriod(r.Context(), chi.URLParam(r, "payPeriodId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payPeriodHandlerImpl) GetPayPeriodDays(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.GetPayPeriodDays(r.Context(), chi.URLParam(r, "payPeriodId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payPeriodHandlerImpl) GetAutoCreation(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.GetAutoCreation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payPeriodHandlerImpl) SetAutoCreation(w http.ResponseWriter, r *http.Request) {
	var req payperiod.SetAutoCreationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payPeriodService.SetAutoCreation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period auto-creation updated", result)
}

func (h *payPeriodHandlerImpl) EnsureCurrentPayPeriod(w http.ResponseWriter, r *http.Request) {
	result, err := h.payPeriodService.EnsureCurrentPayPeriod(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Created {
		response.Created(w, "Pay period created successfully", result)
		return
	}
	response.SuccessWithMessage(w, "Current pay period already covers today", result)
}
