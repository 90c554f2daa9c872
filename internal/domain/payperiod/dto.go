package payperiod

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type CreatePayPeriodRequest struct {
	StartDate string `json:"startDate"`
}

func (r *CreatePayPeriodRequest) Validate() error {
	if validator.IsEmpty(r.StartDate) {
		return ErrStartDateRequired
	}
	if _, ok := validator.ParseDay(r.StartDate); !ok {
		return ErrInvalidStartDate
	}
	return nil
}

type SetAutoCreationRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r *SetAutoCreationRequest) Validate() error {
	if r.Enabled == nil {
		return validator.ValidationErrors{{Field: "enabled", Message: "is required"}}
	}
	return nil
}

type PayPeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	CreatedAt string `json:"createdAt"`
}

type DayResponse struct {
	ID          string `json:"id"`
	PayPeriodID string `json:"payPeriodId"`
	DayName     string `json:"dayName"`
	Date        string `json:"date"`
}

type CurrentPayPeriodResponse struct {
	CurrentPayPeriodID string `json:"currentPayPeriodId"`
}

type AutoCreationResponse struct {
	Enabled bool `json:"enabled"`
}

// EnsureResponse reports the pay period covering today and whether it had to be created.
type EnsureResponse struct {
	PayPeriod PayPeriodResponse `json:"payPeriod"`
	Created   bool              `json:"created"`
}

func NewPayPeriodResponse(p PayPeriod) PayPeriodResponse {
	return PayPeriodResponse{
		ID:        p.ID,
		StartDate: DateKey(p.StartDate),
		EndDate:   DateKey(p.EndDate),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func NewDayResponses(days []Day) []DayResponse {
	responses := make([]DayResponse, 0, len(days))
	for _, d := range days {
		responses = append(responses, DayResponse{
			ID:          d.ID,
			PayPeriodID: d.PayPeriodID,
			DayName:     d.DayName,
			Date:        d.Key(),
		})
	}
	return responses
}
