package payroll

import (
	"time"

	"github.com/albastory/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	WorkplaceID string  `json:"workplace_id"`
	UserID      *string `json:"user_id"` // nil means every employee of the workplace
	Year        int     `json:"year"`
	Month       int     `json:"month"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "workplace_id is required"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	WorkplaceID string `json:"workplace_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PayType     string `json:"pay_type"`

	WorkDays      int     `json:"work_days"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	NightHours    float64 `json:"night_hours"`
	HolidayHours  float64 `json:"holiday_hours"`
	TotalHours    float64 `json:"total_hours"`

	BasePay     decimal.Decimal `json:"base_pay"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	NightPay    decimal.Decimal `json:"night_pay"`
	HolidayPay  decimal.Decimal `json:"holiday_pay"`
	TotalPay    decimal.Decimal `json:"total_pay"`

	Finalized    bool       `json:"finalized"`
	CalculatedAt time.Time  `json:"calculated_at"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`
	UserName     *string    `json:"user_name,omitempty"`
}
