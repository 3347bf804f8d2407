package employee

import (
	"github.com/albastory/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertWorkInfoRequest struct {
	Position    *string          `json:"position"`
	PayType     string           `json:"pay_type"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	WeeklyRate  *decimal.Decimal `json:"weekly_rate"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate"`
}

func (r *UpsertWorkInfoRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayType != "" && !validator.IsInSlice(r.PayType, []string{"hourly", "weekly", "monthly"}) {
		errs = append(errs, validator.ValidationError{Field: "pay_type", Message: "pay_type must be hourly, weekly or monthly"})
	}

	for field, rate := range map[string]*decimal.Decimal{
		"hourly_rate":  r.HourlyRate,
		"weekly_rate":  r.WeeklyRate,
		"monthly_rate": r.MonthlyRate,
	} {
		if rate != nil && rate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "rate cannot be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	WorkplaceID string           `json:"workplace_id"`
	Position    *string          `json:"position,omitempty"`
	PayType     *string          `json:"pay_type,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	WeeklyRate  *decimal.Decimal `json:"weekly_rate,omitempty"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate,omitempty"`
	UserName    *string          `json:"user_name,omitempty"`
	UserEmail   *string          `json:"user_email,omitempty"`
}
