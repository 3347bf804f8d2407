package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType is the wage model applied to one employee at one workplace.
type PayType string

const (
	PayTypeHourly  PayType = "hourly"
	PayTypeWeekly  PayType = "weekly"
	PayTypeMonthly PayType = "monthly"
)

// Average weeks per month used to derive an hourly equivalent
// from a monthly wage (40h/week * 4.345 weeks).
var monthlyHourDivisor = decimal.NewFromFloat(40 * 4.345)

// Employee is the per-workplace work info of a user: position and pay basis.
type Employee struct {
	ID          string
	UserID      string
	WorkplaceID string
	Position    *string
	PayType     *PayType
	HourlyRate  *decimal.Decimal
	WeeklyRate  *decimal.Decimal
	MonthlyRate *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	UserName  *string
	UserEmail *string
}

// ResolvedPayType returns the pay basis tag, defaulting to hourly when unset.
func (e *Employee) ResolvedPayType() PayType {
	if e.PayType == nil {
		return PayTypeHourly
	}
	return *e.PayType
}

// HourlyEquivalent resolves the hourly wage used for premium pay:
// the explicit hourly rate when present, else weekly/40, else
// monthly/(40*4.345). Fails when no rate is set at all.
func (e *Employee) HourlyEquivalent() (decimal.Decimal, error) {
	if e.HourlyRate != nil {
		return *e.HourlyRate, nil
	}
	if e.WeeklyRate != nil {
		return e.WeeklyRate.DivRound(decimal.NewFromInt(40), 2), nil
	}
	if e.MonthlyRate != nil {
		return e.MonthlyRate.DivRound(monthlyHourDivisor, 2), nil
	}
	return decimal.Zero, ErrMissingPayRate
}

// BasePay computes the base pay component for the given regular hours.
// Weekly and monthly bases pay their flat rate when present; otherwise
// everything degrades to hourly-equivalent * regular hours.
func (e *Employee) BasePay(regularHours float64, hourly decimal.Decimal) decimal.Decimal {
	fallback := hourly.Mul(decimal.NewFromFloat(regularHours))
	switch e.ResolvedPayType() {
	case PayTypeWeekly:
		if e.WeeklyRate != nil {
			return *e.WeeklyRate
		}
		return fallback
	case PayTypeMonthly:
		if e.MonthlyRate != nil {
			return *e.MonthlyRate
		}
		return fallback
	default:
		return fallback
	}
}
