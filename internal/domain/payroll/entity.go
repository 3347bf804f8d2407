package payroll

import (
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Payroll is one aggregation result per (workplace, user, period).
// Recalculating an unfinalized payroll overwrites the row in place.
type Payroll struct {
	ID          string
	UserID      string
	WorkplaceID string
	StartDate   time.Time
	EndDate     time.Time
	PayType     employee.PayType

	WorkDays      int
	RegularHours  float64
	OvertimeHours float64
	NightHours    float64
	HolidayHours  float64
	TotalHours    float64

	BasePay     decimal.Decimal
	OvertimePay decimal.Decimal
	NightPay    decimal.Decimal
	HolidayPay  decimal.Decimal
	TotalPay    decimal.Decimal

	Finalized    bool
	CalculatedAt time.Time
	FinalizedAt  *time.Time

	// Joined fields
	UserName *string
}
