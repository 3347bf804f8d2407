package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	Update(ctx context.Context, p Payroll) error
	GetByID(ctx context.Context, id string) (Payroll, error)

	// GetByPeriod returns the row for (workplace, user, start, end), or nil
	// when none exists. Calculation upserts against this key.
	GetByPeriod(ctx context.Context, workplaceID, userID string, start, end time.Time) (*Payroll, error)

	ListByWorkplaceAndPeriod(ctx context.Context, workplaceID string, start, end time.Time) ([]Payroll, error)
	ListByUserAndPeriod(ctx context.Context, userID string, start, end time.Time) ([]Payroll, error)
}
