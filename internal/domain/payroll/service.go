package payroll

import "context"

type PayrollService interface {
	// CalculateMonthly aggregates closed attendance for the target month and
	// upserts one payroll row per employee.
	CalculateMonthly(ctx context.Context, req CalculateRequest) ([]PayrollResponse, error)

	// Finalize sets the one-way finalized flag.
	Finalize(ctx context.Context, id string) (PayrollResponse, error)

	ListByWorkplace(ctx context.Context, workplaceID string, year, month int) ([]PayrollResponse, error)
	ListMine(ctx context.Context, year, month int) ([]PayrollResponse, error)
}
