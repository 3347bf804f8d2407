package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	Create(ctx context.Context, sched Schedule) (Schedule, error)
	Update(ctx context.Context, sched Schedule) error
	GetByID(ctx context.Context, id string) (Schedule, error)

	ListByWorkplace(ctx context.Context, workplaceID string) ([]Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]Schedule, error)

	// CancelByWorkplaceAndRange marks every active entry of a workplace whose
	// start time falls in the half-open [from, to) as cancelled. An entry
	// starting exactly at the upper bound is outside the range.
	CancelByWorkplaceAndRange(ctx context.Context, workplaceID string, from, to time.Time) error
}
