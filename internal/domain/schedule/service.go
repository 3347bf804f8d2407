package schedule

import (
	"context"
	"time"
)

type ScheduleService interface {
	// Generate runs one scheduling pass: assistant first, deterministic
	// greedy fallback when no usable plan comes back.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	Update(ctx context.Context, id string, req UpdateScheduleRequest) (ScheduleResponse, error)
	Cancel(ctx context.Context, id string) error

	ListByWorkplace(ctx context.Context, workplaceID string) ([]ScheduleResponse, error)
	ListMine(ctx context.Context) ([]ScheduleResponse, error)

	// HasConflict reports whether the user already has an entry overlapping
	// [startTime, endTime]. Touching boundaries count as a conflict.
	HasConflict(ctx context.Context, userID string, startTime, endTime time.Time) (bool, error)
}
