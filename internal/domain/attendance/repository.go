package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByKey returns the record for (user, workplace, work date), or nil
	// when none exists. Used to detect double check-ins.
	GetByKey(ctx context.Context, userID, workplaceID string, workDate time.Time) (*Attendance, error)

	ListByWorkplace(ctx context.Context, workplaceID string) ([]Attendance, error)
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListClosedByUserAndRange returns records with a check-out for one user
	// in [from, to], scoped to a workplace. Payroll aggregation input.
	ListClosedByUserAndRange(ctx context.Context, userID, workplaceID string, from, to time.Time) ([]Attendance, error)
}
