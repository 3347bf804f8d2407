package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// Owner operations
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Approve(ctx context.Context, id string) (AttendanceResponse, error)

	ListByWorkplace(ctx context.Context, workplaceID string) ([]AttendanceResponse, error)
	ListMine(ctx context.Context) ([]AttendanceResponse, error)
}
