package workplace

import "context"

type WorkplaceRepository interface {
	Create(ctx context.Context, wp Workplace) (Workplace, error)
	GetByID(ctx context.Context, id string) (Workplace, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Workplace, error)

	CreateJoinRequest(ctx context.Context, req JoinRequest) (JoinRequest, error)
	GetJoinRequestByID(ctx context.Context, id string) (JoinRequest, error)
	ListJoinRequests(ctx context.Context, workplaceID string, status JoinRequestStatus) ([]JoinRequest, error)
	UpdateJoinRequestStatus(ctx context.Context, id string, status JoinRequestStatus) error
}
