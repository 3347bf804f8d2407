package workplace

import (
	"context"

	"github.com/albastory/workforce-backend-go/internal/domain/employee"
)

type WorkplaceService interface {
	Create(ctx context.Context, req CreateWorkplaceRequest) (WorkplaceResponse, error)
	GetByID(ctx context.Context, id string) (WorkplaceResponse, error)
	ListEmployees(ctx context.Context, workplaceID string) ([]employee.EmployeeResponse, error)

	SubmitJoinRequest(ctx context.Context, workplaceID string) (JoinRequestResponse, error)
	AcceptJoinRequest(ctx context.Context, joinRequestID string) (JoinRequestResponse, error)
	ListJoinRequests(ctx context.Context, workplaceID string) ([]JoinRequestResponse, error)
}
