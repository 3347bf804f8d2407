package employee

import "context"

type EmployeeService interface {
	UpsertWorkInfo(ctx context.Context, workplaceID, userID string, req UpsertWorkInfoRequest) (EmployeeResponse, error)
	GetWorkInfo(ctx context.Context, workplaceID, userID string) (EmployeeResponse, error)
}
