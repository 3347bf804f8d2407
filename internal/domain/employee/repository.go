package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	GetByUserAndWorkplace(ctx context.Context, userID, workplaceID string) (Employee, error)
	ListByWorkplace(ctx context.Context, workplaceID string) ([]Employee, error)
	IsMember(ctx context.Context, userID, workplaceID string) (bool, error)
}
