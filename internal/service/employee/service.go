package employee

import (
	"context"

	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type EmployeeServiceImpl struct {
	db            *database.DB
	employeeRepo  employee.EmployeeRepository
	workplaceRepo workplace.WorkplaceRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository, workplaceRepo workplace.WorkplaceRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:            db,
		employeeRepo:  employeeRepo,
		workplaceRepo: workplaceRepo,
	}
}

func callerIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// UpsertWorkInfo implements employee.EmployeeService. Owner only: sets the
// position and pay basis required before payroll can run for the employee.
func (s *EmployeeServiceImpl) UpsertWorkInfo(ctx context.Context, workplaceID, userID string, req employee.UpsertWorkInfoRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	wp, err := s.workplaceRepo.GetByID(ctx, workplaceID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if wp.OwnerID != callerID {
		return employee.EmployeeResponse{}, workplace.ErrNotTheOwner
	}

	emp, err := s.employeeRepo.GetByUserAndWorkplace(ctx, userID, workplaceID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.Position = req.Position
	if req.PayType != "" {
		payType := employee.PayType(req.PayType)
		emp.PayType = &payType
	} else {
		emp.PayType = nil
	}
	emp.HourlyRate = req.HourlyRate
	emp.WeeklyRate = req.WeeklyRate
	emp.MonthlyRate = req.MonthlyRate

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// GetWorkInfo implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetWorkInfo(ctx context.Context, workplaceID, userID string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByUserAndWorkplace(ctx, userID, workplaceID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var payType *string
	if emp.PayType != nil {
		pt := string(*emp.PayType)
		payType = &pt
	}
	return employee.EmployeeResponse{
		ID:          emp.ID,
		UserID:      emp.UserID,
		WorkplaceID: emp.WorkplaceID,
		Position:    emp.Position,
		PayType:     payType,
		HourlyRate:  emp.HourlyRate,
		WeeklyRate:  emp.WeeklyRate,
		MonthlyRate: emp.MonthlyRate,
		UserName:    emp.UserName,
		UserEmail:   emp.UserEmail,
	}
}
