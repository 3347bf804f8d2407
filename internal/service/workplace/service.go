package workplace

import (
	"context"
	"fmt"

	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/user"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/albastory/workforce-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type WorkplaceServiceImpl struct {
	db            *database.DB
	workplaceRepo workplace.WorkplaceRepository
	employeeRepo  employee.EmployeeRepository
}

func NewWorkplaceService(db *database.DB, workplaceRepo workplace.WorkplaceRepository, employeeRepo employee.EmployeeRepository) workplace.WorkplaceService {
	return &WorkplaceServiceImpl{
		db:            db,
		workplaceRepo: workplaceRepo,
		employeeRepo:  employeeRepo,
	}
}

func callerFromContext(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", auth.ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return userID, user.Role(role), nil
}

// Create implements workplace.WorkplaceService.
func (s *WorkplaceServiceImpl) Create(ctx context.Context, req workplace.CreateWorkplaceRequest) (workplace.WorkplaceResponse, error) {
	if err := req.Validate(); err != nil {
		return workplace.WorkplaceResponse{}, err
	}

	callerID, role, err := callerFromContext(ctx)
	if err != nil {
		return workplace.WorkplaceResponse{}, err
	}
	if role != user.RoleBoss {
		return workplace.WorkplaceResponse{}, workplace.ErrBossRoleRequired
	}

	wp, err := s.workplaceRepo.Create(ctx, workplace.Workplace{
		OwnerID: callerID,
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return workplace.WorkplaceResponse{}, err
	}

	return mapWorkplaceToResponse(wp), nil
}

// GetByID implements workplace.WorkplaceService.
func (s *WorkplaceServiceImpl) GetByID(ctx context.Context, id string) (workplace.WorkplaceResponse, error) {
	wp, err := s.workplaceRepo.GetByID(ctx, id)
	if err != nil {
		return workplace.WorkplaceResponse{}, err
	}
	return mapWorkplaceToResponse(wp), nil
}

// ListEmployees implements workplace.WorkplaceService.
func (s *WorkplaceServiceImpl) ListEmployees(ctx context.Context, workplaceID string) ([]employee.EmployeeResponse, error) {
	if _, err := s.workplaceRepo.GetByID(ctx, workplaceID); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListByWorkplace(ctx, workplaceID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses, nil
}

// SubmitJoinRequest implements workplace.WorkplaceService.
func (s *WorkplaceServiceImpl) SubmitJoinRequest(ctx context.Context, workplaceID string) (workplace.JoinRequestResponse, error) {
	callerID, _, err := callerFromContext(ctx)
	if err != nil {
		return workplace.JoinRequestResponse{}, err
	}

	if _, err := s.workplaceRepo.GetByID(ctx, workplaceID); err != nil {
		return workplace.JoinRequestResponse{}, err
	}

	isMember, err := s.employeeRepo.IsMember(ctx, callerID, workplaceID)
	if err != nil {
		return workplace.JoinRequestResponse{}, err
	}
	if isMember {
		return workplace.JoinRequestResponse{}, workplace.ErrAlreadyAMember
	}

	req, err := s.workplaceRepo.CreateJoinRequest(ctx, workplace.JoinRequest{
		WorkplaceID: workplaceID,
		UserID:      callerID,
		Status:      workplace.JoinRequestPending,
	})
	if err != nil {
		return workplace.JoinRequestResponse{}, err
	}

	return mapJoinRequestToResponse(req), nil
}

// AcceptJoinRequest implements workplace.WorkplaceService.
// Accepting registers the requester as an employee with empty work info;
// the pay basis is set separately by the owner.
func (s *WorkplaceServiceImpl) AcceptJoinRequest(ctx context.Context, joinRequestID string) (workplace.JoinRequestResponse, error) {
	callerID, _, err := callerFromContext(ctx)
	if err != nil {
		return workplace.JoinRequestResponse{}, err
	}

	req, err := s.workplaceRepo.GetJoinRequestByID(ctx, joinRequestID)
	if err != nil {
		return workplace.JoinRequestResponse{}, err
	}

	wp, err := s.workplaceRepo.GetByID(ctx, req.WorkplaceID)
	if err != nil {
		return workplace.JoinRequestResponse{}, err
	}
	if wp.OwnerID != callerID {
		return workplace.JoinRequestResponse{}, workplace.ErrNotTheOwner
	}

	if req.Status == workplace.JoinRequestAccepted {
		return mapJoinRequestToResponse(req), nil
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.workplaceRepo.UpdateJoinRequestStatus(txCtx, req.ID, workplace.JoinRequestAccepted); err != nil {
			return err
		}
		if _, err := s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:      req.UserID,
			WorkplaceID: req.WorkplaceID,
		}); err != nil {
			return fmt.Errorf("register employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return workplace.JoinRequestResponse{}, err
	}

	req.Status = workplace.JoinRequestAccepted
	return mapJoinRequestToResponse(req), nil
}

// ListJoinRequests implements workplace.WorkplaceService.
func (s *WorkplaceServiceImpl) ListJoinRequests(ctx context.Context, workplaceID string) ([]workplace.JoinRequestResponse, error) {
	callerID, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	wp, err := s.workplaceRepo.GetByID(ctx, workplaceID)
	if err != nil {
		return nil, err
	}
	if wp.OwnerID != callerID {
		return nil, workplace.ErrNotTheOwner
	}

	requests, err := s.workplaceRepo.ListJoinRequests(ctx, workplaceID, workplace.JoinRequestPending)
	if err != nil {
		return nil, err
	}

	responses := make([]workplace.JoinRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapJoinRequestToResponse(req))
	}
	return responses, nil
}

func mapWorkplaceToResponse(wp workplace.Workplace) workplace.WorkplaceResponse {
	return workplace.WorkplaceResponse{
		ID:      wp.ID,
		OwnerID: wp.OwnerID,
		Name:    wp.Name,
		Address: wp.Address,
	}
}

func mapJoinRequestToResponse(req workplace.JoinRequest) workplace.JoinRequestResponse {
	return workplace.JoinRequestResponse{
		ID:          req.ID,
		WorkplaceID: req.WorkplaceID,
		UserID:      req.UserID,
		Status:      string(req.Status),
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
	}
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
