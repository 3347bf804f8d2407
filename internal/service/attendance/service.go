package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/attendance"
	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/albastory/workforce-backend-go/internal/pkg/timeutil"
	"github.com/go-chi/jwtauth/v5"
)

// RestPolicy maps a total shift duration to unpaid rest minutes.
type RestPolicy func(total time.Duration) int

// NightPolicy counts the hours of a shift falling in the night window.
type NightPolicy func(in, out time.Time) float64

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	workplaceRepo  workplace.WorkplaceRepository

	restPolicy  RestPolicy
	nightPolicy NightPolicy
	now         func() time.Time
}

func NewAttendanceService(db *database.DB, attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository, workplaceRepo workplace.WorkplaceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		workplaceRepo:  workplaceRepo,
		restPolicy:     timeutil.RestMinutes,
		nightPolicy:    timeutil.NightHours,
		now:            time.Now,
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

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := s.employeeRepo.GetByUserAndWorkplace(ctx, callerID, req.WorkplaceID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	workDate := s.resolveWorkDate(req.WorkDate, now)

	existing, err := s.attendanceRepo.GetByKey(ctx, callerID, req.WorkplaceID, workDate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		if existing.CheckIn != nil && existing.CheckOut == nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		// Closed records and shells left behind by owner edits are reused:
		// the day keeps one row and the new check-in starts a fresh interval.
		existing.CheckIn = &now
		existing.CheckOut = nil
		if err := s.attendanceRepo.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return mapAttendanceToResponse(*existing), nil
	}

	att, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		UserID:      callerID,
		WorkplaceID: req.WorkplaceID,
		WorkDate:    workDate,
		CheckIn:     &now,
	})
	if err != nil {
		// A concurrent check-in can win the insert race; the unique key on
		// (user, workplace, work date) reports it.
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(att), nil
}

// CheckOut implements attendance.AttendanceService. Closing the record
// computes the derived hour fields from the check-in/check-out pair.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	workDate := s.resolveWorkDate(req.WorkDate, now)

	att, err := s.attendanceRepo.GetByKey(ctx, callerID, req.WorkplaceID, workDate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if att == nil || att.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	att.CheckOut = &now
	if err := s.deriveHours(att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.attendanceRepo.Update(ctx, *att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(*att), nil
}

// Create implements attendance.AttendanceService. Owner-entered records
// arrive complete and are approved immediately.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.requireOwner(ctx, req.WorkplaceID); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := s.employeeRepo.GetByUserAndWorkplace(ctx, req.UserID, req.WorkplaceID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)
	checkIn, _ := time.Parse(time.RFC3339, req.CheckIn)
	checkOut, _ := time.Parse(time.RFC3339, req.CheckOut)

	existing, err := s.attendanceRepo.GetByKey(ctx, req.UserID, req.WorkplaceID, workDate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceExists
	}

	att := attendance.Attendance{
		UserID:      req.UserID,
		WorkplaceID: req.WorkplaceID,
		WorkDate:    workDate,
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
		Approved:    true,
	}
	if err := s.deriveHours(&att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.requireOwner(ctx, att.WorkplaceID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn, _ := time.Parse(time.RFC3339, req.CheckIn)
	checkOut, _ := time.Parse(time.RFC3339, req.CheckOut)
	att.CheckIn = &checkIn
	att.CheckOut = &checkOut
	if err := s.deriveHours(&att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(att), nil
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.requireOwner(ctx, att.WorkplaceID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !att.Approved {
		att.Approved = true
		if err := s.attendanceRepo.Update(ctx, att); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	return mapAttendanceToResponse(att), nil
}

// ListByWorkplace implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByWorkplace(ctx context.Context, workplaceID string) ([]attendance.AttendanceResponse, error) {
	if err := s.requireOwner(ctx, workplaceID); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByWorkplace(ctx, workplaceID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return responses, nil
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) requireOwner(ctx context.Context, workplaceID string) error {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return err
	}
	wp, err := s.workplaceRepo.GetByID(ctx, workplaceID)
	if err != nil {
		return err
	}
	if wp.OwnerID != callerID {
		return workplace.ErrNotTheOwner
	}
	return nil
}

func (s *AttendanceServiceImpl) resolveWorkDate(raw *string, now time.Time) time.Time {
	if raw != nil {
		date, _ := time.Parse("2006-01-02", *raw)
		return date
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// deriveHours fills the computed hour fields from the check-in/check-out
// pair. Rest breaks are deducted by shift length, night hours follow the
// 22:00-06:00 window, and the whole shift counts as holiday hours when the
// work date falls on a Sunday. Overtime is split out later by payroll.
func (s *AttendanceServiceImpl) deriveHours(att *attendance.Attendance) error {
	in, out := *att.CheckIn, *att.CheckOut
	total := out.Sub(in)
	if total <= 0 {
		return attendance.ErrInvalidInterval
	}

	rest := s.restPolicy(total)
	effective := total - time.Duration(rest)*time.Minute
	if effective < 0 {
		effective = 0
	}

	workHours := effective.Hours()
	regular := workHours
	night := s.nightPolicy(in, out)
	holiday := 0.0
	if att.WorkDate.Weekday() == time.Sunday {
		holiday = workHours
	}

	att.RestMinutes = &rest
	att.WorkHours = &workHours
	att.RegularHours = &regular
	att.NightHours = &night
	att.HolidayHours = &holiday
	return nil
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            att.ID,
		UserID:        att.UserID,
		WorkplaceID:   att.WorkplaceID,
		WorkDate:      att.WorkDate.Format("2006-01-02"),
		CheckIn:       att.CheckIn,
		CheckOut:      att.CheckOut,
		RestMinutes:   att.RestMinutes,
		WorkHours:     att.WorkHours,
		RegularHours:  att.RegularHours,
		NightHours:    att.NightHours,
		HolidayHours:  att.HolidayHours,
		Approved:      att.Approved,
		UserName:      att.UserName,
		WorkplaceName: att.WorkplaceName,
	}
}
