package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/availability"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/albastory/workforce-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type AvailabilityServiceImpl struct {
	db               *database.DB
	availabilityRepo availability.AvailabilityRepository
	employeeRepo     employee.EmployeeRepository

	inTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAvailabilityService(db *database.DB, availabilityRepo availability.AvailabilityRepository, employeeRepo employee.EmployeeRepository) availability.AvailabilityService {
	svc := &AvailabilityServiceImpl{
		db:               db,
		availabilityRepo: availabilityRepo,
		employeeRepo:     employeeRepo,
	}
	svc.inTx = svc.runInTx
	return svc
}

func (s *AvailabilityServiceImpl) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
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

// SavePreference implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) SavePreference(ctx context.Context, req availability.SavePreferenceRequest) (availability.PreferenceResponse, error) {
	if err := req.Validate(); err != nil {
		return availability.PreferenceResponse{}, err
	}

	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return availability.PreferenceResponse{}, err
	}

	isMember, err := s.employeeRepo.IsMember(ctx, callerID, req.WorkplaceID)
	if err != nil {
		return availability.PreferenceResponse{}, err
	}
	if !isMember {
		return availability.PreferenceResponse{}, availability.ErrNotAMember
	}

	// Parse everything up front so nothing is written on a bad range.
	incoming, incomingDates, err := parseDays(req.Days)
	if err != nil {
		return availability.PreferenceResponse{}, err
	}

	targetMonth := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)

	var set *availability.AvailabilitySet
	err = s.inTx(ctx, func(txCtx context.Context) error {
		set, err = s.availabilityRepo.GetSet(txCtx, callerID, req.WorkplaceID, targetMonth)
		if err != nil {
			return err
		}
		if set == nil {
			created, err := s.availabilityRepo.CreateSet(txCtx, availability.AvailabilitySet{
				UserID:      callerID,
				WorkplaceID: req.WorkplaceID,
				TargetMonth: targetMonth,
			})
			if err != nil {
				return err
			}
			set = &created
		}

		if req.Overwrite {
			if err := s.availabilityRepo.DeleteAllSlots(txCtx, set.ID); err != nil {
				return err
			}
		} else if err := s.availabilityRepo.DeleteSlotsByDates(txCtx, set.ID, incomingDates); err != nil {
			return err
		}

		return s.availabilityRepo.InsertSlots(txCtx, set.ID, incoming)
	})
	if err != nil {
		return availability.PreferenceResponse{}, err
	}

	return s.buildResponse(ctx, *set, req.Year, req.Month)
}

// GetMyPreference implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) GetMyPreference(ctx context.Context, workplaceID string, year, month int) (availability.PreferenceResponse, error) {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return availability.PreferenceResponse{}, err
	}

	targetMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	set, err := s.availabilityRepo.GetSet(ctx, callerID, workplaceID, targetMonth)
	if err != nil {
		return availability.PreferenceResponse{}, err
	}
	if set == nil {
		return availability.PreferenceResponse{
			UserID:      callerID,
			WorkplaceID: workplaceID,
			Year:        year,
			Month:       month,
			Slots:       []availability.SlotResponse{},
		}, nil
	}

	return s.buildResponse(ctx, *set, year, month)
}

func parseDays(days []availability.DayPreference) ([]availability.Slot, []time.Time, error) {
	var slots []availability.Slot
	var dates []time.Time

	for _, day := range days {
		date, _ := time.Parse("2006-01-02", day.Date)
		dates = append(dates, date)

		for _, r := range day.Slots {
			start, _ := time.Parse("15:04", r.StartTime)
			end, _ := time.Parse("15:04", r.EndTime)
			if !start.Before(end) {
				return nil, nil, fmt.Errorf("%w: %s", availability.ErrInvalidTimeRange, day.Date)
			}
			slots = append(slots, availability.Slot{
				WorkDate: date,
				StartAt:  time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC),
				EndAt:    time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC),
			})
		}
	}

	return slots, dates, nil
}

func (s *AvailabilityServiceImpl) buildResponse(ctx context.Context, set availability.AvailabilitySet, year, month int) (availability.PreferenceResponse, error) {
	slots, err := s.availabilityRepo.ListSlotsBySet(ctx, set.ID)
	if err != nil {
		return availability.PreferenceResponse{}, err
	}

	responses := make([]availability.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		responses = append(responses, availability.SlotResponse{
			ID:        slot.ID,
			Date:      slot.WorkDate.Format("2006-01-02"),
			StartTime: slot.StartAt.Format("15:04"),
			EndTime:   slot.EndAt.Format("15:04"),
		})
	}

	return availability.PreferenceResponse{
		ID:          set.ID,
		UserID:      set.UserID,
		WorkplaceID: set.WorkplaceID,
		Year:        year,
		Month:       month,
		Slots:       responses,
	}, nil
}
