package schedule

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/availability"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/schedule"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/assistant"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/albastory/workforce-backend-go/internal/pkg/timeutil"
	"github.com/albastory/workforce-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type ScheduleServiceImpl struct {
	db               *database.DB
	scheduleRepo     schedule.ScheduleRepository
	availabilityRepo availability.AvailabilityRepository
	employeeRepo     employee.EmployeeRepository
	workplaceRepo    workplace.WorkplaceRepository
	planner          assistant.Planner
	logger           *slog.Logger
}

func NewScheduleService(db *database.DB, scheduleRepo schedule.ScheduleRepository, availabilityRepo availability.AvailabilityRepository, employeeRepo employee.EmployeeRepository, workplaceRepo workplace.WorkplaceRepository, planner assistant.Planner) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		db:               db,
		scheduleRepo:     scheduleRepo,
		availabilityRepo: availabilityRepo,
		employeeRepo:     employeeRepo,
		workplaceRepo:    workplaceRepo,
		planner:          planner,
		logger:           slog.Default(),
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

// generationConfig is the parsed, validated form of a GenerateRequest.
type generationConfig struct {
	workplaceID         string
	startDate           time.Time
	endDate             time.Time
	openTime            time.Time // time of day only
	closeTime           time.Time
	slotHours           int
	minStaff            *int
	maxStaff            *int
	maxConsecutiveHours *int
	offDays             []string
	roleRequirements    []schedule.RoleRequirement
	excluded            map[string]bool
	overwrite           bool
}

// Generate implements schedule.ScheduleService. The assistant is tried
// first; any failure there falls back to the deterministic greedy pass.
func (s *ScheduleServiceImpl) Generate(ctx context.Context, req schedule.GenerateRequest) (schedule.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.GenerateResponse{}, err
	}
	cfg, err := parseGenerationConfig(req)
	if err != nil {
		return schedule.GenerateResponse{}, err
	}

	if err := s.requireOwner(ctx, cfg.workplaceID); err != nil {
		return schedule.GenerateResponse{}, err
	}

	roster, err := s.employeeRepo.ListByWorkplace(ctx, cfg.workplaceID)
	if err != nil {
		return schedule.GenerateResponse{}, err
	}
	if len(cfg.excluded) > 0 {
		kept := roster[:0]
		for _, emp := range roster {
			if !cfg.excluded[emp.UserID] {
				kept = append(kept, emp)
			}
		}
		roster = kept
	}
	if len(roster) == 0 {
		return schedule.GenerateResponse{}, schedule.ErrNoEmployees
	}

	slots, err := s.availabilityRepo.ListSlotsByWorkplaceAndRange(ctx, cfg.workplaceID, cfg.startDate, cfg.endDate)
	if err != nil {
		return schedule.GenerateResponse{}, err
	}
	byUserAndDate := groupSlots(slots)

	entries, method := s.planEntries(ctx, cfg, roster, byUserAndDate)
	stats := s.computeStats(cfg, entries, method)

	persisted := make([]schedule.Schedule, 0, len(entries))
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if cfg.overwrite {
			rangeEnd := cfg.endDate.AddDate(0, 0, 1)
			if err := s.scheduleRepo.CancelByWorkplaceAndRange(txCtx, cfg.workplaceID, cfg.startDate, rangeEnd); err != nil {
				return err
			}
		}

		for _, entry := range entries {
			created, err := s.scheduleRepo.Create(txCtx, entry)
			if err != nil {
				return err
			}
			persisted = append(persisted, created)
		}
		return nil
	})
	if err != nil {
		return schedule.GenerateResponse{}, err
	}

	responses := make([]schedule.ScheduleResponse, 0, len(persisted))
	for _, entry := range persisted {
		responses = append(responses, mapScheduleToResponse(entry))
	}
	return schedule.GenerateResponse{Entries: responses, Stats: stats}, nil
}

// planEntries runs the assistant when one is configured and falls back to
// the greedy pass on any failure, empty plan included.
func (s *ScheduleServiceImpl) planEntries(ctx context.Context, cfg generationConfig, roster []employee.Employee, byUserAndDate map[string]map[string][]availability.Slot) ([]schedule.Schedule, schedule.Method) {
	if s.planner != nil {
		entries, err := s.planWithAssistant(ctx, cfg, roster, byUserAndDate)
		if err != nil {
			s.logger.Warn("assistant planning failed, falling back", "workplace_id", cfg.workplaceID, "error", err)
		} else if len(entries) > 0 {
			return entries, schedule.MethodAIAssisted
		}
	}
	return s.planGreedy(cfg, roster, byUserAndDate), schedule.MethodAlgorithmic
}

func (s *ScheduleServiceImpl) planWithAssistant(ctx context.Context, cfg generationConfig, roster []employee.Employee, byUserAndDate map[string]map[string][]availability.Slot) ([]schedule.Schedule, error) {
	planned, err := s.planner.Plan(ctx, buildPlanRequest(cfg, roster, byUserAndDate))
	if err != nil {
		return nil, err
	}

	entries := make([]schedule.Schedule, 0, len(planned))
	for _, p := range planned {
		entries = append(entries, schedule.Schedule{
			UserID:      p.UserID,
			WorkplaceID: cfg.workplaceID,
			StartTime:   atTimeOfDay(p.Date, p.Start),
			EndTime:     atTimeOfDay(p.Date, p.End),
			Status:      schedule.StatusActive,
			Method:      schedule.MethodAIAssisted,
		})
	}
	return entries, nil
}

func buildPlanRequest(cfg generationConfig, roster []employee.Employee, byUserAndDate map[string]map[string][]availability.Slot) assistant.PlanRequest {
	employees := make([]assistant.Employee, 0, len(roster))
	for _, emp := range roster {
		name := ""
		if emp.UserName != nil {
			name = *emp.UserName
		}
		employees = append(employees, assistant.Employee{UserID: emp.UserID, Name: name, Role: emp.Position})
	}

	roleReqs := make([]assistant.RoleRequirement, 0, len(cfg.roleRequirements))
	for _, rr := range cfg.roleRequirements {
		roleReqs = append(roleReqs, assistant.RoleRequirement{Role: rr.Role, MinCount: rr.MinCount, MaxCount: rr.MaxCount})
	}

	var preferences []assistant.Preference
	for userID, byDate := range byUserAndDate {
		for date, slots := range byDate {
			ranges := make([]assistant.TimeRange, 0, len(slots))
			for _, slot := range slots {
				ranges = append(ranges, assistant.TimeRange{
					Start: slot.StartAt.Format("15:04"),
					End:   slot.EndAt.Format("15:04"),
				})
			}
			preferences = append(preferences, assistant.Preference{Date: date, UserID: userID, Slots: ranges})
		}
	}

	var excludeIDs []string
	for id := range cfg.excluded {
		excludeIDs = append(excludeIDs, id)
	}
	sort.Strings(excludeIDs)

	return assistant.PlanRequest{
		Store: assistant.Store{
			WorkplaceID: cfg.workplaceID,
			OpenTime:    cfg.openTime.Format("15:04"),
			CloseTime:   cfg.closeTime.Format("15:04"),
			SlotHours:   cfg.slotHours,
		},
		Constraints: assistant.Constraints{
			MinStaffPerSlot:     cfg.minStaff,
			MaxStaffPerSlot:     cfg.maxStaff,
			RoleRequirements:    roleReqs,
			ExcludeUserIDs:      excludeIDs,
			MaxConsecutiveHours: cfg.maxConsecutiveHours,
			OffDays:             cfg.offDays,
			DateRange: assistant.DateRange{
				StartDate: cfg.startDate.Format("2006-01-02"),
				EndDate:   cfg.endDate.Format("2006-01-02"),
			},
		},
		Employees:   employees,
		Preferences: preferences,
	}
}

// planGreedy walks every slot of every working day and picks the least
// loaded available employees. Days with no availability at all fall back to
// the full roster so the shop is never left unstaffed by silence.
func (s *ScheduleServiceImpl) planGreedy(cfg generationConfig, roster []employee.Employee, byUserAndDate map[string]map[string][]availability.Slot) []schedule.Schedule {
	var entries []schedule.Schedule
	dailyHours := make(map[string]map[string]int)

	for date := cfg.startDate; !date.After(cfg.endDate); date = date.AddDate(0, 0, 1) {
		if isOffDay(date, cfg.offDays) {
			continue
		}
		dateKey := date.Format("2006-01-02")
		if dailyHours[dateKey] == nil {
			dailyHours[dateKey] = make(map[string]int)
		}

		slotEndLimit := atTimeOfDay(date, cfg.closeTime)
		for cursor := atTimeOfDay(date, cfg.openTime); !cursor.Add(time.Duration(cfg.slotHours) * time.Hour).After(slotEndLimit); {
			slotStart := cursor
			slotEnd := cursor.Add(time.Duration(cfg.slotHours) * time.Hour)

			needed := 1
			if cfg.minStaff != nil {
				needed = *cfg.minStaff
			}
			maxStaff := needed
			if cfg.maxStaff != nil {
				maxStaff = *cfg.maxStaff
			}

			candidates := availableEmployees(roster, byUserAndDate, dateKey, slotStart, slotEnd)
			if len(candidates) == 0 {
				candidates = roster
			}
			sort.SliceStable(candidates, func(i, j int) bool {
				return dailyHours[dateKey][candidates[i].UserID] < dailyHours[dateKey][candidates[j].UserID]
			})

			assigned := 0
			for _, cand := range candidates {
				if assigned >= maxStaff {
					break
				}
				if !canAssign(dailyHours[dateKey][cand.UserID], cfg.slotHours, cfg.maxConsecutiveHours) {
					continue
				}
				entries = append(entries, schedule.Schedule{
					UserID:      cand.UserID,
					WorkplaceID: cfg.workplaceID,
					StartTime:   slotStart,
					EndTime:     slotEnd,
					Status:      schedule.StatusActive,
					Method:      schedule.MethodAlgorithmic,
				})
				dailyHours[dateKey][cand.UserID] += cfg.slotHours
				assigned++
			}

			cursor = slotEnd
		}
	}

	return entries
}

func availableEmployees(roster []employee.Employee, byUserAndDate map[string]map[string][]availability.Slot, dateKey string, slotStart, slotEnd time.Time) []employee.Employee {
	var out []employee.Employee
	for _, emp := range roster {
		for _, slot := range byUserAndDate[emp.UserID][dateKey] {
			if timeutil.Contains(slot.StartAt, slot.EndAt, slotStart, slotEnd) {
				out = append(out, emp)
				break
			}
		}
	}
	return out
}

func canAssign(alreadyAssigned, slotHours int, maxConsecutive *int) bool {
	if maxConsecutive == nil || *maxConsecutive <= 0 {
		return true
	}
	return alreadyAssigned+slotHours <= *maxConsecutive
}

// computeStats counts the slots the configuration calls for and how many of
// them the produced entries staff to the minimum.
func (s *ScheduleServiceImpl) computeStats(cfg generationConfig, entries []schedule.Schedule, method schedule.Method) schedule.GenerationStats {
	needed := 1
	if cfg.minStaff != nil {
		needed = *cfg.minStaff
	}

	perSlot := make(map[time.Time]int)
	for _, entry := range entries {
		perSlot[entry.StartTime]++
	}

	planned := 0
	filled := 0
	for date := cfg.startDate; !date.After(cfg.endDate); date = date.AddDate(0, 0, 1) {
		if isOffDay(date, cfg.offDays) {
			continue
		}
		slotEndLimit := atTimeOfDay(date, cfg.closeTime)
		for cursor := atTimeOfDay(date, cfg.openTime); !cursor.Add(time.Duration(cfg.slotHours) * time.Hour).After(slotEndLimit); cursor = cursor.Add(time.Duration(cfg.slotHours) * time.Hour) {
			planned++
			if perSlot[cursor] >= needed {
				filled++
			}
		}
	}

	return schedule.GenerationStats{
		SlotsPlanned:     planned,
		SlotsFilledToMin: filled,
		Assignments:      len(entries),
		Method:           string(method),
	}
}

// Update implements schedule.ScheduleService. Entries are never replaced in
// place: an edit keeps the row and marks it modified.
func (s *ScheduleServiceImpl) Update(ctx context.Context, id string, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	sched, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := s.requireOwner(ctx, sched.WorkplaceID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)
	if !startTime.Before(endTime) {
		return schedule.ScheduleResponse{}, schedule.ErrInvalidDateRange
	}

	sched.StartTime = startTime
	sched.EndTime = endTime
	sched.Status = schedule.StatusModified

	if err := s.scheduleRepo.Update(ctx, sched); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return mapScheduleToResponse(sched), nil
}

// Cancel implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Cancel(ctx context.Context, id string) error {
	sched, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, sched.WorkplaceID); err != nil {
		return err
	}

	sched.Status = schedule.StatusCancelled
	return s.scheduleRepo.Update(ctx, sched)
}

// ListByWorkplace implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListByWorkplace(ctx context.Context, workplaceID string) ([]schedule.ScheduleResponse, error) {
	if err := s.requireMemberOrOwner(ctx, workplaceID); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListByWorkplace(ctx, workplaceID)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, mapScheduleToResponse(sched))
	}
	return responses, nil
}

// ListMine implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListMine(ctx context.Context) ([]schedule.ScheduleResponse, error) {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, mapScheduleToResponse(sched))
	}
	return responses, nil
}

// HasConflict implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) HasConflict(ctx context.Context, userID string, startTime, endTime time.Time) (bool, error) {
	schedules, err := s.scheduleRepo.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, sched := range schedules {
		if sched.Status == schedule.StatusCancelled {
			continue
		}
		if timeutil.Overlaps(sched.StartTime, sched.EndTime, startTime, endTime, true) {
			return true, nil
		}
	}
	return false, nil
}

func (s *ScheduleServiceImpl) requireOwner(ctx context.Context, workplaceID string) error {
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

func (s *ScheduleServiceImpl) requireMemberOrOwner(ctx context.Context, workplaceID string) error {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return err
	}
	wp, err := s.workplaceRepo.GetByID(ctx, workplaceID)
	if err != nil {
		return err
	}
	if wp.OwnerID == callerID {
		return nil
	}
	if _, err := s.employeeRepo.GetByUserAndWorkplace(ctx, callerID, workplaceID); err != nil {
		return err
	}
	return nil
}

func parseGenerationConfig(req schedule.GenerateRequest) (generationConfig, error) {
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	if startDate.After(endDate) {
		return generationConfig{}, schedule.ErrInvalidDateRange
	}

	openTime, _ := time.Parse("15:04", req.OpenTime)
	closeTime, _ := time.Parse("15:04", req.CloseTime)
	if !openTime.Before(closeTime) {
		return generationConfig{}, schedule.ErrInvalidOperatingHours
	}

	if req.SlotHours < 1 {
		return generationConfig{}, schedule.ErrMissingSlotGranularity
	}

	excluded := make(map[string]bool, len(req.ExcludeUserIDs))
	for _, id := range req.ExcludeUserIDs {
		excluded[id] = true
	}

	return generationConfig{
		workplaceID:         req.WorkplaceID,
		startDate:           startDate,
		endDate:             endDate,
		openTime:            openTime,
		closeTime:           closeTime,
		slotHours:           req.SlotHours,
		minStaff:            req.MinStaffPerSlot,
		maxStaff:            req.MaxStaffPerSlot,
		maxConsecutiveHours: req.MaxConsecutiveHours,
		offDays:             req.OffDays,
		roleRequirements:    req.RoleRequirements,
		excluded:            excluded,
		overwrite:           req.OverwriteExisting,
	}, nil
}

// groupSlots indexes availability by user id, then by work date key.
func groupSlots(slots []availability.Slot) map[string]map[string][]availability.Slot {
	out := make(map[string]map[string][]availability.Slot)
	for _, slot := range slots {
		if slot.UserID == "" {
			continue
		}
		dateKey := slot.WorkDate.Format("2006-01-02")
		if out[slot.UserID] == nil {
			out[slot.UserID] = make(map[string][]availability.Slot)
		}
		out[slot.UserID][dateKey] = append(out[slot.UserID][dateKey], slot)
	}
	return out
}

// isOffDay accepts lowercase weekday names and literal YYYY-MM-DD dates.
func isOffDay(date time.Time, offDays []string) bool {
	weekday := strings.ToLower(date.Weekday().String())
	dateKey := date.Format("2006-01-02")
	for _, off := range offDays {
		if strings.ToLower(off) == weekday || off == dateKey {
			return true
		}
	}
	return false
}

func atTimeOfDay(date, timeOfDay time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, time.UTC)
}

func mapScheduleToResponse(sched schedule.Schedule) schedule.ScheduleResponse {
	return schedule.ScheduleResponse{
		ID:          sched.ID,
		UserID:      sched.UserID,
		WorkplaceID: sched.WorkplaceID,
		StartTime:   sched.StartTime,
		EndTime:     sched.EndTime,
		Status:      string(sched.Status),
		Method:      string(sched.Method),
		UserName:    sched.UserName,
	}
}
