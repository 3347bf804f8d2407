package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/availability"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/schedule"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/assistant"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanner struct {
	slots []assistant.PlannedSlot
	err   error
}

func (p stubPlanner) Plan(_ context.Context, _ assistant.PlanRequest) ([]assistant.PlannedSlot, error) {
	return p.slots, p.err
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.Schedule
	seq       int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]schedule.Schedule)}
}

func (f *fakeScheduleRepo) Create(_ context.Context, sched schedule.Schedule) (schedule.Schedule, error) {
	f.seq++
	sched.ID = fmt.Sprintf("sched-%d", f.seq)
	f.schedules[sched.ID] = sched
	return sched, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, sched schedule.Schedule) error {
	if _, ok := f.schedules[sched.ID]; !ok {
		return schedule.ErrScheduleNotFound
	}
	f.schedules[sched.ID] = sched
	return nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (schedule.Schedule, error) {
	sched, ok := f.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return sched, nil
}

func (f *fakeScheduleRepo) ListByWorkplace(_ context.Context, workplaceID string) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, sched := range f.schedules {
		if sched.WorkplaceID == workplaceID {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListByUser(_ context.Context, userID string) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, sched := range f.schedules {
		if sched.UserID == userID {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) CancelByWorkplaceAndRange(_ context.Context, workplaceID string, from, to time.Time) error {
	for id, sched := range f.schedules {
		if sched.WorkplaceID == workplaceID && sched.Status == schedule.StatusActive &&
			!sched.StartTime.Before(from) && sched.StartTime.Before(to) {
			sched.Status = schedule.StatusCancelled
			f.schedules[id] = sched
		}
	}
	return nil
}

type fakeWorkplaceRepo struct {
	workplaces map[string]workplace.Workplace
}

func (f *fakeWorkplaceRepo) Create(_ context.Context, wp workplace.Workplace) (workplace.Workplace, error) {
	return wp, nil
}

func (f *fakeWorkplaceRepo) GetByID(_ context.Context, id string) (workplace.Workplace, error) {
	wp, ok := f.workplaces[id]
	if !ok {
		return workplace.Workplace{}, workplace.ErrWorkplaceNotFound
	}
	return wp, nil
}

func (f *fakeWorkplaceRepo) ListByOwner(_ context.Context, _ string) ([]workplace.Workplace, error) {
	return nil, nil
}

func (f *fakeWorkplaceRepo) CreateJoinRequest(_ context.Context, req workplace.JoinRequest) (workplace.JoinRequest, error) {
	return req, nil
}

func (f *fakeWorkplaceRepo) GetJoinRequestByID(_ context.Context, _ string) (workplace.JoinRequest, error) {
	return workplace.JoinRequest{}, workplace.ErrJoinRequestNotFound
}

func (f *fakeWorkplaceRepo) ListJoinRequests(_ context.Context, _ string, _ workplace.JoinRequestStatus) ([]workplace.JoinRequest, error) {
	return nil, nil
}

func (f *fakeWorkplaceRepo) UpdateJoinRequestStatus(_ context.Context, _ string, _ workplace.JoinRequestStatus) error {
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newPlannerService(planner assistant.Planner) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		planner: planner,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func mustConfig(t *testing.T, req schedule.GenerateRequest) generationConfig {
	t.Helper()
	cfg, err := parseGenerationConfig(req)
	require.NoError(t, err)
	return cfg
}

func baseRequest() schedule.GenerateRequest {
	return schedule.GenerateRequest{
		WorkplaceID: "wp-1",
		StartDate:   "2025-03-03", // Monday
		EndDate:     "2025-03-03",
		OpenTime:    "09:00",
		CloseTime:   "21:00",
		SlotHours:   6,
	}
}

func roster(ids ...string) []employee.Employee {
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, employee.Employee{ID: "emp-" + id, UserID: id, WorkplaceID: "wp-1"})
	}
	return out
}

func slotFor(userID, date, start, end string) availability.Slot {
	day, _ := time.Parse("2006-01-02", date)
	from, _ := time.Parse("15:04", start)
	to, _ := time.Parse("15:04", end)
	return availability.Slot{
		WorkDate: day,
		StartAt:  atTimeOfDay(day, from),
		EndAt:    atTimeOfDay(day, to),
		UserID:   userID,
	}
}

func TestPlanGreedyPartitionsOperatingHours(t *testing.T) {
	svc := newPlannerService(nil)
	cfg := mustConfig(t, baseRequest())

	entries := svc.planGreedy(cfg, roster("u1"), nil)

	// 09:00-21:00 at 6h granularity is exactly two slots.
	require.Len(t, entries, 2)
	assert.Equal(t, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), entries[0].StartTime)
	assert.Equal(t, time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC), entries[0].EndTime)
	assert.Equal(t, time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC), entries[1].StartTime)
	assert.Equal(t, time.Date(2025, 3, 3, 21, 0, 0, 0, time.UTC), entries[1].EndTime)
	for _, entry := range entries {
		assert.Equal(t, schedule.StatusActive, entry.Status)
		assert.Equal(t, schedule.MethodAlgorithmic, entry.Method)
	}
}

func TestPlanGreedyPrefersDeclaredAvailability(t *testing.T) {
	svc := newPlannerService(nil)
	req := baseRequest()
	req.CloseTime = "15:00"
	cfg := mustConfig(t, req)

	byUser := groupSlots([]availability.Slot{
		slotFor("u2", "2025-03-03", "08:00", "16:00"),
	})

	entries := svc.planGreedy(cfg, roster("u1", "u2"), byUser)

	require.Len(t, entries, 1)
	assert.Equal(t, "u2", entries[0].UserID)
}

func TestPlanGreedyFallsBackToFullRoster(t *testing.T) {
	svc := newPlannerService(nil)
	req := baseRequest()
	req.CloseTime = "15:00"
	cfg := mustConfig(t, req)

	// u2 declared a slot too short to contain the shift.
	byUser := groupSlots([]availability.Slot{
		slotFor("u2", "2025-03-03", "09:00", "11:00"),
	})

	entries := svc.planGreedy(cfg, roster("u1", "u2"), byUser)
	require.Len(t, entries, 1)
}

func TestPlanGreedySkipsOffDays(t *testing.T) {
	svc := newPlannerService(nil)
	req := baseRequest()
	req.EndDate = "2025-03-04"
	req.OffDays = []string{"monday"}
	cfg := mustConfig(t, req)

	entries := svc.planGreedy(cfg, roster("u1"), nil)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, 4, int(entry.StartTime.Day()))
	}
}

func TestPlanGreedySkipsLiteralOffDates(t *testing.T) {
	svc := newPlannerService(nil)
	req := baseRequest()
	req.EndDate = "2025-03-04"
	req.OffDays = []string{"2025-03-04"}
	cfg := mustConfig(t, req)

	entries := svc.planGreedy(cfg, roster("u1"), nil)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, 3, int(entry.StartTime.Day()))
	}
}

func TestPlanGreedyBalancesDailyLoad(t *testing.T) {
	svc := newPlannerService(nil)
	cfg := mustConfig(t, baseRequest())

	byUser := groupSlots([]availability.Slot{
		slotFor("u1", "2025-03-03", "09:00", "21:00"),
		slotFor("u2", "2025-03-03", "09:00", "21:00"),
	})

	entries := svc.planGreedy(cfg, roster("u1", "u2"), byUser)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].UserID, entries[1].UserID)
}

func TestPlanGreedyHonorsMaxConsecutiveHours(t *testing.T) {
	svc := newPlannerService(nil)
	req := baseRequest()
	maxConsecutive := 6
	req.MaxConsecutiveHours = &maxConsecutive
	cfg := mustConfig(t, req)

	entries := svc.planGreedy(cfg, roster("u1"), nil)

	// A single employee can only take one of the two 6h slots.
	require.Len(t, entries, 1)

	stats := svc.computeStats(cfg, entries, schedule.MethodAlgorithmic)
	assert.Equal(t, 2, stats.SlotsPlanned)
	assert.Equal(t, 1, stats.SlotsFilledToMin)
	assert.Equal(t, 1, stats.Assignments)
	assert.Equal(t, "algorithmic", stats.Method)
}

func TestPlanGreedyRespectsMaxStaffPerSlot(t *testing.T) {
	svc := newPlannerService(nil)
	req := baseRequest()
	req.CloseTime = "15:00"
	minStaff, maxStaff := 1, 2
	req.MinStaffPerSlot = &minStaff
	req.MaxStaffPerSlot = &maxStaff
	cfg := mustConfig(t, req)

	byUser := groupSlots([]availability.Slot{
		slotFor("u1", "2025-03-03", "09:00", "15:00"),
		slotFor("u2", "2025-03-03", "09:00", "15:00"),
		slotFor("u3", "2025-03-03", "09:00", "15:00"),
	})

	entries := svc.planGreedy(cfg, roster("u1", "u2", "u3"), byUser)
	assert.Len(t, entries, 2)
}

func TestBuildPlanRequestMapsRosterAndRange(t *testing.T) {
	req := baseRequest()
	req.EndDate = "2025-03-05"
	cfg := mustConfig(t, req)

	position := "barista"
	name := "Ana"
	staff := []employee.Employee{
		{UserID: "u1", WorkplaceID: "wp-1", Position: &position, UserName: &name},
		{UserID: "u2", WorkplaceID: "wp-1"},
	}

	planReq := buildPlanRequest(cfg, staff, groupSlots([]availability.Slot{
		slotFor("u1", "2025-03-03", "09:00", "15:00"),
	}))

	assert.Equal(t, "2025-03-03", planReq.Constraints.DateRange.StartDate)
	assert.Equal(t, "2025-03-05", planReq.Constraints.DateRange.EndDate)

	require.Len(t, planReq.Employees, 2)
	require.NotNil(t, planReq.Employees[0].Role)
	assert.Equal(t, "barista", *planReq.Employees[0].Role)
	assert.Equal(t, "Ana", planReq.Employees[0].Name)
	assert.Nil(t, planReq.Employees[1].Role)

	require.Len(t, planReq.Preferences, 1)
	assert.Equal(t, "u1", planReq.Preferences[0].UserID)
	assert.Equal(t, []assistant.TimeRange{{Start: "09:00", End: "15:00"}}, planReq.Preferences[0].Slots)
}

func TestPlanEntriesUsesAssistantPlan(t *testing.T) {
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	start, _ := time.Parse("15:04", "10:00")
	end, _ := time.Parse("15:04", "14:00")
	svc := newPlannerService(stubPlanner{slots: []assistant.PlannedSlot{
		{UserID: "u1", Date: date, Start: start, End: end},
	}})
	cfg := mustConfig(t, baseRequest())

	entries, method := svc.planEntries(context.Background(), cfg, roster("u1"), nil)

	assert.Equal(t, schedule.MethodAIAssisted, method)
	require.Len(t, entries, 1)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), entries[0].StartTime)
	assert.Equal(t, time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC), entries[0].EndTime)
	assert.Equal(t, schedule.MethodAIAssisted, entries[0].Method)
}

func TestPlanEntriesFallsBackOnAssistantError(t *testing.T) {
	svc := newPlannerService(stubPlanner{err: errors.New("boom")})
	cfg := mustConfig(t, baseRequest())

	entries, method := svc.planEntries(context.Background(), cfg, roster("u1"), nil)

	assert.Equal(t, schedule.MethodAlgorithmic, method)
	assert.Len(t, entries, 2)
}

func TestPlanEntriesFallsBackOnEmptyPlan(t *testing.T) {
	svc := newPlannerService(stubPlanner{})
	cfg := mustConfig(t, baseRequest())

	_, method := svc.planEntries(context.Background(), cfg, roster("u1"), nil)
	assert.Equal(t, schedule.MethodAlgorithmic, method)
}

func TestGenerateRejectsBadConfiguration(t *testing.T) {
	svc := newPlannerService(nil)
	ctx := authedContext(t, "boss-1")

	tests := []struct {
		name    string
		mutate  func(*schedule.GenerateRequest)
		wantErr error
	}{
		{
			name:    "start after end",
			mutate:  func(r *schedule.GenerateRequest) { r.StartDate, r.EndDate = "2025-03-05", "2025-03-03" },
			wantErr: schedule.ErrInvalidDateRange,
		},
		{
			name:    "open after close",
			mutate:  func(r *schedule.GenerateRequest) { r.OpenTime, r.CloseTime = "21:00", "09:00" },
			wantErr: schedule.ErrInvalidOperatingHours,
		},
		{
			name:    "zero slot hours",
			mutate:  func(r *schedule.GenerateRequest) { r.SlotHours = 0 },
			wantErr: schedule.ErrMissingSlotGranularity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			_, err := svc.Generate(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateRequiresEmployees(t *testing.T) {
	svc := newPlannerService(nil)
	svc.workplaceRepo = &fakeWorkplaceRepo{workplaces: map[string]workplace.Workplace{
		"wp-1": {ID: "wp-1", OwnerID: "boss-1"},
	}}
	svc.employeeRepo = emptyEmployeeRepo{}

	_, err := svc.Generate(authedContext(t, "boss-1"), baseRequest())
	assert.ErrorIs(t, err, schedule.ErrNoEmployees)
}

type emptyEmployeeRepo struct{}

func (emptyEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}
func (emptyEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }
func (emptyEmployeeRepo) GetByUserAndWorkplace(_ context.Context, _, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (emptyEmployeeRepo) ListByWorkplace(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}
func (emptyEmployeeRepo) IsMember(_ context.Context, _, _ string) (bool, error) { return false, nil }

func TestUpdateMarksModified(t *testing.T) {
	repo := newFakeScheduleRepo()
	created, err := repo.Create(context.Background(), schedule.Schedule{
		UserID:      "u1",
		WorkplaceID: "wp-1",
		StartTime:   time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC),
		Status:      schedule.StatusActive,
		Method:      schedule.MethodAlgorithmic,
	})
	require.NoError(t, err)

	svc := newPlannerService(nil)
	svc.scheduleRepo = repo
	svc.workplaceRepo = &fakeWorkplaceRepo{workplaces: map[string]workplace.Workplace{
		"wp-1": {ID: "wp-1", OwnerID: "boss-1"},
	}}

	res, err := svc.Update(authedContext(t, "boss-1"), created.ID, schedule.UpdateScheduleRequest{
		StartTime: "2025-03-03T10:00:00Z",
		EndTime:   "2025-03-03T16:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "modified", res.Status)
	assert.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), res.StartTime)

	_, err = svc.Update(authedContext(t, "u1"), created.ID, schedule.UpdateScheduleRequest{
		StartTime: "2025-03-03T10:00:00Z",
		EndTime:   "2025-03-03T16:00:00Z",
	})
	assert.ErrorIs(t, err, workplace.ErrNotTheOwner)
}

func TestCancelMarksCancelled(t *testing.T) {
	repo := newFakeScheduleRepo()
	created, err := repo.Create(context.Background(), schedule.Schedule{
		UserID:      "u1",
		WorkplaceID: "wp-1",
		Status:      schedule.StatusActive,
	})
	require.NoError(t, err)

	svc := newPlannerService(nil)
	svc.scheduleRepo = repo
	svc.workplaceRepo = &fakeWorkplaceRepo{workplaces: map[string]workplace.Workplace{
		"wp-1": {ID: "wp-1", OwnerID: "boss-1"},
	}}

	require.NoError(t, svc.Cancel(authedContext(t, "boss-1"), created.ID))
	assert.Equal(t, schedule.StatusCancelled, repo.schedules[created.ID].Status)
}

func TestHasConflict(t *testing.T) {
	repo := newFakeScheduleRepo()
	_, err := repo.Create(context.Background(), schedule.Schedule{
		UserID:      "u1",
		WorkplaceID: "wp-1",
		StartTime:   time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC),
		Status:      schedule.StatusActive,
	})
	require.NoError(t, err)

	svc := newPlannerService(nil)
	svc.scheduleRepo = repo
	ctx := context.Background()

	// Touching boundaries count.
	got, err := svc.HasConflict(ctx, "u1",
		time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 21, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.HasConflict(ctx, "u1",
		time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasConflictIgnoresCancelled(t *testing.T) {
	repo := newFakeScheduleRepo()
	_, err := repo.Create(context.Background(), schedule.Schedule{
		UserID:      "u1",
		WorkplaceID: "wp-1",
		StartTime:   time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC),
		Status:      schedule.StatusCancelled,
	})
	require.NoError(t, err)

	svc := newPlannerService(nil)
	svc.scheduleRepo = repo

	got, err := svc.HasConflict(context.Background(), "u1",
		time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, got)
}
