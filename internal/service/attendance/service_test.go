package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/attendance"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/timeutil"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records   map[string]attendance.Attendance
	seq       int
	createErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if f.createErr != nil {
		return attendance.Attendance{}, f.createErr
	}
	f.seq++
	att.ID = fmt.Sprintf("att-%d", f.seq)
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetByKey(_ context.Context, userID, workplaceID string, workDate time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.UserID == userID && att.WorkplaceID == workplaceID && att.WorkDate.Equal(workDate) {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByWorkplace(_ context.Context, workplaceID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.WorkplaceID == workplaceID {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.UserID == userID {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListClosedByUserAndRange(_ context.Context, userID, workplaceID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.UserID == userID && att.WorkplaceID == workplaceID && att.CheckOut != nil &&
			!att.WorkDate.Before(from) && !att.WorkDate.After(to) {
			out = append(out, att)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	members map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{members: make(map[string]employee.Employee)}
}

func memberKey(userID, workplaceID string) string {
	return userID + "|" + workplaceID
}

func (f *fakeEmployeeRepo) addMember(userID, workplaceID string) {
	f.members[memberKey(userID, workplaceID)] = employee.Employee{
		ID:          "emp-" + userID,
		UserID:      userID,
		WorkplaceID: workplaceID,
	}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.members[memberKey(emp.UserID, emp.WorkplaceID)] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	f.members[memberKey(emp.UserID, emp.WorkplaceID)] = emp
	return nil
}

func (f *fakeEmployeeRepo) GetByUserAndWorkplace(_ context.Context, userID, workplaceID string) (employee.Employee, error) {
	emp, ok := f.members[memberKey(userID, workplaceID)]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListByWorkplace(_ context.Context, workplaceID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.members {
		if emp.WorkplaceID == workplaceID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) IsMember(_ context.Context, userID, workplaceID string) (bool, error) {
	_, ok := f.members[memberKey(userID, workplaceID)]
	return ok, nil
}

type fakeWorkplaceRepo struct {
	workplaces map[string]workplace.Workplace
}

func newFakeWorkplaceRepo() *fakeWorkplaceRepo {
	return &fakeWorkplaceRepo{workplaces: make(map[string]workplace.Workplace)}
}

func (f *fakeWorkplaceRepo) Create(_ context.Context, wp workplace.Workplace) (workplace.Workplace, error) {
	f.workplaces[wp.ID] = wp
	return wp, nil
}

func (f *fakeWorkplaceRepo) GetByID(_ context.Context, id string) (workplace.Workplace, error) {
	wp, ok := f.workplaces[id]
	if !ok {
		return workplace.Workplace{}, workplace.ErrWorkplaceNotFound
	}
	return wp, nil
}

func (f *fakeWorkplaceRepo) ListByOwner(_ context.Context, ownerID string) ([]workplace.Workplace, error) {
	var out []workplace.Workplace
	for _, wp := range f.workplaces {
		if wp.OwnerID == ownerID {
			out = append(out, wp)
		}
	}
	return out, nil
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

func authedContext(t *testing.T, userID, role string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("role", role))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type testEnv struct {
	svc            *AttendanceServiceImpl
	attendanceRepo *fakeAttendanceRepo
	employeeRepo   *fakeEmployeeRepo
	workplaceRepo  *fakeWorkplaceRepo
}

func newTestEnv(now time.Time) testEnv {
	env := testEnv{
		attendanceRepo: newFakeAttendanceRepo(),
		employeeRepo:   newFakeEmployeeRepo(),
		workplaceRepo:  newFakeWorkplaceRepo(),
	}
	env.svc = &AttendanceServiceImpl{
		attendanceRepo: env.attendanceRepo,
		employeeRepo:   env.employeeRepo,
		workplaceRepo:  env.workplaceRepo,
		restPolicy:     timeutil.RestMinutes,
		nightPolicy:    timeutil.NightHours,
		now:            func() time.Time { return now },
	}
	env.workplaceRepo.workplaces["wp-1"] = workplace.Workplace{ID: "wp-1", OwnerID: "boss-1", Name: "Cafe"}
	env.employeeRepo.addMember("user-1", "wp-1")
	return env
}

func TestCheckInAndCheckOut(t *testing.T) {
	// Monday shift 09:00-18:00: 60min rest, 8h effective, no night, no holiday.
	checkIn := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(checkIn)
	ctx := authedContext(t, "user-1", "employee")

	res, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", res.WorkDate)
	assert.NotNil(t, res.CheckIn)
	assert.Nil(t, res.CheckOut)
	assert.False(t, res.Approved)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC) }
	res, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	require.NotNil(t, res.RestMinutes)
	assert.Equal(t, 60, *res.RestMinutes)
	require.NotNil(t, res.WorkHours)
	assert.InDelta(t, 8.0, *res.WorkHours, 0.001)
	require.NotNil(t, res.RegularHours)
	assert.InDelta(t, 8.0, *res.RegularHours, 0.001)
	require.NotNil(t, res.NightHours)
	assert.Zero(t, *res.NightHours)
	require.NotNil(t, res.HolidayHours)
	assert.Zero(t, *res.HolidayHours)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ctx := authedContext(t, "user-1", "employee")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInReusesClosedRecord(t *testing.T) {
	// A split shift keeps one row per day: after closing the morning
	// interval, the evening check-in reopens the same record.
	env := newTestEnv(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t, "user-1", "employee")

	first, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC) }
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC) }
	res, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, res.ID)
	require.NotNil(t, res.CheckIn)
	assert.Equal(t, time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC), *res.CheckIn)
	assert.Nil(t, res.CheckOut)
	assert.Len(t, env.attendanceRepo.records, 1)
}

func TestCheckInInsertRace(t *testing.T) {
	// When a concurrent check-in wins the insert, the unique-key error
	// surfaces as a double check-in, not as a generic duplicate.
	env := newTestEnv(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))
	env.attendanceRepo.createErr = attendance.ErrAttendanceExists
	ctx := authedContext(t, "user-1", "employee")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInNotAMember(t *testing.T) {
	env := newTestEnv(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t, "stranger", "employee")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC))
	ctx := authedContext(t, "user-1", "employee")

	_, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{WorkplaceID: "wp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	env := newTestEnv(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t, "user-1", "employee")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC) }
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{WorkplaceID: "wp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestNightHoursDerivedOnCheckOut(t *testing.T) {
	// 21:00-23:00: two hours worked, one of them past 22:00.
	env := newTestEnv(time.Date(2025, 3, 3, 21, 0, 0, 0, time.UTC))
	ctx := authedContext(t, "user-1", "employee")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return time.Date(2025, 3, 3, 23, 0, 0, 0, time.UTC) }
	res, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	require.NotNil(t, res.RestMinutes)
	assert.Equal(t, 0, *res.RestMinutes)
	require.NotNil(t, res.NightHours)
	assert.InDelta(t, 1.0, *res.NightHours, 0.001)
}

func TestOwnerCreateSundayCountsAsHoliday(t *testing.T) {
	env := newTestEnv(time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC))
	ctx := authedContext(t, "boss-1", "boss")

	res, err := env.svc.Create(ctx, attendance.CreateAttendanceRequest{
		WorkplaceID: "wp-1",
		UserID:      "user-1",
		WorkDate:    "2025-03-02", // Sunday
		CheckIn:     "2025-03-02T10:00:00Z",
		CheckOut:    "2025-03-02T16:00:00Z",
	})
	require.NoError(t, err)

	assert.True(t, res.Approved)
	require.NotNil(t, res.WorkHours)
	assert.InDelta(t, 5.5, *res.WorkHours, 0.001)
	require.NotNil(t, res.HolidayHours)
	assert.InDelta(t, 5.5, *res.HolidayHours, 0.001)
}

func TestOwnerCreateRejectsInvalidInterval(t *testing.T) {
	env := newTestEnv(time.Now())
	ctx := authedContext(t, "boss-1", "boss")

	_, err := env.svc.Create(ctx, attendance.CreateAttendanceRequest{
		WorkplaceID: "wp-1",
		UserID:      "user-1",
		WorkDate:    "2025-03-03",
		CheckIn:     "2025-03-03T16:00:00Z",
		CheckOut:    "2025-03-03T10:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidInterval)
}

func TestOwnerCreateRejectsDuplicateDate(t *testing.T) {
	env := newTestEnv(time.Now())
	ctx := authedContext(t, "boss-1", "boss")

	req := attendance.CreateAttendanceRequest{
		WorkplaceID: "wp-1",
		UserID:      "user-1",
		WorkDate:    "2025-03-03",
		CheckIn:     "2025-03-03T09:00:00Z",
		CheckOut:    "2025-03-03T17:00:00Z",
	}
	_, err := env.svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
}

func TestCreateRequiresOwner(t *testing.T) {
	env := newTestEnv(time.Now())
	ctx := authedContext(t, "user-1", "employee")

	_, err := env.svc.Create(ctx, attendance.CreateAttendanceRequest{
		WorkplaceID: "wp-1",
		UserID:      "user-1",
		WorkDate:    "2025-03-03",
		CheckIn:     "2025-03-03T09:00:00Z",
		CheckOut:    "2025-03-03T17:00:00Z",
	})
	assert.ErrorIs(t, err, workplace.ErrNotTheOwner)
}

func TestApprove(t *testing.T) {
	env := newTestEnv(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))

	_, err := env.svc.CheckIn(authedContext(t, "user-1", "employee"), attendance.CheckInRequest{WorkplaceID: "wp-1"})
	require.NoError(t, err)

	var id string
	for recordID := range env.attendanceRepo.records {
		id = recordID
	}

	res, err := env.svc.Approve(authedContext(t, "boss-1", "boss"), id)
	require.NoError(t, err)
	assert.True(t, res.Approved)

	_, err = env.svc.Approve(authedContext(t, "user-1", "employee"), id)
	assert.ErrorIs(t, err, workplace.ErrNotTheOwner)
}

func TestUpdateRecomputesHours(t *testing.T) {
	env := newTestEnv(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t, "boss-1", "boss")

	created, err := env.svc.Create(ctx, attendance.CreateAttendanceRequest{
		WorkplaceID: "wp-1",
		UserID:      "user-1",
		WorkDate:    "2025-03-03",
		CheckIn:     "2025-03-03T09:00:00Z",
		CheckOut:    "2025-03-03T12:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, created.WorkHours)
	assert.InDelta(t, 3.0, *created.WorkHours, 0.001)

	updated, err := env.svc.Update(ctx, created.ID, attendance.UpdateAttendanceRequest{
		CheckIn:  "2025-03-03T09:00:00Z",
		CheckOut: "2025-03-03T14:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.RestMinutes)
	assert.Equal(t, 30, *updated.RestMinutes)
	require.NotNil(t, updated.WorkHours)
	assert.InDelta(t, 4.5, *updated.WorkHours, 0.001)
}
