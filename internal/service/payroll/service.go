package payroll

import (
	"context"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/attendance"
	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/payroll"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

// Premium multiplier applied to overtime, night and holiday hours.
var premiumRate = decimal.NewFromFloat(1.5)

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	workplaceRepo  workplace.WorkplaceRepository

	now func() time.Time
}

func NewPayrollService(db *database.DB, payrollRepo payroll.PayrollRepository, attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository, workplaceRepo workplace.WorkplaceRepository) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		workplaceRepo:  workplaceRepo,
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

// CalculateMonthly implements payroll.PayrollService. One row per employee
// is upserted against the (workplace, user, period) key; finalized rows
// refuse recalculation.
func (s *PayrollServiceImpl) CalculateMonthly(ctx context.Context, req payroll.CalculateRequest) ([]payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, req.WorkplaceID); err != nil {
		return nil, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var targets []employee.Employee
	if req.UserID != nil {
		emp, err := s.employeeRepo.GetByUserAndWorkplace(ctx, *req.UserID, req.WorkplaceID)
		if err != nil {
			return nil, err
		}
		targets = []employee.Employee{emp}
	} else {
		var err error
		targets, err = s.employeeRepo.ListByWorkplace(ctx, req.WorkplaceID)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]payroll.PayrollResponse, 0, len(targets))
	for _, emp := range targets {
		records, err := s.attendanceRepo.ListClosedByUserAndRange(ctx, emp.UserID, req.WorkplaceID, start, end)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			if req.UserID != nil {
				return nil, payroll.ErrNoAttendanceRecords
			}
			continue
		}

		p, err := s.buildPayroll(emp, records, start, end)
		if err != nil {
			return nil, err
		}

		saved, err := s.upsert(ctx, p)
		if err != nil {
			return nil, err
		}
		responses = append(responses, mapPayrollToResponse(saved))
	}

	return responses, nil
}

// buildPayroll aggregates closed attendance into one payroll row. Overtime
// is anything past 40 hours in a Monday-anchored week; the rest of the
// derived fields come straight off the attendance records.
func (s *PayrollServiceImpl) buildPayroll(emp employee.Employee, records []attendance.Attendance, start, end time.Time) (payroll.Payroll, error) {
	var totalHours, nightHours, holidayHours float64
	weekHours := make(map[int]float64)

	for _, rec := range records {
		if rec.WorkHours != nil {
			totalHours += *rec.WorkHours
			weekHours[weekKey(rec.WorkDate)] += *rec.WorkHours
		}
		if rec.NightHours != nil {
			nightHours += *rec.NightHours
		}
		if rec.HolidayHours != nil {
			holidayHours += *rec.HolidayHours
		}
	}

	var overtimeHours float64
	for _, hours := range weekHours {
		if hours > 40 {
			overtimeHours += hours - 40
		}
	}
	regularHours := totalHours - overtimeHours
	if regularHours < 0 {
		regularHours = 0
	}

	hourly, err := emp.HourlyEquivalent()
	if err != nil {
		return payroll.Payroll{}, err
	}

	basePay := emp.BasePay(regularHours, hourly)
	overtimePay := premiumPay(hourly, overtimeHours)
	nightPay := premiumPay(hourly, nightHours)
	holidayPay := premiumPay(hourly, holidayHours)
	totalPay := basePay.Add(overtimePay).Add(nightPay).Add(holidayPay).Round(2)

	return payroll.Payroll{
		UserID:        emp.UserID,
		WorkplaceID:   emp.WorkplaceID,
		StartDate:     start,
		EndDate:       end,
		PayType:       emp.ResolvedPayType(),
		WorkDays:      len(records),
		RegularHours:  regularHours,
		OvertimeHours: overtimeHours,
		NightHours:    nightHours,
		HolidayHours:  holidayHours,
		TotalHours:    totalHours,
		BasePay:       basePay.Round(2),
		OvertimePay:   overtimePay,
		NightPay:      nightPay,
		HolidayPay:    holidayPay,
		TotalPay:      totalPay,
		CalculatedAt:  s.now(),
	}, nil
}

func (s *PayrollServiceImpl) upsert(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	existing, err := s.payrollRepo.GetByPeriod(ctx, p.WorkplaceID, p.UserID, p.StartDate, p.EndDate)
	if err != nil {
		return payroll.Payroll{}, err
	}
	if existing == nil {
		return s.payrollRepo.Create(ctx, p)
	}
	if existing.Finalized {
		return payroll.Payroll{}, payroll.ErrPayrollFinalized
	}

	p.ID = existing.ID
	if err := s.payrollRepo.Update(ctx, p); err != nil {
		return payroll.Payroll{}, err
	}
	return p, nil
}

// Finalize implements payroll.PayrollService. Finalizing is one-way and
// idempotent.
func (s *PayrollServiceImpl) Finalize(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if err := s.requireOwner(ctx, p.WorkplaceID); err != nil {
		return payroll.PayrollResponse{}, err
	}

	if !p.Finalized {
		now := s.now()
		p.Finalized = true
		p.FinalizedAt = &now
		if err := s.payrollRepo.Update(ctx, p); err != nil {
			return payroll.PayrollResponse{}, err
		}
	}

	return mapPayrollToResponse(p), nil
}

// ListByWorkplace implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListByWorkplace(ctx context.Context, workplaceID string, year, month int) ([]payroll.PayrollResponse, error) {
	if err := s.requireOwner(ctx, workplaceID); err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	payrolls, err := s.payrollRepo.ListByWorkplaceAndPeriod(ctx, workplaceID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		responses = append(responses, mapPayrollToResponse(p))
	}
	return responses, nil
}

// ListMine implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMine(ctx context.Context, year, month int) ([]payroll.PayrollResponse, error) {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	payrolls, err := s.payrollRepo.ListByUserAndPeriod(ctx, callerID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		responses = append(responses, mapPayrollToResponse(p))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) requireOwner(ctx context.Context, workplaceID string) error {
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

// weekKey buckets a date by the Monday that opens its week, so that a month
// boundary never splits an overtime week in two.
func weekKey(date time.Time) int {
	offset := int(date.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday closes the week
	}
	monday := date.AddDate(0, 0, -offset)
	_, week := monday.ISOWeek()
	return monday.Year()*100 + week
}

func premiumPay(hourly decimal.Decimal, hours float64) decimal.Decimal {
	return hourly.Mul(decimal.NewFromFloat(hours)).Mul(premiumRate).Round(2)
}

func mapPayrollToResponse(p payroll.Payroll) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		WorkplaceID:   p.WorkplaceID,
		StartDate:     p.StartDate.Format("2006-01-02"),
		EndDate:       p.EndDate.Format("2006-01-02"),
		PayType:       string(p.PayType),
		WorkDays:      p.WorkDays,
		RegularHours:  p.RegularHours,
		OvertimeHours: p.OvertimeHours,
		NightHours:    p.NightHours,
		HolidayHours:  p.HolidayHours,
		TotalHours:    p.TotalHours,
		BasePay:       p.BasePay,
		OvertimePay:   p.OvertimePay,
		NightPay:      p.NightPay,
		HolidayPay:    p.HolidayPay,
		TotalPay:      p.TotalPay,
		Finalized:     p.Finalized,
		CalculatedAt:  p.CalculatedAt,
		FinalizedAt:   p.FinalizedAt,
		UserName:      p.UserName,
	}
}
