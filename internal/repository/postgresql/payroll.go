package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/payroll"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.user_id, p.workplace_id, p.start_date, p.end_date, p.pay_type,
	p.work_days, p.regular_hours, p.overtime_hours, p.night_hours, p.holiday_hours, p.total_hours,
	p.base_pay, p.overtime_pay, p.night_pay, p.holiday_pay, p.total_pay,
	p.finalized, p.calculated_at, p.finalized_at,
	u.name AS user_name
`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.UserID, &p.WorkplaceID, &p.StartDate, &p.EndDate, &p.PayType,
		&p.WorkDays, &p.RegularHours, &p.OvertimeHours, &p.NightHours, &p.HolidayHours, &p.TotalHours,
		&p.BasePay, &p.OvertimePay, &p.NightPay, &p.HolidayPay, &p.TotalPay,
		&p.Finalized, &p.CalculatedAt, &p.FinalizedAt,
		&p.UserName,
	)
	return p, err
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	p.ID = uuid.New().String()

	query := `
		INSERT INTO payrolls (
			id, user_id, workplace_id, start_date, end_date, pay_type,
			work_days, regular_hours, overtime_hours, night_hours, holiday_hours, total_hours,
			base_pay, overtime_pay, night_pay, holiday_pay, total_pay,
			finalized, calculated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	_, err := q.Exec(ctx, query,
		p.ID, p.UserID, p.WorkplaceID, p.StartDate, p.EndDate, p.PayType,
		p.WorkDays, p.RegularHours, p.OvertimeHours, p.NightHours, p.HolidayHours, p.TotalHours,
		p.BasePay, p.OvertimePay, p.NightPay, p.HolidayPay, p.TotalPay,
		p.Finalized, p.CalculatedAt,
	)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return p, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepository) Update(ctx context.Context, p payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET pay_type = $2, work_days = $3, regular_hours = $4, overtime_hours = $5,
			night_hours = $6, holiday_hours = $7, total_hours = $8,
			base_pay = $9, overtime_pay = $10, night_pay = $11, holiday_pay = $12, total_pay = $13,
			finalized = $14, calculated_at = $15, finalized_at = $16
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		p.ID, p.PayType, p.WorkDays, p.RegularHours, p.OvertimeHours,
		p.NightHours, p.HolidayHours, p.TotalHours,
		p.BasePay, p.OvertimePay, p.NightPay, p.HolidayPay, p.TotalPay,
		p.Finalized, p.CalculatedAt, p.FinalizedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

// GetByPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByPeriod(ctx context.Context, workplaceID, userID string, start, end time.Time) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.workplace_id = $1 AND p.user_id = $2 AND p.start_date = $3 AND p.end_date = $4`

	p, err := scanPayroll(q.QueryRow(ctx, query, workplaceID, userID, start, end))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll by period: %w", err)
	}

	return &p, nil
}

// ListByWorkplaceAndPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) ListByWorkplaceAndPeriod(ctx context.Context, workplaceID string, start, end time.Time) ([]payroll.Payroll, error) {
	query := `SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.workplace_id = $1 AND p.start_date = $2 AND p.end_date = $3
		ORDER BY u.name`

	return r.list(ctx, query, workplaceID, start, end)
}

// ListByUserAndPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) ListByUserAndPeriod(ctx context.Context, userID string, start, end time.Time) ([]payroll.Payroll, error) {
	query := `SELECT ` + payrollColumns + `
		FROM payrolls p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND p.start_date = $2 AND p.end_date = $3
		ORDER BY p.workplace_id`

	return r.list(ctx, query, userID, start, end)
}

func (r *payrollRepository) list(ctx context.Context, query string, args ...interface{}) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}

	return payrolls, rows.Err()
}
