package postgresql

import (
	"context"
	"fmt"

	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp.ID = uuid.New().String()

	query := `
		INSERT INTO employees (id, user_id, workplace_id, position, pay_type, hourly_rate, weekly_rate, monthly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.UserID,
		emp.WorkplaceID,
		emp.Position,
		emp.PayType,
		emp.HourlyRate,
		emp.WeeklyRate,
		emp.MonthlyRate,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET position = $2, pay_type = $3, hourly_rate = $4, weekly_rate = $5, monthly_rate = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID,
		emp.Position,
		emp.PayType,
		emp.HourlyRate,
		emp.WeeklyRate,
		emp.MonthlyRate,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// GetByUserAndWorkplace implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserAndWorkplace(ctx context.Context, userID, workplaceID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.user_id, e.workplace_id, e.position, e.pay_type,
			   e.hourly_rate, e.weekly_rate, e.monthly_rate, e.created_at, e.updated_at,
			   u.name AS user_name, u.email AS user_email
		FROM employees e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1 AND e.workplace_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, userID, workplaceID).Scan(
		&emp.ID, &emp.UserID, &emp.WorkplaceID, &emp.Position, &emp.PayType,
		&emp.HourlyRate, &emp.WeeklyRate, &emp.MonthlyRate, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.UserName, &emp.UserEmail,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListByWorkplace implements employee.EmployeeRepository.
func (r *employeeRepository) ListByWorkplace(ctx context.Context, workplaceID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.user_id, e.workplace_id, e.position, e.pay_type,
			   e.hourly_rate, e.weekly_rate, e.monthly_rate, e.created_at, e.updated_at,
			   u.name AS user_name, u.email AS user_email
		FROM employees e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.workplace_id = $1
		ORDER BY e.created_at
	`

	rows, err := q.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.UserID, &emp.WorkplaceID, &emp.Position, &emp.PayType,
			&emp.HourlyRate, &emp.WeeklyRate, &emp.MonthlyRate, &emp.CreatedAt, &emp.UpdatedAt,
			&emp.UserName, &emp.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// IsMember implements employee.EmployeeRepository.
func (r *employeeRepository) IsMember(ctx context.Context, userID, workplaceID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE user_id = $1 AND workplace_id = $2)`,
		userID, workplaceID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return exists, nil
}
