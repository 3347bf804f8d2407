package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/attendance"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.workplace_id, a.work_date, a.check_in, a.check_out,
	a.rest_minutes, a.work_hours, a.regular_hours, a.night_hours, a.holiday_hours,
	a.approved, a.created_at, a.updated_at,
	u.name AS user_name, w.name AS workplace_name
`

const attendanceJoins = `
	FROM attendances a
	LEFT JOIN users u ON u.id = a.user_id
	LEFT JOIN workplaces w ON w.id = a.workplace_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.WorkplaceID, &att.WorkDate, &att.CheckIn, &att.CheckOut,
		&att.RestMinutes, &att.WorkHours, &att.RegularHours, &att.NightHours, &att.HolidayHours,
		&att.Approved, &att.CreatedAt, &att.UpdatedAt,
		&att.UserName, &att.WorkplaceName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
// The (user, workplace, work date) unique constraint closes the double
// check-in race; a violation maps to ErrAttendanceExists.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	att.ID = uuid.New().String()

	query := `
		INSERT INTO attendances (
			id, user_id, workplace_id, work_date, check_in, check_out,
			rest_minutes, work_hours, regular_hours, night_hours, holiday_hours, approved
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.UserID,
		att.WorkplaceID,
		att.WorkDate,
		att.CheckIn,
		att.CheckOut,
		att.RestMinutes,
		att.WorkHours,
		att.RegularHours,
		att.NightHours,
		att.HolidayHours,
		att.Approved,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, rest_minutes = $4, work_hours = $5,
			regular_hours = $6, night_hours = $7, holiday_hours = $8, approved = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.CheckIn,
		att.CheckOut,
		att.RestMinutes,
		att.WorkHours,
		att.RegularHours,
		att.NightHours,
		att.HolidayHours,
		att.Approved,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceJoins + ` WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByKey implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByKey(ctx context.Context, userID, workplaceID string, workDate time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + attendanceJoins + `
		WHERE a.user_id = $1 AND a.workplace_id = $2 AND a.work_date = $3`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, workplaceID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by key: %w", err)
	}

	return &att, nil
}

// ListByWorkplace implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByWorkplace(ctx context.Context, workplaceID string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + attendanceJoins + `
		WHERE a.workplace_id = $1
		ORDER BY a.work_date DESC, a.check_in DESC`

	return r.list(ctx, query, workplaceID)
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + attendanceJoins + `
		WHERE a.user_id = $1
		ORDER BY a.work_date DESC, a.check_in DESC`

	return r.list(ctx, query, userID)
}

// ListClosedByUserAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListClosedByUserAndRange(ctx context.Context, userID, workplaceID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + attendanceJoins + `
		WHERE a.user_id = $1 AND a.workplace_id = $2
		  AND a.work_date BETWEEN $3 AND $4
		  AND a.check_out IS NOT NULL
		ORDER BY a.work_date`

	return r.list(ctx, query, userID, workplaceID, from, to)
}

func (r *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, rows.Err()
}
