package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/schedule"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepository) Create(ctx context.Context, sched schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	sched.ID = uuid.New().String()

	query := `
		INSERT INTO schedules (id, user_id, workplace_id, start_time, end_time, status, method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sched.ID,
		sched.UserID,
		sched.WorkplaceID,
		sched.StartTime,
		sched.EndTime,
		sched.Status,
		sched.Method,
	).Scan(&sched.CreatedAt, &sched.UpdatedAt)

	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return sched, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepository) Update(ctx context.Context, sched schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET start_time = $2, end_time = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, sched.ID, sched.StartTime, sched.EndTime, sched.Status)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.workplace_id, s.start_time, s.end_time, s.status, s.method,
			   s.created_at, s.updated_at, u.name AS user_name
		FROM schedules s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`

	var sched schedule.Schedule
	err := q.QueryRow(ctx, query, id).Scan(
		&sched.ID, &sched.UserID, &sched.WorkplaceID, &sched.StartTime, &sched.EndTime,
		&sched.Status, &sched.Method, &sched.CreatedAt, &sched.UpdatedAt, &sched.UserName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	return sched, nil
}

// ListByWorkplace implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListByWorkplace(ctx context.Context, workplaceID string) ([]schedule.Schedule, error) {
	query := `
		SELECT s.id, s.user_id, s.workplace_id, s.start_time, s.end_time, s.status, s.method,
			   s.created_at, s.updated_at, u.name AS user_name
		FROM schedules s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.workplace_id = $1
		ORDER BY s.start_time
	`

	return r.list(ctx, query, workplaceID)
}

// ListByUser implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListByUser(ctx context.Context, userID string) ([]schedule.Schedule, error) {
	query := `
		SELECT s.id, s.user_id, s.workplace_id, s.start_time, s.end_time, s.status, s.method,
			   s.created_at, s.updated_at, u.name AS user_name
		FROM schedules s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1
		ORDER BY s.start_time
	`

	return r.list(ctx, query, userID)
}

// CancelByWorkplaceAndRange implements schedule.ScheduleRepository.
func (r *scheduleRepository) CancelByWorkplaceAndRange(ctx context.Context, workplaceID string, from, to time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET status = $4, updated_at = NOW()
		WHERE workplace_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		  AND status = $5
	`

	if _, err := q.Exec(ctx, query, workplaceID, from, to, schedule.StatusCancelled, schedule.StatusActive); err != nil {
		return fmt.Errorf("failed to cancel schedules in range: %w", err)
	}

	return nil
}

func (r *scheduleRepository) list(ctx context.Context, query string, args ...interface{}) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		var sched schedule.Schedule
		if err := rows.Scan(
			&sched.ID, &sched.UserID, &sched.WorkplaceID, &sched.StartTime, &sched.EndTime,
			&sched.Status, &sched.Method, &sched.CreatedAt, &sched.UpdatedAt, &sched.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, sched)
	}

	return schedules, rows.Err()
}
