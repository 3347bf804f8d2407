package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/albastory/workforce-backend-go/internal/domain/availability"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type availabilityRepository struct {
	db *database.DB
}

func NewAvailabilityRepository(db *database.DB) availability.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

// GetSet implements availability.AvailabilityRepository.
func (r *availabilityRepository) GetSet(ctx context.Context, userID, workplaceID string, targetMonth time.Time) (*availability.AvailabilitySet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, workplace_id, target_month, created_at, updated_at
		FROM availability_sets
		WHERE user_id = $1 AND workplace_id = $2 AND target_month = $3
	`

	var set availability.AvailabilitySet
	err := q.QueryRow(ctx, query, userID, workplaceID, targetMonth).Scan(
		&set.ID, &set.UserID, &set.WorkplaceID, &set.TargetMonth, &set.CreatedAt, &set.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get availability set: %w", err)
	}

	return &set, nil
}

// CreateSet implements availability.AvailabilityRepository.
func (r *availabilityRepository) CreateSet(ctx context.Context, set availability.AvailabilitySet) (availability.AvailabilitySet, error) {
	q := GetQuerier(ctx, r.db)

	set.ID = uuid.New().String()

	query := `
		INSERT INTO availability_sets (id, user_id, workplace_id, target_month)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, set.ID, set.UserID, set.WorkplaceID, set.TargetMonth).
		Scan(&set.CreatedAt, &set.UpdatedAt)
	if err != nil {
		return availability.AvailabilitySet{}, fmt.Errorf("failed to create availability set: %w", err)
	}

	return set, nil
}

// DeleteAllSlots implements availability.AvailabilityRepository.
func (r *availabilityRepository) DeleteAllSlots(ctx context.Context, setID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM availability_slots WHERE set_id = $1`, setID); err != nil {
		return fmt.Errorf("failed to delete availability slots: %w", err)
	}

	return nil
}

// DeleteSlotsByDates implements availability.AvailabilityRepository.
func (r *availabilityRepository) DeleteSlotsByDates(ctx context.Context, setID string, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx,
		`DELETE FROM availability_slots WHERE set_id = $1 AND work_date = ANY($2)`,
		setID, dates,
	); err != nil {
		return fmt.Errorf("failed to delete availability slots by dates: %w", err)
	}

	return nil
}

// InsertSlots implements availability.AvailabilityRepository.
func (r *availabilityRepository) InsertSlots(ctx context.Context, setID string, slots []availability.Slot) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO availability_slots (id, set_id, work_date, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, slot := range slots {
		if _, err := q.Exec(ctx, query, uuid.New().String(), setID, slot.WorkDate, slot.StartAt, slot.EndAt); err != nil {
			return fmt.Errorf("failed to insert availability slot: %w", err)
		}
	}

	return nil
}

// ListSlotsBySet implements availability.AvailabilityRepository.
func (r *availabilityRepository) ListSlotsBySet(ctx context.Context, setID string) ([]availability.Slot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, set_id, work_date, start_at, end_at
		FROM availability_slots
		WHERE set_id = $1
		ORDER BY work_date, start_at
	`

	rows, err := q.Query(ctx, query, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots: %w", err)
	}
	defer rows.Close()

	var slots []availability.Slot
	for rows.Next() {
		var slot availability.Slot
		if err := rows.Scan(&slot.ID, &slot.SetID, &slot.WorkDate, &slot.StartAt, &slot.EndAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// ListSlotsByWorkplaceAndRange implements availability.AvailabilityRepository.
func (r *availabilityRepository) ListSlotsByWorkplaceAndRange(ctx context.Context, workplaceID string, from, to time.Time) ([]availability.Slot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.set_id, s.work_date, s.start_at, s.end_at, a.user_id
		FROM availability_slots s
		JOIN availability_sets a ON a.id = s.set_id
		WHERE a.workplace_id = $1
		  AND s.work_date BETWEEN $2 AND $3
		ORDER BY s.work_date, s.start_at
	`

	rows, err := q.Query(ctx, query, workplaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability slots for workplace: %w", err)
	}
	defer rows.Close()

	var slots []availability.Slot
	for rows.Next() {
		var slot availability.Slot
		if err := rows.Scan(&slot.ID, &slot.SetID, &slot.WorkDate, &slot.StartAt, &slot.EndAt, &slot.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan availability slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}
