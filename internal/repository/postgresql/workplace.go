package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type workplaceRepository struct {
	db *database.DB
}

func NewWorkplaceRepository(db *database.DB) workplace.WorkplaceRepository {
	return &workplaceRepository{db: db}
}

// Create implements workplace.WorkplaceRepository.
func (r *workplaceRepository) Create(ctx context.Context, wp workplace.Workplace) (workplace.Workplace, error) {
	q := GetQuerier(ctx, r.db)

	wp.ID = uuid.New().String()

	query := `
		INSERT INTO workplaces (id, owner_id, name, address)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, wp.ID, wp.OwnerID, wp.Name, wp.Address).
		Scan(&wp.CreatedAt, &wp.UpdatedAt)
	if err != nil {
		return workplace.Workplace{}, fmt.Errorf("failed to create workplace: %w", err)
	}

	return wp, nil
}

// GetByID implements workplace.WorkplaceRepository.
func (r *workplaceRepository) GetByID(ctx context.Context, id string) (workplace.Workplace, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, name, address, created_at, updated_at
		FROM workplaces
		WHERE id = $1
	`

	var wp workplace.Workplace
	err := q.QueryRow(ctx, query, id).Scan(
		&wp.ID, &wp.OwnerID, &wp.Name, &wp.Address, &wp.CreatedAt, &wp.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return workplace.Workplace{}, workplace.ErrWorkplaceNotFound
		}
		return workplace.Workplace{}, fmt.Errorf("failed to get workplace: %w", err)
	}

	return wp, nil
}

// ListByOwner implements workplace.WorkplaceRepository.
func (r *workplaceRepository) ListByOwner(ctx context.Context, ownerID string) ([]workplace.Workplace, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, name, address, created_at, updated_at
		FROM workplaces
		WHERE owner_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workplaces: %w", err)
	}
	defer rows.Close()

	var workplaces []workplace.Workplace
	for rows.Next() {
		var wp workplace.Workplace
		if err := rows.Scan(&wp.ID, &wp.OwnerID, &wp.Name, &wp.Address, &wp.CreatedAt, &wp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workplace: %w", err)
		}
		workplaces = append(workplaces, wp)
	}

	return workplaces, rows.Err()
}

// CreateJoinRequest implements workplace.WorkplaceRepository.
func (r *workplaceRepository) CreateJoinRequest(ctx context.Context, req workplace.JoinRequest) (workplace.JoinRequest, error) {
	q := GetQuerier(ctx, r.db)

	req.ID = uuid.New().String()

	query := `
		INSERT INTO workplace_join_requests (id, workplace_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, req.ID, req.WorkplaceID, req.UserID, req.Status).
		Scan(&req.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return workplace.JoinRequest{}, workplace.ErrJoinRequestExists
		}
		return workplace.JoinRequest{}, fmt.Errorf("failed to create join request: %w", err)
	}

	return req, nil
}

// GetJoinRequestByID implements workplace.WorkplaceRepository.
func (r *workplaceRepository) GetJoinRequestByID(ctx context.Context, id string) (workplace.JoinRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT jr.id, jr.workplace_id, jr.user_id, jr.status, jr.created_at,
			   u.name AS user_name, u.email AS user_email
		FROM workplace_join_requests jr
		LEFT JOIN users u ON u.id = jr.user_id
		WHERE jr.id = $1
	`

	var req workplace.JoinRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.WorkplaceID, &req.UserID, &req.Status, &req.CreatedAt,
		&req.UserName, &req.UserEmail,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return workplace.JoinRequest{}, workplace.ErrJoinRequestNotFound
		}
		return workplace.JoinRequest{}, fmt.Errorf("failed to get join request: %w", err)
	}

	return req, nil
}

// ListJoinRequests implements workplace.WorkplaceRepository.
func (r *workplaceRepository) ListJoinRequests(ctx context.Context, workplaceID string, status workplace.JoinRequestStatus) ([]workplace.JoinRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT jr.id, jr.workplace_id, jr.user_id, jr.status, jr.created_at,
			   u.name AS user_name, u.email AS user_email
		FROM workplace_join_requests jr
		LEFT JOIN users u ON u.id = jr.user_id
		WHERE jr.workplace_id = $1 AND jr.status = $2
		ORDER BY jr.created_at
	`

	rows, err := q.Query(ctx, query, workplaceID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	defer rows.Close()

	var requests []workplace.JoinRequest
	for rows.Next() {
		var req workplace.JoinRequest
		if err := rows.Scan(&req.ID, &req.WorkplaceID, &req.UserID, &req.Status, &req.CreatedAt, &req.UserName, &req.UserEmail); err != nil {
			return nil, fmt.Errorf("failed to scan join request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// UpdateJoinRequestStatus implements workplace.WorkplaceRepository.
func (r *workplaceRepository) UpdateJoinRequestStatus(ctx context.Context, id string, status workplace.JoinRequestStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE workplace_join_requests SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update join request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workplace.ErrJoinRequestNotFound
	}

	return nil
}
