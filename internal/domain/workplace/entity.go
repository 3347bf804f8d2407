package workplace

import "time"

type Workplace struct {
	ID        string
	OwnerID   string
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestAccepted JoinRequestStatus = "accepted"
)

type JoinRequest struct {
	ID          string
	WorkplaceID string
	UserID      string
	Status      JoinRequestStatus
	CreatedAt   time.Time

	// Joined fields
	UserName  *string
	UserEmail *string
}
