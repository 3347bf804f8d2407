package schedule

import "time"

// Status is the soft lifecycle of a schedule entry. Entries are never
// physically deleted: updates mark them modified, deletes mark them cancelled.
type Status string

const (
	StatusActive    Status = "active"
	StatusModified  Status = "modified"
	StatusCancelled Status = "cancelled"
)

// Method records which path produced an entry.
type Method string

const (
	MethodAlgorithmic Method = "algorithmic"
	MethodAIAssisted  Method = "ai_assisted"
)

type Schedule struct {
	ID          string
	UserID      string
	WorkplaceID string
	StartTime   time.Time
	EndTime     time.Time
	Status      Status
	Method      Method
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	UserName *string
}
