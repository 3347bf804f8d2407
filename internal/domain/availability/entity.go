package availability

import "time"

// AvailabilitySet groups one employee's declared availability for one
// workplace and one target month.
type AvailabilitySet struct {
	ID          string
	UserID      string
	WorkplaceID string
	TargetMonth time.Time // first day of the month
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Slots []Slot
}

// Slot is a single declared time range on a date. StartAt and EndAt are
// full timestamps on WorkDate. Slots within a day need not be disjoint.
type Slot struct {
	ID       string
	SetID    string
	WorkDate time.Time
	StartAt  time.Time
	EndAt    time.Time

	// Joined fields
	UserID string
}
