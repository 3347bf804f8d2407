package availability

import (
	"context"
	"time"
)

type AvailabilityRepository interface {
	// GetSet returns the set for (user, workplace, month), or nil when none exists.
	GetSet(ctx context.Context, userID, workplaceID string, targetMonth time.Time) (*AvailabilitySet, error)
	CreateSet(ctx context.Context, set AvailabilitySet) (AvailabilitySet, error)

	DeleteAllSlots(ctx context.Context, setID string) error
	DeleteSlotsByDates(ctx context.Context, setID string, dates []time.Time) error
	InsertSlots(ctx context.Context, setID string, slots []Slot) error
	ListSlotsBySet(ctx context.Context, setID string) ([]Slot, error)

	// ListSlotsByWorkplaceAndRange returns all declared slots for a workplace
	// in [from, to], with the owning user id attached.
	ListSlotsByWorkplaceAndRange(ctx context.Context, workplaceID string, from, to time.Time) ([]Slot, error)
}
