package schedule

import "errors"

var (
	ErrScheduleNotFound       = errors.New("schedule not found")
	ErrInvalidDateRange       = errors.New("start date is after end date")
	ErrInvalidOperatingHours  = errors.New("open time must be before close time")
	ErrMissingSlotGranularity = errors.New("slot_hours must be at least 1")
	ErrNoEmployees            = errors.New("no employees registered at this workplace")
)
