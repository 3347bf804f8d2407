package schedule

import (
	"time"

	"github.com/albastory/workforce-backend-go/internal/pkg/validator"
)

type RoleRequirement struct {
	Role     string `json:"role"`
	MinCount int    `json:"min_count"`
	MaxCount int    `json:"max_count"`
}

// GenerateRequest is the immutable configuration of one generation run.
type GenerateRequest struct {
	WorkplaceID         string            `json:"workplace_id"`
	StartDate           string            `json:"start_date"`
	EndDate             string            `json:"end_date"`
	OpenTime            string            `json:"open_time"`
	CloseTime           string            `json:"close_time"`
	SlotHours           int               `json:"slot_hours"`
	MinStaffPerSlot     *int              `json:"min_staff_per_slot"`
	MaxStaffPerSlot     *int              `json:"max_staff_per_slot"`
	RoleRequirements    []RoleRequirement `json:"role_requirements"`
	ExcludeUserIDs      []string          `json:"exclude_user_ids"`
	MaxConsecutiveHours *int              `json:"max_consecutive_hours"`
	OffDays             []string          `json:"off_days"` // weekday names or YYYY-MM-DD dates
	OverwriteExisting   bool              `json:"overwrite_existing"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "workplace_id is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.OpenTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "open_time", Message: "open_time must be HH:MM"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.CloseTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "close_time", Message: "close_time must be HH:MM"})
	}
	if r.SlotHours > 12 {
		errs = append(errs, validator.ValidationError{Field: "slot_hours", Message: "slot_hours cannot exceed 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateScheduleRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDateTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be an ISO8601 timestamp"})
	}
	if _, ok := validator.IsValidDateTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be an ISO8601 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WorkplaceID string    `json:"workplace_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	UserName    *string   `json:"user_name,omitempty"`
}

// GenerationStats lets a caller detect silent under-staffing by comparing
// planned against filled slot counts.
type GenerationStats struct {
	SlotsPlanned     int    `json:"slots_planned"`
	SlotsFilledToMin int    `json:"slots_filled_to_min"`
	Assignments      int    `json:"assignments"`
	Method           string `json:"method"`
}

type GenerateResponse struct {
	Entries []ScheduleResponse `json:"entries"`
	Stats   GenerationStats    `json:"stats"`
}
