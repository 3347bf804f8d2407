package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Planner produces a candidate shift plan for a workplace. The output is
// best-effort: a nil slice with a nil error means "no usable plan" and the
// caller is expected to fall back to its own algorithm.
type Planner interface {
	Plan(ctx context.Context, req PlanRequest) ([]PlannedSlot, error)
}

// PlanRequest is the structured payload handed to the planner.
type PlanRequest struct {
	Store       Store        `json:"store"`
	Constraints Constraints  `json:"constraints"`
	Employees   []Employee   `json:"employees"`
	Preferences []Preference `json:"preferences"`
}

type Store struct {
	WorkplaceID string `json:"workplaceId"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	SlotHours   int    `json:"slotHours"`
}

type Constraints struct {
	MinStaffPerSlot     *int              `json:"minStaffPerSlot"`
	MaxStaffPerSlot     *int              `json:"maxStaffPerSlot"`
	RoleRequirements    []RoleRequirement `json:"roleRequirements"`
	ExcludeUserIDs      []string          `json:"excludeUserIds"`
	MaxConsecutiveHours *int              `json:"maxConsecutiveHours"`
	OffDays             []string          `json:"offDays"`
	DateRange           DateRange         `json:"dateRange"`
}

type RoleRequirement struct {
	Role     string `json:"role"`
	MinCount int    `json:"minCount"`
	MaxCount int    `json:"maxCount"`
}

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Employee struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Role   *string `json:"role"`
}

type Preference struct {
	Date   string      `json:"date"`
	UserID string      `json:"userId"`
	Slots  []TimeRange `json:"slots"`
}

type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PlannedSlot is one parsed assignment from a planner response.
// Start and End carry only a time of day.
type PlannedSlot struct {
	UserID string
	Date   time.Time
	Start  time.Time
	End    time.Time
}

var errMalformedPlan = errors.New("assistant: malformed plan")

type planItem struct {
	UserID *string `json:"userId"`
	Date   *string `json:"date"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
}

// ParsePlan decodes a raw planner response into planned slots. The response
// is untrusted: it must be a JSON array of {userId, date, start, end}
// objects, and a single malformed element discards the whole batch.
func ParsePlan(raw string) ([]PlannedSlot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	// Completion output often wraps the array in prose or code fences.
	first := strings.Index(raw, "[")
	last := strings.LastIndex(raw, "]")
	if first == -1 || last <= first {
		return nil, errMalformedPlan
	}

	var items []planItem
	if err := json.Unmarshal([]byte(raw[first:last+1]), &items); err != nil {
		return nil, errMalformedPlan
	}

	slots := make([]PlannedSlot, 0, len(items))
	for _, item := range items {
		if item.UserID == nil || item.Date == nil || item.Start == nil || item.End == nil {
			return nil, errMalformedPlan
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(*item.Date))
		if err != nil {
			return nil, errMalformedPlan
		}
		start, err := time.Parse("15:04", strings.TrimSpace(*item.Start))
		if err != nil {
			return nil, errMalformedPlan
		}
		end, err := time.Parse("15:04", strings.TrimSpace(*item.End))
		if err != nil {
			return nil, errMalformedPlan
		}
		slots = append(slots, PlannedSlot{
			UserID: strings.TrimSpace(*item.UserID),
			Date:   date,
			Start:  start,
			End:    end,
		})
	}
	return slots, nil
}

// NoopPlanner is the default planner when no external assistant is
// configured. It never returns a plan.
type NoopPlanner struct{}

func (NoopPlanner) Plan(ctx context.Context, req PlanRequest) ([]PlannedSlot, error) {
	return nil, nil
}
