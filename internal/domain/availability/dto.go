package availability

import (
	"github.com/albastory/workforce-backend-go/internal/pkg/validator"
)

type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DayPreference struct {
	Date  string      `json:"date"`
	Slots []TimeRange `json:"slots"`
}

type SavePreferenceRequest struct {
	WorkplaceID string          `json:"workplace_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Overwrite   bool            `json:"overwrite"`
	Days        []DayPreference `json:"days"`
}

func (r *SavePreferenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "workplace_id is required"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}

	for _, day := range r.Days {
		if _, ok := validator.IsValidDate(day.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "days", Message: "invalid date: " + day.Date})
			continue
		}
		for _, slot := range day.Slots {
			if _, ok := validator.IsValidTimeOfDay(slot.StartTime); !ok {
				errs = append(errs, validator.ValidationError{Field: "days", Message: "invalid start_time on " + day.Date})
			}
			if _, ok := validator.IsValidTimeOfDay(slot.EndTime); !ok {
				errs = append(errs, validator.ValidationError{Field: "days", Message: "invalid end_time on " + day.Date})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type PreferenceResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	WorkplaceID string         `json:"workplace_id"`
	Year        int            `json:"year"`
	Month       int            `json:"month"`
	Slots       []SlotResponse `json:"slots"`
}
