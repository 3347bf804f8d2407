package attendance

import (
	"time"

	"github.com/albastory/workforce-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	WorkplaceID string  `json:"workplace_id"`
	WorkDate    *string `json:"work_date"` // defaults to today
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "workplace_id is required"})
	}
	if r.WorkDate != nil {
		if _, ok := validator.IsValidDate(*r.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	WorkplaceID string  `json:"workplace_id"`
	WorkDate    *string `json:"work_date"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "workplace_id is required"})
	}
	if r.WorkDate != nil {
		if _, ok := validator.IsValidDate(*r.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateAttendanceRequest is the owner-entered record: it arrives fully
// populated and is auto-approved.
type CreateAttendanceRequest struct {
	WorkplaceID string `json:"workplace_id"`
	UserID      string `json:"user_id"`
	WorkDate    string `json:"work_date"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "workplace_id is required"})
	}
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in must be an ISO8601 timestamp"})
	}
	if _, ok := validator.IsValidDateTime(r.CheckOut); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be an ISO8601 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in must be an ISO8601 timestamp"})
	}
	if _, ok := validator.IsValidDateTime(r.CheckOut); !ok {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be an ISO8601 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	WorkplaceID   string     `json:"workplace_id"`
	WorkDate      string     `json:"work_date"`
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	RestMinutes   *int       `json:"rest_minutes,omitempty"`
	WorkHours     *float64   `json:"work_hours,omitempty"`
	RegularHours  *float64   `json:"regular_hours,omitempty"`
	NightHours    *float64   `json:"night_hours,omitempty"`
	HolidayHours  *float64   `json:"holiday_hours,omitempty"`
	Approved      bool       `json:"approved"`
	UserName      *string    `json:"user_name,omitempty"`
	WorkplaceName *string    `json:"workplace_name,omitempty"`
}
