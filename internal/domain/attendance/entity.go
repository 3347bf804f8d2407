package attendance

import "time"

// Attendance is one check-in/check-out record per (user, workplace, work date).
// A record is open while CheckOut is nil; closing it computes the derived
// hour fields. Regular/overtime split is deferred to payroll aggregation.
type Attendance struct {
	ID           string
	UserID       string
	WorkplaceID  string
	WorkDate     time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	RestMinutes  *int
	WorkHours    *float64
	RegularHours *float64
	NightHours   *float64
	HolidayHours *float64
	Approved     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	UserName      *string
	WorkplaceName *string
}

// IsOpen reports whether the record has a check-in without a check-out.
func (a *Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}
