package availability

import "errors"

var (
	ErrNotAMember       = errors.New("not an employee of this workplace")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
)
