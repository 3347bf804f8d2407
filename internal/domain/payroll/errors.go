package payroll

import "errors"

var (
	ErrPayrollNotFound     = errors.New("payroll record not found")
	ErrNoAttendanceRecords = errors.New("no attendance records in the period")
	ErrPayrollFinalized    = errors.New("payroll has been finalized")
)
