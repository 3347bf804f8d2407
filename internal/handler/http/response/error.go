package response

import (
	"errors"
	"net/http"

	"github.com/albastory/workforce-backend-go/internal/domain/attendance"
	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/availability"
	"github.com/albastory/workforce-backend-go/internal/domain/employee"
	"github.com/albastory/workforce-backend-go/internal/domain/payroll"
	"github.com/albastory/workforce-backend-go/internal/domain/schedule"
	"github.com/albastory/workforce-backend-go/internal/domain/user"
	"github.com/albastory/workforce-backend-go/internal/domain/workplace"
	"github.com/albastory/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / user
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)

	// Workplace
	case errors.Is(err, workplace.ErrWorkplaceNotFound):
		NotFound(w, "Workplace not found")
	case errors.Is(err, workplace.ErrJoinRequestNotFound):
		NotFound(w, "Join request not found")
	case errors.Is(err, workplace.ErrJoinRequestExists):
		Conflict(w, "Join request already submitted")
	case errors.Is(err, workplace.ErrAlreadyAMember):
		Conflict(w, "Already a member of this workplace")
	case errors.Is(err, workplace.ErrNotTheOwner):
		Forbidden(w, "Only the workplace owner can do this")
	case errors.Is(err, workplace.ErrBossRoleRequired):
		Forbidden(w, "Boss role required")

	// Employee work info
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMissingPayRate):
		BadRequest(w, "No pay rate configured for this employee", nil)

	// Availability
	case errors.Is(err, availability.ErrNotAMember):
		Forbidden(w, "Not an employee of this workplace")
	case errors.Is(err, availability.ErrInvalidTimeRange):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidInterval):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, err.Error())

	// Schedule
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrInvalidDateRange),
		errors.Is(err, schedule.ErrInvalidOperatingHours),
		errors.Is(err, schedule.ErrMissingSlotGranularity),
		errors.Is(err, schedule.ErrNoEmployees):
		BadRequest(w, err.Error(), nil)

	// Payroll
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrNoAttendanceRecords):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPayrollFinalized):
		Conflict(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
