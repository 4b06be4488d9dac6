package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/auth"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/notification"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Insufficient quota carries the balance snapshot for the client.
	var quotaErr *leave.QuotaExceededError
	if errors.As(err, &quotaErr) {
		BadRequest(w, "Insufficient leave quota", map[string]string{
			"available": quotaErr.Available.StringFixed(2),
			"requested": quotaErr.Requested.StringFixed(2),
		})
		return
	}

	// Early check-out names the threshold that applied, which differs
	// when an afternoon half-day leave covers the day.
	var earlyErr *attendance.EarlyCheckOutError
	if errors.As(err, &earlyErr) {
		BadRequest(w, earlyErr.Error(), map[string]string{
			"earliest_allowed": earlyErr.Threshold.Format("15:04:05"),
			"leave_adjusted":   strconv.FormatBool(earlyErr.LeaveAdjusted),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is deactivated")
	case errors.Is(err, employee.ErrHRAccessRequired):
		Forbidden(w, "HR role required")

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotConfigured):
		Conflict(w, "Attendance policy is not configured")
	case errors.Is(err, policy.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, policy.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNoCheckInFound):
		NotFound(w, "No check-in found for today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, attendance.ErrHolidayBlocked):
		BadRequest(w, "Check-in is not allowed on a company holiday", nil)
	case errors.Is(err, attendance.ErrFullDayLeaveConflict):
		BadRequest(w, "An approved full-day leave covers today", nil)
	case errors.Is(err, attendance.ErrTooEarlyMorningLeave):
		BadRequest(w, "Cannot check in before the morning half-day leave ends", nil)
	case errors.Is(err, attendance.ErrTooEarlyToCheckOut):
		BadRequest(w, "Cannot check out before the earliest allowed time", nil)
	case errors.Is(err, attendance.ErrOutOfOrderTimestamps):
		BadRequest(w, "Check-out time precedes check-in time", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date cannot be after end date", nil)
	case errors.Is(err, leave.ErrNonPositiveDays):
		BadRequest(w, "Requested range does not amount to a positive number of leave days", nil)
	case errors.Is(err, leave.ErrNoQuotaAssigned):
		BadRequest(w, "No leave quota assigned for this leave type", nil)
	case errors.Is(err, leave.ErrInsufficientQuota):
		BadRequest(w, "Insufficient leave quota", nil)
	case errors.Is(err, leave.ErrNegativeUsage):
		Conflict(w, "Operation would drive leave usage negative")
	case errors.Is(err, leave.ErrQuotaNotFound):
		NotFound(w, "Leave quota not found")
	case errors.Is(err, leave.ErrQuotaExists):
		Conflict(w, "A quota for this employee, leave type and year already exists")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeExists):
		Conflict(w, "A leave type with this name already exists")
	case errors.Is(err, leave.ErrLeaveTypeInUse):
		Conflict(w, "Leave type is referenced by existing requests or quotas")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestNotPending):
		Conflict(w, "Leave request is no longer pending")
	case errors.Is(err, leave.ErrRequestTerminal):
		Conflict(w, "Leave request is already in a terminal state")
	case errors.Is(err, leave.ErrRequestNotOwned):
		Forbidden(w, "Leave request belongs to another employee")
	case errors.Is(err, leave.ErrCancelApprovedOff):
		Forbidden(w, "Cancelling an approved leave request is disabled")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An active leave request already covers part of this range")
	case errors.Is(err, leave.ErrApproveOwnRequest):
		Forbidden(w, "Cannot approve or reject your own leave request")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
