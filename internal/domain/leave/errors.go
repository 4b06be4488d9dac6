package leave

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDateRange = errors.New("start date cannot be after end date")
	ErrNonPositiveDays  = errors.New("requested range does not amount to a positive number of leave days")

	ErrNoQuotaAssigned     = errors.New("no leave quota assigned for this leave type")
	ErrInsufficientQuota   = errors.New("insufficient leave quota")
	ErrNegativeUsage       = errors.New("leave quota usage cannot go negative")
	ErrQuotaNotFound       = errors.New("leave quota not found")
	ErrQuotaExists         = errors.New("a quota for this employee, leave type and year already exists")
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveTypeExists     = errors.New("a leave type with this name already exists")
	ErrLeaveTypeInUse      = errors.New("leave type is referenced by existing requests or quotas")
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrRequestNotPending   = errors.New("leave request is no longer pending")
	ErrRequestNotOwned     = errors.New("leave request belongs to another employee")
	ErrRequestTerminal     = errors.New("leave request is already in a terminal state")
	ErrCancelApprovedOff   = errors.New("cancelling an approved leave request is disabled")
	ErrOverlappingRequest  = errors.New("an active leave request already covers part of this range")
	ErrApproveOwnRequest   = errors.New("cannot approve or reject your own leave request")
)

// QuotaExceededError carries the balance snapshot that made the
// request undeniable to explain. It matches ErrInsufficientQuota
// under errors.Is.
type QuotaExceededError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("insufficient leave quota: available %s, requested %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrInsufficientQuota
}
