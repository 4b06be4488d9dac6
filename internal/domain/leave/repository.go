package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveTypeRepository - interface for leave type persistence
type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, lt LeaveType) (LeaveType, error)
	Delete(ctx context.Context, id string) error
}

// LeaveQuotaRepository - interface for quota ledger persistence
type LeaveQuotaRepository interface {
	Create(ctx context.Context, q LeaveQuota) (LeaveQuota, error)
	GetByID(ctx context.Context, id string) (LeaveQuota, error)

	// GetForUpdate loads the (employee, leave type, year) row with a
	// row lock when called inside a transaction. Returns
	// ErrNoQuotaAssigned when the row does not exist.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveQuota, error)

	Get(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveQuota, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveQuota, error)
	List(ctx context.Context, year int) ([]LeaveQuota, error)

	UpdateTotalDays(ctx context.Context, id string, totalDays decimal.Decimal) (LeaveQuota, error)
	UpdateUsedDays(ctx context.Context, id string, usedDays decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

// LeaveRequestFilter narrows request listings.
type LeaveRequestFilter struct {
	EmployeeID string
	Status     LeaveRequestStatus
	Year       int
}

// LeaveRequestRepository - interface for leave request persistence
type LeaveRequestRepository interface {
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// TransitionStatus flips the row to the new status only while it is
	// still in the expected one. Returns ErrRequestNotPending when the
	// guard matched no row, so a concurrent decision already won.
	TransitionStatus(ctx context.Context, id string, from, to LeaveRequestStatus, approvedBy *string, approvalDate *time.Time) error

	// FindApprovedCovering returns approved requests of the employee
	// whose date span includes the given calendar day.
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]LeaveRequest, error)

	// HasActiveOverlap reports whether a pending or approved request of
	// the employee intersects [start, end], excluding excludeID.
	HasActiveOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)
}
