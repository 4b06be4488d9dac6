package leave

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
)

// LeaveTypeService manages the leave type catalogue.
type LeaveTypeService interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveType, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]LeaveType, error)
}

// QuotaService is the quota ledger. CheckAvailability is the optimistic
// read used at submission; ApplyQuotaDelta is the authoritative,
// row-locked mutation used inside the approval or cancellation
// transaction.
type QuotaService interface {
	CheckAvailability(ctx context.Context, employeeID, leaveTypeID string, year int, requested decimal.Decimal) error
	ApplyQuotaDelta(ctx context.Context, employeeID, leaveTypeID string, year int, delta decimal.Decimal) error

	Create(ctx context.Context, actorID string, req CreateQuotaRequest) (LeaveQuota, error)
	UpdateTotal(ctx context.Context, actorID, id string, req UpdateQuotaRequest) (LeaveQuota, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, year int) ([]LeaveQuota, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveQuota, error)
}

// RequestService drives the leave request lifecycle.
type RequestService interface {
	CalculateDays(ctx context.Context, req CalculateDaysRequest) (decimal.Decimal, error)
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequest, error)
	Decide(ctx context.Context, id, hrID string, req ApprovalRequest) (LeaveRequest, error)
	Cancel(ctx context.Context, id, actorID string, actorRole employee.Role) (LeaveRequest, error)

	Get(ctx context.Context, id, actorID string, actorRole employee.Role) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
}
