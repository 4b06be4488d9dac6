package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
)

type quotaServiceImpl struct {
	quotaRepo    leave.LeaveQuotaRepository
	typeRepo     leave.LeaveTypeRepository
	employeeRepo employee.EmployeeRepository
	auditService audit.AuditService
}

func NewQuotaService(
	quotaRepo leave.LeaveQuotaRepository,
	typeRepo leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
	auditService audit.AuditService,
) leave.QuotaService {
	return &quotaServiceImpl{
		quotaRepo:    quotaRepo,
		typeRepo:     typeRepo,
		employeeRepo: employeeRepo,
		auditService: auditService,
	}
}

// CheckAvailability implements leave.QuotaService. Unpaid leave types
// are unlimited and always pass. For paid types a missing quota row is
// an error, and the requested amount must fit the remaining balance.
func (s *quotaServiceImpl) CheckAvailability(ctx context.Context, employeeID, leaveTypeID string, year int, requested decimal.Decimal) error {
	lt, err := s.typeRepo.GetByID(ctx, leaveTypeID)
	if err != nil {
		return err
	}
	if !lt.IsPaid {
		return nil
	}

	quota, err := s.quotaRepo.Get(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}

	available := quota.Available()
	if requested.GreaterThan(available) {
		return &leave.QuotaExceededError{Available: available, Requested: requested}
	}
	return nil
}

// ApplyQuotaDelta implements leave.QuotaService. Positive deltas debit
// the quota at approval, negative deltas return days when an approved
// request is cancelled. Must run inside the same transaction as the
// request's status change: the FOR UPDATE read serializes racing
// approvals so the availability re-check is authoritative.
func (s *quotaServiceImpl) ApplyQuotaDelta(ctx context.Context, employeeID, leaveTypeID string, year int, delta decimal.Decimal) error {
	lt, err := s.typeRepo.GetByID(ctx, leaveTypeID)
	if err != nil {
		return err
	}
	if !lt.IsPaid {
		return nil
	}

	quota, err := s.quotaRepo.GetForUpdate(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		// No ledger row, nothing to debit or credit. Availability of
		// paid leave is policed by CheckAvailability, not here: a quota
		// deleted after approval must not block the cancel refund.
		if errors.Is(err, leave.ErrNoQuotaAssigned) {
			return nil
		}
		return err
	}

	if delta.IsPositive() {
		available := quota.Available()
		if delta.GreaterThan(available) {
			return &leave.QuotaExceededError{Available: available, Requested: delta}
		}
	}

	newUsed := quota.UsedDays.Add(delta).Round(2)
	if newUsed.IsNegative() {
		return leave.ErrNegativeUsage
	}

	return s.quotaRepo.UpdateUsedDays(ctx, quota.ID, newUsed)
}

// Create implements leave.QuotaService.
func (s *quotaServiceImpl) Create(ctx context.Context, actorID string, req leave.CreateQuotaRequest) (leave.LeaveQuota, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveQuota{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveQuota{}, err
	}
	if _, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveQuota{}, err
	}

	quota, err := s.quotaRepo.Create(ctx, leave.LeaveQuota{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		Year:        req.Year,
		TotalDays:   req.TotalDays.Round(2),
		UsedDays:    decimal.Zero,
	})
	if err != nil {
		return leave.LeaveQuota{}, err
	}

	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    actorID,
		Action:     audit.ActionQuotaCreated,
		EntityType: "leave_quota",
		EntityID:   quota.ID,
		Detail: map[string]any{
			"employee_id":   quota.EmployeeID,
			"leave_type_id": quota.LeaveTypeID,
			"year":          quota.Year,
			"total_days":    quota.TotalDays.StringFixed(2),
		},
	})

	return quota, nil
}

// UpdateTotal implements leave.QuotaService. Only the allotment moves;
// used days are owned by the request lifecycle. Shrinking the allotment
// below what is already used is rejected.
func (s *quotaServiceImpl) UpdateTotal(ctx context.Context, actorID, id string, req leave.UpdateQuotaRequest) (leave.LeaveQuota, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveQuota{}, err
	}

	current, err := s.quotaRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveQuota{}, err
	}
	if req.TotalDays.LessThan(current.UsedDays) {
		return leave.LeaveQuota{}, fmt.Errorf("total_days %s is below already used %s: %w",
			req.TotalDays.StringFixed(2), current.UsedDays.StringFixed(2), leave.ErrNegativeUsage)
	}

	quota, err := s.quotaRepo.UpdateTotalDays(ctx, id, req.TotalDays.Round(2))
	if err != nil {
		return leave.LeaveQuota{}, err
	}

	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    actorID,
		Action:     audit.ActionQuotaUpdated,
		EntityType: "leave_quota",
		EntityID:   quota.ID,
		Detail: map[string]any{
			"total_days": quota.TotalDays.StringFixed(2),
		},
	})

	return quota, nil
}

// Delete implements leave.QuotaService.
func (s *quotaServiceImpl) Delete(ctx context.Context, id string) error {
	return s.quotaRepo.Delete(ctx, id)
}

// List implements leave.QuotaService.
func (s *quotaServiceImpl) List(ctx context.Context, year int) ([]leave.LeaveQuota, error) {
	return s.quotaRepo.List(ctx, year)
}

// ListByEmployee implements leave.QuotaService.
func (s *quotaServiceImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.LeaveQuota, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.quotaRepo.ListByEmployee(ctx, employeeID, year)
}
