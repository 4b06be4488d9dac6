package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/notification"
)

// passTx runs the unit of work without a real transaction.
func passTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTypeRepo struct {
	types map[string]leave.LeaveType
}

func newFakeTypeRepo(types ...leave.LeaveType) *fakeTypeRepo {
	r := &fakeTypeRepo{types: make(map[string]leave.LeaveType)}
	for _, lt := range types {
		r.types[lt.ID] = lt
	}
	return r
}

func (r *fakeTypeRepo) Create(_ context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	lt.ID = fmt.Sprintf("type-%d", len(r.types)+1)
	r.types[lt.ID] = lt
	return lt, nil
}

func (r *fakeTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	lt, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *fakeTypeRepo) List(_ context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(r.types))
	for _, lt := range r.types {
		out = append(out, lt)
	}
	return out, nil
}

func (r *fakeTypeRepo) Update(_ context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	if _, ok := r.types[lt.ID]; !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	r.types[lt.ID] = lt
	return lt, nil
}

func (r *fakeTypeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(r.types, id)
	return nil
}

type fakeQuotaRepo struct {
	quotas map[string]leave.LeaveQuota
}

func newFakeQuotaRepo(quotas ...leave.LeaveQuota) *fakeQuotaRepo {
	r := &fakeQuotaRepo{quotas: make(map[string]leave.LeaveQuota)}
	for _, q := range quotas {
		r.quotas[q.ID] = q
	}
	return r
}

func (r *fakeQuotaRepo) Create(_ context.Context, q leave.LeaveQuota) (leave.LeaveQuota, error) {
	for _, existing := range r.quotas {
		if existing.EmployeeID == q.EmployeeID && existing.LeaveTypeID == q.LeaveTypeID && existing.Year == q.Year {
			return leave.LeaveQuota{}, leave.ErrQuotaExists
		}
	}
	q.ID = fmt.Sprintf("quota-%d", len(r.quotas)+1)
	r.quotas[q.ID] = q
	return q, nil
}

func (r *fakeQuotaRepo) GetByID(_ context.Context, id string) (leave.LeaveQuota, error) {
	q, ok := r.quotas[id]
	if !ok {
		return leave.LeaveQuota{}, leave.ErrQuotaNotFound
	}
	return q, nil
}

func (r *fakeQuotaRepo) Get(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveQuota, error) {
	for _, q := range r.quotas {
		if q.EmployeeID == employeeID && q.LeaveTypeID == leaveTypeID && q.Year == year {
			return q, nil
		}
	}
	return leave.LeaveQuota{}, leave.ErrNoQuotaAssigned
}

func (r *fakeQuotaRepo) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveQuota, error) {
	return r.Get(ctx, employeeID, leaveTypeID, year)
}

func (r *fakeQuotaRepo) ListByEmployee(_ context.Context, employeeID string, year int) ([]leave.LeaveQuota, error) {
	out := make([]leave.LeaveQuota, 0)
	for _, q := range r.quotas {
		if q.EmployeeID == employeeID && q.Year == year {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuotaRepo) List(_ context.Context, year int) ([]leave.LeaveQuota, error) {
	out := make([]leave.LeaveQuota, 0)
	for _, q := range r.quotas {
		if q.Year == year {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuotaRepo) UpdateTotalDays(_ context.Context, id string, totalDays decimal.Decimal) (leave.LeaveQuota, error) {
	q, ok := r.quotas[id]
	if !ok {
		return leave.LeaveQuota{}, leave.ErrQuotaNotFound
	}
	q.TotalDays = totalDays
	r.quotas[id] = q
	return q, nil
}

func (r *fakeQuotaRepo) UpdateUsedDays(_ context.Context, id string, usedDays decimal.Decimal) error {
	q, ok := r.quotas[id]
	if !ok {
		return leave.ErrQuotaNotFound
	}
	q.UsedDays = usedDays
	r.quotas[id] = q
	return nil
}

func (r *fakeQuotaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.quotas[id]; !ok {
		return leave.ErrQuotaNotFound
	}
	delete(r.quotas, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	for _, e := range r.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeRequestRepo(requests ...leave.LeaveRequest) *fakeRequestRepo {
	r := &fakeRequestRepo{requests: make(map[string]leave.LeaveRequest)}
	for _, req := range requests {
		r.requests[req.ID] = req
	}
	return r
}

func (r *fakeRequestRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.nextID++
	req.ID = fmt.Sprintf("request-%d", r.nextID)
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.requests {
		if filter.EmployeeID != "" && req.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.Year != 0 && req.StartDate.Year() != filter.Year {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *fakeRequestRepo) TransitionStatus(_ context.Context, id string, from, to leave.LeaveRequestStatus, approvedBy *string, approvalDate *time.Time) error {
	req, ok := r.requests[id]
	if !ok || req.Status != from {
		return leave.ErrRequestNotPending
	}
	req.Status = to
	if approvedBy != nil {
		req.ApprovedBy = approvedBy
	}
	if approvalDate != nil {
		req.ApprovalDate = approvalDate
	}
	r.requests[id] = req
	return nil
}

func (r *fakeRequestRepo) FindApprovedCovering(_ context.Context, employeeID string, date time.Time) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved && req.CoversDate(date) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) HasActiveOverlap(_ context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	for _, req := range r.requests {
		if req.ID == excludeID || req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.StatusPending && req.Status != leave.StatusApproved {
			continue
		}
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotificationService struct {
	sent []notification.Notification
}

func (s *fakeNotificationService) Notify(n notification.Notification) {
	s.sent = append(s.sent, n)
}

func (s *fakeNotificationService) List(_ context.Context, _ string, _ bool) ([]notification.Notification, error) {
	return nil, nil
}

func (s *fakeNotificationService) MarkRead(_ context.Context, _, _ string) error { return nil }
func (s *fakeNotificationService) MarkAllRead(_ context.Context, _ string) error { return nil }
func (s *fakeNotificationService) Shutdown(_ context.Context) error              { return nil }

type fakeAuditService struct {
	entries []audit.AuditLog
}

func (s *fakeAuditService) Record(_ context.Context, entry audit.AuditLog) {
	s.entries = append(s.entries, entry)
}

func (s *fakeAuditService) List(_ context.Context, _ int) ([]audit.AuditLog, error) {
	return s.entries, nil
}
