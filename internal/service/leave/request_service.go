package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/notification"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type requestServiceImpl struct {
	tx database.TxRunner

	requestRepo  leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository

	quotaService        leave.QuotaService
	notificationService notification.NotificationService
	auditService        audit.AuditService

	// allowCancelApproved gates the Approved -> Cancelled transition.
	allowCancelApproved bool
}

func NewRequestService(
	tx database.TxRunner,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	quotaService leave.QuotaService,
	notificationService notification.NotificationService,
	auditService audit.AuditService,
	allowCancelApproved bool,
) leave.RequestService {
	return &requestServiceImpl{
		tx:                  tx,
		requestRepo:         requestRepo,
		employeeRepo:        employeeRepo,
		quotaService:        quotaService,
		notificationService: notificationService,
		auditService:        auditService,
		allowCancelApproved: allowCancelApproved,
	}
}

// CalculateDays implements leave.RequestService. Pure preview, no
// persistence is touched.
func (s *requestServiceImpl) CalculateDays(ctx context.Context, req leave.CalculateDaysRequest) (decimal.Decimal, error) {
	if err := req.Validate(); err != nil {
		return decimal.Zero, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	startDur, endDur := req.Durations()

	return CalculateTotalDays(start, end, startDur, endDur)
}

// Submit implements leave.RequestService. The availability check here
// is optimistic: no quota is reserved, two pending requests can both
// pass it against the same balance. Approval is the authoritative gate.
func (s *requestServiceImpl) Submit(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	startDur, endDur := req.Durations()

	totalDays, err := CalculateTotalDays(start, end, startDur, endDur)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	overlap, err := s.requestRepo.HasActiveOverlap(ctx, employeeID, start, end, "")
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if overlap {
		return leave.LeaveRequest{}, leave.ErrOverlappingRequest
	}

	if err := s.quotaService.CheckAvailability(ctx, employeeID, req.LeaveTypeID, start.Year(), totalDays); err != nil {
		return leave.LeaveRequest{}, err
	}

	created, err := s.requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:    employeeID,
		LeaveTypeID:   req.LeaveTypeID,
		StartDate:     start,
		EndDate:       end,
		StartDuration: startDur,
		EndDuration:   endDur,
		TotalDays:     totalDays,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyHR(ctx, created)
	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    employeeID,
		Action:     audit.ActionLeaveSubmitted,
		EntityType: "leave_request",
		EntityID:   created.ID,
		Detail: map[string]any{
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
			"total_days": totalDays.StringFixed(2),
		},
	})

	return created, nil
}

// Decide implements leave.RequestService. Approval re-validates
// availability inside the transaction that flips the status: the
// conditional update guards against a double decision, the row-locked
// quota debit guards against two approvals draining the same balance.
func (s *requestServiceImpl) Decide(ctx context.Context, id, hrID string, req leave.ApprovalRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.EmployeeID == hrID {
		return leave.LeaveRequest{}, leave.ErrApproveOwnRequest
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrRequestNotPending
	}

	now := time.Now()
	target := leave.LeaveRequestStatus(req.Status)

	err = s.tx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.TransitionStatus(txCtx, id, leave.StatusPending, target, &hrID, &now); err != nil {
			return err
		}
		if target == leave.StatusApproved {
			return s.quotaService.ApplyQuotaDelta(txCtx,
				request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.TotalDays)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	decided, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDecision(decided, req.Note)
	action := audit.ActionLeaveApproved
	if target == leave.StatusRejected {
		action = audit.ActionLeaveRejected
	}
	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    hrID,
		Action:     action,
		EntityType: "leave_request",
		EntityID:   decided.ID,
		Detail: map[string]any{
			"status": string(decided.Status),
			"note":   req.Note,
		},
	})

	return decided, nil
}

// Cancel implements leave.RequestService. Cancelling a pending request
// has no quota effect; cancelling an approved one returns the days in
// the same transaction that flips the status.
func (s *requestServiceImpl) Cancel(ctx context.Context, id, actorID string, actorRole employee.Role) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if actorRole != employee.RoleHR && request.EmployeeID != actorID {
		return leave.LeaveRequest{}, leave.ErrRequestNotOwned
	}
	if request.Status.Terminal() {
		return leave.LeaveRequest{}, leave.ErrRequestTerminal
	}

	switch request.Status {
	case leave.StatusPending:
		if err := s.requestRepo.TransitionStatus(ctx, id, leave.StatusPending, leave.StatusCancelled, nil, nil); err != nil {
			return leave.LeaveRequest{}, err
		}

	case leave.StatusApproved:
		if !s.allowCancelApproved {
			return leave.LeaveRequest{}, leave.ErrCancelApprovedOff
		}
		err = s.tx(ctx, func(txCtx context.Context) error {
			if err := s.requestRepo.TransitionStatus(txCtx, id, leave.StatusApproved, leave.StatusCancelled, nil, nil); err != nil {
				return err
			}
			return s.quotaService.ApplyQuotaDelta(txCtx,
				request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.TotalDays.Neg())
		})
		if err != nil {
			if errors.Is(err, leave.ErrRequestNotPending) {
				return leave.LeaveRequest{}, leave.ErrRequestTerminal
			}
			return leave.LeaveRequest{}, err
		}

	default:
		return leave.LeaveRequest{}, leave.ErrRequestTerminal
	}

	cancelled, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notificationService.Notify(notification.Notification{
		EmployeeID: cancelled.EmployeeID,
		Type:       notification.TypeLeaveCancelled,
		Title:      "Leave request cancelled",
		Message: fmt.Sprintf("Your leave request from %s to %s has been cancelled.",
			cancelled.StartDate.Format("2006-01-02"), cancelled.EndDate.Format("2006-01-02")),
	})
	s.auditService.Record(ctx, audit.AuditLog{
		ActorID:    actorID,
		Action:     audit.ActionLeaveCancelled,
		EntityType: "leave_request",
		EntityID:   cancelled.ID,
		Detail: map[string]any{
			"previous_status": string(request.Status),
		},
	})

	return cancelled, nil
}

// Get implements leave.RequestService. Workers can only read their own
// requests.
func (s *requestServiceImpl) Get(ctx context.Context, id, actorID string, actorRole employee.Role) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if actorRole != employee.RoleHR && request.EmployeeID != actorID {
		return leave.LeaveRequest{}, leave.ErrRequestNotOwned
	}
	return request, nil
}

// List implements leave.RequestService.
func (s *requestServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	return s.requestRepo.List(ctx, filter)
}

func (s *requestServiceImpl) notifyHR(ctx context.Context, request leave.LeaveRequest) {
	staff, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return
	}
	for _, e := range staff {
		if e.Role != employee.RoleHR {
			continue
		}
		s.notificationService.Notify(notification.Notification{
			EmployeeID: e.ID,
			Type:       notification.TypeLeaveSubmitted,
			Title:      "New leave request",
			Message: fmt.Sprintf("A leave request from %s to %s is waiting for review.",
				request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")),
		})
	}
}

func (s *requestServiceImpl) notifyDecision(request leave.LeaveRequest, note string) {
	title := "Leave request approved"
	typ := notification.TypeLeaveApproved
	message := fmt.Sprintf("Your leave request from %s to %s has been approved.",
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))

	if request.Status == leave.StatusRejected {
		title = "Leave request rejected"
		typ = notification.TypeLeaveRejected
		message = fmt.Sprintf("Your leave request from %s to %s has been rejected.",
			request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))
		if note != "" {
			message += " Note: " + note
		}
	}

	s.notificationService.Notify(notification.Notification{
		EmployeeID: request.EmployeeID,
		Type:       typ,
		Title:      title,
		Message:    message,
	})
}
