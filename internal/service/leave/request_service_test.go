package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/notification"
)

type requestFixture struct {
	svc          leave.RequestService
	requestRepo  *fakeRequestRepo
	quotaRepo    *fakeQuotaRepo
	notification *fakeNotificationService
	auditSvc     *fakeAuditService
}

func newRequestFixture(t *testing.T, allowCancelApproved bool, seed ...leave.LeaveRequest) *requestFixture {
	t.Helper()

	typeRepo := newFakeTypeRepo(
		leave.LeaveType{ID: "annual", Name: "Annual Leave", IsPaid: true},
		leave.LeaveType{ID: "unpaid", Name: "Unpaid Leave", IsPaid: false},
	)
	quotaRepo := newFakeQuotaRepo(leave.LeaveQuota{
		ID:          "quota-1",
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		Year:        2025,
		TotalDays:   dec("12"),
		UsedDays:    dec("0"),
	})
	employeeRepo := newFakeEmployeeRepo(
		employee.Employee{ID: "emp-1", FirstName: "Ann", LastName: "Chan", Role: employee.RoleWorker, IsActive: true},
		employee.Employee{ID: "hr-1", FirstName: "Mei", LastName: "Wong", Role: employee.RoleHR, IsActive: true},
	)
	requestRepo := newFakeRequestRepo(seed...)
	notificationSvc := &fakeNotificationService{}
	auditSvc := &fakeAuditService{}

	quotaSvc := NewQuotaService(quotaRepo, typeRepo, employeeRepo, &fakeAuditService{})
	svc := NewRequestService(passTx, requestRepo, employeeRepo, quotaSvc, notificationSvc, auditSvc, allowCancelApproved)

	return &requestFixture{
		svc:          svc,
		requestRepo:  requestRepo,
		quotaRepo:    quotaRepo,
		notification: notificationSvc,
		auditSvc:     auditSvc,
	}
}

func pendingRequest(id string) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:            id,
		EmployeeID:    "emp-1",
		LeaveTypeID:   "annual",
		StartDate:     day("2025-06-02"),
		EndDate:       day("2025-06-04"),
		StartDuration: leave.DurationFull,
		EndDuration:   leave.DurationFull,
		TotalDays:     dec("3"),
		Reason:        "family trip",
		Status:        leave.StatusPending,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending request without touching quota", func(t *testing.T) {
		f := newRequestFixture(t, true)

		created, err := f.svc.Submit(ctx, "emp-1", leave.CreateLeaveRequestRequest{
			LeaveTypeID: "annual",
			StartDate:   "2025-06-02",
			EndDate:     "2025-06-04",
			Reason:      "family trip",
		})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, created.Status)
		assert.True(t, created.TotalDays.Equal(dec("3")))

		q, _ := f.quotaRepo.GetByID(ctx, "quota-1")
		assert.True(t, q.UsedDays.IsZero(), "submission must not debit quota")

		require.Len(t, f.notification.sent, 1)
		assert.Equal(t, "hr-1", f.notification.sent[0].EmployeeID)
	})

	t.Run("defaults blank durations to full days", func(t *testing.T) {
		f := newRequestFixture(t, true)

		created, err := f.svc.Submit(ctx, "emp-1", leave.CreateLeaveRequestRequest{
			LeaveTypeID: "annual",
			StartDate:   "2025-06-02",
			EndDate:     "2025-06-02",
			Reason:      "errand",
		})

		require.NoError(t, err)
		assert.Equal(t, leave.DurationFull, created.StartDuration)
		assert.True(t, created.TotalDays.Equal(dec("1")))
	})

	t.Run("rejects range beyond balance", func(t *testing.T) {
		f := newRequestFixture(t, true)

		_, err := f.svc.Submit(ctx, "emp-1", leave.CreateLeaveRequestRequest{
			LeaveTypeID: "annual",
			StartDate:   "2025-06-02",
			EndDate:     "2025-06-20",
			Reason:      "long trip",
		})
		assert.ErrorIs(t, err, leave.ErrInsufficientQuota)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		f := newRequestFixture(t, true)

		_, err := f.svc.Submit(ctx, "emp-1", leave.CreateLeaveRequestRequest{
			LeaveTypeID: "annual",
			StartDate:   "2025-06-04",
			EndDate:     "2025-06-02",
			Reason:      "oops",
		})
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	})

	t.Run("rejects overlap with active request", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-existing"))

		_, err := f.svc.Submit(ctx, "emp-1", leave.CreateLeaveRequestRequest{
			LeaveTypeID: "annual",
			StartDate:   "2025-06-04",
			EndDate:     "2025-06-06",
			Reason:      "double booked",
		})
		assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
	})

	t.Run("two pending requests can both pass the optimistic check", func(t *testing.T) {
		f := newRequestFixture(t, true)

		_, err := f.svc.Submit(ctx, "emp-1", leave.CreateLeaveRequestRequest{
			LeaveTypeID: "annual", StartDate: "2025-06-02", EndDate: "2025-06-10", Reason: "first",
		})
		require.NoError(t, err)

		_, err = f.svc.Submit(ctx, "emp-1", leave.CreateLeaveRequestRequest{
			LeaveTypeID: "annual", StartDate: "2025-07-01", EndDate: "2025-07-09", Reason: "second",
		})
		require.NoError(t, err, "9+9 > 12 but submission does not reserve quota")
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve debits quota and stamps approver", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		decided, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, decided.Status)
		require.NotNil(t, decided.ApprovedBy)
		assert.Equal(t, "hr-1", *decided.ApprovedBy)
		assert.NotNil(t, decided.ApprovalDate)

		q, _ := f.quotaRepo.GetByID(ctx, "quota-1")
		assert.True(t, q.UsedDays.Equal(dec("3")), "used %s", q.UsedDays)

		require.Len(t, f.notification.sent, 1)
		assert.Equal(t, notification.TypeLeaveApproved, f.notification.sent[0].Type)
	})

	t.Run("reject leaves quota untouched", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		decided, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "rejected", Note: "short staffed"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, decided.Status)

		q, _ := f.quotaRepo.GetByID(ctx, "quota-1")
		assert.True(t, q.UsedDays.IsZero())
	})

	t.Run("double approval fails", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		_, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})
		require.NoError(t, err)

		_, err = f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})
		assert.ErrorIs(t, err, leave.ErrRequestNotPending)

		q, _ := f.quotaRepo.GetByID(ctx, "quota-1")
		assert.True(t, q.UsedDays.Equal(dec("3")), "quota must be debited exactly once")
	})

	t.Run("approval re-checks availability", func(t *testing.T) {
		first := pendingRequest("request-1")
		first.StartDate, first.EndDate = day("2025-06-02"), day("2025-06-10")
		first.TotalDays = dec("9")
		second := pendingRequest("request-2")
		second.StartDate, second.EndDate = day("2025-07-01"), day("2025-07-09")
		second.TotalDays = dec("9")

		f := newRequestFixture(t, true, first, second)

		_, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})
		require.NoError(t, err)

		_, err = f.svc.Decide(ctx, "request-2", "hr-1", leave.ApprovalRequest{Status: "approved"})
		require.ErrorIs(t, err, leave.ErrInsufficientQuota)

		q, _ := f.quotaRepo.GetByID(ctx, "quota-1")
		assert.True(t, q.UsedDays.Equal(dec("9")), "second approval must not drain the balance")
	})

	t.Run("cannot decide own request", func(t *testing.T) {
		req := pendingRequest("request-1")
		req.EmployeeID = "hr-1"
		f := newRequestFixture(t, true, req)

		_, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})
		assert.ErrorIs(t, err, leave.ErrApproveOwnRequest)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("pending cancellation has no quota effect", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		cancelled, err := f.svc.Cancel(ctx, "request-1", "emp-1", employee.RoleWorker)

		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, cancelled.Status)

		q, _ := f.quotaRepo.GetByID(ctx, "quota-1")
		assert.True(t, q.UsedDays.IsZero())
	})

	t.Run("approved cancellation returns the days", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		_, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(ctx, "request-1", "emp-1", employee.RoleWorker)

		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, cancelled.Status)

		q, _ := f.quotaRepo.GetByID(ctx, "quota-1")
		assert.True(t, q.UsedDays.IsZero(), "used %s", q.UsedDays)
	})

	t.Run("approved cancellation survives a deleted quota", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		_, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})
		require.NoError(t, err)

		require.NoError(t, f.quotaRepo.Delete(ctx, "quota-1"))

		cancelled, err := f.svc.Cancel(ctx, "request-1", "emp-1", employee.RoleWorker)

		require.NoError(t, err, "nothing to credit must not block the cancel")
		assert.Equal(t, leave.StatusCancelled, cancelled.Status)
	})

	t.Run("approved cancellation can be disabled", func(t *testing.T) {
		f := newRequestFixture(t, false, pendingRequest("request-1"))

		_, err := f.svc.Decide(ctx, "request-1", "hr-1", leave.ApprovalRequest{Status: "approved"})
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, "request-1", "emp-1", employee.RoleWorker)
		assert.ErrorIs(t, err, leave.ErrCancelApprovedOff)
	})

	t.Run("terminal request cannot be cancelled", func(t *testing.T) {
		req := pendingRequest("request-1")
		req.Status = leave.StatusRejected
		f := newRequestFixture(t, true, req)

		_, err := f.svc.Cancel(ctx, "request-1", "emp-1", employee.RoleWorker)
		assert.ErrorIs(t, err, leave.ErrRequestTerminal)
	})

	t.Run("worker cannot cancel someone else's request", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		_, err := f.svc.Cancel(ctx, "request-1", "emp-2", employee.RoleWorker)
		assert.ErrorIs(t, err, leave.ErrRequestNotOwned)
	})

	t.Run("hr can cancel on behalf of the employee", func(t *testing.T) {
		f := newRequestFixture(t, true, pendingRequest("request-1"))

		cancelled, err := f.svc.Cancel(ctx, "request-1", "hr-1", employee.RoleHR)

		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, cancelled.Status)
	})
}

func TestGetOwnership(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture(t, true, pendingRequest("request-1"))

	_, err := f.svc.Get(ctx, "request-1", "emp-2", employee.RoleWorker)
	assert.ErrorIs(t, err, leave.ErrRequestNotOwned)

	got, err := f.svc.Get(ctx, "request-1", "hr-1", employee.RoleHR)
	require.NoError(t, err)
	assert.Equal(t, "request-1", got.ID)
}

func TestCalculateDaysPreview(t *testing.T) {
	f := newRequestFixture(t, true)

	got, err := f.svc.CalculateDays(context.Background(), leave.CalculateDaysRequest{
		StartDate:     "2025-01-06",
		EndDate:       "2025-01-10",
		StartDuration: "half_afternoon",
	})

	require.NoError(t, err)
	assert.True(t, got.Equal(dec("4.5")), "got %s", got)
}
