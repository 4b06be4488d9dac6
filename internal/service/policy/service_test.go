package policy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/validator"
)

type fakePolicyRepo struct {
	configured bool
	policy     policy.AttendancePolicy
}

func (f *fakePolicyRepo) Get(_ context.Context) (policy.AttendancePolicy, error) {
	if !f.configured {
		return policy.AttendancePolicy{}, policy.ErrPolicyNotConfigured
	}
	return f.policy, nil
}

func (f *fakePolicyRepo) Save(_ context.Context, p policy.AttendancePolicy) error {
	f.configured = true
	f.policy = p
	return nil
}

type fakeHolidayRepo struct {
	holidays map[string]policy.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h policy.Holiday) (policy.Holiday, error) {
	for _, existing := range f.holidays {
		if existing.Date.Equal(h.Date) {
			return policy.Holiday{}, policy.ErrHolidayExists
		}
	}
	h.ID = uuid.NewString()
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) List(_ context.Context) ([]policy.Holiday, error) {
	out := make([]policy.Holiday, 0, len(f.holidays))
	for _, h := range f.holidays {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHolidayRepo) ExistsOnDate(_ context.Context, date time.Time) (bool, error) {
	for _, h := range f.holidays {
		if h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.holidays[id]; !ok {
		return policy.ErrHolidayNotFound
	}
	delete(f.holidays, id)
	return nil
}

type fakeAuditService struct {
	entries []audit.AuditLog
}

func (f *fakeAuditService) Record(_ context.Context, entry audit.AuditLog) {
	f.entries = append(f.entries, entry)
}

func (f *fakeAuditService) List(_ context.Context, _ int) ([]audit.AuditLog, error) {
	return f.entries, nil
}

func validUpdate() policy.UpdatePolicyRequest {
	return policy.UpdatePolicyRequest{
		StartTime:      "09:00",
		EndTime:        "18:00",
		BreakStartTime: "12:00",
		BreakEndTime:   "13:00",
		GraceMinutes:   15,
		WorkingDays:    []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		Timezone:       "Asia/Jakarta",
	}
}

func TestPolicyUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("get before configuration", func(t *testing.T) {
		svc := NewPolicyService(&fakePolicyRepo{}, &fakeHolidayRepo{holidays: map[string]policy.Holiday{}}, &fakeAuditService{})
		_, err := svc.Get(ctx)
		assert.ErrorIs(t, err, policy.ErrPolicyNotConfigured)
	})

	t.Run("update persists and audits", func(t *testing.T) {
		audits := &fakeAuditService{}
		svc := NewPolicyService(&fakePolicyRepo{}, &fakeHolidayRepo{holidays: map[string]policy.Holiday{}}, audits)

		p, err := svc.Update(ctx, "hr-1", validUpdate())
		require.NoError(t, err)
		assert.Equal(t, "09:00:00", p.StartTime.String())
		assert.Equal(t, "13:00:00", p.BreakEndTime.String())
		assert.Equal(t, "Asia/Jakarta", p.Timezone)

		require.Len(t, audits.entries, 1)
		assert.Equal(t, audit.ActionPolicyUpdated, audits.entries[0].Action)
		assert.Equal(t, "hr-1", audits.entries[0].ActorID)
	})

	t.Run("rejects malformed fields", func(t *testing.T) {
		svc := NewPolicyService(&fakePolicyRepo{}, &fakeHolidayRepo{holidays: map[string]policy.Holiday{}}, &fakeAuditService{})

		req := validUpdate()
		req.StartTime = "9 o'clock"
		req.Timezone = "Mars/Olympus"
		req.WorkingDays = []string{"monday", "caturday"}

		_, err := svc.Update(ctx, "hr-1", req)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.ToMap()
		assert.Contains(t, fields, "start_time")
		assert.Contains(t, fields, "timezone")
		assert.Contains(t, fields, "working_days")
	})
}

func TestHolidays(t *testing.T) {
	ctx := context.Background()
	audits := &fakeAuditService{}
	svc := NewPolicyService(&fakePolicyRepo{}, &fakeHolidayRepo{holidays: map[string]policy.Holiday{}}, audits)

	h, err := svc.CreateHoliday(ctx, "hr-1", policy.CreateHolidayRequest{
		Date: "2025-08-17",
		Name: "Independence Day",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "Independence Day", h.Name)

	_, err = svc.CreateHoliday(ctx, "hr-1", policy.CreateHolidayRequest{
		Date: "2025-08-17",
		Name: "Duplicate",
	})
	assert.ErrorIs(t, err, policy.ErrHolidayExists)

	_, err = svc.CreateHoliday(ctx, "hr-1", policy.CreateHolidayRequest{
		Date: "17-08-2025",
		Name: "Bad date",
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	listed, err := svc.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, svc.DeleteHoliday(ctx, "hr-1", h.ID))
	assert.ErrorIs(t, svc.DeleteHoliday(ctx, "hr-1", h.ID), policy.ErrHolidayNotFound)

	listed, err = svc.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
