package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
)

var bangkok = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		panic(err)
	}
	return loc
}()

func testPolicy() policy.AttendancePolicy {
	return policy.AttendancePolicy{
		StartTime:      policy.TimeOfDay{Hour: 9},
		EndTime:        policy.TimeOfDay{Hour: 18},
		BreakStartTime: policy.TimeOfDay{Hour: 12},
		BreakEndTime:   policy.TimeOfDay{Hour: 13},
		GraceMinutes:   15,
		WorkingDays:    []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		Timezone:       "Asia/Bangkok",
	}
}

// at returns a clock pinned to the given wall time on 2025-06-02 (a
// Monday) in the policy timezone.
func at(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 2, hour, minute, 0, 0, bangkok)
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakePolicyRepo struct {
	policy policy.AttendancePolicy
	err    error
}

func (r *fakePolicyRepo) Get(_ context.Context) (policy.AttendancePolicy, error) {
	return r.policy, r.err
}

func (r *fakePolicyRepo) Save(_ context.Context, p policy.AttendancePolicy) error {
	r.policy = p
	return nil
}

type fakeHolidayRepo struct {
	dates map[string]bool
}

func (r *fakeHolidayRepo) Create(_ context.Context, h policy.Holiday) (policy.Holiday, error) {
	r.dates[h.Date.Format("2006-01-02")] = true
	return h, nil
}

func (r *fakeHolidayRepo) List(_ context.Context) ([]policy.Holiday, error) { return nil, nil }

func (r *fakeHolidayRepo) ExistsOnDate(_ context.Context, date time.Time) (bool, error) {
	return r.dates[date.Format("2006-01-02")], nil
}

func (r *fakeHolidayRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeRecordRepo struct {
	records map[string]attendance.TimeRecord
	nextID  int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]attendance.TimeRecord)}
}

func recordKey(employeeID string, workDate time.Time) string {
	return employeeID + "/" + workDate.Format("2006-01-02")
}

func (r *fakeRecordRepo) Create(_ context.Context, rec attendance.TimeRecord) (attendance.TimeRecord, error) {
	key := recordKey(rec.EmployeeID, rec.WorkDate)
	if _, ok := r.records[key]; ok {
		return attendance.TimeRecord{}, attendance.ErrAlreadyCheckedIn
	}
	r.nextID++
	rec.ID = fmt.Sprintf("record-%d", r.nextID)
	r.records[key] = rec
	return rec, nil
}

func (r *fakeRecordRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, workDate time.Time) (attendance.TimeRecord, error) {
	rec, ok := r.records[recordKey(employeeID, workDate)]
	if !ok {
		return attendance.TimeRecord{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRecordRepo) SetCheckOut(_ context.Context, id string, checkOut time.Time) (attendance.TimeRecord, error) {
	for key, rec := range r.records {
		if rec.ID != id {
			continue
		}
		if rec.CheckOutTime != nil {
			return attendance.TimeRecord{}, attendance.ErrAlreadyCheckedOut
		}
		rec.CheckOutTime = &checkOut
		r.records[key] = rec
		return rec, nil
	}
	return attendance.TimeRecord{}, attendance.ErrRecordNotFound
}

func (r *fakeRecordRepo) List(_ context.Context, filter attendance.ListFilter) ([]attendance.TimeRecord, error) {
	out := make([]attendance.TimeRecord, 0)
	for _, rec := range r.records {
		if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && rec.WorkDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && rec.WorkDate.After(*filter.EndDate) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRecordRepo) LateSummary(_ context.Context, start, end time.Time, minLateCount int) ([]attendance.LateSummaryRow, error) {
	counts := make(map[string]int)
	for _, rec := range r.records {
		if rec.IsLate && !rec.WorkDate.Before(start) && !rec.WorkDate.After(end) {
			counts[rec.EmployeeID]++
		}
	}
	out := make([]attendance.LateSummaryRow, 0)
	for id, n := range counts {
		if n >= minLateCount {
			out = append(out, attendance.LateSummaryRow{EmployeeID: id, EmployeeName: id, LateCount: n})
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	requests []leave.LeaveRequest
}

func (r *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, _ string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrRequestNotFound
}

func (r *fakeLeaveRepo) List(_ context.Context, _ leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	return r.requests, nil
}

func (r *fakeLeaveRepo) TransitionStatus(_ context.Context, _ string, _, _ leave.LeaveRequestStatus, _ *string, _ *time.Time) error {
	return nil
}

func (r *fakeLeaveRepo) FindApprovedCovering(_ context.Context, employeeID string, date time.Time) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved && req.CoversDate(date) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) HasActiveOverlap(_ context.Context, _ string, _, _ time.Time, _ string) (bool, error) {
	return false, nil
}

type fixture struct {
	svc        attendance.AttendanceService
	recordRepo *fakeRecordRepo
	leaveRepo  *fakeLeaveRepo
	holidays   *fakeHolidayRepo
}

func newFixture(t *testing.T, clock func() time.Time) *fixture {
	t.Helper()
	recordRepo := newFakeRecordRepo()
	leaveRepo := &fakeLeaveRepo{}
	holidays := &fakeHolidayRepo{dates: make(map[string]bool)}
	svc := NewAttendanceService(recordRepo, &fakePolicyRepo{policy: testPolicy()}, holidays, leaveRepo, clock)
	return &fixture{svc: svc, recordRepo: recordRepo, leaveRepo: leaveRepo, holidays: holidays}
}

func approvedLeave(start, end string, startDur, endDur leave.LeaveDuration) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:            "leave-1",
		EmployeeID:    "emp-1",
		LeaveTypeID:   "annual",
		StartDate:     day(start),
		EndDate:       day(end),
		StartDuration: startDur,
		EndDuration:   endDur,
		TotalDays:     decimal.NewFromInt(1),
		Status:        leave.StatusApproved,
	}
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("on time", func(t *testing.T) {
		f := newFixture(t, at(8, 55))

		rec, err := f.svc.CheckIn(ctx, "emp-1")

		require.NoError(t, err)
		assert.False(t, rec.IsLate)
		assert.Equal(t, "2025-06-02", rec.WorkDate.Format("2006-01-02"))
	})

	t.Run("grace period boundary is inclusive", func(t *testing.T) {
		f := newFixture(t, at(9, 15))

		rec, err := f.svc.CheckIn(ctx, "emp-1")

		require.NoError(t, err)
		assert.False(t, rec.IsLate, "exactly start+grace is not late")
	})

	t.Run("one minute past grace is late", func(t *testing.T) {
		f := newFixture(t, at(9, 16))

		rec, err := f.svc.CheckIn(ctx, "emp-1")

		require.NoError(t, err)
		assert.True(t, rec.IsLate)
	})

	t.Run("second check-in rejected", func(t *testing.T) {
		f := newFixture(t, at(9, 0))

		_, err := f.svc.CheckIn(ctx, "emp-1")
		require.NoError(t, err)

		_, err = f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("duplicate wins over a holiday declared after check-in", func(t *testing.T) {
		f := newFixture(t, at(9, 0))

		_, err := f.svc.CheckIn(ctx, "emp-1")
		require.NoError(t, err)

		f.holidays.dates["2025-06-02"] = true
		_, err = f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("duplicate wins over a leave approved after check-in", func(t *testing.T) {
		f := newFixture(t, at(9, 0))

		_, err := f.svc.CheckIn(ctx, "emp-1")
		require.NoError(t, err)

		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationFull, leave.DurationFull),
		}
		_, err = f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("blocked on holidays", func(t *testing.T) {
		f := newFixture(t, at(9, 0))
		f.holidays.dates["2025-06-02"] = true

		_, err := f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrHolidayBlocked)
	})

	t.Run("full day leave blocks attendance", func(t *testing.T) {
		f := newFixture(t, at(9, 0))
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationFull, leave.DurationFull),
		}

		_, err := f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrFullDayLeaveConflict)
	})

	t.Run("interior day of multi-day leave blocks attendance", func(t *testing.T) {
		f := newFixture(t, at(9, 0))
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-01", "2025-06-03", leave.DurationHalfAfternoon, leave.DurationHalfMorning),
		}

		_, err := f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrFullDayLeaveConflict)
	})

	t.Run("symmetric half-day pair blocks attendance", func(t *testing.T) {
		f := newFixture(t, at(9, 0))
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationHalfMorning, leave.DurationHalfAfternoon),
		}

		_, err := f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrFullDayLeaveConflict)
	})

	t.Run("morning leave forbids check-in before break", func(t *testing.T) {
		f := newFixture(t, at(11, 0))
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationHalfMorning, leave.DurationFull),
		}

		_, err := f.svc.CheckIn(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrTooEarlyMorningLeave)
	})

	t.Run("morning leave shifts the lateness target to break end", func(t *testing.T) {
		f := newFixture(t, at(13, 10))
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationHalfMorning, leave.DurationFull),
		}

		rec, err := f.svc.CheckIn(ctx, "emp-1")

		require.NoError(t, err)
		assert.False(t, rec.IsLate, "13:10 is within break end plus grace")
	})

	t.Run("morning leave late after shifted target", func(t *testing.T) {
		f := newFixture(t, at(13, 30))
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationHalfMorning, leave.DurationFull),
		}

		rec, err := f.svc.CheckIn(ctx, "emp-1")

		require.NoError(t, err)
		assert.True(t, rec.IsLate)
	})

	t.Run("afternoon leave does not change the morning check-in", func(t *testing.T) {
		f := newFixture(t, at(8, 50))
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationHalfAfternoon, leave.DurationFull),
		}

		rec, err := f.svc.CheckIn(ctx, "emp-1")

		require.NoError(t, err)
		assert.False(t, rec.IsLate)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()

	checkIn := func(t *testing.T, f *fixture) {
		t.Helper()
		svc := NewAttendanceService(f.recordRepo, &fakePolicyRepo{policy: testPolicy()}, f.holidays, f.leaveRepo, at(9, 0))
		_, err := svc.CheckIn(ctx, "emp-1")
		require.NoError(t, err)
	}

	t.Run("after end of day", func(t *testing.T) {
		f := newFixture(t, at(18, 5))
		checkIn(t, f)

		rec, err := f.svc.CheckOut(ctx, "emp-1")

		require.NoError(t, err)
		require.NotNil(t, rec.CheckOutTime)
	})

	t.Run("without check-in", func(t *testing.T) {
		f := newFixture(t, at(18, 5))

		_, err := f.svc.CheckOut(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrNoCheckInFound)
	})

	t.Run("before end of day names the scheduled end", func(t *testing.T) {
		f := newFixture(t, at(17, 0))
		checkIn(t, f)

		_, err := f.svc.CheckOut(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrTooEarlyToCheckOut)

		var early *attendance.EarlyCheckOutError
		require.ErrorAs(t, err, &early)
		assert.False(t, early.LeaveAdjusted)
		assert.True(t, early.Threshold.Equal(time.Date(2025, 6, 2, 18, 0, 0, 0, bangkok)))
		assert.NotContains(t, err.Error(), "half-day leave")
	})

	t.Run("twice", func(t *testing.T) {
		f := newFixture(t, at(18, 5))
		checkIn(t, f)

		_, err := f.svc.CheckOut(ctx, "emp-1")
		require.NoError(t, err)

		_, err = f.svc.CheckOut(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})

	t.Run("afternoon leave allows leaving at break start", func(t *testing.T) {
		f := newFixture(t, at(12, 30))
		checkIn(t, f)
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationHalfAfternoon, leave.DurationFull),
		}

		rec, err := f.svc.CheckOut(ctx, "emp-1")

		require.NoError(t, err)
		require.NotNil(t, rec.CheckOutTime)
	})

	t.Run("afternoon leave still blocks leaving before break", func(t *testing.T) {
		f := newFixture(t, at(11, 30))
		checkIn(t, f)
		f.leaveRepo.requests = []leave.LeaveRequest{
			approvedLeave("2025-06-02", "2025-06-02", leave.DurationHalfAfternoon, leave.DurationFull),
		}

		_, err := f.svc.CheckOut(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrTooEarlyToCheckOut)

		var early *attendance.EarlyCheckOutError
		require.ErrorAs(t, err, &early)
		assert.True(t, early.LeaveAdjusted)
		assert.True(t, early.Threshold.Equal(time.Date(2025, 6, 2, 12, 0, 0, 0, bangkok)))
		assert.Contains(t, err.Error(), "half-day leave")
	})

	t.Run("early check-out wins over clock skew", func(t *testing.T) {
		f := newFixture(t, at(8, 30))
		checkIn(t, f)

		_, err := f.svc.CheckOut(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrTooEarlyToCheckOut)
	})

	t.Run("clock behind check-in", func(t *testing.T) {
		f := newFixture(t, at(18, 10))
		f.recordRepo.records[recordKey("emp-1", day("2025-06-02"))] = attendance.TimeRecord{
			ID:          "record-skew",
			EmployeeID:  "emp-1",
			WorkDate:    day("2025-06-02"),
			CheckInTime: time.Date(2025, 6, 2, 18, 30, 0, 0, bangkok),
		}

		_, err := f.svc.CheckOut(ctx, "emp-1")
		assert.ErrorIs(t, err, attendance.ErrOutOfOrderTimestamps)
	})
}

func TestLateSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, at(10, 0))

	for i, emp := range []string{"emp-1", "emp-1", "emp-2"} {
		f.recordRepo.records[fmt.Sprintf("%s/2025-06-%02d", emp, i+2)] = attendance.TimeRecord{
			ID:         fmt.Sprintf("seed-%d", i),
			EmployeeID: emp,
			WorkDate:   day(fmt.Sprintf("2025-06-%02d", i+2)),
			IsLate:     true,
		}
	}

	rows, err := f.svc.LateSummary(ctx, attendance.RangeQuery{
		StartDate: "2025-06-01", EndDate: "2025-06-30",
	}, 2)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)
	assert.Equal(t, 2, rows[0].LateCount)
}
