package attendance

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-backend-go/internal/domain/policy"
)

type attendanceServiceImpl struct {
	recordRepo  attendance.TimeRecordRepository
	policyRepo  policy.PolicyRepository
	holidayRepo policy.HolidayRepository
	requestRepo leave.LeaveRequestRepository

	now func() time.Time
}

func NewAttendanceService(
	recordRepo attendance.TimeRecordRepository,
	policyRepo policy.PolicyRepository,
	holidayRepo policy.HolidayRepository,
	requestRepo leave.LeaveRequestRepository,
	clock func() time.Time,
) attendance.AttendanceService {
	if clock == nil {
		clock = time.Now
	}
	return &attendanceServiceImpl{
		recordRepo:  recordRepo,
		policyRepo:  policyRepo,
		holidayRepo: holidayRepo,
		requestRepo: requestRepo,
		now:         clock,
	}
}

// workday resolves the current instant and calendar date in the policy
// timezone. The date is normalized to midnight UTC so it maps onto a
// SQL date column.
func (s *attendanceServiceImpl) workday(p policy.AttendancePolicy) (time.Time, time.Time, *time.Location, error) {
	loc, err := p.Location()
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("resolve policy timezone: %w", err)
	}
	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return now, today, loc, nil
}

// leaveDurationToday returns the duration tag of an approved leave
// covering today, or empty when there is none.
func (s *attendanceServiceImpl) leaveDurationToday(ctx context.Context, employeeID string, today time.Time) (leave.LeaveDuration, error) {
	requests, err := s.requestRepo.FindApprovedCovering(ctx, employeeID, today)
	if err != nil {
		return "", err
	}
	if len(requests) == 0 {
		return "", nil
	}
	// Overlapping approved requests are prevented at submission, so the
	// first match governs the day.
	return requests[0].DurationOn(today), nil
}

// CheckIn implements attendance.AttendanceService.
func (s *attendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.TimeRecord, error) {
	p, err := s.policyRepo.Get(ctx)
	if err != nil {
		return attendance.TimeRecord{}, err
	}
	now, today, loc, err := s.workday(p)
	if err != nil {
		return attendance.TimeRecord{}, err
	}

	// Report the duplicate before any holiday or leave conflict. The
	// unique index on (employee_id, work_date) still backstops two
	// racing first check-ins at the insert below.
	if _, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, today); err == nil {
		return attendance.TimeRecord{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.TimeRecord{}, err
	}

	isHoliday, err := s.holidayRepo.ExistsOnDate(ctx, today)
	if err != nil {
		return attendance.TimeRecord{}, err
	}
	if isHoliday {
		return attendance.TimeRecord{}, attendance.ErrHolidayBlocked
	}

	duration, err := s.leaveDurationToday(ctx, employeeID, today)
	if err != nil {
		return attendance.TimeRecord{}, err
	}

	// Lateness is measured against the scheduled start, unless a
	// morning half-day leave shifts the workday to begin after break.
	latenessTarget := p.StartTime
	switch duration {
	case leave.DurationFull:
		return attendance.TimeRecord{}, attendance.ErrFullDayLeaveConflict
	case leave.DurationHalfMorning:
		if now.Before(p.BreakStartTime.On(today, loc)) {
			return attendance.TimeRecord{}, attendance.ErrTooEarlyMorningLeave
		}
		latenessTarget = p.BreakEndTime
	}

	deadline := latenessTarget.On(today, loc).Add(time.Duration(p.GraceMinutes) * time.Minute)
	isLate := now.After(deadline)

	return s.recordRepo.Create(ctx, attendance.TimeRecord{
		EmployeeID:  employeeID,
		WorkDate:    today,
		CheckInTime: now,
		IsLate:      isLate,
	})
}

// CheckOut implements attendance.AttendanceService.
func (s *attendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.TimeRecord, error) {
	p, err := s.policyRepo.Get(ctx)
	if err != nil {
		return attendance.TimeRecord{}, err
	}
	now, today, loc, err := s.workday(p)
	if err != nil {
		return attendance.TimeRecord{}, err
	}

	rec, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.TimeRecord{}, attendance.ErrNoCheckInFound
		}
		return attendance.TimeRecord{}, err
	}
	if rec.CheckOutTime != nil {
		return attendance.TimeRecord{}, attendance.ErrAlreadyCheckedOut
	}

	duration, err := s.leaveDurationToday(ctx, employeeID, today)
	if err != nil {
		return attendance.TimeRecord{}, err
	}

	earliestExit := p.EndTime
	leaveAdjusted := false
	if duration == leave.DurationHalfAfternoon {
		earliestExit = p.BreakStartTime
		leaveAdjusted = true
	}
	threshold := earliestExit.On(today, loc)
	if now.Before(threshold) {
		return attendance.TimeRecord{}, &attendance.EarlyCheckOutError{
			Threshold:     threshold,
			LeaveAdjusted: leaveAdjusted,
		}
	}

	if now.Before(rec.CheckInTime) {
		return attendance.TimeRecord{}, attendance.ErrOutOfOrderTimestamps
	}

	return s.recordRepo.SetCheckOut(ctx, rec.ID, now)
}

// Today implements attendance.AttendanceService.
func (s *attendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.TimeRecord, error) {
	p, err := s.policyRepo.Get(ctx)
	if err != nil {
		return attendance.TimeRecord{}, err
	}
	_, today, _, err := s.workday(p)
	if err != nil {
		return attendance.TimeRecord{}, err
	}
	return s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, today)
}

// ListMy implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ListMy(ctx context.Context, employeeID string, q attendance.RangeQuery) ([]attendance.TimeRecord, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	start, end := q.Bounds()
	return s.recordRepo.List(ctx, attendance.ListFilter{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	})
}

// ListAll implements attendance.AttendanceService. employeeID narrows
// the listing when non-empty.
func (s *attendanceServiceImpl) ListAll(ctx context.Context, employeeID string, q attendance.RangeQuery) ([]attendance.TimeRecord, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	start, end := q.Bounds()
	return s.recordRepo.List(ctx, attendance.ListFilter{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	})
}

// LateSummary implements attendance.AttendanceService. The range
// defaults to the current month in the policy timezone.
func (s *attendanceServiceImpl) LateSummary(ctx context.Context, q attendance.RangeQuery, minLateCount int) ([]attendance.LateSummaryRow, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	start, end, err := s.rangeOrCurrentMonth(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.recordRepo.LateSummary(ctx, start, end, minLateCount)
}

// ExportCSV implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ExportCSV(ctx context.Context, w io.Writer, q attendance.RangeQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}

	start, end, err := s.rangeOrCurrentMonth(ctx, q)
	if err != nil {
		return err
	}
	records, err := s.recordRepo.List(ctx, attendance.ListFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"employee", "work_date", "check_in", "check_out", "late"}); err != nil {
		return err
	}
	for _, rec := range records {
		name := rec.EmployeeID
		if rec.EmployeeName != nil {
			name = *rec.EmployeeName
		}
		checkOut := ""
		if rec.CheckOutTime != nil {
			checkOut = rec.CheckOutTime.Format(time.RFC3339)
		}
		late := "no"
		if rec.IsLate {
			late = "yes"
		}
		if err := cw.Write([]string{
			name,
			rec.WorkDate.Format("2006-01-02"),
			rec.CheckInTime.Format(time.RFC3339),
			checkOut,
			late,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *attendanceServiceImpl) rangeOrCurrentMonth(ctx context.Context, q attendance.RangeQuery) (time.Time, time.Time, error) {
	start, end := q.Bounds()
	if start != nil && end != nil {
		return *start, *end, nil
	}

	p, err := s.policyRepo.Get(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	_, today, _, err := s.workday(p)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	if start == nil {
		start = &monthStart
	}
	if end == nil {
		end = &monthEnd
	}
	return *start, *end, nil
}
