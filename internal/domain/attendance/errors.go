package attendance

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNoCheckInFound    = errors.New("no check-in found for today")
	ErrRecordNotFound    = errors.New("time record not found")

	ErrHolidayBlocked       = errors.New("check-in is not allowed on a company holiday")
	ErrFullDayLeaveConflict = errors.New("an approved full-day leave covers today")

	ErrTooEarlyMorningLeave = errors.New("check-in before the end of a morning half-day leave")
	ErrTooEarlyToCheckOut   = errors.New("check-out before the earliest allowed time")
	ErrOutOfOrderTimestamps = errors.New("check-out time precedes check-in time")
)

// EarlyCheckOutError rejects a check-out attempted before the earliest
// allowed time and names the threshold that applied. LeaveAdjusted is
// set when an approved afternoon half-day leave moved the threshold
// from the scheduled end of work to the break start.
type EarlyCheckOutError struct {
	Threshold     time.Time
	LeaveAdjusted bool
}

func (e *EarlyCheckOutError) Error() string {
	if e.LeaveAdjusted {
		return fmt.Sprintf("check-out before %s, when the afternoon half-day leave begins", e.Threshold.Format("15:04"))
	}
	return fmt.Sprintf("check-out before the scheduled end of work at %s", e.Threshold.Format("15:04"))
}

func (e *EarlyCheckOutError) Is(target error) bool {
	return target == ErrTooEarlyToCheckOut
}
