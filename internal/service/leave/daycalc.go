package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/leave"
)

var (
	half = decimal.NewFromFloat(0.5)
	one  = decimal.NewFromInt(1)
)

// CalculateTotalDays computes the chargeable day count for a leave
// range. Dates are compared as calendar days; any time-of-day on the
// inputs is ignored.
//
// A single-day request is governed by its start duration alone: a
// half-day tag makes it 0.5, anything else 1.0. A multi-day request
// starts from the inclusive day count and sheds 0.5 for each boundary
// carrying a half-day tag.
func CalculateTotalDays(startDate, endDate time.Time, startDur, endDur leave.LeaveDuration) (decimal.Decimal, error) {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	if end.Before(start) {
		return decimal.Zero, leave.ErrInvalidDateRange
	}

	wholeDays := int64(end.Sub(start).Hours()/24) + 1
	total := decimal.NewFromInt(wholeDays)

	if wholeDays == 1 {
		if startDur.IsHalf() {
			total = half
		} else {
			total = one
		}
	} else {
		if startDur.IsHalf() {
			total = total.Sub(half)
		}
		if endDur.IsHalf() {
			total = total.Sub(half)
		}
	}

	total = total.Round(2)
	if !total.IsPositive() {
		return decimal.Zero, leave.ErrNonPositiveDays
	}
	return total, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
