package policy

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date, always interpreted in
// the policy timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
		}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// On anchors the wall-clock time onto day's calendar date in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, t.Second, 0, loc)
}

// AttendancePolicy is the single active attendance configuration.
// There is exactly one row; the repository hides how it is keyed.
type AttendancePolicy struct {
	StartTime      TimeOfDay
	EndTime        TimeOfDay
	BreakStartTime TimeOfDay
	BreakEndTime   TimeOfDay
	GraceMinutes   int
	WorkingDays    []string
	Timezone       string

	UpdatedAt time.Time
}

// Location resolves the policy timezone. All work-date derivations and
// time-of-day comparisons happen in this location, never in server-local
// time.
func (p AttendancePolicy) Location() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}

// Holiday is one company holiday; check-ins are blocked on these dates.
type Holiday struct {
	ID   string
	Date time.Time
	Name string

	CreatedAt time.Time
}
