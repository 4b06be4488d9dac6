package policy

import (
	"context"
	"time"
)

// PolicyRepository - interface for the attendance_policy singleton row
type PolicyRepository interface {
	Get(ctx context.Context) (AttendancePolicy, error)
	Save(ctx context.Context, p AttendancePolicy) error
}

// HolidayRepository - interface for the holidays table
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}
