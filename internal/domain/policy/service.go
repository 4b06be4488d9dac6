package policy

import "context"

// PolicyService manages the attendance policy and the holiday calendar.
type PolicyService interface {
	Get(ctx context.Context) (AttendancePolicy, error)
	Update(ctx context.Context, actorID string, req UpdatePolicyRequest) (AttendancePolicy, error)

	CreateHoliday(ctx context.Context, actorID string, req CreateHolidayRequest) (Holiday, error)
	ListHolidays(ctx context.Context) ([]Holiday, error)
	DeleteHoliday(ctx context.Context, actorID, id string) error
}
