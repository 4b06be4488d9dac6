package attendance

import (
	"context"
	"time"
)

// ListFilter narrows time record listings.
type ListFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TimeRecordRepository - interface for attendance persistence
type TimeRecordRepository interface {
	// Create inserts the check-in row. A unique violation on
	// (employee_id, work_date) is returned as ErrAlreadyCheckedIn.
	Create(ctx context.Context, r TimeRecord) (TimeRecord, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (TimeRecord, error)

	// SetCheckOut stamps the check-out time on a row that has none
	// yet. Returns ErrAlreadyCheckedOut when the guard matched no row.
	SetCheckOut(ctx context.Context, id string, checkOut time.Time) (TimeRecord, error)

	List(ctx context.Context, filter ListFilter) ([]TimeRecord, error)
	LateSummary(ctx context.Context, start, end time.Time, minLateCount int) ([]LateSummaryRow, error)
}
