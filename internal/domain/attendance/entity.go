package attendance

import "time"

// TimeRecord is one employee's attendance row for one work date. The
// (EmployeeID, WorkDate) pair is unique; the database enforces it so
// racing check-ins collapse to a single row.
type TimeRecord struct {
	ID         string
	EmployeeID string

	// WorkDate is the calendar date in the policy timezone, not the
	// server timezone.
	WorkDate time.Time

	CheckInTime  time.Time
	CheckOutTime *time.Time
	IsLate       bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// LateSummaryRow aggregates lateness per employee over a range.
type LateSummaryRow struct {
	EmployeeID   string
	EmployeeName string
	LateCount    int
}
