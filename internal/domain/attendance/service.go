package attendance

import (
	"context"
	"io"
)

// AttendanceService evaluates check-ins and check-outs against the
// attendance policy, holidays and approved leave.
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string) (TimeRecord, error)
	CheckOut(ctx context.Context, employeeID string) (TimeRecord, error)

	Today(ctx context.Context, employeeID string) (TimeRecord, error)
	ListMy(ctx context.Context, employeeID string, q RangeQuery) ([]TimeRecord, error)
	ListAll(ctx context.Context, employeeID string, q RangeQuery) ([]TimeRecord, error)

	LateSummary(ctx context.Context, q RangeQuery, minLateCount int) ([]LateSummaryRow, error)
	ExportCSV(ctx context.Context, w io.Writer, q RangeQuery) error
}
