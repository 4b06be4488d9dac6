package attendance

import (
	"time"

	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/validator"
)

type TimeRecordResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	WorkDate     string     `json:"work_date"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	IsLate       bool       `json:"is_late"`
}

func ToTimeRecordResponse(r TimeRecord) TimeRecordResponse {
	return TimeRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		WorkDate:     r.WorkDate.Format("2006-01-02"),
		CheckInTime:  r.CheckInTime,
		CheckOutTime: r.CheckOutTime,
		IsLate:       r.IsLate,
	}
}

func ToTimeRecordResponses(rs []TimeRecord) []TimeRecordResponse {
	out := make([]TimeRecordResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToTimeRecordResponse(r))
	}
	return out
}

type LateSummaryResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	LateCount    int    `json:"late_count"`
}

func ToLateSummaryResponses(rows []LateSummaryRow) []LateSummaryResponse {
	out := make([]LateSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, LateSummaryResponse{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			LateCount:    r.LateCount,
		})
	}
	return out
}

// RangeQuery is the parsed start/end query pair shared by listings,
// the late summary and the CSV export.
type RangeQuery struct {
	StartDate string
	EndDate   string
}

func (q *RangeQuery) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]string{
		"start_date": q.StartDate,
		"end_date":   q.EndDate,
	} {
		if validator.IsEmpty(value) {
			continue
		}
		if _, ok := validator.IsValidDate(value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid YYYY-MM-DD date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Bounds returns the parsed range, nil where a side was omitted.
func (q *RangeQuery) Bounds() (*time.Time, *time.Time) {
	var start, end *time.Time
	if t, ok := validator.IsValidDate(q.StartDate); ok {
		start = &t
	}
	if t, ok := validator.IsValidDate(q.EndDate); ok {
		end = &t
	}
	return start, end
}
