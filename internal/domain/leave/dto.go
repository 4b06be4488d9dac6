package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/validator"
)

var durationValues = []string{
	string(DurationFull), string(DurationHalfMorning), string(DurationHalfAfternoon),
}

// CalculateDaysRequest previews the day count for a date range before a
// request is submitted.
type CalculateDaysRequest struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartDuration string `json:"start_duration"`
	EndDuration   string `json:"end_duration"`
}

func validateDateRange(errs validator.ValidationErrors, startDate, endDate, startDuration, endDuration string) validator.ValidationErrors {
	for field, value := range map[string]string{
		"start_date": startDate,
		"end_date":   endDate,
	} {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		} else if _, ok := validator.IsValidDate(value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid YYYY-MM-DD date",
			})
		}
	}

	for field, value := range map[string]string{
		"start_duration": startDuration,
		"end_duration":   endDuration,
	} {
		if !validator.IsEmpty(value) && !validator.IsInSlice(value, durationValues) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be one of full, half_morning, half_afternoon",
			})
		}
	}

	return errs
}

func (r *CalculateDaysRequest) Validate() error {
	errs := validateDateRange(nil, r.StartDate, r.EndDate, r.StartDuration, r.EndDuration)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Durations returns the boundary tags, defaulting blanks to full days.
func (r *CalculateDaysRequest) Durations() (LeaveDuration, LeaveDuration) {
	start, end := LeaveDuration(r.StartDuration), LeaveDuration(r.EndDuration)
	if start == "" {
		start = DurationFull
	}
	if end == "" {
		end = DurationFull
	}
	return start, end
}

type CalculateDaysResponse struct {
	TotalDays decimal.Decimal `json:"total_days"`
}

// CreateLeaveRequestRequest submits a new leave request.
type CreateLeaveRequestRequest struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	StartDuration string  `json:"start_duration"`
	EndDuration   string  `json:"end_duration"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	errs = validateDateRange(errs, r.StartDate, r.EndDate, r.StartDuration, r.EndDuration)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateLeaveRequestRequest) Durations() (LeaveDuration, LeaveDuration) {
	c := CalculateDaysRequest{StartDuration: r.StartDuration, EndDuration: r.EndDuration}
	return c.Durations()
}

// ApprovalRequest decides a pending leave request.
type ApprovalRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

func (r *ApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateLeaveTypeRequest creates a leave type.
type CreateLeaveTypeRequest struct {
	Name   string `json:"name"`
	IsPaid *bool  `json:"is_paid"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.IsPaid == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "is_paid",
			Message: "is_paid is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLeaveTypeRequest updates a leave type's name or paid flag.
type UpdateLeaveTypeRequest struct {
	Name   string `json:"name"`
	IsPaid *bool  `json:"is_paid"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) && r.IsPaid == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "at least one of name or is_paid must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateQuotaRequest assigns a yearly quota to an employee.
type CreateQuotaRequest struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Year        int             `json:"year"`
	TotalDays   decimal.Decimal `json:"total_days"`
}

func (r *CreateQuotaRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a plausible calendar year",
		})
	}
	if r.TotalDays.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateQuotaRequest adjusts the allotment of an existing quota.
type UpdateQuotaRequest struct {
	TotalDays decimal.Decimal `json:"total_days"`
}

func (r *UpdateQuotaRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TotalDays.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsPaid    bool      `json:"is_paid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:        lt.ID,
		Name:      lt.Name,
		IsPaid:    lt.IsPaid,
		CreatedAt: lt.CreatedAt,
		UpdatedAt: lt.UpdatedAt,
	}
}

type QuotaResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName *string         `json:"leave_type_name,omitempty"`
	Year          int             `json:"year"`
	TotalDays     decimal.Decimal `json:"total_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	AvailableDays decimal.Decimal `json:"available_days"`
}

func ToQuotaResponse(q LeaveQuota) QuotaResponse {
	return QuotaResponse{
		ID:            q.ID,
		EmployeeID:    q.EmployeeID,
		EmployeeName:  q.EmployeeName,
		LeaveTypeID:   q.LeaveTypeID,
		LeaveTypeName: q.LeaveTypeName,
		Year:          q.Year,
		TotalDays:     q.TotalDays,
		UsedDays:      q.UsedDays,
		AvailableDays: q.Available(),
	}
}

type LeaveRequestResponse struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employee_id"`
	EmployeeName  *string            `json:"employee_name,omitempty"`
	LeaveTypeID   string             `json:"leave_type_id"`
	LeaveTypeName *string            `json:"leave_type_name,omitempty"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	StartDuration LeaveDuration      `json:"start_duration"`
	EndDuration   LeaveDuration      `json:"end_duration"`
	TotalDays     decimal.Decimal    `json:"total_days"`
	Reason        string             `json:"reason"`
	AttachmentURL *string            `json:"attachment_url,omitempty"`
	Status        LeaveRequestStatus `json:"status"`
	ApprovedBy    *string            `json:"approved_by,omitempty"`
	ApprovalDate  *time.Time         `json:"approval_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func ToLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		StartDuration: r.StartDuration,
		EndDuration:   r.EndDuration,
		TotalDays:     r.TotalDays,
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
		Status:        r.Status,
		ApprovedBy:    r.ApprovedBy,
		ApprovalDate:  r.ApprovalDate,
		CreatedAt:     r.CreatedAt,
	}
}

func ToLeaveRequestResponses(rs []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToLeaveRequestResponse(r))
	}
	return out
}
