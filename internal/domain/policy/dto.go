package policy

import (
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/validator"
)

var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

type UpdatePolicyRequest struct {
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	BreakStartTime string   `json:"break_start_time"`
	BreakEndTime   string   `json:"break_end_time"`
	GraceMinutes   int      `json:"grace_minutes"`
	WorkingDays    []string `json:"working_days"`
	Timezone       string   `json:"timezone"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]string{
		"start_time":       r.StartTime,
		"end_time":         r.EndTime,
		"break_start_time": r.BreakStartTime,
		"break_end_time":   r.BreakEndTime,
	} {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		} else if !validator.IsValidTimeOfDay(value) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid HH:MM or HH:MM:SS time",
			})
		}
	}

	if r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if len(r.WorkingDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: "working_days is required",
		})
	}
	for _, d := range r.WorkingDays {
		if !validator.IsInSlice(d, weekdayNames) {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "working_days contains an unknown weekday: " + d,
			})
		}
	}

	if validator.IsEmpty(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone is required",
		})
	} else if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToPolicy converts a validated request into the entity. Call Validate
// first; parse errors here only surface for unvalidated input.
func (r *UpdatePolicyRequest) ToPolicy() (AttendancePolicy, error) {
	var p AttendancePolicy
	var err error

	if p.StartTime, err = ParseTimeOfDay(r.StartTime); err != nil {
		return AttendancePolicy{}, err
	}
	if p.EndTime, err = ParseTimeOfDay(r.EndTime); err != nil {
		return AttendancePolicy{}, err
	}
	if p.BreakStartTime, err = ParseTimeOfDay(r.BreakStartTime); err != nil {
		return AttendancePolicy{}, err
	}
	if p.BreakEndTime, err = ParseTimeOfDay(r.BreakEndTime); err != nil {
		return AttendancePolicy{}, err
	}
	p.GraceMinutes = r.GraceMinutes
	p.WorkingDays = r.WorkingDays
	p.Timezone = r.Timezone
	return p, nil
}

type PolicyResponse struct {
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	BreakStartTime string   `json:"break_start_time"`
	BreakEndTime   string   `json:"break_end_time"`
	GraceMinutes   int      `json:"grace_minutes"`
	WorkingDays    []string `json:"working_days"`
	Timezone       string   `json:"timezone"`
}

func ToPolicyResponse(p AttendancePolicy) PolicyResponse {
	return PolicyResponse{
		StartTime:      p.StartTime.String(),
		EndTime:        p.EndTime.String(),
		BreakStartTime: p.BreakStartTime.String(),
		BreakEndTime:   p.BreakEndTime.String(),
		GraceMinutes:   p.GraceMinutes,
		WorkingDays:    p.WorkingDays,
		Timezone:       p.Timezone,
	}
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"holiday_date"`
	Name string `json:"holiday_name"`
}

func ToHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}

func ToHolidayResponses(hs []Holiday) []HolidayResponse {
	out := make([]HolidayResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, ToHolidayResponse(h))
	}
	return out
}

type CreateHolidayRequest struct {
	Date string `json:"holiday_date"`
	Name string `json:"holiday_name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_date",
			Message: "holiday_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_date",
			Message: "holiday_date must be a valid YYYY-MM-DD date",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_name",
			Message: "holiday_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
