package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveDuration tags how a boundary day of a request is counted.
type LeaveDuration string

const (
	DurationFull          LeaveDuration = "full"
	DurationHalfMorning   LeaveDuration = "half_morning"
	DurationHalfAfternoon LeaveDuration = "half_afternoon"
)

// IsHalf reports whether the tag counts as half a day.
func (d LeaveDuration) IsHalf() bool {
	return d == DurationHalfMorning || d == DurationHalfAfternoon
}

func (d LeaveDuration) Valid() bool {
	switch d {
	case DurationFull, DurationHalfMorning, DurationHalfAfternoon:
		return true
	}
	return false
}

// LeaveType entity. Unpaid types are unlimited: no quota row is
// required or consulted for them.
type LeaveType struct {
	ID     string
	Name   string
	IsPaid bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveQuota entity, one row per (employee, leave type, year).
// UsedDays is only ever mutated inside the same transaction as the
// leave request status change it belongs to.
type LeaveQuota struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	TotalDays decimal.Decimal
	UsedDays  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// Available returns the balance consulted before approval.
func (q LeaveQuota) Available() decimal.Decimal {
	return q.TotalDays.Sub(q.UsedDays).Round(2)
}

type LeaveRequestStatus string

const (
	StatusPending   LeaveRequestStatus = "pending"
	StatusApproved  LeaveRequestStatus = "approved"
	StatusRejected  LeaveRequestStatus = "rejected"
	StatusCancelled LeaveRequestStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from s.
func (s LeaveRequestStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time

	StartDuration LeaveDuration
	EndDuration   LeaveDuration

	// TotalDays is computed once at submission and frozen; approvals
	// and reversals debit/credit exactly this amount.
	TotalDays decimal.Decimal

	Reason        string
	AttachmentURL *string

	Status       LeaveRequestStatus
	ApprovedBy   *string
	ApprovalDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// CoversDate reports whether date falls inside [StartDate, EndDate],
// comparing calendar days only.
func (r LeaveRequest) CoversDate(date time.Time) bool {
	d := date.Format("2006-01-02")
	return d >= r.StartDate.Format("2006-01-02") && d <= r.EndDate.Format("2006-01-02")
}

// DurationOn returns the duration tag governing one day of the request.
// Interior days of a multi-day span are always full days; boundary days
// carry their own tag. A single-day request is governed by its start
// tag, except the half-morning-to-half-afternoon combination which
// covers the whole day.
func (r LeaveRequest) DurationOn(date time.Time) LeaveDuration {
	d := date.Format("2006-01-02")
	start := r.StartDate.Format("2006-01-02")
	end := r.EndDate.Format("2006-01-02")

	if start == end {
		if r.StartDuration == DurationHalfMorning && r.EndDuration == DurationHalfAfternoon {
			return DurationFull
		}
		return r.StartDuration
	}
	switch d {
	case start:
		return r.StartDuration
	case end:
		return r.EndDuration
	default:
		return DurationFull
	}
}
