package notification

import "time"

type NotificationType string

const (
	TypeLeaveSubmitted NotificationType = "leave_submitted"
	TypeLeaveApproved  NotificationType = "leave_approved"
	TypeLeaveRejected  NotificationType = "leave_rejected"
	TypeLeaveCancelled NotificationType = "leave_cancelled"
)

type Notification struct {
	ID         string
	EmployeeID string
	Type       NotificationType
	Title      string
	Message    string
	IsRead     bool
	CreatedAt  time.Time
}
