package audit

import "time"

type Action string

const (
	ActionLeaveSubmitted Action = "leave.submitted"
	ActionLeaveApproved  Action = "leave.approved"
	ActionLeaveRejected  Action = "leave.rejected"
	ActionLeaveCancelled Action = "leave.cancelled"
	ActionQuotaCreated   Action = "quota.created"
	ActionQuotaUpdated   Action = "quota.updated"
	ActionPolicyUpdated  Action = "policy.updated"
	ActionHolidayCreated Action = "holiday.created"
	ActionHolidayDeleted Action = "holiday.deleted"
)

type AuditLog struct {
	ID         string
	ActorID    string
	Action     Action
	EntityType string
	EntityID   string
	Detail     map[string]any
	CreatedAt  time.Time
}
