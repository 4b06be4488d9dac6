package audit

import "context"

// AuditLogRepository - interface for audit log persistence
type AuditLogRepository interface {
	Create(ctx context.Context, entry AuditLog) error
	List(ctx context.Context, limit int) ([]AuditLog, error)
}
