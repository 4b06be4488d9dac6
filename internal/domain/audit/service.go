package audit

import "context"

// AuditService records who did what. Record must never fail the caller:
// write errors are logged and swallowed.
type AuditService interface {
	Record(ctx context.Context, entry AuditLog)
	List(ctx context.Context, limit int) ([]AuditLog, error)
}
