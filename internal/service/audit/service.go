package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
)

type auditServiceImpl struct {
	repo   audit.AuditLogRepository
	logger *slog.Logger
}

func NewAuditService(repo audit.AuditLogRepository, logger *slog.Logger) audit.AuditService {
	return &auditServiceImpl{repo: repo, logger: logger}
}

// Record implements audit.AuditService. Writes are detached from the
// caller's context and transaction: an audit failure must never roll
// back or fail the business operation it describes.
func (s *auditServiceImpl) Record(_ context.Context, entry audit.AuditLog) {
	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.repo.Create(writeCtx, entry); err != nil {
			s.logger.Error("audit log write failed",
				"action", entry.Action, "entity_id", entry.EntityID, "error", err)
		}
	}()
}

// List implements audit.AuditService.
func (s *auditServiceImpl) List(ctx context.Context, limit int) ([]audit.AuditLog, error) {
	return s.repo.List(ctx, limit)
}
