package postgresql

import (
	"context"

	"github.com/google/uuid"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/audit"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type auditLogRepositoryImpl struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) audit.AuditLogRepository {
	return &auditLogRepositoryImpl{db: db}
}

// Create implements audit.AuditLogRepository.
func (r *auditLogRepositoryImpl) Create(ctx context.Context, entry audit.AuditLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := q.Exec(ctx, query,
		uuid.NewString(), entry.ActorID, entry.Action,
		entry.EntityType, entry.EntityID, entry.Detail,
	)
	return err
}

// List implements audit.AuditLogRepository.
func (r *auditLogRepositoryImpl) List(ctx context.Context, limit int) ([]audit.AuditLog, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, actor_id, action, entity_type, entity_id, detail, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]audit.AuditLog, 0)
	for rows.Next() {
		var e audit.AuditLog
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
