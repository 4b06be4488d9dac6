package postgresql

import (
	"context"

	"github.com/google/uuid"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/notification"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// CreateBatch implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []notification.Notification) ([]notification.Notification, error) {
	if len(notifications) == 0 {
		return notifications, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, employee_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
		RETURNING created_at
	`

	for i := range notifications {
		notifications[i].ID = uuid.NewString()
		err := q.QueryRow(ctx, query,
			notifications[i].ID, notifications[i].EmployeeID, notifications[i].Type,
			notifications[i].Title, notifications[i].Message,
		).Scan(&notifications[i].CreatedAt)
		if err != nil {
			return nil, err
		}
	}

	return notifications, nil
}

// ListByEmployee implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, title, message, is_read, created_at
		FROM notifications
		WHERE employee_id = $1
		  AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := q.Query(ctx, query, employeeID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, employeeID, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND employee_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, employeeID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE employee_id = $1 AND is_read = FALSE
	`

	_, err := q.Exec(ctx, query, employeeID)
	return err
}
