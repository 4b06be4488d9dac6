package notification

import "context"

// NotificationRepository - interface for notification persistence
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []Notification) ([]Notification, error)
	ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, employeeID, id string) error
	MarkAllRead(ctx context.Context, employeeID string) error
}
