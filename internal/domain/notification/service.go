package notification

import "context"

// NotificationService fans out notifications to the store and to live
// SSE subscribers. Notify is fire-and-forget: callers never block on
// delivery and never see delivery errors.
type NotificationService interface {
	Notify(n Notification)
	List(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, employeeID, id string) error
	MarkAllRead(ctx context.Context, employeeID string) error
	Shutdown(ctx context.Context) error
}
