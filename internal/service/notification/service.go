package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/workpulse-hr/attendance-backend-go/internal/domain/notification"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/sse"
)

// Config holds notification worker configuration.
type Config struct {
	BatchSize     int           // default: 50
	FlushInterval time.Duration // default: 2 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.NotificationRepository
	hub    *sse.Hub
	logger *slog.Logger
	config Config

	queue  chan notification.Notification
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts the background workers that persist
// queued notifications in batches and push them to SSE subscribers.
func NewNotificationService(repo notification.NotificationRepository, hub *sse.Hub, logger *slog.Logger, cfg Config) notification.NotificationService {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		logger: logger,
		config: cfg,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		created, err := s.repo.CreateBatch(ctx, batch)
		if err != nil {
			s.logger.Error("notification batch insert failed", "worker", id, "count", len(batch), "error", err)
		} else {
			for _, n := range created {
				s.hub.Publish(n.EmployeeID, sse.Event{
					EmployeeID: n.EmployeeID,
					Event:      "notification",
					Data:       n,
				})
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, n)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, n)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Notify implements notification.NotificationService. Never blocks the
// caller: when the queue is full the notification is dropped with a log
// line rather than stalling the business operation that produced it.
func (s *service) Notify(n notification.Notification) {
	select {
	case s.queue <- n:
	default:
		s.logger.Warn("notification queue full, dropping", "employee_id", n.EmployeeID, "type", n.Type)
	}
}

// List implements notification.NotificationService.
func (s *service) List(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	return s.repo.ListByEmployee(ctx, employeeID, unreadOnly)
}

// MarkRead implements notification.NotificationService.
func (s *service) MarkRead(ctx context.Context, employeeID, id string) error {
	return s.repo.MarkRead(ctx, employeeID, id)
}

// MarkAllRead implements notification.NotificationService.
func (s *service) MarkAllRead(ctx context.Context, employeeID string) error {
	return s.repo.MarkAllRead(ctx, employeeID)
}

// Shutdown implements notification.NotificationService. Flushes what
// is queued and stops the workers.
func (s *service) Shutdown(ctx context.Context) error {
	close(s.stopCh)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
