package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
)

// Notifier is the slice of the engagement service the task needs.
// A nil notification with a nil error means the daily gates were
// closed; that is a successful run, not a failure.
type Notifier interface {
	MaybeNotify(ctx context.Context, now time.Time) (*domain.Notification, error)
}

// EngagementTask runs one daily engagement notification check.
type EngagementTask struct {
	BaseTask
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewEngagementTask creates a task that performs the engagement check
// against the given notifier when executed.
func NewEngagementTask(notifier Notifier, logger *slog.Logger) *EngagementTask {
	return &EngagementTask{
		BaseTask: NewBaseTask(),
		notifier: notifier,
		logger:   logger.With("component", "engagement_task"),
		now:      time.Now,
	}
}

// Ensure EngagementTask implements the Task interface
var _ Task = (*EngagementTask)(nil)

// Type implements Task.Type.
func (t *EngagementTask) Type() string {
	return TaskTypeEngagementCheck
}

// Execute implements Task.Execute.
func (t *EngagementTask) Execute(ctx context.Context) error {
	notification, err := t.notifier.MaybeNotify(ctx, t.now())
	if err != nil {
		return fmt.Errorf("engagement check failed: %w", err)
	}

	if notification == nil {
		t.logger.InfoContext(ctx, "engagement check skipped, gates closed")
		return nil
	}

	t.logger.InfoContext(ctx, "engagement notification produced",
		"notification_id", notification.ID,
		"topic", notification.Payload.Topic)
	return nil
}
