package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// EngagementScheduler submits engagement check tasks to the runner: one
// shortly after startup (after a settling delay so the check does not
// contend with initial request traffic) and then one per interval.
//
// Submitting more often than once per day is harmless; the engagement
// service's date gate makes the check idempotent within a day.
type EngagementScheduler struct {
	runner        *TaskRunner
	notifier      Notifier
	settlingDelay time.Duration
	interval      time.Duration
	logger        *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngagementScheduler creates a scheduler that submits engagement
// checks to the given runner. A non-positive interval defaults to 24h.
func NewEngagementScheduler(
	runner *TaskRunner,
	notifier Notifier,
	settlingDelay time.Duration,
	interval time.Duration,
	logger *slog.Logger,
) *EngagementScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &EngagementScheduler{
		runner:        runner,
		notifier:      notifier,
		settlingDelay: settlingDelay,
		interval:      interval,
		logger:        logger.With("component", "engagement_scheduler"),
	}
}

// Start launches the scheduling goroutine.
func (s *EngagementScheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop cancels the scheduling goroutine and waits for it to exit.
func (s *EngagementScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *EngagementScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	select {
	case <-time.After(s.settlingDelay):
	case <-ctx.Done():
		return
	}

	s.submit(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.submit(ctx)
		}
	}
}

func (s *EngagementScheduler) submit(ctx context.Context) {
	t := NewEngagementTask(s.notifier, s.logger)
	if err := s.runner.Submit(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to submit engagement check",
			"error", err)
		return
	}
	s.logger.InfoContext(ctx, "engagement check submitted",
		"task_id", t.ID())
}
