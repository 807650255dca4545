package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/domain/progression"
	"github.com/omniora/omniora-api/internal/events"
	"github.com/omniora/omniora-api/internal/generation"
	"github.com/omniora/omniora-api/internal/store"
)

// EngagementService produces the daily engagement notification.
type EngagementService interface {
	// MaybeNotify runs the daily notification flow for the given
	// moment. It returns nil (with a nil error) when the gates are
	// closed: notifications disabled, or one already sent today.
	MaybeNotify(ctx context.Context, now time.Time) (*domain.Notification, error)
}

// engagementServiceImpl implements the EngagementService interface
type engagementServiceImpl struct {
	profiles  store.ProfileStore
	generator generation.Generator
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewEngagementService creates a new EngagementService.
// It returns an error if any of the required dependencies are nil.
func NewEngagementService(
	profiles store.ProfileStore,
	generator generation.Generator,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (EngagementService, error) {
	if profiles == nil {
		return nil, NewServiceError("engagement", "init", "profile store cannot be nil", domain.ErrValidation)
	}
	if generator == nil {
		return nil, NewServiceError("engagement", "init", "generator cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, NewServiceError("engagement", "init", "event emitter cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &engagementServiceImpl{
		profiles:  profiles,
		generator: generator,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "engagement_service")),
	}, nil
}

// MaybeNotify implements EngagementService.MaybeNotify.
//
// The flow is two-phase. Phase one reads the gates and fetches the
// generated content without holding the profile: recommendation and
// alert calls can take seconds and must not block concurrent
// progression writes. Phase two re-acquires the profile, re-checks the
// date gate (another session may have won the day meanwhile), and
// commits LastNotificationDate.
//
// The date is marked only after the notification has been successfully
// constructed. A generation failure leaves the gate open, so a later
// attempt the same day can retry instead of going silent until
// tomorrow.
func (s *engagementServiceImpl) MaybeNotify(
	ctx context.Context,
	now time.Time,
) (*domain.Notification, error) {
	today := progression.DateKey(now)

	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, NewServiceError("engagement", "maybe_notify", "failed to load profile", err)
	}

	if !profile.NotificationsEnabled {
		s.logger.DebugContext(ctx, "notifications disabled, skipping")
		return nil, nil
	}
	if profile.LastNotificationDate == today {
		s.logger.DebugContext(ctx, "notification already sent today",
			slog.String("date", today))
		return nil, nil
	}

	rec, err := s.generator.DailyRecommendation(ctx, profile)
	if err != nil {
		return nil, NewServiceError("engagement", "maybe_notify", "recommendation failed",
			wrapUnavailable(err))
	}

	alert, err := s.generator.EngagementAlert(ctx, profile, rec)
	if err != nil {
		return nil, NewServiceError("engagement", "maybe_notify", "alert generation failed",
			wrapUnavailable(err))
	}

	notification := domain.NewDailyNotification(*alert, *rec, now)

	won := false
	updated, err := s.profiles.Transform(ctx, func(current *domain.UserProfile) (*domain.UserProfile, error) {
		if !current.NotificationsEnabled || current.LastNotificationDate == today {
			return current, nil
		}
		next := current.Clone()
		next.LastNotificationDate = today
		won = true
		return next, nil
	})
	if err != nil {
		return nil, NewServiceError("engagement", "maybe_notify", "failed to mark notification date", err)
	}

	if !won {
		s.logger.InfoContext(ctx, "another session sent today's notification first",
			slog.String("date", today))
		return nil, nil
	}

	s.logger.InfoContext(ctx, "daily notification produced",
		slog.String("notification_id", notification.ID),
		slog.String("topic", notification.Payload.Topic),
		slog.String("date", today))

	s.emitSent(ctx, updated, notification, today)

	return notification, nil
}

// emitSent announces the marked notification; best-effort.
func (s *engagementServiceImpl) emitSent(
	ctx context.Context,
	profile *domain.UserProfile,
	notification *domain.Notification,
	date string,
) {
	event, err := events.NewProgressionEvent(events.EventTypeNotificationSent, events.NotificationSentPayload{
		UserID:         profile.ID,
		NotificationID: notification.ID,
		Topic:          notification.Payload.Topic,
		Date:           date,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build notification event",
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event handler rejected notification event",
			slog.String("error", err.Error()))
	}
}

// wrapUnavailable tags generation failures with the sentinel callers
// check to distinguish "retry later" from contract violations.
func wrapUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrNotificationUnavailable, err)
}
