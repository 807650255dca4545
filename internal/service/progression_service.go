package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/domain/progression"
	"github.com/omniora/omniora-api/internal/events"
	"github.com/omniora/omniora-api/internal/store"
)

// LessonOutcome is the service-level result of a finished lesson,
// returned to the API layer.
type LessonOutcome struct {
	Profile   *domain.UserProfile
	XPEarned  int
	Entry     domain.ActivityLogEntry
	LeveledUp bool
}

// ProgressionService provides profile progression operations. Every
// mutation runs as one atomic read-modify-write cycle against the
// profile store, with the state transition delegated to the pure
// progression engine.
type ProgressionService interface {
	// GetProfile returns the current profile, materializing the default
	// on first access.
	GetProfile(ctx context.Context) (*domain.UserProfile, error)

	// MasteryByDomain returns the per-domain mastery means and the
	// detailed per-topic percentages.
	MasteryByDomain(ctx context.Context) (mastery, detailed map[string]int, err error)

	// Analytics returns the time-bucketed XP and velocity aggregates.
	Analytics(ctx context.Context) (*domain.Analytics, error)

	// AwardXP applies a standalone XP award.
	AwardXP(ctx context.Context, amount int) (*domain.UserProfile, error)

	// CheckStreak evaluates the daily streak at session start.
	CheckStreak(ctx context.Context) (*domain.UserProfile, error)

	// FinishLesson applies the composite lesson-completion transition
	// for the given concept and quiz score.
	FinishLesson(ctx context.Context, concept *domain.Concept, score int) (*LessonOutcome, error)

	// SetLanguage switches the profile's presentation language.
	SetLanguage(ctx context.Context, lang domain.Language) (*domain.UserProfile, error)

	// SetNotificationsEnabled toggles the daily notification opt-in.
	SetNotificationsEnabled(ctx context.Context, enabled bool) (*domain.UserProfile, error)

	// Threshold exposes the leveling policy boundary for a level.
	Threshold(level int) int
}

// progressionServiceImpl implements the ProgressionService interface
type progressionServiceImpl struct {
	profiles store.ProfileStore
	engine   progression.Service
	emitter  events.EventEmitter
	logger   *slog.Logger
	now      func() time.Time
}

// NewProgressionService creates a new ProgressionService.
// It returns an error if any of the required dependencies are nil.
func NewProgressionService(
	profiles store.ProfileStore,
	engine progression.Service,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (ProgressionService, error) {
	if profiles == nil {
		return nil, NewServiceError("progression", "init", "profile store cannot be nil", domain.ErrValidation)
	}
	if engine == nil {
		return nil, NewServiceError("progression", "init", "progression engine cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, NewServiceError("progression", "init", "event emitter cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &progressionServiceImpl{
		profiles: profiles,
		engine:   engine,
		emitter:  emitter,
		logger:   logger.With(slog.String("component", "progression_service")),
		now:      time.Now,
	}, nil
}

// GetProfile implements ProgressionService.GetProfile.
func (s *progressionServiceImpl) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, NewServiceError("progression", "get_profile", "failed to load profile", err)
	}
	return profile, nil
}

// MasteryByDomain implements ProgressionService.MasteryByDomain.
func (s *progressionServiceImpl) MasteryByDomain(
	ctx context.Context,
) (map[string]int, map[string]int, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, nil, err
	}
	return profile.Mastery, profile.DetailedMastery, nil
}

// Analytics implements ProgressionService.Analytics.
func (s *progressionServiceImpl) Analytics(ctx context.Context) (*domain.Analytics, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	return &profile.Analytics, nil
}

// AwardXP implements ProgressionService.AwardXP.
func (s *progressionServiceImpl) AwardXP(ctx context.Context, amount int) (*domain.UserProfile, error) {
	var oldLevel int

	updated, err := s.profiles.Transform(ctx, func(profile *domain.UserProfile) (*domain.UserProfile, error) {
		oldLevel = profile.Level
		return s.engine.AwardXP(profile, amount, s.now())
	})
	if err != nil {
		return nil, NewServiceError("progression", "award_xp", "failed to apply award", err)
	}

	s.logger.InfoContext(ctx, "xp awarded",
		slog.Int("amount", amount),
		slog.Int("total_xp", updated.XP),
		slog.Int("level", updated.Level))

	s.emitLevelUp(ctx, updated, oldLevel)
	return updated, nil
}

// CheckStreak implements ProgressionService.CheckStreak.
func (s *progressionServiceImpl) CheckStreak(ctx context.Context) (*domain.UserProfile, error) {
	var oldStreak int

	updated, err := s.profiles.Transform(ctx, func(profile *domain.UserProfile) (*domain.UserProfile, error) {
		oldStreak = profile.Streak
		return s.engine.CheckStreak(profile, s.now())
	})
	if err != nil {
		return nil, NewServiceError("progression", "check_streak", "failed to evaluate streak", err)
	}

	if updated.Streak != oldStreak {
		s.logger.InfoContext(ctx, "streak changed",
			slog.Int("old_streak", oldStreak),
			slog.Int("new_streak", updated.Streak))
		s.emit(ctx, events.EventTypeStreakChanged, events.StreakChangedPayload{
			UserID:    updated.ID,
			OldStreak: oldStreak,
			NewStreak: updated.Streak,
		})
	}

	return updated, nil
}

// FinishLesson implements ProgressionService.FinishLesson.
//
// The engine computes the full composite transition against the locked
// snapshot; the commit makes all three sub-effects (XP, mastery,
// activity log) visible together or not at all.
func (s *progressionServiceImpl) FinishLesson(
	ctx context.Context,
	concept *domain.Concept,
	score int,
) (*LessonOutcome, error) {
	var (
		result   *progression.LessonResult
		oldLevel int
	)

	updated, err := s.profiles.Transform(ctx, func(profile *domain.UserProfile) (*domain.UserProfile, error) {
		oldLevel = profile.Level

		r, err := s.engine.FinishLesson(profile, concept, score, s.now())
		if err != nil {
			return nil, err
		}
		result = r
		return r.Profile, nil
	})
	if err != nil {
		return nil, NewServiceError("progression", "finish_lesson", "failed to commit lesson", err)
	}

	s.logger.InfoContext(ctx, "lesson finished",
		slog.String("concept_id", concept.ID),
		slog.String("topic", concept.Topic),
		slog.Int("score", score),
		slog.Int("xp_earned", result.XPEarned),
		slog.Bool("leveled_up", result.LeveledUp))

	s.emit(ctx, events.EventTypeLessonFinished, events.LessonFinishedPayload{
		UserID:    updated.ID,
		ConceptID: concept.ID,
		Domain:    concept.Domain,
		Topic:     concept.Topic,
		XPEarned:  result.XPEarned,
		LeveledUp: result.LeveledUp,
	})
	s.emitLevelUp(ctx, updated, oldLevel)

	return &LessonOutcome{
		Profile:   updated,
		XPEarned:  result.XPEarned,
		Entry:     result.Entry,
		LeveledUp: result.LeveledUp,
	}, nil
}

// SetLanguage implements ProgressionService.SetLanguage.
func (s *progressionServiceImpl) SetLanguage(
	ctx context.Context,
	lang domain.Language,
) (*domain.UserProfile, error) {
	if lang != domain.LanguageEnglish && lang != domain.LanguageArabic {
		return nil, NewServiceError("progression", "set_language", "unsupported language",
			domain.ErrInvalidLanguage)
	}

	updated, err := s.profiles.Transform(ctx, func(profile *domain.UserProfile) (*domain.UserProfile, error) {
		next := profile.Clone()
		next.Language = lang
		return next, nil
	})
	if err != nil {
		return nil, NewServiceError("progression", "set_language", "failed to persist language", err)
	}

	return updated, nil
}

// SetNotificationsEnabled implements ProgressionService.SetNotificationsEnabled.
func (s *progressionServiceImpl) SetNotificationsEnabled(
	ctx context.Context,
	enabled bool,
) (*domain.UserProfile, error) {
	updated, err := s.profiles.Transform(ctx, func(profile *domain.UserProfile) (*domain.UserProfile, error) {
		next := profile.Clone()
		next.NotificationsEnabled = enabled
		return next, nil
	})
	if err != nil {
		return nil, NewServiceError("progression", "set_notifications", "failed to persist toggle", err)
	}

	return updated, nil
}

// Threshold implements ProgressionService.Threshold.
func (s *progressionServiceImpl) Threshold(level int) int {
	return s.engine.Threshold(level)
}

// emitLevelUp announces a level transition if one occurred.
func (s *progressionServiceImpl) emitLevelUp(ctx context.Context, profile *domain.UserProfile, oldLevel int) {
	if profile.Level <= oldLevel {
		return
	}
	s.emit(ctx, events.EventTypeLevelUp, events.LevelUpPayload{
		UserID:   profile.ID,
		OldLevel: oldLevel,
		NewLevel: profile.Level,
		TotalXP:  profile.XP,
	})
}

// emit publishes an event, logging rather than failing the operation
// when a handler rejects it. Milestone announcements are best-effort;
// the committed profile state is the source of truth.
func (s *progressionServiceImpl) emit(ctx context.Context, eventType string, payload interface{}) {
	event, err := events.NewProgressionEvent(eventType, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event handler rejected event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
