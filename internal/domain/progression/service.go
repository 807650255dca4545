package progression

import (
	"errors"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
)

// Common errors
var (
	ErrNilProfile = errors.New("profile cannot be nil")
	ErrNilConcept = errors.New("concept cannot be nil")
)

// LessonResult describes the outcome of a finished lesson applied to a
// profile snapshot.
type LessonResult struct {
	// Profile is the updated profile with all three sub-effects applied.
	Profile *domain.UserProfile

	// XPEarned is the derived award: floor((score/quizLength)*xpReward).
	XPEarned int

	// Entry is the activity log entry prepended to the history.
	Entry domain.ActivityLogEntry

	// LeveledUp reports whether the award crossed a level threshold.
	LeveledUp bool
}

// Service defines the interface for progression engine operations.
// Contract violations (negative amounts, malformed mastery keys) fail
// fast with an error rather than silently clamping, so upstream bugs
// are not masked.
type Service interface {
	// AwardXP increments XP, re-derives the level, and records the
	// amount into the analytics buckets for now's calendar date.
	AwardXP(profile *domain.UserProfile, amount int, now time.Time) (*domain.UserProfile, error)

	// UpdateMastery applies a non-negative increment to the topic's
	// mastery and recomputes the domain aggregate.
	UpdateMastery(
		profile *domain.UserProfile,
		masteryDomain, category, topic string,
		increment int,
	) (*domain.UserProfile, error)

	// CheckStreak evaluates the streak against now. It must run exactly
	// once per session start, before any mutation that depends on
	// streak state.
	CheckStreak(profile *domain.UserProfile, now time.Time) (*domain.UserProfile, error)

	// LogActivity appends an engine-stamped activity entry to the
	// history and bumps the day's activity counter.
	LogActivity(
		profile *domain.UserProfile,
		conceptTitle, conceptDomain string,
		score, maxScore, xpEarned int,
		now time.Time,
	) (*domain.UserProfile, domain.ActivityLogEntry, error)

	// FinishLesson applies the composite lesson-completion transition:
	// XP award, mastery update, and activity log, all against the same
	// profile snapshot. Persisting the result atomically is the
	// caller's responsibility.
	FinishLesson(
		profile *domain.UserProfile,
		concept *domain.Concept,
		score int,
		now time.Time,
	) (*LessonResult, error)

	// Threshold exposes the leveling policy for presentation (progress
	// bars need the current and next level boundaries).
	Threshold(level int) int
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a progression service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a progression service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// AwardXP implements Service.AwardXP.
func (s *defaultService) AwardXP(
	profile *domain.UserProfile,
	amount int,
	now time.Time,
) (*domain.UserProfile, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if amount < 0 {
		return nil, domain.ErrNegativeXPAmount
	}

	return applyXPAward(profile, amount, now, s.params), nil
}

// UpdateMastery implements Service.UpdateMastery.
func (s *defaultService) UpdateMastery(
	profile *domain.UserProfile,
	masteryDomain, category, topic string,
	increment int,
) (*domain.UserProfile, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if increment < 0 {
		return nil, domain.ErrNegativeMasteryIncrement
	}

	key, err := domain.MasteryKey(masteryDomain, category, topic)
	if err != nil {
		return nil, err
	}

	return applyMasteryUpdate(profile, key, increment, s.params), nil
}

// CheckStreak implements Service.CheckStreak.
func (s *defaultService) CheckStreak(
	profile *domain.UserProfile,
	now time.Time,
) (*domain.UserProfile, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}

	return applyStreakCheck(profile, now), nil
}

// LogActivity implements Service.LogActivity.
func (s *defaultService) LogActivity(
	profile *domain.UserProfile,
	conceptTitle, conceptDomain string,
	score, maxScore, xpEarned int,
	now time.Time,
) (*domain.UserProfile, domain.ActivityLogEntry, error) {
	if profile == nil {
		return nil, domain.ActivityLogEntry{}, ErrNilProfile
	}

	entry, err := domain.NewActivityLogEntry(conceptTitle, conceptDomain, score, maxScore, xpEarned, now)
	if err != nil {
		return nil, domain.ActivityLogEntry{}, err
	}

	return applyActivityLog(profile, entry, s.params), entry, nil
}

// FinishLesson implements Service.FinishLesson.
//
// The three sub-effects are applied in sequence to the same snapshot:
// the XP award, the fixed mastery increment for the concept's topic,
// and the activity log entry. Partial application is never visible to
// the caller; either the full LessonResult is returned or an error.
func (s *defaultService) FinishLesson(
	profile *domain.UserProfile,
	concept *domain.Concept,
	score int,
	now time.Time,
) (*LessonResult, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if concept == nil {
		return nil, ErrNilConcept
	}
	if err := concept.Validate(); err != nil {
		return nil, err
	}
	if score < 0 || score > concept.QuizLength() {
		return nil, domain.ErrInvalidScore
	}

	xpEarned := lessonXP(score, concept.QuizLength(), concept.XPReward)

	next, err := s.AwardXP(profile, xpEarned, now)
	if err != nil {
		return nil, err
	}

	next, err = s.UpdateMastery(next, concept.Domain, concept.Category, concept.Topic, s.params.MasteryIncrement)
	if err != nil {
		return nil, err
	}

	next, entry, err := s.LogActivity(
		next,
		concept.Title(profile.Language),
		concept.Domain,
		score,
		concept.QuizLength(),
		xpEarned,
		now,
	)
	if err != nil {
		return nil, err
	}

	return &LessonResult{
		Profile:   next,
		XPEarned:  xpEarned,
		Entry:     entry,
		LeveledUp: next.Level > profile.Level,
	}, nil
}

// Threshold implements Service.Threshold.
func (s *defaultService) Threshold(level int) int {
	return ThresholdForLevel(level, s.params)
}
