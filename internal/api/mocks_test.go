package api

import (
	"context"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/service"
)

// stubProgressionService scripts ProgressionService responses.
type stubProgressionService struct {
	profile *domain.UserProfile
	outcome *service.LessonOutcome
	err     error

	lastLanguage domain.Language
	lastEnabled  bool
	lastScore    int
	lastAmount   int
}

var _ service.ProgressionService = (*stubProgressionService)(nil)

func (s *stubProgressionService) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	return s.profile, s.err
}

func (s *stubProgressionService) MasteryByDomain(
	ctx context.Context,
) (map[string]int, map[string]int, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.profile.Mastery, s.profile.DetailedMastery, nil
}

func (s *stubProgressionService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.profile.Analytics, nil
}

func (s *stubProgressionService) AwardXP(ctx context.Context, amount int) (*domain.UserProfile, error) {
	s.lastAmount = amount
	return s.profile, s.err
}

func (s *stubProgressionService) CheckStreak(ctx context.Context) (*domain.UserProfile, error) {
	return s.profile, s.err
}

func (s *stubProgressionService) FinishLesson(
	ctx context.Context,
	concept *domain.Concept,
	score int,
) (*service.LessonOutcome, error) {
	s.lastScore = score
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func (s *stubProgressionService) SetLanguage(
	ctx context.Context,
	lang domain.Language,
) (*domain.UserProfile, error) {
	s.lastLanguage = lang
	return s.profile, s.err
}

func (s *stubProgressionService) SetNotificationsEnabled(
	ctx context.Context,
	enabled bool,
) (*domain.UserProfile, error) {
	s.lastEnabled = enabled
	return s.profile, s.err
}

func (s *stubProgressionService) Threshold(level int) int {
	if level <= 1 {
		return 0
	}
	return 1000
}

// stubContentService scripts ContentService responses.
type stubContentService struct {
	concept *domain.Concept
	topics  []string
	rec     *domain.DailyRecommendation
	list    []*domain.Concept
	err     error
}

var _ service.ContentService = (*stubContentService)(nil)

func (s *stubContentService) GenerateConcept(
	ctx context.Context,
	conceptDomain, topic string,
	extended bool,
) (*domain.Concept, error) {
	return s.concept, s.err
}

func (s *stubContentService) DiscoverTopics(ctx context.Context, conceptDomain string) ([]string, error) {
	return s.topics, s.err
}

func (s *stubContentService) DailyRecommendation(ctx context.Context) (*domain.DailyRecommendation, error) {
	return s.rec, s.err
}

func (s *stubContentService) GetConcept(ctx context.Context, id string) (*domain.Concept, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.concept == nil || s.concept.ID != id {
		return nil, service.ErrConceptNotFound
	}
	return s.concept, nil
}

func (s *stubContentService) ListConcepts(ctx context.Context) ([]*domain.Concept, error) {
	return s.list, s.err
}

func (s *stubContentService) SaveConcept(ctx context.Context, concept *domain.Concept) error {
	return s.err
}

func (s *stubContentService) DeleteConcept(ctx context.Context, id string) error {
	return s.err
}

// stubEngagementService scripts EngagementService responses.
type stubEngagementService struct {
	notification *domain.Notification
	err          error
}

var _ service.EngagementService = (*stubEngagementService)(nil)

func (s *stubEngagementService) MaybeNotify(
	ctx context.Context,
	now time.Time,
) (*domain.Notification, error) {
	return s.notification, s.err
}

// testProfile builds a profile for handler tests.
func testProfile() *domain.UserProfile {
	profile := domain.NewDefaultProfile(time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC))
	profile.Mastery["AI"] = 30
	profile.DetailedMastery["AI:Foundations:Transformers"] = 30
	return profile
}

// testLessonConcept builds a stored concept for lesson tests.
func testLessonConcept() *domain.Concept {
	return &domain.Concept{
		ID:       "concept-123",
		Domain:   "AI",
		Category: "Foundations",
		Topic:    "Transformers",
		TitleEN:  "Transformers",
		TitleAR:  "المحولات",
		LessonEN: "lesson",
		LessonAR: "lesson-ar",
		Quiz: []domain.QuizQuestion{
			{QuestionEN: "q1", QuestionAR: "q1", OptionsEN: []string{"a", "b"}, OptionsAR: []string{"a", "b"}},
			{QuestionEN: "q2", QuestionAR: "q2", OptionsEN: []string{"a", "b"}, OptionsAR: []string{"a", "b"}},
		},
		XPReward: 250,
	}
}
