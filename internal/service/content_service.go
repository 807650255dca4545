package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/generation"
	"github.com/omniora/omniora-api/internal/store"
)

// ContentService coordinates concept generation with the content
// library: generated concepts are stored so lesson completion can
// resolve them by ID, and admins can curate the library directly.
type ContentService interface {
	// GenerateConcept synthesizes a concept for the topic, seeds the
	// prompt with the user's current mastery, and stores the result.
	GenerateConcept(ctx context.Context, conceptDomain, topic string, extended bool) (*domain.Concept, error)

	// DiscoverTopics lists foundational and frontier topics for a domain.
	DiscoverTopics(ctx context.Context, conceptDomain string) ([]string, error)

	// DailyRecommendation selects the next topic for the current profile.
	DailyRecommendation(ctx context.Context) (*domain.DailyRecommendation, error)

	// GetConcept retrieves a stored concept by ID.
	GetConcept(ctx context.Context, id string) (*domain.Concept, error)

	// ListConcepts returns the full content library.
	ListConcepts(ctx context.Context) ([]*domain.Concept, error)

	// SaveConcept upserts an admin-curated concept.
	SaveConcept(ctx context.Context, concept *domain.Concept) error

	// DeleteConcept removes a concept from the library.
	DeleteConcept(ctx context.Context, id string) error
}

// contentServiceImpl implements the ContentService interface
type contentServiceImpl struct {
	concepts  store.ContentStore
	profiles  store.ProfileStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewContentService creates a new ContentService.
// It returns an error if any of the required dependencies are nil.
func NewContentService(
	concepts store.ContentStore,
	profiles store.ProfileStore,
	generator generation.Generator,
	logger *slog.Logger,
) (ContentService, error) {
	if concepts == nil {
		return nil, NewServiceError("content", "init", "content store cannot be nil", domain.ErrValidation)
	}
	if profiles == nil {
		return nil, NewServiceError("content", "init", "profile store cannot be nil", domain.ErrValidation)
	}
	if generator == nil {
		return nil, NewServiceError("content", "init", "generator cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &contentServiceImpl{
		concepts:  concepts,
		profiles:  profiles,
		generator: generator,
		logger:    logger.With(slog.String("component", "content_service")),
	}, nil
}

// GenerateConcept implements ContentService.GenerateConcept.
func (s *contentServiceImpl) GenerateConcept(
	ctx context.Context,
	conceptDomain, topic string,
	extended bool,
) (*domain.Concept, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, NewServiceError("content", "generate_concept", "failed to load profile", err)
	}

	concept, err := s.generator.GenerateConcept(
		ctx, conceptDomain, topic, topicMastery(profile, conceptDomain, topic), extended)
	if err != nil {
		return nil, NewServiceError("content", "generate_concept", "generation failed", err)
	}

	if err := s.concepts.SaveConcept(ctx, concept); err != nil {
		return nil, NewServiceError("content", "generate_concept", "failed to store concept", err)
	}

	s.logger.InfoContext(ctx, "concept generated and stored",
		slog.String("concept_id", concept.ID),
		slog.String("domain", concept.Domain),
		slog.String("topic", concept.Topic))

	return concept, nil
}

// topicMastery finds the recorded mastery for a domain/topic pair.
// Detailed keys carry a category segment in the middle, so the lookup
// matches on the domain prefix and topic suffix.
func topicMastery(profile *domain.UserProfile, conceptDomain, topic string) int {
	prefix := conceptDomain + ":"
	suffix := ":" + topic
	for key, percent := range profile.DetailedMastery {
		if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, suffix) {
			return percent
		}
	}
	return 0
}

// DiscoverTopics implements ContentService.DiscoverTopics.
func (s *contentServiceImpl) DiscoverTopics(ctx context.Context, conceptDomain string) ([]string, error) {
	topics, err := s.generator.DiscoverTopics(ctx, conceptDomain)
	if err != nil {
		return nil, NewServiceError("content", "discover_topics", "generation failed", err)
	}
	return topics, nil
}

// DailyRecommendation implements ContentService.DailyRecommendation.
func (s *contentServiceImpl) DailyRecommendation(ctx context.Context) (*domain.DailyRecommendation, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, NewServiceError("content", "daily_recommendation", "failed to load profile", err)
	}

	rec, err := s.generator.DailyRecommendation(ctx, profile)
	if err != nil {
		return nil, NewServiceError("content", "daily_recommendation", "generation failed", err)
	}
	return rec, nil
}

// GetConcept implements ContentService.GetConcept.
func (s *contentServiceImpl) GetConcept(ctx context.Context, id string) (*domain.Concept, error) {
	concept, err := s.concepts.GetConcept(ctx, id)
	if errors.Is(err, store.ErrConceptNotFound) {
		return nil, ErrConceptNotFound
	}
	if err != nil {
		return nil, NewServiceError("content", "get_concept", "lookup failed", err)
	}
	return concept, nil
}

// ListConcepts implements ContentService.ListConcepts.
func (s *contentServiceImpl) ListConcepts(ctx context.Context) ([]*domain.Concept, error) {
	concepts, err := s.concepts.ListConcepts(ctx)
	if err != nil {
		return nil, NewServiceError("content", "list_concepts", "listing failed", err)
	}
	return concepts, nil
}

// SaveConcept implements ContentService.SaveConcept.
func (s *contentServiceImpl) SaveConcept(ctx context.Context, concept *domain.Concept) error {
	if concept == nil {
		return NewServiceError("content", "save_concept", "concept cannot be nil", domain.ErrValidation)
	}
	if concept.ID == "" {
		concept.ID = domain.NewConceptID()
	}

	if err := s.concepts.SaveConcept(ctx, concept); err != nil {
		return NewServiceError("content", "save_concept", "store rejected concept", err)
	}

	s.logger.InfoContext(ctx, "concept saved",
		slog.String("concept_id", concept.ID))
	return nil
}

// DeleteConcept implements ContentService.DeleteConcept.
func (s *contentServiceImpl) DeleteConcept(ctx context.Context, id string) error {
	err := s.concepts.DeleteConcept(ctx, id)
	if errors.Is(err, store.ErrConceptNotFound) {
		return ErrConceptNotFound
	}
	if err != nil {
		return NewServiceError("content", "delete_concept", "delete failed", err)
	}
	return nil
}
