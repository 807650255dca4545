package generation

import (
	"context"

	"github.com/omniora/omniora-api/internal/domain"
)

// Generator defines the interface for the content-generation
// collaborator. It serves as a boundary between the progression core
// and external AI/LLM services, following the hexagonal architecture
// pattern: the engine and scheduler depend only on these signatures.
//
// Every method may fail with a network or model error; callers decide
// whether the failure is recoverable (the engagement scheduler absorbs
// it, the content API surfaces it).
type Generator interface {
	// GenerateConcept synthesizes a bilingual micro-learning node for
	// the topic within the given domain. The mastery percentage tunes
	// prompt depth and difficulty labeling; the extended flag requests
	// a longer lesson with a higher XP reward.
	GenerateConcept(ctx context.Context, conceptDomain, topic string, mastery int, extended bool) (*domain.Concept, error)

	// DiscoverTopics lists foundational and frontier topics for a domain.
	DiscoverTopics(ctx context.Context, conceptDomain string) ([]string, error)

	// DailyRecommendation selects the next topic a user should study,
	// based on a summary of their mastery state.
	DailyRecommendation(ctx context.Context, profile *domain.UserProfile) (*domain.DailyRecommendation, error)

	// EngagementAlert produces the title and message for a daily
	// engagement notification targeting the recommendation.
	EngagementAlert(
		ctx context.Context,
		profile *domain.UserProfile,
		rec *domain.DailyRecommendation,
	) (*domain.EngagementAlert, error)
}
