package store

import (
	"context"

	"github.com/omniora/omniora-api/internal/domain"
)

// ContentStore defines the interface for curated concept persistence.
// Concepts saved here supplement the generated content library and are
// managed through the admin surface.
type ContentStore interface {
	// SaveConcept inserts the concept, or replaces an existing concept
	// with the same ID.
	SaveConcept(ctx context.Context, concept *domain.Concept) error

	// GetConcept retrieves a concept by ID.
	// Returns ErrConceptNotFound if it does not exist.
	GetConcept(ctx context.Context, id string) (*domain.Concept, error)

	// ListConcepts returns all stored concepts.
	ListConcepts(ctx context.Context) ([]*domain.Concept, error)

	// DeleteConcept removes a concept by ID.
	// Returns ErrConceptNotFound if it does not exist.
	DeleteConcept(ctx context.Context, id string) error
}
