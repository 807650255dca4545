package store

import (
	"context"

	"github.com/omniora/omniora-api/internal/domain"
)

// TransformFn applies a full profile transformation inside the store's
// critical section. It receives the current profile (never nil; absent
// or corrupt stored state is replaced by the default profile before the
// function runs) and returns the profile to persist. Returning an error
// aborts the transaction and leaves the stored state untouched.
type TransformFn func(profile *domain.UserProfile) (*domain.UserProfile, error)

// ProfileStore defines the interface for user profile persistence.
//
// The progression engine assumes a single logical writer per profile.
// Implementations must serialize Transform calls for the profile key so
// that read-modify-write cycles never interleave; Load and Save exist
// for read paths and tests, but every progression mutation goes through
// Transform.
type ProfileStore interface {
	// Load retrieves the profile stored under the fixed logical key.
	// If no record exists, or the stored blob cannot be parsed, it
	// returns a fully-populated default profile instead of an error;
	// malformed persisted state is never fatal.
	Load(ctx context.Context) (*domain.UserProfile, error)

	// Save persists the complete profile under the fixed logical key,
	// replacing any previous record.
	Save(ctx context.Context, profile *domain.UserProfile) error

	// Transform executes fn as one atomic read-modify-write cycle:
	// acquire the current profile, apply the full transformation, and
	// persist the result before releasing. Returns the persisted
	// profile.
	Transform(ctx context.Context, fn TransformFn) (*domain.UserProfile, error)
}
