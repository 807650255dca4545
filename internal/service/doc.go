// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The service package implements the application layer in the clean architecture,
// containing use cases that coordinate the flow of data between external interfaces
// (API, background tasks, etc.) and the domain layer. It abstracts away
// infrastructure details while orchestrating domain entities to fulfill business
// requirements.
//
// Key components:
//
// 1. ProgressionService:
//   - Runs every profile mutation as one atomic store transformation
//   - Delegates the state transitions themselves to the pure progression engine
//   - Announces milestones (level-ups, streak changes) through the event emitter
//
// 2. EngagementService:
//   - Implements the once-per-day notification flow with its two-phase commit:
//     read gates, fetch generated content without holding the profile, then
//     re-check and mark inside the store's critical section
//
// 3. ContentService:
//   - Coordinates concept generation with the content library (storage, lookup,
//     admin curation)
//
// The service layer depends on domain entities and repository interfaces (from
// store), but never on specific infrastructure implementations, maintaining the
// Dependency Inversion Principle of clean architecture.
package service
