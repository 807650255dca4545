// Package store provides abstractions for data persistence: the
// profile store that owns the UserProfile aggregate and the content
// store for curated concepts. Implementations live under
// internal/platform.
package store
