// Package domain defines the core business entities of the Omniora
// progression engine: the user profile aggregate, activity log entries,
// generated learning concepts, and engagement notifications.
//
// Entities in this package carry no persistence or transport concerns.
// State transitions on the UserProfile aggregate live in the
// domain/progression package; this package only defines the shapes,
// their validation rules, and the factory functions that establish
// valid initial state.
package domain
