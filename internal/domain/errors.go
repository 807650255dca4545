package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrNegativeXPAmount is returned when an XP award is negative.
	// Negative awards are a programming-contract violation, not a
	// clampable input (bonus computation happens upstream).
	ErrNegativeXPAmount = errors.New("xp amount must be non-negative")

	// ErrNegativeMasteryIncrement is returned when a mastery increment
	// is negative. Mastery is monotonically non-decreasing.
	ErrNegativeMasteryIncrement = errors.New("mastery increment must be non-negative")

	// ErrInvalidMasteryKey is returned when a mastery key has an empty
	// domain, category, or topic segment.
	ErrInvalidMasteryKey = errors.New("mastery key segments cannot be empty")

	// ErrInvalidQuizLength is returned when a concept reports a quiz
	// with no questions, which would make XP derivation divide by zero.
	ErrInvalidQuizLength = errors.New("concept quiz length must be positive")

	// ErrInvalidScore is returned when a quiz score is negative or
	// exceeds the quiz length.
	ErrInvalidScore = errors.New("score must be between 0 and the quiz length")

	// ErrInvalidLanguage is returned when a language code is not one of
	// the supported application languages.
	ErrInvalidLanguage = errors.New("unsupported language")

	// ErrEmptyConceptTopic is returned when a concept is missing its topic.
	ErrEmptyConceptTopic = errors.New("concept topic cannot be empty")

	// ErrEmptyConceptDomain is returned when a concept is missing its domain.
	ErrEmptyConceptDomain = errors.New("concept domain cannot be empty")
)
