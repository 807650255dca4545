package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/generation"
	"github.com/omniora/omniora-api/internal/service"
	"github.com/omniora/omniora-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrConceptNotFound),
		errors.Is(err, store.ErrConceptNotFound),
		errors.Is(err, store.ErrProfileNotFound):
		return http.StatusNotFound

	// Bad request errors: contract violations from the progression engine
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNegativeXPAmount),
		errors.Is(err, domain.ErrNegativeMasteryIncrement),
		errors.Is(err, domain.ErrInvalidMasteryKey),
		errors.Is(err, domain.ErrInvalidQuizLength),
		errors.Is(err, domain.ErrInvalidScore),
		errors.Is(err, domain.ErrInvalidLanguage),
		errors.Is(err, domain.ErrEmptyConceptTopic),
		errors.Is(err, domain.ErrEmptyConceptDomain),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Generation refused the content
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Upstream generation failures
	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Notification flow could not reach the generator
	case errors.Is(err, service.ErrNotificationUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrConceptNotFound),
		errors.Is(err, store.ErrConceptNotFound):
		return "Concept not found"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, domain.ErrNegativeXPAmount):
		return "XP amount must be non-negative"

	case errors.Is(err, domain.ErrNegativeMasteryIncrement):
		return "Mastery increment must be non-negative"

	case errors.Is(err, domain.ErrInvalidMasteryKey):
		return "Invalid mastery key"

	case errors.Is(err, domain.ErrInvalidQuizLength):
		return "Concept has no quiz"

	case errors.Is(err, domain.ErrInvalidScore):
		return "Score is out of range for this quiz"

	case errors.Is(err, domain.ErrInvalidLanguage):
		return "Unsupported language"

	case errors.Is(err, domain.ErrEmptyConceptTopic),
		errors.Is(err, domain.ErrEmptyConceptDomain):
		return "Concept domain and topic are required"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Content was blocked by safety filters"

	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return "Content generation is temporarily unavailable"

	case errors.Is(err, service.ErrNotificationUnavailable):
		return "Daily notification is temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'FinishLessonRequest.Score' Error:Field
	// validation for 'Score' failed on the 'gte' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte":
		return "too small"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
