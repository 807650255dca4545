package api

import (
	"github.com/omniora/omniora-api/internal/domain"
)

// Common request/response structures

// FinishLessonRequest defines the payload for the lesson completion endpoint.
type FinishLessonRequest struct {
	// ConceptID identifies the stored concept the session was run against.
	ConceptID string `json:"conceptId" validate:"required"`

	// Score is the number of correctly answered quiz questions.
	Score int `json:"score" validate:"gte=0"`
}

// FinishLessonResponse defines the successful response for the lesson
// completion endpoint.
type FinishLessonResponse struct {
	Profile   *domain.UserProfile     `json:"profile"`
	XPEarned  int                     `json:"xpEarned"`
	LeveledUp bool                    `json:"leveledUp"`
	Entry     domain.ActivityLogEntry `json:"entry"`
}

// AwardXPRequest defines the payload for the standalone XP award
// endpoint. Bonus and multiplier math happens on the client; the server
// only accepts a non-negative amount.
type AwardXPRequest struct {
	Amount *int `json:"amount" validate:"required,gte=0"`
}

// SetLanguageRequest defines the payload for the language switch endpoint.
type SetLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en ar"`
}

// SetNotificationsRequest defines the payload for the notification toggle endpoint.
type SetNotificationsRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// GenerateConceptRequest defines the payload for the concept generation endpoint.
type GenerateConceptRequest struct {
	Domain   string `json:"domain" validate:"required"`
	Topic    string `json:"topic" validate:"required"`
	Extended bool   `json:"extended"`
}

// MasteryResponse carries the per-domain means and detailed percentages.
type MasteryResponse struct {
	Mastery         map[string]int `json:"mastery"`
	DetailedMastery map[string]int `json:"detailedMastery"`
}

// TopicsResponse carries the discovered topics for a domain.
type TopicsResponse struct {
	Domain string   `json:"domain"`
	Topics []string `json:"topics"`
}

// ProfileLevelingResponse decorates the profile with the leveling
// boundaries the client needs for progress bars.
type ProfileLevelingResponse struct {
	*domain.UserProfile
	CurrentThreshold int `json:"currentThreshold"`
	NextThreshold    int `json:"nextThreshold"`
}
