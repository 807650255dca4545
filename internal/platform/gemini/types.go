package gemini

import "github.com/omniora/omniora-api/internal/domain"

// conceptPayload represents the structured concept response from the
// Gemini API before it is assembled into a domain.Concept.
type conceptPayload struct {
	TitleEN           string                    `json:"title_en"`
	TitleAR           string                    `json:"title_ar"`
	Category          string                    `json:"category"`
	LessonEN          string                    `json:"lesson_en"`
	LessonAR          string                    `json:"lesson_ar"`
	ExtendedLessonEN  string                    `json:"extendedLesson_en"`
	ExtendedLessonAR  string                    `json:"extendedLesson_ar"`
	RelatedConcepts   []string                  `json:"relatedConcepts"`
	AdvancedResources []domain.AdvancedResource `json:"advancedResources"`
	Quiz              []domain.QuizQuestion     `json:"quiz"`
}

// topicsPayload represents the topic discovery response.
type topicsPayload struct {
	Topics []string `json:"topics"`
}

// masterySummary is the condensed view of the user's progress sent to
// the curator prompt. Weakest entries are (key, percent) pairs sorted
// ascending by percent.
type masterySummary struct {
	Mastery map[string]int `json:"mastery"`
	Weakest [][2]any       `json:"weakest"`
}
