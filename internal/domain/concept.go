package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Difficulty labels a concept's depth relative to the learner's mastery.
type Difficulty string

// Possible difficulty values.
const (
	DifficultyNovice Difficulty = "Novice"
	DifficultyAdept  Difficulty = "Adept"
	DifficultyExpert Difficulty = "Expert"
	DifficultyMaster Difficulty = "Master"
)

// AdvancedResource is a deep-dive link attached to a concept.
type AdvancedResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // video, article, book, or paper
}

// QuizQuestion is a bilingual multiple-choice question.
type QuizQuestion struct {
	QuestionEN    string   `json:"question_en"`
	QuestionAR    string   `json:"question_ar"`
	OptionsEN     []string `json:"options_en"`
	OptionsAR     []string `json:"options_ar"`
	CorrectAnswer int      `json:"correctAnswer"`
	ExplanationEN string   `json:"explanation_en"`
	ExplanationAR string   `json:"explanation_ar"`
}

// Concept is a generated micro-learning node: a bilingual lesson plus a
// short quiz, produced by the content-generation collaborator.
type Concept struct {
	ID                string             `json:"id"`
	Domain            string             `json:"domain"`
	Category          string             `json:"category"`
	Topic             string             `json:"topic"`
	TitleEN           string             `json:"title_en"`
	TitleAR           string             `json:"title_ar"`
	LessonEN          string             `json:"lesson_en"`
	LessonAR          string             `json:"lesson_ar"`
	ExtendedLessonEN  string             `json:"extendedLesson_en,omitempty"`
	ExtendedLessonAR  string             `json:"extendedLesson_ar,omitempty"`
	Quiz              []QuizQuestion     `json:"quiz"`
	AdvancedResources []AdvancedResource `json:"advancedResources,omitempty"`
	XPReward          int                `json:"xpReward"`
	RelatedConcepts   []string           `json:"relatedConcepts"`
	Difficulty        Difficulty         `json:"difficulty"`
}

// NewConceptID returns a fresh concept identifier.
func NewConceptID() string {
	return "concept-" + uuid.NewString()
}

// Title returns the concept title localized for the given language.
func (c *Concept) Title(lang Language) string {
	if lang == LanguageArabic {
		return c.TitleAR
	}
	return c.TitleEN
}

// QuizLength returns the number of quiz questions.
func (c *Concept) QuizLength() int {
	return len(c.Quiz)
}

// Validate checks that the concept can drive a lesson session.
func (c *Concept) Validate() error {
	if c.Domain == "" {
		return ErrEmptyConceptDomain
	}
	if c.Topic == "" {
		return ErrEmptyConceptTopic
	}
	if len(c.Quiz) == 0 {
		return ErrInvalidQuizLength
	}
	if c.XPReward < 0 {
		return fmt.Errorf("%w: xp reward is negative", ErrValidation)
	}
	return nil
}

// DailyRecommendation is the curator's suggested next topic for a user.
type DailyRecommendation struct {
	Topic      string `json:"topic"`
	Domain     string `json:"domain"`
	Reason     string `json:"reason"`
	IsFrontier bool   `json:"isFrontier"`
}

// EngagementAlert is the generated title/message pair for a daily
// engagement notification.
type EngagementAlert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// KnownDomains lists the subject areas the content generator draws from.
var KnownDomains = []string{
	"Geography", "History", "Science", "Finance",
	"Languages", "Arts", "Music", "Philosophy",
	"Psychology", "Technology", "AI", "Cybersecurity",
	"Bioinformatics", "Chemistry", "Physics", "Quantum Mechanics",
	"Astronomy", "Spirituality", "Energy", "Religion",
	"Law", "Economy", "Trading", "Personal Finance",
}
