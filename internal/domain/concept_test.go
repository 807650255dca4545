package domain

import (
	"errors"
	"testing"
	"time"
)

func validConcept() *Concept {
	return &Concept{
		ID:       "concept-1",
		Domain:   "Science",
		Category: "Physics",
		Topic:    "Gravity",
		TitleEN:  "Gravity",
		TitleAR:  "الجاذبية",
		LessonEN: "lesson",
		LessonAR: "lesson-ar",
		Quiz: []QuizQuestion{
			{QuestionEN: "q", OptionsEN: []string{"a", "b"}},
		},
		XPReward: 200,
	}
}

func TestConceptValidate(t *testing.T) {
	t.Parallel()

	if err := validConcept().Validate(); err != nil {
		t.Errorf("valid concept failed validation: %v", err)
	}

	testCases := []struct {
		name     string
		mutate   func(*Concept)
		expected error
	}{
		{"empty domain", func(c *Concept) { c.Domain = "" }, ErrEmptyConceptDomain},
		{"empty topic", func(c *Concept) { c.Topic = "" }, ErrEmptyConceptTopic},
		{"empty quiz", func(c *Concept) { c.Quiz = nil }, ErrInvalidQuizLength},
		{"negative reward", func(c *Concept) { c.XPReward = -1 }, ErrValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			concept := validConcept()
			tc.mutate(concept)
			if err := concept.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("got %v, want %v", err, tc.expected)
			}
		})
	}
}

func TestConceptTitleLocalization(t *testing.T) {
	t.Parallel()
	concept := validConcept()

	if got := concept.Title(LanguageEnglish); got != "Gravity" {
		t.Errorf("english title = %q", got)
	}
	if got := concept.Title(LanguageArabic); got != "الجاذبية" {
		t.Errorf("arabic title = %q", got)
	}
}

func TestNewActivityLogEntry(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	entry, err := NewActivityLogEntry("Gravity", "Science", 4, 5, 160, now)
	if err != nil {
		t.Fatalf("NewActivityLogEntry failed: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry ID not assigned")
	}
	if !entry.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", entry.Timestamp, now)
	}

	if _, err := NewActivityLogEntry("", "Science", 4, 5, 160, now); !errors.Is(err, ErrEmptyActivityTitle) {
		t.Errorf("empty title: got %v, want ErrEmptyActivityTitle", err)
	}
	if _, err := NewActivityLogEntry("Gravity", "Science", 4, 5, -1, now); !errors.Is(err, ErrInvalidActivityXP) {
		t.Errorf("negative xp: got %v, want ErrInvalidActivityXP", err)
	}
}

func TestNewDailyNotification(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	notification := NewDailyNotification(
		EngagementAlert{Title: "Return", Message: "Gravity awaits"},
		DailyRecommendation{Topic: "Gravity", Domain: "Science"},
		now,
	)

	if notification.Type != NotificationTypeLesson {
		t.Errorf("Type = %q, want lesson", notification.Type)
	}
	if notification.ActionLabel != "Capture Essence" {
		t.Errorf("ActionLabel = %q", notification.ActionLabel)
	}
	if notification.Payload.Topic != "Gravity" || notification.Payload.Domain != "Science" {
		t.Errorf("Payload = %+v", notification.Payload)
	}
	if notification.ID == "" {
		t.Error("ID not assigned")
	}
}
