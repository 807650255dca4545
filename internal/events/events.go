package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types announced by the progression service.
const (
	// EventTypeLevelUp fires when an XP award crosses a level threshold.
	EventTypeLevelUp = "progression.level_up"

	// EventTypeStreakChanged fires when a streak check moves the counter,
	// both extensions and resets.
	EventTypeStreakChanged = "progression.streak_changed"

	// EventTypeLessonFinished fires after a lesson session is committed.
	EventTypeLessonFinished = "progression.lesson_finished"

	// EventTypeNotificationSent fires when a daily engagement
	// notification has been constructed and marked.
	EventTypeNotificationSent = "engagement.notification_sent"
)

// ProgressionEvent represents a progression milestone announcement.
// It carries the milestone-specific data as serialized JSON so handlers
// have no direct dependency on the service that produced it.
type ProgressionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates which milestone occurred
	Type string `json:"type"`

	// Payload contains the milestone-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *ProgressionEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewProgressionEvent creates a new ProgressionEvent with the specified type and payload.
func NewProgressionEvent(eventType string, payload interface{}) (*ProgressionEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &ProgressionEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// LevelUpPayload describes a level transition.
type LevelUpPayload struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	TotalXP  int    `json:"total_xp"`
}

// StreakChangedPayload describes a streak extension or reset.
type StreakChangedPayload struct {
	UserID    string `json:"user_id"`
	OldStreak int    `json:"old_streak"`
	NewStreak int    `json:"new_streak"`
}

// LessonFinishedPayload describes a committed lesson session.
type LessonFinishedPayload struct {
	UserID    string `json:"user_id"`
	ConceptID string `json:"concept_id"`
	Domain    string `json:"domain"`
	Topic     string `json:"topic"`
	XPEarned  int    `json:"xp_earned"`
	LeveledUp bool   `json:"leveled_up"`
}

// NotificationSentPayload describes a marked daily notification.
type NotificationSentPayload struct {
	UserID         string `json:"user_id"`
	NotificationID string `json:"notification_id"`
	Topic          string `json:"topic"`
	Date           string `json:"date"`
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ProgressionEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *ProgressionEvent) error
}
