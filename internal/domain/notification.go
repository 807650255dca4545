package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes engagement notifications.
type NotificationType string

// Possible notification type values.
const (
	NotificationTypeStreak    NotificationType = "streak"
	NotificationTypeLesson    NotificationType = "lesson"
	NotificationTypeMilestone NotificationType = "milestone"
	NotificationTypeDiscovery NotificationType = "discovery"
)

// NotificationPayload carries the actionable target of a notification.
type NotificationPayload struct {
	Topic  string `json:"topic"`
	Domain string `json:"domain"`
}

// Notification is a surfaced engagement prompt. At most one daily
// notification is generated per calendar day, gated by the profile's
// LastNotificationDate.
type Notification struct {
	ID          string              `json:"id"`
	Type        NotificationType    `json:"type"`
	Title       string              `json:"title"`
	Message     string              `json:"message"`
	ActionLabel string              `json:"actionLabel,omitempty"`
	Payload     NotificationPayload `json:"payload"`
	Timestamp   time.Time           `json:"timestamp"`
}

// NewDailyNotification builds the daily lesson notification from a
// generated alert and the recommendation it targets.
func NewDailyNotification(alert EngagementAlert, rec DailyRecommendation, now time.Time) *Notification {
	return &Notification{
		ID:          "daily-" + uuid.NewString(),
		Type:        NotificationTypeLesson,
		Title:       alert.Title,
		Message:     alert.Message,
		ActionLabel: "Capture Essence",
		Payload: NotificationPayload{
			Topic:  rec.Topic,
			Domain: rec.Domain,
		},
		Timestamp: now.UTC(),
	}
}
