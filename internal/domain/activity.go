package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for ActivityLogEntry.
var (
	ErrEmptyActivityTitle = errors.New("activity log entry concept title cannot be empty")
	ErrInvalidActivityXP  = errors.New("activity log entry xp earned must be non-negative")
)

// ActivityLogEntry records one completed learning session. Entries are
// immutable once created; the engine assigns the ID and timestamp.
type ActivityLogEntry struct {
	ID           string    `json:"id"`
	ConceptTitle string    `json:"conceptTitle"`
	Domain       string    `json:"domain"`
	Score        int       `json:"score"`
	MaxScore     int       `json:"maxScore"`
	XPEarned     int       `json:"xpEarned"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewActivityLogEntry creates an activity log entry with an assigned ID
// and the provided timestamp.
func NewActivityLogEntry(
	conceptTitle, conceptDomain string,
	score, maxScore, xpEarned int,
	now time.Time,
) (ActivityLogEntry, error) {
	if conceptTitle == "" {
		return ActivityLogEntry{}, ErrEmptyActivityTitle
	}
	if xpEarned < 0 {
		return ActivityLogEntry{}, ErrInvalidActivityXP
	}

	return ActivityLogEntry{
		ID:           "log-" + uuid.NewString(),
		ConceptTitle: conceptTitle,
		Domain:       conceptDomain,
		Score:        score,
		MaxScore:     maxScore,
		XPEarned:     xpEarned,
		Timestamp:    now.UTC(),
	}, nil
}
