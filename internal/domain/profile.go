package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HistoryLimit bounds the activity history kept on a profile. Older
// entries are discarded, not archived.
const HistoryLimit = 50

// ProfileKey is the fixed logical key under which the single user
// profile is persisted.
const ProfileKey = "omniora_user_v3"

// Language is an application display language code.
type Language string

// Supported application languages.
const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// IsValid reports whether the language is one of the supported codes.
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageArabic
}

// Analytics holds the append-only XP accumulation buckets. Buckets grow
// without eviction; this is the literal contract of the aggregator.
type Analytics struct {
	// DailyXP accumulates awarded XP per calendar day, keyed YYYY-MM-DD.
	DailyXP map[string]int `json:"dailyXP"`

	// WeeklyXP accumulates awarded XP per ISO week, keyed YYYY-Www.
	WeeklyXP map[string]int `json:"weeklyXP"`

	// MonthlyXP accumulates awarded XP per month, keyed YYYY-MM.
	MonthlyXP map[string]int `json:"monthlyXP"`

	// DomainVelocity is a running total of mastery increments per domain.
	// Despite the name it is a lifetime sum, not a rate; callers should
	// treat it only as a relative engagement signal.
	DomainVelocity map[string]int `json:"domainVelocity"`
}

// NewAnalytics returns empty analytics with all buckets allocated.
// Maps are always non-nil so that persisted JSON stays stable across
// load/save round trips.
func NewAnalytics() Analytics {
	return Analytics{
		DailyXP:        make(map[string]int),
		WeeklyXP:       make(map[string]int),
		MonthlyXP:      make(map[string]int),
		DomainVelocity: make(map[string]int),
	}
}

// Achievement is a named milestone unlocked on a profile.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// UserProfile is the root aggregate of the progression engine. It is
// exclusively owned by the profile store and mutated only through the
// progression package's transition functions, which return updated
// copies rather than modifying in place.
//
// JSON field names match the persisted blob format of the original
// Omniora client so existing stored profiles load unchanged.
type UserProfile struct {
	// ID is an opaque stable identifier, generated once and never reassigned.
	ID string `json:"id"`

	// Username is the display name shown in the UI.
	Username string `json:"username"`

	// XP is the monotonically non-decreasing experience total.
	XP int `json:"xp"`

	// Level is derived from XP: the largest L with ThresholdForLevel(L) <= XP.
	Level int `json:"level"`

	// Streak counts consecutive active calendar days.
	Streak int `json:"streak"`

	// LastActive is the timestamp of the last streak evaluation.
	LastActive time.Time `json:"lastActive"`

	// Achievements are unlocked milestones.
	Achievements []Achievement `json:"achievements"`

	// Badges are cosmetic labels; new profiles start with one.
	Badges []string `json:"badges"`

	// Mastery maps domain -> rounded mean of that domain's topic scores.
	Mastery map[string]int `json:"mastery"`

	// DetailedMastery maps "domain:category:topic" -> 0-100, clamped,
	// monotonically non-decreasing.
	DetailedMastery map[string]int `json:"detailedMastery"`

	// History holds the most recent activity entries, newest first,
	// bounded to HistoryLimit.
	History []ActivityLogEntry `json:"history"`

	// DailyActivity maps YYYY-MM-DD -> completed activity count.
	DailyActivity map[string]int `json:"dailyActivity"`

	// UnlockedModules are content modules available to the user.
	UnlockedModules []string `json:"unlockedModules"`

	// Language selects the localized content variant.
	Language Language `json:"language"`

	// NotificationsEnabled is the user-controlled engagement toggle.
	NotificationsEnabled bool `json:"notificationsEnabled"`

	// LastNotificationDate is the YYYY-MM-DD date of the last emitted
	// daily notification, used for once-per-day idempotence.
	LastNotificationDate string `json:"lastNotificationDate,omitempty"`

	// Analytics holds the accumulation buckets maintained by the engine.
	Analytics Analytics `json:"analytics"`
}

// NewDefaultProfile creates the fully-populated default profile used
// when no stored record exists: zero progress, one starter badge and
// module, notifications on.
func NewDefaultProfile(now time.Time) *UserProfile {
	return &UserProfile{
		ID:                   "usr-" + uuid.NewString(),
		Username:             "Explorer",
		XP:                   0,
		Level:                1,
		Streak:               0,
		LastActive:           now.UTC(),
		Achievements:         []Achievement{},
		Badges:               []string{"Pioneer"},
		Mastery:              make(map[string]int),
		DetailedMastery:      make(map[string]int),
		History:              []ActivityLogEntry{},
		DailyActivity:        make(map[string]int),
		UnlockedModules:      []string{"Foundation"},
		Language:             LanguageEnglish,
		NotificationsEnabled: true,
		Analytics:            NewAnalytics(),
	}
}

// Validate checks the profile's structural invariants.
// Returns an error describing the first violation found.
func (p *UserProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: profile id is empty", ErrValidation)
	}
	if p.XP < 0 {
		return fmt.Errorf("%w: xp is negative", ErrValidation)
	}
	if p.Level < 1 {
		return fmt.Errorf("%w: level must be at least 1", ErrValidation)
	}
	if p.Streak < 0 {
		return fmt.Errorf("%w: streak is negative", ErrValidation)
	}
	if !p.Language.IsValid() {
		return fmt.Errorf("%w: language %q", ErrInvalidLanguage, p.Language)
	}
	if len(p.History) > HistoryLimit {
		return fmt.Errorf("%w: history exceeds %d entries", ErrValidation, HistoryLimit)
	}
	for key, value := range p.DetailedMastery {
		if value < 0 || value > 100 {
			return fmt.Errorf("%w: mastery %q out of range: %d", ErrValidation, key, value)
		}
	}
	return nil
}

// Clone returns a deep copy of the profile. Transition functions clone
// before mutating so callers never observe partially-applied state.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}

	clone := *p
	clone.Achievements = append([]Achievement{}, p.Achievements...)
	clone.Badges = append([]string{}, p.Badges...)
	clone.History = append([]ActivityLogEntry{}, p.History...)
	clone.UnlockedModules = append([]string{}, p.UnlockedModules...)
	clone.Mastery = cloneIntMap(p.Mastery)
	clone.DetailedMastery = cloneIntMap(p.DetailedMastery)
	clone.DailyActivity = cloneIntMap(p.DailyActivity)
	clone.Analytics = Analytics{
		DailyXP:        cloneIntMap(p.Analytics.DailyXP),
		WeeklyXP:       cloneIntMap(p.Analytics.WeeklyXP),
		MonthlyXP:      cloneIntMap(p.Analytics.MonthlyXP),
		DomainVelocity: cloneIntMap(p.Analytics.DomainVelocity),
	}
	return &clone
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MasteryKey builds the composite detailed-mastery key for a topic.
// Returns ErrInvalidMasteryKey if any segment is blank.
func MasteryKey(domain, category, topic string) (string, error) {
	if strings.TrimSpace(domain) == "" ||
		strings.TrimSpace(category) == "" ||
		strings.TrimSpace(topic) == "" {
		return "", ErrInvalidMasteryKey
	}
	return domain + ":" + category + ":" + topic, nil
}

// MasteryKeyDomain extracts the domain segment of a detailed-mastery key.
func MasteryKeyDomain(key string) string {
	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		return key[:idx]
	}
	return key
}
