package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewDefaultProfile(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	profile := NewDefaultProfile(now)

	if profile.Username != "Explorer" {
		t.Errorf("Username = %q, want Explorer", profile.Username)
	}
	if profile.Level != 1 || profile.XP != 0 || profile.Streak != 0 {
		t.Errorf("progress not zeroed: level %d xp %d streak %d", profile.Level, profile.XP, profile.Streak)
	}
	if len(profile.Badges) != 1 || profile.Badges[0] != "Pioneer" {
		t.Errorf("Badges = %v, want [Pioneer]", profile.Badges)
	}
	if len(profile.UnlockedModules) != 1 || profile.UnlockedModules[0] != "Foundation" {
		t.Errorf("UnlockedModules = %v, want [Foundation]", profile.UnlockedModules)
	}
	if profile.Language != LanguageEnglish {
		t.Errorf("Language = %q, want en", profile.Language)
	}
	if !profile.NotificationsEnabled {
		t.Error("NotificationsEnabled = false, want true")
	}
	if !profile.LastActive.Equal(now) {
		t.Errorf("LastActive = %v, want %v", profile.LastActive, now)
	}
	if err := profile.Validate(); err != nil {
		t.Errorf("default profile failed validation: %v", err)
	}
}

func TestProfileCloneIsIndependent(t *testing.T) {
	t.Parallel()
	profile := NewDefaultProfile(time.Now())
	profile.DetailedMastery["Science:Physics:Gravity"] = 30
	profile.History = []ActivityLogEntry{{ID: "log-1", ConceptTitle: "Gravity"}}

	clone := profile.Clone()
	clone.XP = 500
	clone.DetailedMastery["Science:Physics:Gravity"] = 45
	clone.History[0].ConceptTitle = "changed"
	clone.Analytics.DailyXP["2026-08-27"] = 100

	if profile.XP != 0 {
		t.Errorf("clone write leaked: XP = %d", profile.XP)
	}
	if profile.DetailedMastery["Science:Physics:Gravity"] != 30 {
		t.Error("clone write leaked into DetailedMastery")
	}
	if profile.History[0].ConceptTitle != "Gravity" {
		t.Error("clone write leaked into History")
	}
	if len(profile.Analytics.DailyXP) != 0 {
		t.Error("clone write leaked into Analytics")
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()
	now := time.Now()

	testCases := []struct {
		name   string
		mutate func(*UserProfile)
	}{
		{"empty id", func(p *UserProfile) { p.ID = "" }},
		{"negative xp", func(p *UserProfile) { p.XP = -1 }},
		{"level below one", func(p *UserProfile) { p.Level = 0 }},
		{"negative streak", func(p *UserProfile) { p.Streak = -1 }},
		{"unsupported language", func(p *UserProfile) { p.Language = "fr" }},
		{"mastery above ceiling", func(p *UserProfile) { p.DetailedMastery["A:B:C"] = 101 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := NewDefaultProfile(now)
			tc.mutate(profile)
			if err := profile.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMasteryKey(t *testing.T) {
	t.Parallel()

	key, err := MasteryKey("Science", "Physics", "Gravity")
	if err != nil {
		t.Fatalf("MasteryKey failed: %v", err)
	}
	if key != "Science:Physics:Gravity" {
		t.Errorf("key = %q, want Science:Physics:Gravity", key)
	}

	for _, blank := range [][3]string{
		{"", "Physics", "Gravity"},
		{"Science", " ", "Gravity"},
		{"Science", "Physics", ""},
	} {
		if _, err := MasteryKey(blank[0], blank[1], blank[2]); !errors.Is(err, ErrInvalidMasteryKey) {
			t.Errorf("MasteryKey(%q, %q, %q): got %v, want ErrInvalidMasteryKey",
				blank[0], blank[1], blank[2], err)
		}
	}

	if got := MasteryKeyDomain("Science:Physics:Gravity"); got != "Science" {
		t.Errorf("MasteryKeyDomain = %q, want Science", got)
	}
}
