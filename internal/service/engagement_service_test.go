package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/domain/progression"
	"github.com/omniora/omniora-api/internal/events"
)

func newEngagementFixture(
	t *testing.T,
	profile *domain.UserProfile,
	generator *fakeGenerator,
) (EngagementService, *fakeProfileStore, *capturingEmitter) {
	t.Helper()
	profiles := newFakeProfileStore(profile)
	emitter := &capturingEmitter{}
	svc, err := NewEngagementService(profiles, generator, emitter, testLogger())
	require.NoError(t, err)
	return svc, profiles, emitter
}

func readyGenerator() *fakeGenerator {
	return &fakeGenerator{
		rec: &domain.DailyRecommendation{
			Topic:  "Entanglement",
			Domain: "Quantum Mechanics",
			Reason: "weakest frontier topic",
		},
		alert: &domain.EngagementAlert{
			Title:   "Return to the grid",
			Message: "Entanglement awaits",
		},
	}
}

func TestMaybeNotifyProducesNotificationAndMarksDate(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	profile := domain.NewDefaultProfile(now)
	generator := readyGenerator()
	svc, profiles, emitter := newEngagementFixture(t, profile, generator)

	notification, err := svc.MaybeNotify(context.Background(), now)
	require.NoError(t, err)
	require.NotNil(t, notification)

	assert.Equal(t, domain.NotificationTypeLesson, notification.Type)
	assert.Equal(t, "Return to the grid", notification.Title)
	assert.Equal(t, "Entanglement", notification.Payload.Topic)
	assert.Equal(t, "Capture Essence", notification.ActionLabel)

	stored, err := profiles.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, progression.DateKey(now), stored.LastNotificationDate)

	sent := emitter.byType(events.EventTypeNotificationSent)
	require.Len(t, sent, 1)
}

func TestMaybeNotifyOncePerDay(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	profile := domain.NewDefaultProfile(now)
	generator := readyGenerator()
	svc, _, _ := newEngagementFixture(t, profile, generator)

	first, err := svc.MaybeNotify(context.Background(), now)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Second attempt the same day is gated before any generation call.
	recCallsBefore := generator.recCalls
	second, err := svc.MaybeNotify(context.Background(), now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, recCallsBefore, generator.recCalls)

	// A new day opens the gate again.
	tomorrow := now.Add(24 * time.Hour)
	third, err := svc.MaybeNotify(context.Background(), tomorrow)
	require.NoError(t, err)
	assert.NotNil(t, third)
}

func TestMaybeNotifyRespectsOptOut(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	profile := domain.NewDefaultProfile(now)
	profile.NotificationsEnabled = false
	generator := readyGenerator()
	svc, _, _ := newEngagementFixture(t, profile, generator)

	notification, err := svc.MaybeNotify(context.Background(), now)
	require.NoError(t, err)
	assert.Nil(t, notification)
	assert.Equal(t, 0, generator.recCalls)
}

func TestMaybeNotifyFailureLeavesGateOpen(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	profile := domain.NewDefaultProfile(now)
	generator := readyGenerator()
	generator.alertErr = errors.New("model unavailable")
	svc, profiles, _ := newEngagementFixture(t, profile, generator)

	_, err := svc.MaybeNotify(context.Background(), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotificationUnavailable)

	// The date was not marked, so a retry the same day can succeed.
	stored, err := profiles.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored.LastNotificationDate)

	generator.alertErr = nil
	notification, err := svc.MaybeNotify(context.Background(), now)
	require.NoError(t, err)
	assert.NotNil(t, notification)
}

func TestMaybeNotifyRecommendationFailure(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	generator := readyGenerator()
	generator.recErr = errors.New("model unavailable")
	svc, _, _ := newEngagementFixture(t, domain.NewDefaultProfile(now), generator)

	_, err := svc.MaybeNotify(context.Background(), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotificationUnavailable)
	assert.Equal(t, 0, generator.alertCalls)
}

// racingGenerator marks today's notification date during the alert
// call, simulating another session winning the day inside the unlocked
// fetch window.
type racingGenerator struct {
	*fakeGenerator
	profiles *fakeProfileStore
	date     string
}

func (r *racingGenerator) EngagementAlert(
	ctx context.Context,
	profile *domain.UserProfile,
	rec *domain.DailyRecommendation,
) (*domain.EngagementAlert, error) {
	r.profiles.mu.Lock()
	marked := r.profiles.profile.Clone()
	marked.LastNotificationDate = r.date
	r.profiles.profile = marked
	r.profiles.mu.Unlock()
	return r.fakeGenerator.EngagementAlert(ctx, profile, rec)
}

func TestMaybeNotifyCommitRecheckLosesRace(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	profiles := newFakeProfileStore(domain.NewDefaultProfile(now))
	emitter := &capturingEmitter{}
	raceGen := &racingGenerator{
		fakeGenerator: readyGenerator(),
		profiles:      profiles,
		date:          progression.DateKey(now),
	}
	svc, err := NewEngagementService(profiles, raceGen, emitter, testLogger())
	require.NoError(t, err)

	notification, err := svc.MaybeNotify(context.Background(), now)
	require.NoError(t, err)

	// The commit re-check saw the marked date and stood down.
	assert.Nil(t, notification)
	assert.Empty(t, emitter.byType(events.EventTypeNotificationSent))
}
