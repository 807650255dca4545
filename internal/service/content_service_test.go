package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniora/omniora-api/internal/domain"
)

func newContentFixture(
	t *testing.T,
	profile *domain.UserProfile,
	generator *fakeGenerator,
) (ContentService, *fakeContentStore) {
	t.Helper()
	concepts := newFakeContentStore()
	svc, err := NewContentService(concepts, newFakeProfileStore(profile), generator, testLogger())
	require.NoError(t, err)
	return svc, concepts
}

func TestGenerateConceptStoresResult(t *testing.T) {
	want := testConcept(4, 300)
	generator := &fakeGenerator{concept: want}
	svc, concepts := newContentFixture(t, domain.NewDefaultProfile(time.Now()), generator)

	got, err := svc.GenerateConcept(context.Background(), "Quantum Mechanics", "Entanglement", true)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)

	stored, err := concepts.GetConcept(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Topic, stored.Topic)
}

func TestGenerateConceptPropagatesFailure(t *testing.T) {
	genErr := errors.New("model overloaded")
	generator := &fakeGenerator{conceptErr: genErr}
	svc, _ := newContentFixture(t, domain.NewDefaultProfile(time.Now()), generator)

	_, err := svc.GenerateConcept(context.Background(), "AI", "Transformers", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, genErr)
}

func TestTopicMasteryLookup(t *testing.T) {
	profile := domain.NewDefaultProfile(time.Now())
	profile.DetailedMastery["AI:Foundations:Transformers"] = 60

	assert.Equal(t, 60, topicMastery(profile, "AI", "Transformers"))
	assert.Equal(t, 0, topicMastery(profile, "AI", "Diffusion"))
	assert.Equal(t, 0, topicMastery(profile, "Physics", "Transformers"))
}

func TestDiscoverTopics(t *testing.T) {
	generator := &fakeGenerator{topics: []string{"Entanglement", "Decoherence"}}
	svc, _ := newContentFixture(t, domain.NewDefaultProfile(time.Now()), generator)

	topics, err := svc.DiscoverTopics(context.Background(), "Quantum Mechanics")
	require.NoError(t, err)
	assert.Len(t, topics, 2)
}

func TestDailyRecommendation(t *testing.T) {
	generator := readyGenerator()
	svc, _ := newContentFixture(t, domain.NewDefaultProfile(time.Now()), generator)

	rec, err := svc.DailyRecommendation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Entanglement", rec.Topic)
}

func TestConceptCRUD(t *testing.T) {
	svc, _ := newContentFixture(t, domain.NewDefaultProfile(time.Now()), &fakeGenerator{})

	concept := testConcept(3, 200)
	concept.ID = ""

	require.NoError(t, svc.SaveConcept(context.Background(), concept))
	assert.NotEmpty(t, concept.ID, "save assigns an ID when absent")

	got, err := svc.GetConcept(context.Background(), concept.ID)
	require.NoError(t, err)
	assert.Equal(t, concept.Topic, got.Topic)

	list, err := svc.ListConcepts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteConcept(context.Background(), concept.ID))

	_, err = svc.GetConcept(context.Background(), concept.ID)
	assert.ErrorIs(t, err, ErrConceptNotFound)

	err = svc.DeleteConcept(context.Background(), concept.ID)
	assert.ErrorIs(t, err, ErrConceptNotFound)
}
