package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/events"
	"github.com/omniora/omniora-api/internal/generation"
	"github.com/omniora/omniora-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProfileStore is an in-memory ProfileStore. Transform applies the
// function under a mutex, mirroring the real store's single-writer
// guarantee.
type fakeProfileStore struct {
	mu      sync.Mutex
	profile *domain.UserProfile

	loadErr      error
	transformErr error
}

func newFakeProfileStore(profile *domain.UserProfile) *fakeProfileStore {
	return &fakeProfileStore{profile: profile}
}

var _ store.ProfileStore = (*fakeProfileStore)(nil)

func (f *fakeProfileStore) Load(ctx context.Context) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.profile == nil {
		return domain.NewDefaultProfile(time.Now()), nil
	}
	return f.profile.Clone(), nil
}

func (f *fakeProfileStore) Save(ctx context.Context, profile *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = profile.Clone()
	return nil
}

func (f *fakeProfileStore) Transform(ctx context.Context, fn store.TransformFn) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transformErr != nil {
		return nil, f.transformErr
	}

	current := f.profile
	if current == nil {
		current = domain.NewDefaultProfile(time.Now())
	}

	next, err := fn(current.Clone())
	if err != nil {
		return nil, err
	}
	f.profile = next
	return next.Clone(), nil
}

// capturingEmitter records emitted events for assertions.
type capturingEmitter struct {
	mu     sync.Mutex
	events []*events.ProgressionEvent
}

var _ events.EventEmitter = (*capturingEmitter)(nil)

func (c *capturingEmitter) EmitEvent(ctx context.Context, event *events.ProgressionEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturingEmitter) byType(eventType string) []*events.ProgressionEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var matched []*events.ProgressionEvent
	for _, e := range c.events {
		if e.Type == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

// fakeGenerator is a scripted generation.Generator.
type fakeGenerator struct {
	concept *domain.Concept
	topics  []string
	rec     *domain.DailyRecommendation
	alert   *domain.EngagementAlert

	conceptErr error
	topicsErr  error
	recErr     error
	alertErr   error

	recCalls   int
	alertCalls int
}

var _ generation.Generator = (*fakeGenerator)(nil)

func (f *fakeGenerator) GenerateConcept(
	ctx context.Context,
	conceptDomain, topic string,
	mastery int,
	extended bool,
) (*domain.Concept, error) {
	if f.conceptErr != nil {
		return nil, f.conceptErr
	}
	return f.concept, nil
}

func (f *fakeGenerator) DiscoverTopics(ctx context.Context, conceptDomain string) ([]string, error) {
	if f.topicsErr != nil {
		return nil, f.topicsErr
	}
	return f.topics, nil
}

func (f *fakeGenerator) DailyRecommendation(
	ctx context.Context,
	profile *domain.UserProfile,
) (*domain.DailyRecommendation, error) {
	f.recCalls++
	if f.recErr != nil {
		return nil, f.recErr
	}
	return f.rec, nil
}

func (f *fakeGenerator) EngagementAlert(
	ctx context.Context,
	profile *domain.UserProfile,
	rec *domain.DailyRecommendation,
) (*domain.EngagementAlert, error) {
	f.alertCalls++
	if f.alertErr != nil {
		return nil, f.alertErr
	}
	return f.alert, nil
}

// fakeContentStore is an in-memory store.ContentStore.
type fakeContentStore struct {
	mu       sync.Mutex
	concepts map[string]*domain.Concept
	saveErr  error
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{concepts: make(map[string]*domain.Concept)}
}

var _ store.ContentStore = (*fakeContentStore)(nil)

func (f *fakeContentStore) SaveConcept(ctx context.Context, concept *domain.Concept) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.concepts[concept.ID] = concept
	return nil
}

func (f *fakeContentStore) GetConcept(ctx context.Context, id string) (*domain.Concept, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	concept, ok := f.concepts[id]
	if !ok {
		return nil, store.ErrConceptNotFound
	}
	return concept, nil
}

func (f *fakeContentStore) ListConcepts(ctx context.Context) ([]*domain.Concept, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Concept, 0, len(f.concepts))
	for _, c := range f.concepts {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContentStore) DeleteConcept(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.concepts[id]; !ok {
		return store.ErrConceptNotFound
	}
	delete(f.concepts, id)
	return nil
}

// testConcept builds a valid concept for lesson tests.
func testConcept(quizLen, xpReward int) *domain.Concept {
	quiz := make([]domain.QuizQuestion, quizLen)
	for i := range quiz {
		quiz[i] = domain.QuizQuestion{
			QuestionEN:    "q",
			QuestionAR:    "q-ar",
			OptionsEN:     []string{"a", "b"},
			OptionsAR:     []string{"a-ar", "b-ar"},
			CorrectAnswer: 0,
		}
	}
	return &domain.Concept{
		ID:       domain.NewConceptID(),
		Domain:   "Quantum Mechanics",
		Category: "Foundations",
		Topic:    "Entanglement",
		TitleEN:  "Entanglement",
		TitleAR:  "التشابك الكمي",
		LessonEN: "lesson",
		LessonAR: "lesson-ar",
		Quiz:     quiz,
		XPReward: xpReward,
	}
}
