package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"google.golang.org/genai"

	"github.com/omniora/omniora-api/internal/config"
	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/generation"
)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to synthesize learning content.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// generate performs the model call; split out from the client so
	// tests can substitute canned responses
	generate generateFunc

	// now, rng and after are injectable for tests
	now   func() time.Time
	rng   *rand.Rand
	after func(time.Duration) <-chan time.Time
}

// generateFunc matches the signature of genai Models.GenerateContent.
type generateFunc func(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error)

// Ensure GeminiGenerator implements generation.Generator interface
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and retry settings
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:   logger.With(slog.String("component", "gemini_generator")),
		config:   cfg,
		client:   client,
		model:    cfg.ModelName,
		generate: client.Models.GenerateContent,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		after:    time.After,
	}, nil
}

// GenerateConcept implements generation.Generator.GenerateConcept.
//
// The mastery percentage is threaded into the prompt so the model can
// scale lesson depth, and determines the difficulty label on the
// resulting concept. The XP reward depends only on lesson length and
// quiz size, never on model output.
func (g *GeminiGenerator) GenerateConcept(
	ctx context.Context,
	conceptDomain, topic string,
	mastery int,
	extended bool,
) (*domain.Concept, error) {
	if conceptDomain == "" {
		return nil, domain.ErrEmptyConceptDomain
	}
	if topic == "" {
		return nil, domain.ErrEmptyConceptTopic
	}

	prompt := fmt.Sprintf("Synthesize a bilingual node for %q in %s. Mastery level: %d%%.",
		topic, conceptDomain, mastery)

	raw, err := g.callWithRetry(ctx, "generate_concept", prompt, conceptSystemInstruction, conceptSchema)
	if err != nil {
		return nil, err
	}

	var payload conceptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse concept response: %v",
			generation.ErrInvalidResponse, err)
	}
	if payload.TitleEN == "" || payload.LessonEN == "" {
		return nil, fmt.Errorf("%w: concept response missing lesson content",
			generation.ErrInvalidResponse)
	}
	if len(payload.Quiz) == 0 {
		return nil, fmt.Errorf("%w: concept response has no quiz questions",
			generation.ErrInvalidResponse)
	}

	difficulty := domain.DifficultyNovice
	if mastery > 50 {
		difficulty = domain.DifficultyExpert
	}

	baseReward := 200
	if extended {
		baseReward = 300
	}

	related := payload.RelatedConcepts
	if related == nil {
		related = []string{}
	}

	concept := &domain.Concept{
		ID:                domain.NewConceptID(),
		Domain:            conceptDomain,
		Category:          payload.Category,
		Topic:             topic,
		TitleEN:           payload.TitleEN,
		TitleAR:           payload.TitleAR,
		LessonEN:          payload.LessonEN,
		LessonAR:          payload.LessonAR,
		ExtendedLessonEN:  payload.ExtendedLessonEN,
		ExtendedLessonAR:  payload.ExtendedLessonAR,
		Quiz:              payload.Quiz,
		AdvancedResources: payload.AdvancedResources,
		XPReward:          baseReward + len(payload.Quiz)*25,
		RelatedConcepts:   related,
		Difficulty:        difficulty,
	}

	if err := concept.Validate(); err != nil {
		return nil, fmt.Errorf("%w: generated concept failed validation: %v",
			generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "concept generated",
		slog.String("domain", conceptDomain),
		slog.String("topic", topic),
		slog.Int("quiz_length", concept.QuizLength()),
		slog.Int("xp_reward", concept.XPReward))

	return concept, nil
}

// DiscoverTopics implements generation.Generator.DiscoverTopics.
func (g *GeminiGenerator) DiscoverTopics(ctx context.Context, conceptDomain string) ([]string, error) {
	if conceptDomain == "" {
		return nil, domain.ErrEmptyConceptDomain
	}

	prompt := fmt.Sprintf(
		"List 10 foundational and 5 frontier topics for the domain: %s. Focus on high-impact knowledge.",
		conceptDomain)

	raw, err := g.callWithRetry(ctx, "discover_topics", prompt, topicsSystemInstruction, topicsSchema)
	if err != nil {
		return nil, err
	}

	var payload topicsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse topics response: %v",
			generation.ErrInvalidResponse, err)
	}
	if len(payload.Topics) == 0 {
		return nil, fmt.Errorf("%w: topics response is empty", generation.ErrInvalidResponse)
	}

	return payload.Topics, nil
}

// DailyRecommendation implements generation.Generator.DailyRecommendation.
//
// The prompt carries a condensed mastery summary rather than the whole
// profile: per-domain means plus the three weakest detailed entries.
func (g *GeminiGenerator) DailyRecommendation(
	ctx context.Context,
	profile *domain.UserProfile,
) (*domain.DailyRecommendation, error) {
	if profile == nil {
		return nil, errors.New("profile cannot be nil")
	}

	summary := summarizeMastery(profile)
	encoded, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mastery summary: %w", err)
	}

	prompt := fmt.Sprintf(
		"Analyze neural data: %s. Select a topic from the 20+ domains to study.", encoded)

	raw, err := g.callWithRetry(
		ctx, "daily_recommendation", prompt, recommendationSystemInstruction, recommendationSchema)
	if err != nil {
		return nil, err
	}

	var rec domain.DailyRecommendation
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: failed to parse recommendation response: %v",
			generation.ErrInvalidResponse, err)
	}
	if rec.Topic == "" || rec.Domain == "" {
		return nil, fmt.Errorf("%w: recommendation missing topic or domain",
			generation.ErrInvalidResponse)
	}

	return &rec, nil
}

// EngagementAlert implements generation.Generator.EngagementAlert.
func (g *GeminiGenerator) EngagementAlert(
	ctx context.Context,
	profile *domain.UserProfile,
	rec *domain.DailyRecommendation,
) (*domain.EngagementAlert, error) {
	if profile == nil {
		return nil, errors.New("profile cannot be nil")
	}
	if rec == nil {
		return nil, errors.New("recommendation cannot be nil")
	}

	prompt := fmt.Sprintf("Engagement alert for streak %d, targeting %s.",
		profile.Streak, rec.Topic)

	raw, err := g.callWithRetry(ctx, "engagement_alert", prompt, alertSystemInstruction, alertSchema)
	if err != nil {
		return nil, err
	}

	var alert domain.EngagementAlert
	if err := json.Unmarshal(raw, &alert); err != nil {
		return nil, fmt.Errorf("%w: failed to parse alert response: %v",
			generation.ErrInvalidResponse, err)
	}
	if alert.Title == "" || alert.Message == "" {
		return nil, fmt.Errorf("%w: alert missing title or message",
			generation.ErrInvalidResponse)
	}

	return &alert, nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// It attempts to call the API up to config.MaxRetries times, using
// exponential backoff with jitter between retries for transient errors.
// Permanent errors (like content being blocked by safety filters or an
// unparseable response body) are returned immediately without retrying.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation and logging
//   - operation: Short name of the calling operation, used in log records
//   - prompt: The prompt string to send to the Gemini API
//   - systemInstruction: The persona instruction for this operation
//   - schema: The response schema the model must conform to
//
// Returns:
//   - The raw JSON response body from the Gemini API
//   - An error if all retries fail or if a permanent error occurs
func (g *GeminiGenerator) callWithRetry(
	ctx context.Context,
	operation string,
	prompt string,
	systemInstruction string,
	schema *genai.Schema,
) ([]byte, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default",
			slog.Int("max_retries", 3))
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default",
			slog.Int("base_delay_seconds", 2))
		baseDelaySeconds = 2
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptNum := attempt + 1
		g.logger.InfoContext(ctx, "making Gemini API call",
			slog.String("operation", operation),
			slog.Int("attempt", attemptNum),
			slog.Int("max_attempts", maxRetries+1))

		raw, transient, err := g.callOnce(ctx, prompt, cfg)
		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful",
				slog.String("operation", operation),
				slog.Int("attempt", attemptNum))
			return raw, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("operation", operation),
			slog.Int("attempt", attemptNum),
			slog.String("error", err.Error()))

		if !transient {
			g.logger.WarnContext(ctx, "permanent error occurred, not retrying",
				slog.String("operation", operation))
			return nil, err
		}

		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "maximum retry attempts reached",
				slog.String("operation", operation),
				slog.Int("max_retries", maxRetries))
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + g.rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			slog.String("operation", operation),
			slog.Int("attempt", attemptNum),
			slog.Duration("delay", delay))

		select {
		case <-g.after(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				slog.String("operation", operation),
				slog.Int("attempt", attemptNum))
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: failed after %d attempts",
		generation.ErrTransientFailure, maxRetries+1)
}

// callOnce performs a single Gemini request and classifies the outcome.
// The boolean result reports whether a retry could plausibly succeed.
func (g *GeminiGenerator) callOnce(
	ctx context.Context,
	prompt string,
	cfg *genai.GenerateContentConfig,
) (raw []byte, transient bool, err error) {
	resp, err := g.generate(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		// Network and server-side failures are assumed transient.
		return nil, true, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, false, fmt.Errorf("%w: response stopped by safety filters",
			generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return nil, false, fmt.Errorf("%w: empty response body", generation.ErrInvalidResponse)
	}

	if !json.Valid([]byte(text)) {
		return nil, false, fmt.Errorf("%w: response is not valid JSON", generation.ErrInvalidResponse)
	}

	return []byte(text), false, nil
}

// summarizeMastery condenses the profile's mastery state into the
// payload the curator prompt expects: per-domain means plus the three
// weakest detailed entries sorted ascending.
func summarizeMastery(profile *domain.UserProfile) masterySummary {
	type entry struct {
		key     string
		percent int
	}

	entries := make([]entry, 0, len(profile.DetailedMastery))
	for key, percent := range profile.DetailedMastery {
		entries = append(entries, entry{key: key, percent: percent})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].percent != entries[j].percent {
			return entries[i].percent < entries[j].percent
		}
		return entries[i].key < entries[j].key
	})

	limit := 3
	if len(entries) < limit {
		limit = len(entries)
	}

	weakest := make([][2]any, 0, limit)
	for _, e := range entries[:limit] {
		weakest = append(weakest, [2]any{e.key, e.percent})
	}

	mastery := profile.Mastery
	if mastery == nil {
		mastery = map[string]int{}
	}

	return masterySummary{Mastery: mastery, Weakest: weakest}
}
