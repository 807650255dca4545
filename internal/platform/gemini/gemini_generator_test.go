package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/omniora/omniora-api/internal/config"
	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/generation"
)

const validConceptJSON = `{
	"title_en": "Gravity",
	"title_ar": "الجاذبية",
	"category": "Physics",
	"lesson_en": "Mass attracts mass.",
	"lesson_ar": "الكتلة تجذب الكتلة.",
	"quiz": [
		{"question_en": "What pulls the apple down?", "options_en": ["Gravity", "Wind"], "correctAnswer": 0},
		{"question_en": "Who formalized it?", "options_en": ["Newton", "Bohr"], "correctAnswer": 0}
	]
}`

// newTestGenerator builds a generator whose model call is the given
// function and whose retry delays resolve immediately.
func newTestGenerator(cfg config.LLMConfig, generate generateFunc) *GeminiGenerator {
	return &GeminiGenerator{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		config:   cfg,
		model:    cfg.ModelName,
		generate: generate,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(1)),
		after: func(time.Duration) <-chan time.Time {
			elapsed := make(chan time.Time, 1)
			elapsed <- time.Time{}
			return elapsed
		},
	}
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:      "test-api-key",
		ModelName:         "test-model",
		MaxRetries:        2,
		RetryDelaySeconds: 1,
	}
}

func textResponse(body string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: body}}}},
		},
	}
}

func safetyBlockedResponse() *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety},
		},
	}
}

func TestGenerateConcept(t *testing.T) {
	t.Parallel()

	t.Run("assembles concept from model payload", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(),
			func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse(validConceptJSON), nil
			})

		concept, err := generator.GenerateConcept(context.Background(), "Science", "Gravity", 20, false)
		require.NoError(t, err)

		assert.Equal(t, "Science", concept.Domain)
		assert.Equal(t, "Gravity", concept.Topic)
		assert.Equal(t, "Gravity", concept.TitleEN)
		assert.Equal(t, domain.DifficultyNovice, concept.Difficulty)
		assert.Equal(t, 250, concept.XPReward, "200 base plus 25 per quiz question")
		assert.NotEmpty(t, concept.ID)
		assert.NotNil(t, concept.RelatedConcepts)
	})

	t.Run("extended lesson and high mastery adjust reward and difficulty", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(),
			func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse(validConceptJSON), nil
			})

		concept, err := generator.GenerateConcept(context.Background(), "Science", "Gravity", 80, true)
		require.NoError(t, err)

		assert.Equal(t, domain.DifficultyExpert, concept.Difficulty)
		assert.Equal(t, 350, concept.XPReward, "300 base plus 25 per quiz question")
	})

	t.Run("rejects blank domain and topic", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(),
			func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				t.Fatal("model must not be called for invalid input")
				return nil, nil
			})

		_, err := generator.GenerateConcept(context.Background(), "", "Gravity", 0, false)
		assert.ErrorIs(t, err, domain.ErrEmptyConceptDomain)

		_, err = generator.GenerateConcept(context.Background(), "Science", "", 0, false)
		assert.ErrorIs(t, err, domain.ErrEmptyConceptTopic)
	})

	t.Run("rejects payload missing lesson content", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(),
			func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse(`{"title_en": "Gravity", "quiz": [{"question_en": "q", "options_en": ["a"]}]}`), nil
			})

		_, err := generator.GenerateConcept(context.Background(), "Science", "Gravity", 0, false)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("rejects payload without quiz questions", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(),
			func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse(`{"title_en": "Gravity", "lesson_en": "Mass attracts mass.", "quiz": []}`), nil
			})

		_, err := generator.GenerateConcept(context.Background(), "Science", "Gravity", 0, false)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})
}

func TestCallWithRetryTransientThenSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	generator := newTestGenerator(testLLMConfig(),
		func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("503 service unavailable")
			}
			return textResponse(validConceptJSON), nil
		})

	concept, err := generator.GenerateConcept(context.Background(), "Science", "Gravity", 0, false)
	require.NoError(t, err)
	assert.Equal(t, "Gravity", concept.TitleEN)
	assert.Equal(t, 2, calls, "first attempt fails, second succeeds")
}

func TestCallWithRetryExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	generator := newTestGenerator(testLLMConfig(),
		func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			calls++
			return nil, errors.New("503 service unavailable")
		})

	_, err := generator.GenerateConcept(context.Background(), "Science", "Gravity", 0, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Equal(t, 3, calls, "MaxRetries of 2 allows three attempts")
}

func TestCallWithRetryPermanentErrorsShortCircuit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		response *genai.GenerateContentResponse
		expected error
	}{
		{"safety block", safetyBlockedResponse(), generation.ErrContentBlocked},
		{"invalid json body", textResponse("not json at all"), generation.ErrInvalidResponse},
		{"empty body", textResponse(""), generation.ErrInvalidResponse},
		{"no candidates", &genai.GenerateContentResponse{}, generation.ErrInvalidResponse},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			generator := newTestGenerator(testLLMConfig(),
				func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					calls++
					return tc.response, nil
				})

			_, err := generator.GenerateConcept(context.Background(), "Science", "Gravity", 0, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, 1, calls, "permanent errors must not be retried")
		})
	}
}

func TestDailyRecommendationValidatesPayload(t *testing.T) {
	t.Parallel()

	profile := domain.NewDefaultProfile(time.Now())

	t.Run("returns parsed recommendation", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(),
			func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse(`{"topic": "Entanglement", "domain": "Quantum Mechanics", "reason": "weakest area"}`), nil
			})

		rec, err := generator.DailyRecommendation(context.Background(), profile)
		require.NoError(t, err)
		assert.Equal(t, "Entanglement", rec.Topic)
		assert.Equal(t, "Quantum Mechanics", rec.Domain)
	})

	t.Run("rejects recommendation missing topic or domain", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(),
			func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return textResponse(`{"reason": "no target"}`), nil
			})

		_, err := generator.DailyRecommendation(context.Background(), profile)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("rejects nil profile", func(t *testing.T) {
		generator := newTestGenerator(testLLMConfig(), nil)
		_, err := generator.DailyRecommendation(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestSummarizeMasteryPicksWeakestThree(t *testing.T) {
	t.Parallel()

	profile := domain.NewDefaultProfile(time.Now())
	profile.Mastery = map[string]int{"Science": 40, "History": 70}
	profile.DetailedMastery = map[string]int{
		"Science:Physics:Gravity":     15,
		"Science:Chemistry:Bonding":   65,
		"History:Ancient:Rome":        70,
		"Science:Physics:Magnetism":   15,
		"Science:Biology:Respiration": 30,
	}

	summary := summarizeMastery(profile)

	require.Len(t, summary.Weakest, 3)
	// Ascending by percent, ties broken by key.
	assert.Equal(t, [2]any{"Science:Physics:Gravity", 15}, summary.Weakest[0])
	assert.Equal(t, [2]any{"Science:Physics:Magnetism", 15}, summary.Weakest[1])
	assert.Equal(t, [2]any{"Science:Biology:Respiration", 30}, summary.Weakest[2])
	assert.Equal(t, profile.Mastery, summary.Mastery)
}

func TestSummarizeMasteryWithSparseProfile(t *testing.T) {
	t.Parallel()

	profile := domain.NewDefaultProfile(time.Now())
	profile.DetailedMastery = map[string]int{"Science:Physics:Gravity": 15}

	summary := summarizeMastery(profile)

	require.Len(t, summary.Weakest, 1)
	assert.Equal(t, [2]any{"Science:Physics:Gravity", 15}, summary.Weakest[0])
	assert.NotNil(t, summary.Mastery)
}
