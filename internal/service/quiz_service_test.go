package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/llm"
	"llm-lms/backend/internal/llm/mocks"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/observability/metrics"
	"llm-lms/backend/internal/quiz"
)

var quizOpts = llm.Options{Model: "openchat/openchat-3.5-0106", MaxTokens: 800, Temperature: 0.3}

const validQuizOutput = "```json\n" +
	`[{"question": "What is H2O?", "options": ["A) Water", "B) Salt", "C) Sugar", "D) Air"], "answer": "a", "explanation": "H2O is water."}]` +
	"\n```"

func setupQuizService(t *testing.T) (*QuizService, *mocks.MockLLMProvider, *fakeStore) {
	mockLLM := mocks.NewMockLLMProvider(t)
	store := &fakeStore{}
	svc := NewQuizService(mockLLM, quizOpts, store, nil, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, mockLLM, store
}

func TestQuizService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - quiz extracted and logged", func(t *testing.T) {
		svc, mockLLM, store := setupQuizService(t)
		mockLLM.On("Complete", mock.Anything, mock.MatchedBy(func(r *llm.CompletionRequest) bool {
			msgs := r.Messages()
			return len(msgs) == 2 &&
				strings.HasPrefix(msgs[1].Content, "Create 3 multiple-choice questions") &&
				strings.HasSuffix(msgs[1].Content, "Input:\nchemistry") &&
				r.Options() == quizOpts
		})).Return(&llm.Completion{Text: validQuizOutput}, nil).Once()

		result, err := svc.Generate(ctx, "uid-1", "chemistry", 3)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "A", result[0].Answer)

		records := store.all()
		require.Len(t, records, 1)
		assert.Equal(t, model.CollectionQuizzes, records[0].collection)
		assert.Equal(t, model.QuizLogEntry{Quiz: result, Input: "chemistry", N: 3, CreatedAt: fixedNow}, records[0].record)
	})

	t.Run("Parse error carries the raw output", func(t *testing.T) {
		svc, mockLLM, store := setupQuizService(t)
		mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "Sorry, I cannot help."}, nil).Once()

		_, err := svc.Generate(ctx, "uid-1", "chemistry", 5)

		var parseErr *quiz.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "Sorry, I cannot help.", parseErr.Raw)
		assert.ErrorIs(t, err, app_errors.ErrParse)
		assert.Empty(t, store.all())
	})

	t.Run("Format error", func(t *testing.T) {
		svc, mockLLM, store := setupQuizService(t)
		mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "[]"}, nil).Once()

		_, err := svc.Generate(ctx, "uid-1", "chemistry", 5)

		var formatErr *quiz.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Empty(t, store.all())
	})

	t.Run("Gateway failure passes through", func(t *testing.T) {
		svc, mockLLM, _ := setupQuizService(t)
		mockLLM.On("Complete", mock.Anything, mock.Anything).
			Return(nil, &llm.Error{Kind: llm.FailureHTTP, StatusCode: 429, ResponseBody: "rate limited"}).Once()

		_, err := svc.Generate(ctx, "uid-1", "chemistry", 5)

		var llmErr *llm.Error
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, 429, llmErr.StatusCode)
	})

	t.Run("Missing credential fails without persisting", func(t *testing.T) {
		svc, mockLLM, store := setupQuizService(t)
		mockLLM.On("Complete", mock.Anything, mock.Anything).
			Return(nil, &llm.Error{Kind: llm.FailureAuthMissing, Detail: "Missing OPENROUTER_API_KEY environment variable"}).Once()

		_, err := svc.Generate(ctx, "uid-1", "chemistry", 5)

		assert.ErrorIs(t, err, app_errors.ErrGateway)
		assert.Empty(t, store.all())
	})
}

func TestQuizService_GenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
	}{
		{"Text too short", "ab", 5},
		{"Whitespace padded short text", "   ab   ", 5},
		{"Zero questions", "chemistry", 0},
		{"Too many questions", "chemistry", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setupQuizService(t)
			_, err := svc.Generate(context.Background(), "uid", tt.text, tt.n)
			assert.ErrorIs(t, err, app_errors.ErrValidation)
		})
	}
}

func TestQuizService_Bounds(t *testing.T) {
	for _, n := range []int{quiz.MinQuestions, quiz.MaxQuestions} {
		svc, mockLLM, _ := setupQuizService(t)
		mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: validQuizOutput}, nil).Once()

		_, err := svc.Generate(context.Background(), "uid", "abc", n)
		assert.NoError(t, err, "n=%d", n)
	}
}

func TestQuizService_ExtractionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	mockLLM := mocks.NewMockLLMProvider(t)
	svc := NewQuizService(mockLLM, quizOpts, &fakeStore{}, m, nil)

	mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: validQuizOutput}, nil).Once()
	mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "no quiz here"}, nil).Once()

	_, err := svc.Generate(context.Background(), "uid", "chemistry", 1)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), "uid", "chemistry", 1)
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, reg, "lms_quiz_extractions_total", "result", extractionOK))
	assert.Equal(t, 1.0, counterValue(t, reg, "lms_quiz_extractions_total", "result", extractionParseError))
}

// counterValue reads one labelled counter sample from reg.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
