package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/llm"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/observability/metrics"
	"llm-lms/backend/internal/quiz"
	"llm-lms/backend/internal/repository"
)

// Quiz extraction results reported to metrics.
const (
	extractionOK          = "ok"
	extractionParseError  = "parse_error"
	extractionFormatError = "format_error"
)

type QuizService struct {
	llm     llm.LLMProvider
	opts    llm.Options
	rec     *recorder
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewQuizService(provider llm.LLMProvider, opts llm.Options, store repository.DocumentStore, m *metrics.Metrics, logger *slog.Logger) *QuizService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", "QuizService")
	return &QuizService{
		llm:     provider,
		opts:    opts,
		rec:     newRecorder(store, m, logger),
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate asks the LLM for n questions about text and extracts the quiz.
// Errors are *llm.Error for gateway failures and *quiz.ParseError or
// *quiz.FormatError for unusable output.
func (s *QuizService) Generate(ctx context.Context, uid model.UserIdentity, text string, n int) (model.QuizResult, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < quiz.MinInputLength {
		return nil, fmt.Errorf("%w: Please provide a topic or passage", app_errors.ErrValidation)
	}
	if n < quiz.MinQuestions || n > quiz.MaxQuestions {
		return nil, fmt.Errorf("%w: Number of questions must be between %d and %d", app_errors.ErrValidation, quiz.MinQuestions, quiz.MaxQuestions)
	}

	req, err := llm.NewCompletionRequest(quiz.BuildPrompt(text, n), s.opts)
	if err != nil {
		return nil, err
	}

	completion, err := s.llm.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := quiz.ExtractQuizArray(completion.Text)
	if err != nil {
		s.observeExtraction(err)
		s.logger.Warn("Quiz extraction failed", "error", err, "model", completion.Model)
		return nil, err
	}
	s.observeExtraction(nil)

	s.rec.Record(ctx, uid, model.CollectionQuizzes, model.QuizLogEntry{
		Quiz:      result,
		Input:     text,
		N:         n,
		CreatedAt: s.now().UTC(),
	})

	return result, nil
}

func (s *QuizService) observeExtraction(err error) {
	switch {
	case err == nil:
		s.metrics.ObserveQuizExtraction(extractionOK)
	case errors.Is(err, app_errors.ErrFormat):
		s.metrics.ObserveQuizExtraction(extractionFormatError)
	default:
		s.metrics.ObserveQuizExtraction(extractionParseError)
	}
}
