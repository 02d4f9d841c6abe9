package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/llm"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/observability/metrics"
	"llm-lms/backend/internal/repository"
)

// ErrNoAnswer is returned when the LLM call succeeded at the transport level
// but produced no usable answer text.
var ErrNoAnswer = errors.New("no answer returned from LLM")

const tutorPrompt = "You are an AI tutor. Answer concisely and step-by-step. Use only the provided context."

type ChatService struct {
	llm    llm.LLMProvider
	opts   llm.Options
	rec    *recorder
	logger *slog.Logger
	now    func() time.Time
}

func NewChatService(provider llm.LLMProvider, opts llm.Options, store repository.DocumentStore, m *metrics.Metrics, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", "ChatService")
	return &ChatService{
		llm:    provider,
		opts:   opts,
		rec:    newRecorder(store, m, logger),
		logger: logger,
		now:    time.Now,
	}
}

// BuildChatPrompt returns the tutor conversation for question, embedding
// contextText when present.
func BuildChatPrompt(question, contextText string) []model.ChatMessage {
	user := fmt.Sprintf("Question:\n%s\n\nNote: No context provided.", question)
	if contextText != "" {
		user = fmt.Sprintf("Context:\n%s\n\nQuestion:\n%s", contextText, question)
	}
	return []model.ChatMessage{
		{Role: model.RoleSystem, Content: tutorPrompt},
		{Role: model.RoleUser, Content: user},
	}
}

// Answer asks the LLM the user's question. Gateway failures are returned as
// *llm.Error, except an empty response which becomes ErrNoAnswer. Only
// answered questions are logged.
func (s *ChatService) Answer(ctx context.Context, uid model.UserIdentity, question, contextText string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: Question required", app_errors.ErrValidation)
	}

	req, err := llm.NewCompletionRequest(BuildChatPrompt(question, contextText), s.opts)
	if err != nil {
		return "", err
	}

	completion, err := s.llm.Complete(ctx, req)
	if err != nil {
		var llmErr *llm.Error
		if errors.As(err, &llmErr) && llmErr.Kind == llm.FailureEmptyResponse {
			return "", ErrNoAnswer
		}
		return "", err
	}
	if completion == nil || completion.Text == "" {
		return "", ErrNoAnswer
	}

	s.rec.Record(ctx, uid, model.CollectionChats, model.ChatLogEntry{
		Question:  question,
		Answer:    completion.Text,
		CreatedAt: s.now().UTC(),
	})

	return completion.Text, nil
}
