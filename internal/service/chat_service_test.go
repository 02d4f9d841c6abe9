package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/llm"
	"llm-lms/backend/internal/llm/mocks"
	"llm-lms/backend/internal/model"
)

var chatOpts = llm.Options{Model: "mistralai/Mixtral-8x7B-Instruct-v0.1", MaxTokens: 500, Temperature: 0.2}

func setupChatService(t *testing.T) (*ChatService, *mocks.MockLLMProvider, *fakeStore) {
	mockLLM := mocks.NewMockLLMProvider(t)
	store := &fakeStore{}
	svc := NewChatService(mockLLM, chatOpts, store, nil, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, mockLLM, store
}

func TestBuildChatPrompt(t *testing.T) {
	t.Run("With context", func(t *testing.T) {
		msgs := BuildChatPrompt("What is 2+2?", "Arithmetic basics")
		require.Len(t, msgs, 2)
		assert.Equal(t, model.RoleSystem, msgs[0].Role)
		assert.Equal(t, tutorPrompt, msgs[0].Content)
		assert.Equal(t, "Context:\nArithmetic basics\n\nQuestion:\nWhat is 2+2?", msgs[1].Content)
	})

	t.Run("Without context", func(t *testing.T) {
		msgs := BuildChatPrompt("What is 2+2?", "")
		assert.Equal(t, "Question:\nWhat is 2+2?\n\nNote: No context provided.", msgs[1].Content)
	})
}

func TestChatService_Answer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - answer is logged", func(t *testing.T) {
		svc, mockLLM, store := setupChatService(t)
		mockLLM.On("Complete", mock.Anything, mock.MatchedBy(func(r *llm.CompletionRequest) bool {
			msgs := r.Messages()
			return len(msgs) == 2 && msgs[0].Role == model.RoleSystem && r.Options() == chatOpts
		})).Return(&llm.Completion{Text: "4", Model: chatOpts.Model}, nil).Once()

		answer, err := svc.Answer(ctx, "uid-1", "  What is 2+2?  ", "")

		require.NoError(t, err)
		assert.Equal(t, "4", answer)
		records := store.all()
		require.Len(t, records, 1)
		assert.Equal(t, model.UserIdentity("uid-1"), records[0].uid)
		assert.Equal(t, model.CollectionChats, records[0].collection)
		assert.Equal(t, model.ChatLogEntry{Question: "What is 2+2?", Answer: "4", CreatedAt: fixedNow}, records[0].record)
	})

	t.Run("Failure - empty question never reaches the LLM", func(t *testing.T) {
		svc, _, store := setupChatService(t)

		_, err := svc.Answer(ctx, "uid-1", "   ", "ctx")

		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Empty(t, store.all())
	})

	t.Run("Failure - network error is returned and nothing is logged", func(t *testing.T) {
		svc, mockLLM, store := setupChatService(t)
		gwErr := &llm.Error{Kind: llm.FailureNetwork, Detail: "connection refused"}
		mockLLM.On("Complete", mock.Anything, mock.Anything).Return(nil, gwErr).Once()

		_, err := svc.Answer(ctx, "uid-1", "Why?", "")

		var llmErr *llm.Error
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, llm.FailureNetwork, llmErr.Kind)
		assert.ErrorIs(t, err, app_errors.ErrGateway)
		assert.Empty(t, store.all())
	})

	t.Run("Empty response becomes ErrNoAnswer", func(t *testing.T) {
		svc, mockLLM, store := setupChatService(t)
		mockLLM.On("Complete", mock.Anything, mock.Anything).
			Return(nil, &llm.Error{Kind: llm.FailureEmptyResponse, Detail: "no content"}).Once()

		_, err := svc.Answer(ctx, "uid-1", "Why?", "")

		assert.ErrorIs(t, err, ErrNoAnswer)
		assert.Empty(t, store.all())
	})

	t.Run("Blank completion becomes ErrNoAnswer", func(t *testing.T) {
		svc, mockLLM, store := setupChatService(t)
		mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: ""}, nil).Once()

		_, err := svc.Answer(ctx, "uid-1", "Why?", "")

		assert.ErrorIs(t, err, ErrNoAnswer)
		assert.Empty(t, store.all())
	})

	t.Run("Store failure does not affect the answer", func(t *testing.T) {
		svc, mockLLM, store := setupChatService(t)
		store.err = errors.New("quota exceeded")
		mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "Because."}, nil).Once()

		answer, err := svc.Answer(ctx, "uid-1", "Why?", "")

		require.NoError(t, err)
		assert.Equal(t, "Because.", answer)
	})

	t.Run("Store panic does not affect the answer", func(t *testing.T) {
		svc, mockLLM, store := setupChatService(t)
		store.panicWith = "driver bug"
		mockLLM.On("Complete", mock.Anything, mock.Anything).Return(&llm.Completion{Text: "Because."}, nil).Once()

		answer, err := svc.Answer(ctx, "uid-1", "Why?", "")

		require.NoError(t, err)
		assert.Equal(t, "Because.", answer)
	})
}
