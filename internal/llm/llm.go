package llm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
)

// LLMProvider defines the interface for requesting a single chat completion.
type LLMProvider interface {
	Complete(ctx context.Context, req *CompletionRequest) (*Completion, error)
}

// ProviderKind selects the wire shape used to talk to the configured endpoint.
type ProviderKind string

const (
	// ProviderOpenRouter is an OpenAI-compatible chat-completions API that needs a bearer key.
	ProviderOpenRouter ProviderKind = "openrouter"
	// ProviderOllama is a local model server; sampling parameters go under "options".
	ProviderOllama ProviderKind = "ollama"
)

// ResolveProviderKind turns the configured provider setting into a ProviderKind.
// "auto" (or empty) derives the kind from the endpoint host, once, at startup.
func ResolveProviderKind(setting, apiURL string) (ProviderKind, error) {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case string(ProviderOpenRouter):
		return ProviderOpenRouter, nil
	case string(ProviderOllama):
		return ProviderOllama, nil
	case "", "auto":
		u, err := url.Parse(apiURL)
		if err != nil {
			return "", fmt.Errorf("could not parse llm url %q: %w", apiURL, err)
		}
		host := strings.ToLower(u.Hostname())
		if host == "openrouter.ai" || strings.HasSuffix(host, ".openrouter.ai") {
			return ProviderOpenRouter, nil
		}
		return ProviderOllama, nil
	default:
		return "", fmt.Errorf("unknown llm provider %q", setting)
	}
}

// Options are the sampling parameters of one completion.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// CompletionRequest is one completion call. Build it with NewCompletionRequest;
// it is not modified after construction.
type CompletionRequest struct {
	messages []model.ChatMessage
	options  Options
}

// NewCompletionRequest validates and copies the conversation. The system message
// must come first.
func NewCompletionRequest(messages []model.ChatMessage, opts Options) (*CompletionRequest, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: conversation must not be empty", app_errors.ErrValidation)
	}
	if messages[0].Role != model.RoleSystem {
		return nil, fmt.Errorf("%w: first message must have role %q, got %q", app_errors.ErrValidation, model.RoleSystem, messages[0].Role)
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("%w: model must not be empty", app_errors.ErrValidation)
	}
	if opts.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: max_tokens must be positive, got %d", app_errors.ErrValidation, opts.MaxTokens)
	}
	if opts.Temperature < 0 || opts.Temperature > 2 {
		return nil, fmt.Errorf("%w: temperature must be within [0,2], got %v", app_errors.ErrValidation, opts.Temperature)
	}

	copied := make([]model.ChatMessage, len(messages))
	copy(copied, messages)
	return &CompletionRequest{messages: copied, options: opts}, nil
}

// Messages returns a copy of the conversation.
func (r *CompletionRequest) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *CompletionRequest) Options() Options { return r.options }

// Completion is the normalized assistant text of a successful call.
type Completion struct {
	Text     string
	Model    string
	Provider ProviderKind
}

// FailureKind classifies gateway failures.
type FailureKind string

const (
	FailureAuthMissing   FailureKind = "auth_missing"
	FailureNetwork       FailureKind = "network_error"
	FailureHTTP          FailureKind = "http_error"
	FailureEmptyResponse FailureKind = "empty_response"
)

// Error is the failure side of a completion. It wraps app_errors.ErrGateway.
type Error struct {
	Kind FailureKind
	// Detail is the underlying cause text.
	Detail string
	// StatusCode is set for FailureHTTP only.
	StatusCode   int
	ResponseBody string
	URL          string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm %s (status %d): %s", e.Kind, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("llm %s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return app_errors.ErrGateway }
