package llm

import (
	"net/http"

	"llm-lms/backend/internal/model"
)

// openRouterShape talks to an OpenAI-compatible chat-completions endpoint.
type openRouterShape struct {
	apiKey  string
	referer string
	title   string
}

type chatCompletionsRequest struct {
	Model       string              `json:"model"`
	Messages    []model.ChatMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

func (s *openRouterShape) kind() ProviderKind { return ProviderOpenRouter }

func (s *openRouterShape) authorize(h http.Header) *Error {
	if s.apiKey == "" {
		return &Error{Kind: FailureAuthMissing, Detail: "Missing OPENROUTER_API_KEY environment variable"}
	}
	h.Set("Authorization", "Bearer "+s.apiKey)
	// OpenRouter uses these for app attribution.
	if s.referer != "" {
		h.Set("HTTP-Referer", s.referer)
	}
	if s.title != "" {
		h.Set("X-Title", s.title)
	}
	return nil
}

func (s *openRouterShape) body(req *CompletionRequest) any {
	opts := req.Options()
	return chatCompletionsRequest{
		Model:       opts.Model,
		Messages:    req.Messages(),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
}
