package llm

import (
	"net/http"

	"llm-lms/backend/internal/model"
)

// ollamaShape talks to a local Ollama server's /api/chat endpoint. No
// credential is needed; sampling parameters are nested under "options".
type ollamaShape struct{}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []model.ChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  ollamaOptions       `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

func (ollamaShape) kind() ProviderKind { return ProviderOllama }

func (ollamaShape) authorize(http.Header) *Error { return nil }

func (ollamaShape) body(req *CompletionRequest) any {
	opts := req.Options()
	return ollamaChatRequest{
		Model:    opts.Model,
		Messages: req.Messages(),
		// A streamed answer would arrive as NDJSON chunks; ask for one body.
		Stream: false,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}
}
