package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/observability/metrics"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 30 * time.Second

// payloadShape is the provider-specific part of a completion call.
type payloadShape interface {
	kind() ProviderKind
	// authorize sets credential headers, or fails with FailureAuthMissing.
	authorize(h http.Header) *Error
	body(req *CompletionRequest) any
}

// GatewayConfig describes the configured LLM endpoint.
type GatewayConfig struct {
	URL      string
	Provider ProviderKind
	APIKey   string
	Referer  string
	Title    string
	Timeout  time.Duration
}

// Gateway issues completion calls against one endpoint. It holds no mutable
// state and is safe for concurrent use.
type Gateway struct {
	client  *http.Client
	url     string
	shape   payloadShape
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewGateway(cfg GatewayConfig, m *metrics.Metrics, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("llm url must not be empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var shape payloadShape
	switch cfg.Provider {
	case ProviderOpenRouter:
		shape = &openRouterShape{apiKey: cfg.APIKey, referer: cfg.Referer, title: cfg.Title}
	case ProviderOllama:
		shape = ollamaShape{}
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}

	return &Gateway{
		client:  &http.Client{Timeout: timeout},
		url:     cfg.URL,
		shape:   shape,
		metrics: m,
		logger:  logger.With("component", "llm_gateway", "provider", string(shape.kind())),
	}, nil
}

// Provider reports which wire shape this gateway speaks.
func (g *Gateway) Provider() ProviderKind { return g.shape.kind() }

// Complete issues one POST and normalizes the response. Failures are returned
// as *Error; the call is never retried.
func (g *Gateway) Complete(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	start := time.Now()
	completion, failure := g.complete(ctx, req)

	outcome := "success"
	if failure != nil {
		outcome = string(failure.Kind)
		g.logger.Warn("LLM completion failed", "kind", failure.Kind, "status_code", failure.StatusCode, "error", failure.Detail)
	} else {
		g.logger.Debug("LLM completion succeeded", "model", completion.Model, "chars", len(completion.Text))
	}
	g.metrics.ObserveLLMRequest(string(g.shape.kind()), outcome, time.Since(start).Seconds())

	if failure != nil {
		return nil, failure
	}
	return completion, nil
}

func (g *Gateway) complete(ctx context.Context, req *CompletionRequest) (*Completion, *Error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	if failure := g.shape.authorize(headers); failure != nil {
		failure.URL = g.url
		return nil, failure
	}

	body, err := json.Marshal(g.shape.body(req))
	if err != nil {
		return nil, &Error{Kind: FailureNetwork, Detail: fmt.Sprintf("could not marshal request: %v", err), URL: g.url}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: FailureNetwork, Detail: fmt.Sprintf("could not create http request: %v", err), URL: g.url}
	}
	httpReq.Header = headers

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: FailureNetwork, Detail: err.Error(), URL: g.url}
	}
	defer func() {
		if cErr := resp.Body.Close(); cErr != nil {
			g.logger.Warn("Failed to close llm response body", "error", cErr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: FailureNetwork, Detail: fmt.Sprintf("could not read response body: %v", err), URL: g.url}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:         FailureHTTP,
			Detail:       fmt.Sprintf("api returned non-2xx status %d", resp.StatusCode),
			StatusCode:   resp.StatusCode,
			ResponseBody: string(respBody),
			URL:          g.url,
		}
	}

	// A 2xx body that is not JSON counts as an empty response, not a transport
	// failure: the endpoint answered, it just produced nothing usable. Chat
	// reports that as "no answer" and quiz as "LLM returned empty response".
	text, modelName, err := normalize(respBody)
	if err != nil {
		return nil, &Error{Kind: FailureEmptyResponse, Detail: err.Error(), ResponseBody: string(respBody), URL: g.url}
	}

	if modelName == "" {
		modelName = req.Options().Model
	}
	return &Completion{Text: text, Model: modelName, Provider: g.shape.kind()}, nil
}

// completionEnvelope covers both recognized response shapes:
// {"message":{"content":...}} and {"choices":[{"message":{"content":...}}]}.
type completionEnvelope struct {
	Model   string             `json:"model"`
	Message *model.ChatMessage `json:"message"`
	Choices []struct {
		Message *model.ChatMessage `json:"message"`
	} `json:"choices"`
}

func normalize(body []byte) (text, modelName string, err error) {
	var env completionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", "", fmt.Errorf("could not decode response: %v", err)
	}
	if env.Message != nil && env.Message.Content != "" {
		return env.Message.Content, env.Model, nil
	}
	if len(env.Choices) > 0 && env.Choices[0].Message != nil && env.Choices[0].Message.Content != "" {
		return env.Choices[0].Message.Content, env.Model, nil
	}
	return "", "", fmt.Errorf("response contained no message content")
}
