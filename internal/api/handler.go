package api

import (
	"errors"
	"log/slog"
	"net/http"

	"llm-lms/backend/internal/auth"
	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/interfaces"
	"llm-lms/backend/internal/llm"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/service"
)

// ChatRequest is the body of POST /api/chat/. The context may be sent as
// either contextText or context.
type ChatRequest struct {
	Question    string `json:"question" validate:"required" example:"What is photosynthesis?"`
	ContextText string `json:"contextText,omitempty" example:"Plants convert light into chemical energy."`
	Context     string `json:"context,omitempty"`
}

// ChatResponse carries the tutor's answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// GatewayErrorResponse is returned when the LLM call fails.
type GatewayErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ChatHandler handles tutoring questions.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleChat godoc
// @Summary      Ask the AI tutor
// @Description  Answers a question, optionally grounded in supplied context text. A completion without an answer is reported with status 200 and an error field.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatRequest  body  ChatRequest  true  "Question and optional context"
// @Success      200  {object}  ChatResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  GatewayErrorResponse
// @Router       /chat/ [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrAuth)
		return
	}

	var req ChatRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		slog.Debug("Rejected chat request", "reason", err)
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Question required"})
		return
	}

	contextText := req.ContextText
	if contextText == "" {
		contextText = req.Context
	}

	answer, err := h.service.Answer(r.Context(), uid, req.Question, contextText)
	if err != nil {
		h.respondChatError(w, uid, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ChatResponse{Answer: answer})
}

func (h *ChatHandler) respondChatError(w http.ResponseWriter, uid model.UserIdentity, err error) {
	var llmErr *llm.Error
	switch {
	case errors.Is(err, service.ErrNoAnswer):
		// Reported with 200 to match what existing clients expect.
		respondWithJSON(w, http.StatusOK, ErrorResponse{Error: "No answer returned from LLM"})
	case errors.As(err, &llmErr):
		slog.Warn("Chat completion failed", "user_id", string(uid), "kind", llmErr.Kind, "error", err)
		respondWithJSON(w, http.StatusInternalServerError, GatewayErrorResponse{
			Error:   "LLM request failed",
			Details: llmErr.Error(),
		})
	default:
		respondWithError(w, err)
	}
}
