package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"llm-lms/backend/internal/auth"
	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/interfaces"
	"llm-lms/backend/internal/llm"
	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/quiz"
)

// QuestionCount accepts the question count as a JSON number or a numeric
// string. Absent or null means quiz.DefaultQuestions.
type QuestionCount struct {
	Value int
	Set   bool
}

func (c *QuestionCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	} else {
		raw = string(data)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return fmt.Errorf("n must be an integer, got %s", data)
		}
		n = int(f)
	}
	c.Value, c.Set = n, true
	return nil
}

// Or returns the value, or def when the count was not supplied.
func (c QuestionCount) Or(def int) int {
	if !c.Set {
		return def
	}
	return c.Value
}

// QuizRequest is the body of POST /api/quiz/. The input may be sent as
// either text or context.
type QuizRequest struct {
	Text    string        `json:"text" example:"Photosynthesis"`
	Context string        `json:"context,omitempty"`
	N       QuestionCount `json:"n" swaggertype:"integer" example:"5"`
}

// QuizResponse carries the generated quiz.
type QuizResponse struct {
	Quiz model.QuizResult `json:"quiz"`
}

// QuizGatewayErrorResponse describes a failed LLM call on the quiz path.
type QuizGatewayErrorResponse struct {
	Error        string  `json:"error"`
	Details      string  `json:"details,omitempty"`
	StatusCode   *int    `json:"status_code"`
	ResponseText *string `json:"response_text"`
	URL          string  `json:"url,omitempty"`
}

// QuizOutputErrorResponse describes unusable LLM output.
type QuizOutputErrorResponse struct {
	Error        string `json:"error"`
	Details      string `json:"details"`
	RawLLMOutput string `json:"raw_llm_output"`
}

// QuizHandler handles quiz generation.
type QuizHandler struct {
	service interfaces.QuizService
}

func NewQuizHandler(svc interfaces.QuizService) *QuizHandler {
	return &QuizHandler{service: svc}
}

// HandleGenerateQuiz godoc
// @Summary      Generate a quiz
// @Description  Generates n (1-20, default 5) multiple-choice questions from a topic or passage.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        quizRequest  body  QuizRequest  true  "Topic or passage and question count"
// @Success      200  {object}  QuizResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      422  {object}  QuizOutputErrorResponse
// @Failure      500  {object}  QuizGatewayErrorResponse
// @Router       /quiz/ [post]
func (h *QuizHandler) HandleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrAuth)
		return
	}

	var req QuizRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	text := req.Text
	if text == "" {
		text = req.Context
	}

	result, err := h.service.Generate(r.Context(), uid, text, req.N.Or(quiz.DefaultQuestions))
	if err != nil {
		respondQuizError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, QuizResponse{Quiz: result})
}

func respondQuizError(w http.ResponseWriter, err error) {
	var (
		llmErr    *llm.Error
		parseErr  *quiz.ParseError
		formatErr *quiz.FormatError
	)
	switch {
	case errors.As(err, &llmErr):
		slog.Warn("Quiz completion failed", "kind", llmErr.Kind, "error", err)
		respondWithJSON(w, http.StatusInternalServerError, quizGatewayError(llmErr))
	case errors.As(err, &parseErr):
		respondWithJSON(w, http.StatusUnprocessableEntity, QuizOutputErrorResponse{
			Error:        "Failed to parse quiz JSON",
			Details:      parseErr.Error(),
			RawLLMOutput: parseErr.Raw,
		})
	case errors.As(err, &formatErr):
		respondWithJSON(w, http.StatusUnprocessableEntity, QuizOutputErrorResponse{
			Error:        "Quiz format invalid",
			Details:      formatErr.Error(),
			RawLLMOutput: formatErr.Raw,
		})
	default:
		respondWithError(w, err)
	}
}

func quizGatewayError(e *llm.Error) QuizGatewayErrorResponse {
	switch e.Kind {
	case llm.FailureEmptyResponse:
		return QuizGatewayErrorResponse{Error: "LLM returned empty response", Details: e.Detail}
	case llm.FailureAuthMissing:
		return QuizGatewayErrorResponse{Error: e.Detail}
	}

	resp := QuizGatewayErrorResponse{
		Error:   "LLM API request failed",
		Details: e.Error(),
		URL:     e.URL,
	}
	if e.Kind == llm.FailureHTTP {
		status, body := e.StatusCode, e.ResponseBody
		resp.StatusCode = &status
		resp.ResponseText = &body
	}
	return resp
}
