// Package quiz turns free-form LLM completions into validated multiple-choice
// quizzes.
package quiz

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
)

// Parse failure reasons.
const (
	ReasonEmpty       = "empty"
	ReasonNoArray     = "no array found"
	ReasonInvalidJSON = "invalid JSON"
)

// OptionCount is the number of choices every question must carry.
const OptionCount = 4

// ParseError reports output that could not be turned into a JSON array.
type ParseError struct {
	Reason string
	Raw    string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("quiz parse: %s: %v", e.Reason, e.Cause)
	}
	return "quiz parse: " + e.Reason
}

func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{app_errors.ErrParse, e.Cause}
	}
	return []error{app_errors.ErrParse}
}

// FormatError reports a JSON array whose contents are not well-formed questions.
type FormatError struct {
	Reason string
	// Index is the offending element, or -1 when the array itself is at fault.
	Index int
	Raw   string
}

func (e *FormatError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("quiz format: question %d: %s", e.Index, e.Reason)
	}
	return "quiz format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return app_errors.ErrFormat }

var (
	openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closingFence = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// ExtractQuizArray recovers a quiz from raw LLM output. It strips a markdown
// code fence, takes the span from the first '[' to the last ']', repairs
// single-quoted pseudo-JSON when no double quote is present, parses and then
// validates every question.
func ExtractQuizArray(raw string) (model.QuizResult, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ParseError{Reason: ReasonEmpty, Raw: raw}
	}

	if strings.HasPrefix(text, "```") {
		text = openingFence.ReplaceAllString(text, "")
		text = closingFence.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, &ParseError{Reason: ReasonNoArray, Raw: raw}
	}
	candidate := text[start : end+1]

	// Only when no double quote exists, so apostrophes inside real JSON strings survive.
	if strings.Contains(candidate, "'") && !strings.Contains(candidate, `"`) {
		candidate = strings.ReplaceAll(candidate, "'", `"`)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &elements); err != nil {
		return nil, &ParseError{Reason: ReasonInvalidJSON, Raw: raw, Cause: err}
	}

	return validate(elements, raw)
}

type rawQuestion struct {
	Question    *string   `json:"question"`
	Options     *[]*string `json:"options"`
	Answer      *string   `json:"answer"`
	Explanation *string   `json:"explanation"`
}

func validate(elements []json.RawMessage, raw string) (model.QuizResult, error) {
	if len(elements) == 0 {
		return nil, &FormatError{Reason: "quiz must contain at least one question", Index: -1, Raw: raw}
	}

	result := make(model.QuizResult, 0, len(elements))
	for i, el := range elements {
		fail := func(format string, args ...any) error {
			return &FormatError{Reason: fmt.Sprintf(format, args...), Index: i, Raw: raw}
		}

		trimmed := strings.TrimSpace(string(el))
		if !strings.HasPrefix(trimmed, "{") {
			return nil, fail("not an object")
		}
		var q rawQuestion
		if err := json.Unmarshal(el, &q); err != nil {
			return nil, fail("unexpected field type: %v", err)
		}

		switch {
		case q.Question == nil || strings.TrimSpace(*q.Question) == "":
			return nil, fail("missing question text")
		case q.Options == nil:
			return nil, fail("missing options")
		case len(*q.Options) != OptionCount:
			return nil, fail("expected %d options, got %d", OptionCount, len(*q.Options))
		case q.Answer == nil:
			return nil, fail("missing answer")
		case q.Explanation == nil:
			return nil, fail("missing explanation")
		}

		answer, ok := normalizeAnswer(*q.Answer)
		if !ok {
			return nil, fail("answer must be one of A, B, C, D, got %q", *q.Answer)
		}

		options := make([]string, OptionCount)
		for j, opt := range *q.Options {
			if opt == nil {
				return nil, fail("option %d is not text", j)
			}
			options[j] = *opt
		}
		result = append(result, model.QuizQuestion{
			Question:    *q.Question,
			Options:     options,
			Answer:      answer,
			Explanation: *q.Explanation,
		})
	}

	return result, nil
}

func normalizeAnswer(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'D' {
		return "", false
	}
	return s, true
}
