package quiz

import (
	"fmt"

	"llm-lms/backend/internal/model"
)

// Question count limits accepted by the quiz endpoint.
const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 5
	MinInputLength   = 3
)

const systemPrompt = "You are an educational content generator. Produce multiple-choice questions with one correct answer and three distractors."

const formatExample = `[{"question": "...", "options": ["A ...", "B ...", "C ...", "D ..."], "answer": "A", "explanation": "..."}]`

// BuildPrompt returns the conversation asking for n questions about text,
// answered as a bare JSON array.
func BuildPrompt(text string, n int) []model.ChatMessage {
	user := fmt.Sprintf("Create %d multiple-choice questions (A-D) based on the following input. "+
		"If it's a passage, generate questions directly from it. "+
		"If it's only a topic, first create a short educational summary and then generate questions. "+
		"For each question, mark the correct choice letter and provide a one-line explanation. "+
		"Respond ONLY with a JSON array in this format, with no explanation or extra text: "+
		"%s\n\nInput:\n%s", n, formatExample, text)

	return []model.ChatMessage{
		{Role: model.RoleSystem, Content: systemPrompt},
		{Role: model.RoleUser, Content: user},
	}
}
