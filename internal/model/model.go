package model

import (
	"time"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation sent to the LLM.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserIdentity is the opaque uid derived from the bearer token on every request.
type UserIdentity string

// MockIdentity is used when no token or the mock sentinel token is supplied.
const MockIdentity UserIdentity = "mock-user"

// MockToken is the sentinel token handed out by the mock login endpoint.
const MockToken = "mock-jwt-token"

// QuizQuestion is a single multiple-choice question produced by the LLM.
type QuizQuestion struct {
	Question    string   `json:"question" bson:"question"`
	Options     []string `json:"options" bson:"options"`
	Answer      string   `json:"answer" bson:"answer"`
	Explanation string   `json:"explanation" bson:"explanation"`
}

// QuizResult is an ordered, non-empty list of questions.
type QuizResult []QuizQuestion

// Document store collections, kept identical to the ones the front end reads.
const (
	CollectionChats   = "chats"
	CollectionQuizzes = "generatedQuizzes"
	CollectionUploads = "uploads"
)

// ChatLogEntry records an answered chat question.
type ChatLogEntry struct {
	Question  string    `json:"question" bson:"question"`
	Answer    string    `json:"answer" bson:"answer"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// QuizLogEntry records a generated quiz.
type QuizLogEntry struct {
	Quiz      QuizResult `json:"quiz" bson:"quiz"`
	Input     string     `json:"input" bson:"input"`
	N         int        `json:"n" bson:"n"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

// UploadRecord records the metadata of an uploaded file.
type UploadRecord struct {
	Name        string    `json:"name" bson:"name"`
	Path        string    `json:"path" bson:"path"`
	URL         string    `json:"url" bson:"url"`
	ContentType string    `json:"contentType" bson:"contentType"`
	Size        int64     `json:"size" bson:"size"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
