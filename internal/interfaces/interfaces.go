package interfaces

import (
	"context"

	"llm-lms/backend/internal/model"
	"llm-lms/backend/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// ChatService answers tutoring questions.
type ChatService interface {
	Answer(ctx context.Context, uid model.UserIdentity, question, contextText string) (string, error)
}

// QuizService generates multiple-choice quizzes.
type QuizService interface {
	Generate(ctx context.Context, uid model.UserIdentity, text string, n int) (model.QuizResult, error)
}

// UploadService stores user files and returns retrieval URLs.
type UploadService interface {
	Upload(ctx context.Context, uid model.UserIdentity, filename, contentType string, data []byte) (*service.UploadResult, error)
}

// AuthService implements the demo login flow.
type AuthService interface {
	MockLogin(email, password string) (*service.LoginResult, error)
}
