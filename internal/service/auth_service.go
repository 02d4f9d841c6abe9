package service

import (
	"fmt"

	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/model"
)

// LoginResult is the demo credential handed to the front end.
type LoginResult struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

// AuthService implements the demo-only login flow.
type AuthService struct{}

func NewAuthService() *AuthService { return &AuthService{} }

// MockLogin accepts any non-empty email/password pair and returns the mock
// sentinel token. The email doubles as the returned uid.
func (s *AuthService) MockLogin(email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: Missing credentials", app_errors.ErrValidation)
	}
	return &LoginResult{Token: model.MockToken, UID: email}, nil
}
