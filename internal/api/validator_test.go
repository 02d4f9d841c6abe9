package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	app_errors "llm-lms/backend/internal/errors"
)

func TestValidateRequest_ReportsJSONFieldNames(t *testing.T) {
	err := validateRequest(&LoginRequest{Email: "a@b.c"})

	assert.ErrorIs(t, err, app_errors.ErrValidation)
	assert.EqualError(t, err, "validation failed: invalid fields: password (required)")
}

func TestValidateRequest_ListsEveryField(t *testing.T) {
	err := validateRequest(&LoginRequest{})

	assert.ErrorIs(t, err, app_errors.ErrValidation)
	assert.Contains(t, err.Error(), "email (required)")
	assert.Contains(t, err.Error(), "password (required)")
}

func TestValidateRequest_Valid(t *testing.T) {
	assert.NoError(t, validateRequest(&ChatRequest{Question: "What is Go?"}))
}
