package errors

import "errors"

// This package defines the sentinel errors shared across layers. Services wrap
// them with context (fmt.Errorf("%w: ...")) and the API layer uses errors.Is to
// pick the HTTP status, so no service needs to know about status codes.

var (
	// ErrAuth signifies a missing, malformed or rejected credential.
	// This is mapped to a 401 Unauthorized HTTP status.
	ErrAuth = errors.New("invalid token")

	// ErrValidation signifies that client input failed validation.
	// This is mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrGateway signifies that the LLM call failed at the transport, HTTP or
	// response-shape level. Mapped to 500 with the failure detail attached.
	ErrGateway = errors.New("llm gateway failure")

	// ErrParse signifies that the LLM output could not be parsed as a JSON array.
	// Mapped to 422 with the raw output attached.
	ErrParse = errors.New("llm output parse failure")

	// ErrFormat signifies that the LLM output parsed but does not have the
	// expected structure. Mapped to 422 with the raw output attached.
	ErrFormat = errors.New("llm output format invalid")

	// ErrPersistence signifies a document or blob store write failure.
	// Log writes wrapping it are swallowed; it never reaches a client.
	ErrPersistence = errors.New("persistence failure")

	// ErrInternal signifies an unexpected error on the server. It is used to
	// avoid leaking implementation details to the client.
	ErrInternal = errors.New("internal server error")
)
