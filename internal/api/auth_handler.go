package api

import (
	"log/slog"
	"net/http"

	"llm-lms/backend/internal/interfaces"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"student@example.com"`
	Password string `json:"password" validate:"required" example:"secret"`
}

// AuthHandler serves the demo login endpoint.
type AuthHandler struct {
	service interfaces.AuthService
}

func NewAuthHandler(svc interfaces.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin godoc
// @Summary      Mock login
// @Description  Returns the demo token for any non-empty email and password. The email is echoed back as the uid.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  service.LoginResult
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		slog.Debug("Rejected login request", "reason", err)
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Missing credentials"})
		return
	}

	res, err := h.service.MockLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}
