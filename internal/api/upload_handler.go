package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"llm-lms/backend/internal/auth"
	app_errors "llm-lms/backend/internal/errors"
	"llm-lms/backend/internal/interfaces"
	"llm-lms/backend/internal/service"
)

// DefaultUploadMaxBytes bounds the multipart body.
const DefaultUploadMaxBytes = 32 << 20

// UploadResponse carries the retrieval URL of a stored file.
type UploadResponse struct {
	Message string `json:"message" example:"Uploaded"`
	URL     string `json:"url"`
}

// UploadHandler handles multipart file uploads.
type UploadHandler struct {
	service  interfaces.UploadService
	maxBytes int64
}

func NewUploadHandler(svc interfaces.UploadService, maxBytes int64) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &UploadHandler{service: svc, maxBytes: maxBytes}
}

// HandleUpload godoc
// @Summary      Upload a study file
// @Description  Stores a pdf, txt or md file and returns a retrieval URL valid for seven days.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File to upload"
// @Success      200  {object}  UploadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /upload/ [post]
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrAuth)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "File too large"})
			return
		}
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: service.MsgNoFilePart})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part named "file" without a filename is parsed as a plain value.
		if _, present := r.MultipartForm.Value["file"]; present {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: service.MsgNoSelectedFile})
			return
		}
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: service.MsgNoFilePart})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Upload failed"})
		return
	}

	res, err := h.service.Upload(r.Context(), uid, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		if errors.Is(err, app_errors.ErrValidation) {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
			return
		}
		slog.Error("Upload failed", "user_id", string(uid), "filename", header.Filename, "error", err)
		respondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Upload failed"})
		return
	}
	respondWithJSON(w, http.StatusOK, UploadResponse{Message: "Uploaded", URL: res.URL})
}
