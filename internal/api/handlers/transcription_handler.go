package handlers

import (
	"io"
	"net/http"
	"os"

	"github.com/carescript/backend/internal/api/middleware"
	"github.com/carescript/backend/internal/application/services"
	"github.com/carescript/backend/internal/infrastructure/observability"
)

const maxUploadBytes = 10 << 20 // 10 MB

// TranscriptionHandler handles handwriting image uploads and the saved
// transcription history.
type TranscriptionHandler struct {
	transcriptions *services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(transcriptions *services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{transcriptions: transcriptions}
}

// Analyze handles POST /api/analyze
func (h *TranscriptionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.IdentityFromContext(r.Context())
	if identityID == "" {
		respondWithError(w, http.StatusInternalServerError, "missing identity")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	// Spool the upload to disk so the request body is fully consumed
	// before the provider call starts. The temp file is always removed.
	tmp, err := os.CreateTemp("", "carescript-upload-*")
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	image, err := os.ReadFile(tmp.Name())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	entry, err := h.transcriptions.Analyze(r.Context(), identityID, image, mimeType)
	if err != nil {
		logger := observability.GetLogger()
		logger.Error().Err(err).Str("identity_id", identityID).Msg("transcription failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"id":         entry.ID,
		"text":       entry.Text,
		"created_at": entry.CreatedAt,
	})
}

// History handles GET /api/entries
func (h *TranscriptionHandler) History(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.IdentityFromContext(r.Context())
	if identityID == "" {
		respondWithError(w, http.StatusInternalServerError, "missing identity")
		return
	}

	entries, err := h.transcriptions.History(r.Context(), identityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
