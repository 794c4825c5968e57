package http

import (
	"errors"
	"net/http"

	"ai-receptionist/internal/conversation"
	pkgErrors "ai-receptionist/pkg/errors"
)

var (
	errInvalidAudio = pkgErrors.NewHTTPError(http.StatusBadRequest, "audio_data must be base64 encoded")
	errMissingID    = pkgErrors.NewHTTPError(http.StatusBadRequest, "session id is required")
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, conversation.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "Session not found")
	case errors.Is(err, conversation.ErrStoreUnavailable):
		return pkgErrors.ErrServiceUnavailable
	case errors.Is(err, conversation.ErrEmptyText):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "text is required")
	case errors.Is(err, conversation.ErrTranscribeFailed):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "Transcription failed")
	case errors.Is(err, conversation.ErrSynthesizeFailed):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "Speech synthesis failed")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
