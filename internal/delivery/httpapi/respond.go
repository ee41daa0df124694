package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
	"github.com/Spell-Splash/spell-splash-word-service/internal/service"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) badRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Detail: detail})
}

// writeError maps service errors onto statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoWordsFound),
		errors.Is(err, repository.ErrVocabularyNotFound),
		errors.Is(err, repository.ErrPlayerNotFound),
		errors.Is(err, repository.ErrQuestNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no_content", Detail: err.Error()})

	case errors.Is(err, service.ErrTranscriptionFailed):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "transcription_failed", Detail: err.Error()})

	case errors.Is(err, service.ErrInvalidAudio),
		errors.Is(err, service.ErrInvalidPlayer),
		errors.Is(err, service.ErrInvalidQuest),
		errors.Is(err, service.ErrUnknownQuizMode):
		s.badRequest(w, err.Error())

	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal"})
	}
}
