package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

type lettersResponse struct {
	Letters []string `json:"letters"`
}

type checkWordRequest struct {
	Word             string   `json:"word"`
	AvailableLetters []string `json:"available_letters"`
}

type answerRequest struct {
	VocabID  int64 `json:"vocab_id"`
	AnswerID int64 `json:"answer_id"`
}

// definitionQuizResponse is returned for definition and meaning quizzes.
type definitionQuizResponse struct {
	Mode         entities.QuizMode `json:"mode"`
	VocabID      int64             `json:"vocab_id"`
	Question     string            `json:"question"`
	Level        entities.Level    `json:"cefr_level"`
	CorrectIndex int               `json:"correct_index"`
	Choices      []entities.Choice `json:"choices"`
	TTSLink      string            `json:"tts_link,omitempty"`
}

// cursedQuizResponse is returned for listening quizzes.
type cursedQuizResponse struct {
	Mode         entities.QuizMode `json:"mode"`
	VocabID      int64             `json:"vocab_id"`
	Question     string            `json:"question"`
	AudioURL     string            `json:"audio_url"`
	Level        entities.Level    `json:"cefr_level"`
	CorrectIndex int               `json:"correct_index"`
	Choices      []entities.Choice `json:"choices"`
}

func (s *Server) handleLetters(w http.ResponseWriter, r *http.Request) {
	amount := s.opts.LetterPoolSize
	if raw := r.URL.Query().Get("amount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.badRequest(w, "amount must be an integer")
			return
		}
		amount = n
	}

	writeJSON(w, http.StatusOK, lettersResponse{Letters: s.deps.Letters.Generate(amount)})
}

func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	var req checkWordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Word) == "" {
		s.badRequest(w, "word is required")
		return
	}

	result, err := s.deps.Scorer.Score(r.Context(), req.Word, req.AvailableLetters)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.deps.Recorder != nil {
		s.deps.Recorder.WordScored(r.Context(), result)
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQuiz(mode entities.QuizMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level := s.opts.DefaultLevel
		if raw := chi.URLParam(r, "level"); raw != "" {
			parsed, ok := entities.ParseLevel(raw)
			if !ok {
				s.badRequest(w, fmt.Sprintf("unknown level %q", raw))
				return
			}
			level = parsed
		}

		q, err := s.deps.Quiz.GenerateQuiz(r.Context(), mode, level)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		if q.Mode == entities.QuizModeCursed {
			writeJSON(w, http.StatusOK, cursedQuizResponse{
				Mode:         q.Mode,
				VocabID:      q.TargetID,
				Question:     q.Prompt,
				AudioURL:     q.AudioURL,
				Level:        q.Level,
				CorrectIndex: q.CorrectIndex,
				Choices:      q.Choices,
			})
			return
		}

		writeJSON(w, http.StatusOK, definitionQuizResponse{
			Mode:         q.Mode,
			VocabID:      q.TargetID,
			Question:     q.Prompt,
			Level:        q.Level,
			CorrectIndex: q.CorrectIndex,
			Choices:      q.Choices,
			TTSLink:      q.AudioURL,
		})
	}
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}
	if req.VocabID <= 0 || req.AnswerID <= 0 {
		s.badRequest(w, "vocab_id and answer_id are required")
		return
	}

	check, err := s.deps.Quiz.CheckAnswer(r.Context(), req.VocabID, req.AnswerID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, check)
}

// handlePronunciation grades an uploaded recording. The target is given
// either as vocab_id or as a literal word.
func (s *Server) handlePronunciation(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.badRequest(w, "multipart form expected")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		s.badRequest(w, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		s.badRequest(w, "could not read audio")
		return
	}

	var result *entities.PronunciationResult
	switch rawID, word := r.FormValue("vocab_id"), r.FormValue("word"); {
	case rawID != "":
		id, perr := strconv.ParseInt(rawID, 10, 64)
		if perr != nil || id <= 0 {
			s.badRequest(w, "vocab_id must be a positive integer")
			return
		}
		result, err = s.deps.Pronunciation.EvaluateByID(r.Context(), id, audio, header.Filename)
	case strings.TrimSpace(word) != "":
		result, err = s.deps.Pronunciation.Evaluate(r.Context(), word, audio, header.Filename)
	default:
		s.badRequest(w, "vocab_id or word is required")
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
