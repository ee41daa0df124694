// Package httpapi exposes the quiz, scoring, pronunciation and player
// operations as a JSON API on a chi router.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

const maxUploadBytes = 10 << 20

// Deps are the collaborators of the API. Metrics, Middleware and Ready may be nil.
type Deps struct {
	Quiz          QuizService
	Scorer        WordScorer
	Letters       LetterGenerator
	Pronunciation PronunciationService
	Players       PlayerService
	Recorder      ScoreRecorder

	Metrics    http.Handler
	Middleware func(http.Handler) http.Handler
	Ready      func(ctx context.Context) error
}

// Options tune request handling.
type Options struct {
	RequestTimeout time.Duration
	DefaultLevel   entities.Level
	LetterPoolSize int
}

// Server bundles the router with its dependencies.
type Server struct {
	r      *chi.Mux
	deps   Deps
	opts   Options
	logger *zap.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps, opts Options, logger *zap.Logger) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.DefaultLevel == "" {
		opts.DefaultLevel = entities.LevelAll
	}
	if opts.LetterPoolSize <= 0 {
		opts.LetterPoolSize = 10
	}

	s := &Server{r: chi.NewRouter(), deps: deps, opts: opts, logger: logger}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	if deps.Middleware != nil {
		s.r.Use(deps.Middleware)
	}

	// --- diagnostics ---
	s.r.Get("/healthz", s.handleHealth)
	s.r.Get("/readyz", s.handleReady)
	if deps.Metrics != nil {
		s.r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
		r.Use(jsonContentType)

		r.Route("/vocab", func(r chi.Router) {
			r.Get("/letters", s.handleLetters)
			r.Post("/check-word", s.handleCheckWord)

			r.Get("/quiz/{level}", s.handleQuiz(entities.QuizModeDefinition))
			r.Get("/quiz/definition", s.handleQuiz(entities.QuizModeDefinition))
			r.Get("/quiz/definition/{level}", s.handleQuiz(entities.QuizModeDefinition))
			r.Post("/quiz/definition/answer", s.handleCheckAnswer)
			r.Get("/quiz/meaning", s.handleQuiz(entities.QuizModeMeaning))
			r.Get("/quiz/meaning/{level}", s.handleQuiz(entities.QuizModeMeaning))
			r.Get("/quiz/cursed", s.handleQuiz(entities.QuizModeCursed))
			r.Get("/quiz/cursed/{level}", s.handleQuiz(entities.QuizModeCursed))

			r.Post("/pronunciation", s.handlePronunciation)
		})

		r.Route("/players", func(r chi.Router) {
			r.Post("/", s.handleRegisterPlayer)
			r.Put("/{playerID}/quests/{questID}", s.handleUpdateQuest)
			r.Get("/{playerID}/summary", s.handleSummary)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Detail: r.URL.Path})
	})

	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ready != nil {
		if err := s.deps.Ready(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "not_ready"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
