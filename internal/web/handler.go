package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

// Server serves the practice widget and its JSON API.
type Server struct {
	cfg      *Config
	registry *Registry
}

// NewServer creates a Server whose sessions are built by factory.
func NewServer(cfg *Config, factory func() *session.Controller) *Server {
	return &Server{
		cfg:      cfg,
		registry: NewRegistry(factory, cfg.SessionTTL),
	}
}

// Registry exposes the session registry, e.g. to start its sweeper.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(identityMiddleware(s.cfg.Dev))

	s.RegisterRoutes(r)
	r.Handle("/*", PageHandler())

	return r
}

// RegisterRoutes registers the practice API.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.GetState)
		r.Get("/options", s.GetOptions)
		r.Post("/settings", s.PostSettings)
		r.Post("/credential", s.PostCredential)
		r.Post("/problem", s.PostProblem)
		r.Post("/hint", s.PostHint)
		r.Post("/explain", s.PostExplain)
		r.Post("/check", s.PostCheck)
		r.Post("/reset", s.PostReset)
	})
}

type stateResponse struct {
	session.Snapshot
	Percentage int            `json:"percentage"`
	Labels     settingsLabels `json:"labels"`
}

type settingsLabels struct {
	Grade       string `json:"grade"`
	ProblemType string `json:"problem_type"`
	Difficulty  string `json:"difficulty"`
}

func newStateResponse(c *session.Controller) stateResponse {
	snap := c.Snapshot()
	return stateResponse{
		Snapshot:   snap,
		Percentage: snap.Session.Percentage(),
		Labels: settingsLabels{
			Grade:       snap.Settings.Grade.Label(),
			ProblemType: snap.Settings.ProblemType.Label(),
			Difficulty:  snap.Settings.Difficulty.Label(),
		},
	}
}

// GetState returns the caller's session snapshot and progress.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		JSON(w, http.StatusOK, newStateResponse(c))
	})
}

// GetOptions lists the selectable settings.
func (s *Server) GetOptions(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string][]tutor.Option{
		"grades":        tutor.GradeOptions(),
		"problem_types": tutor.ProblemTypeOptions(),
		"difficulties":  tutor.DifficultyOptions(),
	})
}

// PostSettings replaces grade, problem type and difficulty.
func (s *Server) PostSettings(w http.ResponseWriter, r *http.Request) {
	var req tutor.Settings
	if err := decodeBody(r, "settings", &req); err != nil {
		Error(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		if err := c.Configure(req); err != nil {
			Error(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
			return
		}
		JSON(w, http.StatusOK, newStateResponse(c))
	})
}

// PostCredential sets or clears the caller's API key.
func (s *Server) PostCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := decodeBody(r, "credential", &req); err != nil {
		Error(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		if err := c.SetCredential(r.Context(), req.APIKey); err != nil {
			Error(w, http.StatusBadRequest, codeInvalidCredential, err.Error())
			return
		}
		JSON(w, http.StatusOK, newStateResponse(c))
	})
}

// PostProblem generates a new problem.
func (s *Server) PostProblem(w http.ResponseWriter, r *http.Request) {
	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		problem, err := c.GenerateProblem(r.Context())
		if err != nil {
			sessionError(w, err)
			return
		}
		JSON(w, http.StatusOK, map[string]string{"problem": problem})
	})
}

// PostHint returns one hint for the current problem.
func (s *Server) PostHint(w http.ResponseWriter, r *http.Request) {
	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		hint, err := c.GetHint(r.Context())
		if err != nil {
			sessionError(w, err)
			return
		}
		JSON(w, http.StatusOK, map[string]string{"hint": hint})
	})
}

// PostExplain returns a step-by-step solution for the current problem.
func (s *Server) PostExplain(w http.ResponseWriter, r *http.Request) {
	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		text, err := c.ExplainSolution(r.Context())
		if err != nil {
			sessionError(w, err)
			return
		}
		JSON(w, http.StatusOK, map[string]string{"explanation": text})
	})
}

type checkResponse struct {
	Feedback      string        `json:"feedback"`
	Verdict       tutor.Verdict `json:"verdict"`
	Score         int           `json:"score"`
	TotalAttempts int           `json:"total_attempts"`
	Percentage    int           `json:"percentage"`
}

// PostCheck judges the submitted answer.
func (s *Server) PostCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeBody(r, "check", &req); err != nil {
		Error(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		fb, err := c.CheckAnswer(r.Context(), req.Answer)
		if err != nil {
			sessionError(w, err)
			return
		}
		sess := c.Snapshot().Session
		JSON(w, http.StatusOK, checkResponse{
			Feedback:      fb.Text,
			Verdict:       fb.Verdict,
			Score:         sess.Score,
			TotalAttempts: sess.TotalAttempts,
			Percentage:    sess.Percentage(),
		})
	})
}

// PostReset zeroes the score.
func (s *Server) PostReset(w http.ResponseWriter, r *http.Request) {
	s.registry.With(SessionIDFromContext(r.Context()), func(c *session.Controller) {
		c.ResetProgress()
		JSON(w, http.StatusOK, newStateResponse(c))
	})
}
