// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/words/stats".
//   - Solver queries: POST /rank, POST /solve, GET /daily.
//   - Operator endpoints: POST /auth/token, POST /benchmark (requires auth),
//     GET /benchmark/runs, GET /benchmark/runs/{id}.
//
// Notes:
//   - Every solver query runs on a fresh clone of the base solver; the server
//     keeps no per-client state.
//   - Rankings are cached by (hard mode, history) in a store.Store.
//   - Benchmark reports are optional: with no report store, runs are returned
//     but not persisted and the /benchmark/runs endpoints answer 503.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/report"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Dict    *words.Dictionary
	Solver  *solver.Solver // base solver at its initial state; never mutated
	Cache   store.Store    // ranking cache
	Reports *report.Store  // optional
	Config  config.Config
}

// Server bundles router and dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps

	benchMu sync.Mutex // one benchmark at a time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Cache == nil {
		d.Cache = store.NewMemoryStore(0)
	}
	s := &Server{r: chi.NewRouter(), deps: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)               // one zerolog line per request
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(d.Config.ClientOrigin)) // single-origin CORS

	// --- fast routes, bounded handler time ---
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/words/stats","POST /rank","POST /solve","/daily","POST /auth/token","POST /benchmark","/benchmark/runs"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/words/stats", s.handleWordStats)

		r.Post("/rank", s.handleRank)
		r.Post("/solve", s.handleSolve)
		s.mountDaily(r)

		r.Post("/auth/token", s.handleToken)
		r.Get("/benchmark/runs", s.handleListRuns)
		r.Get("/benchmark/runs/{id}", s.handleGetRun)
	})

	// --- slow routes ---
	s.r.With(s.requireAuth()).Post("/benchmark", s.handleBenchmark)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin != "" {
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs method, path, status and duration at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// handleWordStats reports the loaded dictionary.
func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	d := s.deps.Dict
	writeJSON(w, http.StatusOK, map[string]any{
		"words":      len(d.Words),
		"rejected":   len(d.Rejected),
		"duplicates": d.Duplicates,
		"source":     d.Source,
	})
}
