// internal/httpserver/routes_bench.go
//
// Benchmark endpoints.
//   - POST /benchmark           → solve the whole dictionary (operator only)
//   - GET  /benchmark/runs      → recent stored runs (?limit=n)
//   - GET  /benchmark/runs/{id} → one stored run
//
// Only one benchmark runs at a time; a second request gets 409.
// Runs are persisted when a report store is configured.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/bench"
	"github.com/robalobadob/wordle/apps/solver/internal/report"
)

type benchReq struct {
	HardMode bool `json:"hardMode"`
}

type benchRes struct {
	Result  *bench.Result  `json:"result"`
	Buckets []bench.Bucket `json:"buckets"`
	Run     *report.Run    `json:"run,omitempty"`
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	var req benchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !s.benchMu.TryLock() {
		writeError(w, http.StatusConflict, "benchmark_running")
		return
	}
	defer s.benchMu.Unlock()

	base := s.fresh(req.HardMode)
	res, err := bench.Run(r.Context(), base, bench.Options{Workers: s.deps.Config.Workers})
	if err != nil {
		log.Warn().Err(err).Msg("benchmark aborted")
		writeError(w, http.StatusServiceUnavailable, "benchmark_aborted")
		return
	}
	log.Info().
		Bool("hard", res.HardMode).
		Int("words", res.Words).
		Float64("average", res.Average).
		Int("failures", res.Failures).
		Dur("elapsed", res.Elapsed).
		Msg("benchmark finished")

	out := benchRes{Result: res, Buckets: res.Buckets()}
	if s.deps.Reports != nil {
		run, err := s.deps.Reports.Save(r.Context(), res)
		if err != nil {
			log.Error().Err(err).Msg("save benchmark run")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		out.Run = run
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.deps.Reports == nil {
		writeError(w, http.StatusServiceUnavailable, "reports_disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.deps.Reports.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list benchmark runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.deps.Reports == nil {
		writeError(w, http.StatusServiceUnavailable, "reports_disabled")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	run, err := s.deps.Reports.Get(r.Context(), id)
	switch {
	case errors.Is(err, report.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case err != nil:
		log.Error().Err(err).Int64("id", id).Msg("get benchmark run")
		writeError(w, http.StatusInternalServerError, "db_error")
	default:
		writeJSON(w, http.StatusOK, run)
	}
}
