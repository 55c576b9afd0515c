// internal/httpserver/routes_solve.go
//
// Stateless solver queries.
//   - POST /rank  → rank next guesses for a feedback history
//   - POST /solve → play a whole game against a known target
//
// Both run on a private clone of the base solver.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const (
	defaultTop    = 10
	maxCandidates = 20 // candidates are listed only below this count
)

type rankReq struct {
	History  []game.Turn `json:"history"`
	HardMode bool        `json:"hardMode"`
	Top      int         `json:"top"`
}

type rankRes struct {
	Remaining  int                    `json:"remaining"`
	Candidates []string               `json:"candidates,omitempty"`
	Guesses    []solver.GuessAnalysis `json:"guesses"`
}

// handleRank replays the history on a fresh solver and returns the top guesses.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(req.History) > game.DefaultRounds {
		writeError(w, http.StatusBadRequest, "too_many_turns")
		return
	}
	for i, t := range req.History {
		g, ok := words.Normalize(t.Guess)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_guess")
			return
		}
		req.History[i].Guess = g
	}
	top := req.Top
	if top <= 0 {
		top = defaultTop
	}

	ranking, err := s.ranking(r, req.HardMode, req.History)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cache_failed")
		return
	}

	res := rankRes{Remaining: ranking.Remaining, Guesses: []solver.GuessAnalysis{}}
	if len(ranking.Guesses) > 0 {
		res.Guesses = ranking.Guesses[:min(top, len(ranking.Guesses))]
	}
	if ranking.Remaining <= maxCandidates {
		res.Candidates = make([]string, 0, ranking.Remaining)
		for _, g := range ranking.Guesses {
			if g.IsPossibleAnswer {
				res.Candidates = append(res.Candidates, g.Word)
			}
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// ranking returns the full ranking for a history, from cache when possible.
func (s *Server) ranking(r *http.Request, hard bool, history []game.Turn) (*store.Ranking, error) {
	key := store.Key(hard, history)
	if cached, err := s.deps.Cache.Get(r.Context(), key); err == nil {
		return cached, nil
	}

	sv := s.fresh(hard)
	for _, t := range history {
		sv.ApplyFeedback(t.Guess, t.Pattern)
	}
	ranking := &store.Ranking{Remaining: sv.RemainingCount(), Guesses: sv.RankGuesses(0)}
	if err := s.deps.Cache.Save(r.Context(), key, ranking); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache ranking")
		return nil, err
	}
	return ranking, nil
}

// fresh returns a clone of the base solver at its initial state.
func (s *Server) fresh(hard bool) *solver.Solver {
	sv := s.deps.Solver.Clone()
	sv.Reset()
	sv.SetHardMode(hard)
	return sv
}

type solveReq struct {
	Target   string `json:"target"`
	HardMode bool   `json:"hardMode"`
}

type solveRes struct {
	Date     string      `json:"date,omitempty"`
	Target   string      `json:"target"`
	HardMode bool        `json:"hardMode"`
	Status   game.Status `json:"status"`
	Guesses  int         `json:"guesses"`
	Turns    []game.Turn `json:"turns"`
}

// handleSolve plays the solver against a dictionary word.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	target, ok := words.Normalize(req.Target)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_target")
		return
	}
	if !s.deps.Solver.Contains(target) {
		writeError(w, http.StatusBadRequest, "unknown_word")
		return
	}
	writeJSON(w, http.StatusOK, s.solve(target, req.HardMode))
}

func (s *Server) solve(target string, hard bool) solveRes {
	g := s.fresh(hard).SolveForTarget(target)
	return solveRes{
		Target:   target,
		HardMode: hard,
		Status:   g.Status(),
		Guesses:  g.Guesses(),
		Turns:    g.Turns(),
	}
}
