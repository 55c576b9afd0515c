// internal/httpserver/routes_daily.go
//
// HTTP route for the puzzle of the day.
//   - GET /daily?date=YYYY-MM-DD&hard=true → the solver's game for that day
//
// The day's word is picked deterministically from date + DAILY_SALT, so
// every instance with the same salt and dictionary agrees on it.
// date defaults to today (UTC).

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
)

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := daily.ParseDateKey(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date")
			return
		}
		date = t
	}
	hard, _ := strconv.ParseBool(r.URL.Query().Get("hard"))

	target := daily.Target(date, s.deps.Config.DailySalt, s.deps.Solver.AllWords())
	res := s.solve(target, hard)
	res.Date = daily.DateKey(date)
	writeJSON(w, http.StatusOK, res)
}
