package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/report"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var testWords = []string{
	"crane", "slate", "trace", "crate", "raise",
	"arise", "stare", "roast", "toast", "beast",
	"grate", "irate", "plate", "state", "those",
	"speed", "creep", "charm", "quick", "dream",
}

const operatorPassword = "correct horse"

func newTestServer(t *testing.T, reports *report.Store) *Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(operatorPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return New(Deps{
		Dict:    &words.Dictionary{Words: testWords, Duplicates: 1, Source: "test"},
		Solver:  solver.New(testWords),
		Cache:   store.NewMemoryStore(0),
		Reports: reports,
		Config: config.Config{
			JWTSecret:    "test_secret",
			JWTExpires:   time.Hour,
			OperatorHash: string(hash),
			DailySalt:    "salt",
			ClientOrigin: "http://localhost:5173",
			Workers:      2,
		},
	})
}

func do(t *testing.T, s *Server, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

func TestHealthAndRoot(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = do(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodOptions, "/rank", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWordStats(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/words/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"words":20,"rejected":0,"duplicates":1,"source":"test"}`, rec.Body.String())
}

func TestRankOpening(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/rank", map[string]any{"top": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var res rankRes
	decode(t, rec, &res)
	assert.Equal(t, len(testWords), res.Remaining)
	assert.ElementsMatch(t, testWords, res.Candidates)
	require.Len(t, res.Guesses, 3)
	assert.Equal(t, solver.New(testWords).RankGuesses(3), res.Guesses)
}

func TestRankWithHistory(t *testing.T) {
	s := newTestServer(t, nil)
	p := pattern.Calculate("crane", "crate")
	body := map[string]any{
		"history": []map[string]string{{"guess": "CRANE", "pattern": p.Code()}},
	}
	rec := do(t, s, http.MethodPost, "/rank", body)
	require.Equal(t, http.StatusOK, rec.Code)

	want := solver.New(testWords)
	want.ApplyFeedback("crane", p)

	var res rankRes
	decode(t, rec, &res)
	assert.Equal(t, want.RemainingCount(), res.Remaining)
	assert.ElementsMatch(t, want.PossibleAnswers(), res.Candidates)
	assert.Contains(t, res.Candidates, "crate")
	assert.LessOrEqual(t, len(res.Guesses), defaultTop)

	turns := []game.Turn{{Guess: "crane", Pattern: p}}
	cached, err := s.deps.Cache.Get(context.Background(), store.Key(false, turns))
	require.NoError(t, err)
	assert.Equal(t, res.Remaining, cached.Remaining)

	again := do(t, s, http.MethodPost, "/rank", body)
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestRankRejectsBadInput(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/rank", map[string]any{
		"history": []map[string]string{{"guess": "crane", "pattern": "gyzbb"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/rank", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/rank", map[string]any{
		"history": []map[string]string{{"guess": "cr4ne", "pattern": "bbbbb"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_guess", errorCode(t, rec))

	history := make([]map[string]string, game.DefaultRounds+1)
	for i := range history {
		history[i] = map[string]string{"guess": "crane", "pattern": "bbbbb"}
	}
	rec = do(t, s, http.MethodPost, "/rank", map[string]any{"history": history})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "too_many_turns", errorCode(t, rec))
}

func TestRankAcceptsAbsentAlias(t *testing.T) {
	s := newTestServer(t, nil)
	body := func(code string) map[string]any {
		return map[string]any{"history": []map[string]string{{"guess": "crane", "pattern": code}}}
	}
	p := pattern.Calculate("crane", "crate")

	withB := do(t, s, http.MethodPost, "/rank", body(p.Code()))
	require.Equal(t, http.StatusOK, withB.Code)
	withX := do(t, s, http.MethodPost, "/rank", body("GGGXG"))
	require.Equal(t, http.StatusOK, withX.Code)
	assert.Equal(t, withB.Body.String(), withX.Body.String())

	var res rankRes
	decode(t, withX, &res)
	assert.Equal(t, []string{"crate"}, res.Candidates)
}

func TestRankNoCandidates(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/rank", map[string]any{
		"history": []map[string]string{{"guess": "crane", "pattern": "ggggb"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	decode(t, rec, &raw)
	assert.JSONEq(t, `[]`, string(raw["guesses"]))
	assert.JSONEq(t, `0`, string(raw["remaining"]))
}

type solveBody struct {
	Date     string      `json:"date"`
	Target   string      `json:"target"`
	HardMode bool        `json:"hardMode"`
	Status   string      `json:"status"`
	Guesses  int         `json:"guesses"`
	Turns    []game.Turn `json:"turns"`
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, nil)
	for _, hard := range []bool{false, true} {
		rec := do(t, s, http.MethodPost, "/solve", map[string]any{"target": " Crate ", "hardMode": hard})
		require.Equal(t, http.StatusOK, rec.Code)

		var res solveBody
		decode(t, rec, &res)
		assert.Equal(t, "crate", res.Target)
		assert.Equal(t, hard, res.HardMode)
		assert.Equal(t, "won", res.Status)
		require.Len(t, res.Turns, res.Guesses)
		last := res.Turns[len(res.Turns)-1]
		assert.Equal(t, "crate", last.Guess)
		assert.True(t, last.Pattern.IsWin())
	}
}

func TestSolveRejectsBadTarget(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"target": "zzzzz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_word", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/solve", map[string]any{"target": "toolong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_target", errorCode(t, rec))
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/daily?date=2024-01-02&hard=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	date, err := daily.ParseDateKey("2024-01-02")
	require.NoError(t, err)

	var res solveBody
	decode(t, rec, &res)
	assert.Equal(t, "2024-01-02", res.Date)
	assert.Equal(t, daily.Target(date, "salt", testWords), res.Target)
	assert.True(t, res.HardMode)
	assert.Equal(t, "won", res.Status)

	again := do(t, s, http.MethodGet, "/daily?date=2024-01-02&hard=true", nil)
	assert.Equal(t, rec.Body.String(), again.Body.String())

	rec = do(t, s, http.MethodGet, "/daily?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_date", errorCode(t, rec))
}

func token(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/auth/token", map[string]string{"password": operatorPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	var res tokenRes
	decode(t, rec, &res)
	require.NotEmpty(t, res.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))
	return res.Token
}

func TestToken(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, s.verifyJWT(token(t, s)))

	rec := do(t, s, http.MethodPost, "/auth/token", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.deps.Config.OperatorHash = ""
	rec = do(t, s, http.MethodPost, "/auth/token", map[string]string{"password": operatorPassword})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "auth_disabled", errorCode(t, rec))
}

func TestVerifyJWTRejectsExpiredAndForeign(t *testing.T) {
	s := newTestServer(t, nil)

	old, _, err := s.signJWT(time.Now().Add(-2 * time.Hour))
	require.NoError(t, err)
	assert.Error(t, s.verifyJWT(old))

	other := newTestServer(t, nil)
	other.deps.Config.JWTSecret = "another_secret"
	foreign, _, err := other.signJWT(time.Now())
	require.NoError(t, err)
	assert.Error(t, s.verifyJWT(foreign))
}

func TestBenchmarkRequiresAuth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/benchmark", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/benchmark", nil, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorCode(t, rec))
}

func TestBenchmarkWithoutReports(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/benchmark", map[string]bool{"hardMode": true},
		"Authorization", "Bearer "+token(t, s))
	require.Equal(t, http.StatusOK, rec.Code)

	var res benchRes
	decode(t, rec, &res)
	require.NotNil(t, res.Result)
	assert.Equal(t, len(testWords), res.Result.Words)
	assert.True(t, res.Result.HardMode)
	assert.Zero(t, res.Result.Failures)
	assert.NotEmpty(t, res.Buckets)
	assert.Nil(t, res.Run)

	rec = do(t, s, http.MethodGet, "/benchmark/runs", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = do(t, s, http.MethodGet, "/benchmark/runs/1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBenchmarkRuns(t *testing.T) {
	db, err := report.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, report.Migrate(db, assets.Migrations()))

	s := newTestServer(t, report.NewStore(db))
	rec := do(t, s, http.MethodPost, "/benchmark", nil, "Authorization", "Bearer "+token(t, s))
	require.Equal(t, http.StatusOK, rec.Code)

	var res benchRes
	decode(t, rec, &res)
	require.NotNil(t, res.Run)
	assert.Equal(t, len(testWords), res.Run.Words)
	assert.Equal(t, res.Result.TotalGuesses, res.Run.Total)

	rec = do(t, s, http.MethodGet, "/benchmark/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []report.Run
	decode(t, rec, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, res.Run.ID, runs[0].ID)

	rec = do(t, s, http.MethodGet, fmt.Sprintf("/benchmark/runs/%d", res.Run.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got report.Run
	decode(t, rec, &got)
	assert.Equal(t, res.Run.Buckets, got.Buckets)

	rec = do(t, s, http.MethodGet, "/benchmark/runs/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodGet, "/benchmark/runs/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
