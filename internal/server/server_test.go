package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/store"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts Options) (*Server, *store.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tr, err := tracker.New(tracker.Options{
		Store: db,
		Session: session.Options{
			Rewards:  session.DefaultRewards,
			Location: time.UTC,
			Now:      func() time.Time { return fixedNow },
		},
	})
	require.NoError(t, err)
	return New(tr, opts), db
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr, out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	rr, body := do(t, s, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestEntriesAndSuggestion(t *testing.T) {
	s, db := newTestServer(t, Options{})

	rr, body := do(t, s, http.MethodGet, "/api/suggestion", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, body["error"], "no entries")

	rr, body = do(t, s, http.MethodPost, "/api/entries", `{"mood":4,"screen_time_hours":4}`)
	require.Equal(t, http.StatusCreated, rr.Code, body)
	assert.Equal(t, "mindful_journaling", body["suggestion"].(map[string]any)["category"])
	assert.Equal(t, "moderate", body["usage"])

	rr, body = do(t, s, http.MethodGet, "/api/suggestion", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "mindful_journaling", body["suggestion"].(map[string]any)["category"])

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
}

func TestEntries_Validation(t *testing.T) {
	s, _ := newTestServer(t, Options{})
	tests := []struct {
		name string
		body string
	}{
		{"mood too high", `{"mood":6,"screen_time_hours":1}`},
		{"negative hours", `{"mood":3,"screen_time_hours":-1}`},
		{"more than a day", `{"mood":3,"screen_time_hours":25}`},
		{"negative category", `{"mood":3,"breakdown":{"study":-1,"social":1,"entertainment":0}}`},
		{"bad date", `{"mood":3,"screen_time_hours":1,"date":"tomorrow"}`},
		{"malformed", `{"mood":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := do(t, s, http.MethodPost, "/api/entries", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHabits(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rr, body := do(t, s, http.MethodPost, "/api/habits/toggle", "")
	require.Equal(t, http.StatusOK, rr.Code, body)
	assert.Equal(t, true, body["done"])
	assert.Equal(t, "2026-10-16", body["date"])

	rr, body = do(t, s, http.MethodPost, "/api/habits/toggle", `{"date":"2026-10-15"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(2), body["streak"])

	rr, _ = do(t, s, http.MethodPost, "/api/habits/toggle", `{"date":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, body = do(t, s, http.MethodGet, "/api/habits", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{"2026-10-15", "2026-10-16"}, body["days"])
	assert.Equal(t, true, body["habit_done_today"])
}

func TestGratitude(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rr, body := do(t, s, http.MethodPost, "/api/gratitude", `{"text":"  "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, body["added"])

	for _, text := range []string{"tea", "a walk", "<b>sunlight</b>"} {
		rr, _ = do(t, s, http.MethodPost, "/api/gratitude", `{"text":"`+text+`"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr, body = do(t, s, http.MethodGet, "/api/gratitude?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	notes := body["notes"].([]any)
	require.Len(t, notes, 2)
	assert.Equal(t, "sunlight", notes[0].(map[string]any)["text"])

	rr, _ = do(t, s, http.MethodGet, "/api/gratitude?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDashboardInsightAnimation(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	rr, body := do(t, s, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, body["latest"])
	assert.NotNil(t, body["status"])

	rr, body = do(t, s, http.MethodGet, "/api/insight", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "neutral_phase", body["kind"])

	rr, _ = do(t, s, http.MethodGet, "/api/animation", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, Options{RequestsPerSecond: 1, Burst: 1})
	rr, _ := do(t, s, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr, _ = do(t, s, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestServeListener_Shutdown(t *testing.T) {
	s, _ := newTestServer(t, Options{ShutdownTimeout: time.Second})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRespondError_LogsServerFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, logger.Init(logger.Config{Dir: dir}))
	t.Cleanup(func() { _ = logger.Close(); logger.Logger = nil })

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/entries", nil)
	respondError(c, errors.New("database is locked"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/suggestion", nil)
	respondError(c, tracker.ErrNoEntries)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	require.NoError(t, logger.Close())
	data, err := os.ReadFile(logger.Path(dir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "database is locked")
	assert.NotContains(t, string(data), tracker.ErrNoEntries.Error())
}
