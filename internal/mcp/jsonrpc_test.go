package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *tracker.Tracker) {
	t.Helper()
	tr, err := tracker.New(tracker.Options{Session: session.Options{
		Rewards:  session.DefaultRewards,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}})
	require.NoError(t, err)
	return NewServer(tr, "test"), tr
}

// exchange feeds lines to a fresh Run and returns the decoded responses.
func exchange(t *testing.T, s *Server, lines ...string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, s.Run(context.Background(), in, &out))

	var resps []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m), l)
		resps = append(resps, m)
	}
	return resps
}

func TestRun_Initialize(t *testing.T) {
	s, _ := newTestServer(t)
	resps := exchange(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	require.Len(t, resps, 1)

	result := resps[0]["result"].(map[string]any)
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "mindpatch", info["name"])
	assert.Equal(t, "test", info["version"])
}

func TestRun_ToolsList(t *testing.T) {
	s, _ := newTestServer(t)
	resps := exchange(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Len(t, resps, 1)

	tools := resps[0]["result"].(map[string]any)["tools"].([]any)
	var names []string
	for _, tl := range tools {
		m := tl.(map[string]any)
		names = append(names, m["name"].(string))
		assert.NotNil(t, m["inputSchema"])
	}
	assert.Equal(t, []string{"get_suggestion", "get_insight", "get_wellness_status"}, names)
}

func TestRun_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	resps := exchange(t, s,
		`not json`,
		`{"jsonrpc":"2.0","id":3,"method":"nonexistent/method"}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":"bad"}`,
	)
	require.Len(t, resps, 3)
	codes := []float64{}
	for _, r := range resps {
		codes = append(codes, r["error"].(map[string]any)["code"].(float64))
	}
	assert.Equal(t, []float64{codeParseError, codeMethodNotFound, codeInvalidParams}, codes)
}

func TestRun_NotificationGetsNoResponse(t *testing.T) {
	s, _ := newTestServer(t)
	resps := exchange(t, s,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":5,"method":"ping"}`,
	)
	require.Len(t, resps, 1)
	assert.Equal(t, float64(5), resps[0]["id"])
}

func TestRun_UnknownTool(t *testing.T) {
	s, _ := newTestServer(t)
	resps := exchange(t, s, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"nope"}}`)
	result := resps[0]["result"].(map[string]any)
	assert.Equal(t, true, result["isError"])
}

func TestRun_ContextCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, pr, io.Discard) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}
