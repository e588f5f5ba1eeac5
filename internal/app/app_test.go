package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCommands_Registered(t *testing.T) {
	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range []string{"log", "suggest", "insight", "habit", "gratitude", "status", "reset", "export", "serve", "mcp", "doctor"} {
		assert.True(t, registered[name], "%s subcommand not registered on rootCmd", name)
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"2.5", 2.5, false},
		{"3h30m", 3.5, false},
		{"45m", 0.75, false},
		{"24", 24, false},
		{"-1", 0, true},
		{"25", 0, true},
		{"lots", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHours(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLogForm_Input(t *testing.T) {
	in, err := logForm{Mood: 2, Screen: "4h"}.input("")
	require.NoError(t, err)
	assert.Equal(t, 2, in.Mood)
	assert.InDelta(t, 4.0, in.ScreenTime, 1e-9)
	assert.Nil(t, in.Breakdown)

	in, err = logForm{Mood: 1, Split: true, Study: "1", Social: "2.5"}.input("2026-10-15")
	require.NoError(t, err)
	require.NotNil(t, in.Breakdown)
	assert.Equal(t, "2026-10-15", in.Date)
	assert.InDelta(t, 2.5, in.Breakdown.Social, 1e-9)
	assert.Zero(t, in.Breakdown.Entertainment)

	_, err = logForm{Mood: 3, Split: true, Study: "x"}.input("")
	assert.Error(t, err)
}

func TestLogInput_Flags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantErr   bool
		breakdown bool
	}{
		{"total", []string{"--mood", "3", "--screen", "2"}, false, false},
		{"categories", []string{"--mood", "2", "--social", "3"}, false, true},
		{"missing mood", []string{"--screen", "2"}, true, false},
		{"missing hours", []string{"--mood", "4"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(rootCmd)
			require.NoError(t, logCmd.ParseFlags(tt.args))
			in, err := logInput(logCmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.breakdown, in.Breakdown != nil)
		})
	}
	resetFlags(rootCmd)
}

// resetFlags restores every flag in the tree to its default so package-level
// flag variables do not leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// testConfig writes a config file pointing at a fresh data directory.
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := map[string]any{
		"data_dir":  filepath.Join(dir, "data"),
		"timezone":  "UTC",
		"xp":        map[string]any{"notify": false},
		"animation": map[string]any{"enabled": false},
	}
	raw, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--no-color"}, args...))
	err := rootCmd.Execute()
	resetFlags(rootCmd)
	return buf.String(), err
}

func TestEndToEnd_CheckInFlow(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "suggest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mindpatch log")

	out, err := run(t, cfg, "log", "--mood", "1", "--screen", "6", "--json")
	require.NoError(t, err)
	var logged tracker.LogResult
	require.NoError(t, json.Unmarshal([]byte(out), &logged))
	assert.Equal(t, suggest.CategoryDeepReset, logged.Suggestion.Category)
	assert.Equal(t, 10, logged.XP)

	out, err = run(t, cfg, "suggest", "--json")
	require.NoError(t, err)
	var sug suggestOutput
	require.NoError(t, json.Unmarshal([]byte(out), &sug))
	assert.Equal(t, suggest.CategoryDeepReset, sug.Suggestion.Category)
	assert.False(t, sug.Animation)

	out, err = run(t, cfg, "habit", "toggle", "--json")
	require.NoError(t, err)
	var toggled tracker.HabitResult
	require.NoError(t, json.Unmarshal([]byte(out), &toggled))
	assert.True(t, toggled.Done)
	assert.Equal(t, 1, toggled.Streak)

	out, err = run(t, cfg, "gratitude", "add", "morning", "coffee")
	require.NoError(t, err)
	assert.Contains(t, out, "morning coffee")

	out, err = run(t, cfg, "status", "--json")
	require.NoError(t, err)
	var st tracker.Status
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 35, st.XP)
	assert.Equal(t, 1, st.Streak)
	assert.Equal(t, 1, st.Entries)
	assert.Equal(t, 1, st.Gratitude)

	out, err = run(t, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "morning coffee")

	out, err = run(t, cfg, "export")
	require.NoError(t, err)
	var doc exportDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Entries, 1)
	assert.Len(t, doc.HabitDays, 1)
	assert.Equal(t, 35, doc.XP)
	assert.Equal(t, "morning coffee", doc.Gratitude[0].Text)

	_, err = run(t, cfg, "reset", "--yes")
	require.NoError(t, err)
	out, err = run(t, cfg, "status", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Zero(t, st.XP)
	assert.Zero(t, st.Entries)
}

func TestEndToEnd_RejectsInvalidEntry(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "log", "--mood", "9", "--screen", "2")
	assert.Error(t, err)

	out, err := run(t, cfg, "status", "--json")
	require.NoError(t, err)
	var st tracker.Status
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Zero(t, st.Entries)
	assert.Zero(t, st.XP)
}

func TestEndToEnd_DemoInsight(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, cfg, "insight", "--demo", "--json")
	require.NoError(t, err)
	var in suggest.Insight
	require.NoError(t, json.Unmarshal([]byte(out), &in))
	assert.NotEmpty(t, in.Message)
	assert.Equal(t, 7, in.Points)
}

func TestLoadEnv_ClosesLoggerOnFailure(t *testing.T) {
	dir := t.TempDir()
	raw, err := yaml.Marshal(map[string]any{
		"data_dir": filepath.Join(dir, "data"),
		"timezone": "Mars/Olympus_Mons",
	})
	require.NoError(t, err)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = run(t, path, "status")
	assert.ErrorContains(t, err, "loading timezone")
	assert.Nil(t, logger.Logger)
	assert.DirExists(t, filepath.Join(dir, "data", "logs"))
}

func TestDoctor_AllPass(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, cfg, "doctor", "--json")
	require.NoError(t, err)
	var res doctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, res.TotalCount, res.PassedCount, "%+v", res.Checks)
	assert.Contains(t, databaseCheck(t, res).Message, "no check-ins yet")

	_, err = run(t, cfg, "log", "--mood", "4", "--screen", "2")
	require.NoError(t, err)
	out, err = run(t, cfg, "doctor", "--json")
	require.NoError(t, err)
	res = doctorOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, databaseCheck(t, res).Message, "1 entries")
	assert.Contains(t, databaseCheck(t, res).Message, "last check-in ")
}

func databaseCheck(t *testing.T, res doctorOutput) doctorCheck {
	t.Helper()
	for _, c := range res.Checks {
		if c.Name == "SQLite database" {
			return c
		}
	}
	t.Fatalf("no database check in %+v", res.Checks)
	return doctorCheck{}
}
