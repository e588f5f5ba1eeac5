package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Config{Dir: dir}))
	t.Cleanup(func() { _ = Close(); Logger = nil })

	Info("entry logged", "mood", 4)
	Debug("hidden at info level")
	require.NoError(t, Close())

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "entry logged")
	assert.Contains(t, string(data), "mood=4")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestInit_DebugMirrorsToStderr(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	require.NoError(t, Init(Config{Dir: dir, Debug: true, Stderr: &buf}))
	t.Cleanup(func() { _ = Close(); Logger = nil })

	Debug("animation fetch failed", "err", "timeout")
	assert.Contains(t, buf.String(), "animation fetch failed")
	assert.FileExists(t, filepath.Join(dir, "logs", FileName))
}

func TestHelpers_NoopWithoutInit(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, func() {
		Debug("d")
		Info("i")
		Warn("w")
		Error("e")
	})
	assert.NoError(t, Close())
}

func TestClose_UninstallsLogger(t *testing.T) {
	require.NoError(t, Init(Config{Dir: t.TempDir()}))
	require.NotNil(t, Logger)
	require.NoError(t, Close())
	assert.Nil(t, Logger)
	assert.NotPanics(t, func() { Info("after close") })
}
